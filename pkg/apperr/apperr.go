package apperr

import "errors"

// Kind classifies an error for the request boundary; pkg/response translates
// each kind to an HTTP status.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindConflict
	KindInvalid
	KindForbidden
)

// Error carries a kind plus the message returned verbatim to the client.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(kind Kind, message string) *Error { return &Error{Kind: kind, Message: message} }

var (
	ErrUserNotFound   = New(KindNotFound, "User not found")
	ErrTargetNotFound = New(KindNotFound, "Target user not found")
	ErrTweetNotFound  = New(KindNotFound, "Tweet not found")
	ErrMediaNotFound  = New(KindNotFound, "Media not found")

	ErrFollowSelf       = New(KindInvalid, "Cannot follow yourself")
	ErrAlreadyFollowing = New(KindConflict, "Already following this user")
	ErrNotFollowing     = New(KindConflict, "Not following this user")
	ErrAlreadyLiked     = New(KindConflict, "Tweet already liked")
	ErrLikeNotFound     = New(KindConflict, "Like not found")
	ErrUserExists       = New(KindConflict, "User already exists")

	ErrNotTweetAuthor = New(KindForbidden, "You can only delete your own tweets")
)

// KindOf reports the kind of err if it is (or wraps) an *Error, else 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
