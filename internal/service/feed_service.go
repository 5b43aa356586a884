package service

import (
	"context"
	"fmt"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
)

// likerUnknown stands in for a liking user that no longer resolves; one
// dangling like must not fail the whole feed.
const likerUnknown = "unknown"

// EnrichedTweet is the denormalized per-tweet view assembled for the
// personalized feed.
type EnrichedTweet struct {
	ID          int64         `json:"id"`
	Content     string        `json:"content"`
	Author      model.UserRef `json:"author"`
	Attachments []string      `json:"attachments"`
	Likes       []LikeRef     `json:"likes"`
}

type LikeRef struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

type FeedService interface {
	GlobalFeed(ctx context.Context) ([]*model.Tweet, error)
	UserFeed(ctx context.Context, userID int64) ([]EnrichedTweet, error)
}

type feedService struct {
	userRepo   repository.UserRepository
	tweetRepo  repository.TweetRepository
	followRepo repository.FollowRepository
	likeRepo   repository.LikeRepository
	mediaSvc   MediaService
}

func NewFeedService(
	userRepo repository.UserRepository,
	tweetRepo repository.TweetRepository,
	followRepo repository.FollowRepository,
	likeRepo repository.LikeRepository,
	mediaSvc MediaService,
) FeedService {
	return &feedService{
		userRepo:   userRepo,
		tweetRepo:  tweetRepo,
		followRepo: followRepo,
		likeRepo:   likeRepo,
		mediaSvc:   mediaSvc,
	}
}

func (s *feedService) GlobalFeed(ctx context.Context) ([]*model.Tweet, error) {
	return s.tweetRepo.ListAll(ctx)
}

// UserFeed selects tweets whose author is in the visibility set (the caller
// plus everyone they follow), newest first, and enriches each with author,
// attachments and likes.
func (s *feedService) UserFeed(ctx context.Context, userID int64) ([]EnrichedTweet, error) {
	edges, err := s.followRepo.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	authors := make([]int64, 0, len(edges)+1)
	authors = append(authors, userID)
	for _, e := range edges {
		authors = append(authors, e.FollowingID)
	}

	tweets, err := s.tweetRepo.ListByAuthors(ctx, authors)
	if err != nil {
		return nil, err
	}

	// per-request author/liker cache; the same few users repeat across tweets
	users := map[int64]*model.User{}
	lookup := func(id int64) (*model.User, error) {
		if u, ok := users[id]; ok {
			return u, nil
		}
		u, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		users[id] = u
		return u, nil
	}

	feed := make([]EnrichedTweet, 0, len(tweets))
	for _, t := range tweets {
		author, err := lookup(t.AuthorID)
		if err != nil {
			return nil, err
		}
		if author == nil {
			// write-time integrity should make this unreachable
			return nil, fmt.Errorf("feed: tweet %d has no author %d", t.ID, t.AuthorID)
		}

		attachments, err := s.mediaSvc.ListAttachments(ctx, t.ID)
		if err != nil {
			return nil, err
		}

		likes, err := s.likeRepo.ListByTweet(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		likeRefs := make([]LikeRef, 0, len(likes))
		for _, l := range likes {
			name := likerUnknown
			if u, err := lookup(l.UserID); err != nil {
				return nil, err
			} else if u != nil {
				name = u.Name
			}
			likeRefs = append(likeRefs, LikeRef{UserID: l.UserID, Name: name})
		}

		feed = append(feed, EnrichedTweet{
			ID:          t.ID,
			Content:     t.Content,
			Author:      author.Ref(),
			Attachments: attachments,
			Likes:       likeRefs,
		})
	}
	return feed, nil
}
