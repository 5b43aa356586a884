package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/response"
)

// Handler groups the HTTP endpoints over the domain services.
type Handler struct {
	resolver service.Resolver
	userSvc  service.UserService
	tweetSvc service.TweetService
	relSvc   service.RelationshipService
	feedSvc  service.FeedService
	mediaSvc service.MediaService
}

func New(
	resolver service.Resolver,
	userSvc service.UserService,
	tweetSvc service.TweetService,
	relSvc service.RelationshipService,
	feedSvc service.FeedService,
	mediaSvc service.MediaService,
) *Handler {
	return &Handler{
		resolver: resolver,
		userSvc:  userSvc,
		tweetSvc: tweetSvc,
		relSvc:   relSvc,
		feedSvc:  feedSvc,
		mediaSvc: mediaSvc,
	}
}

// identityToken pulls the caller's token: the api-key header, or a bearer
// Authorization header when the JWT resolver is configured.
func identityToken(c *gin.Context) string {
	if key := c.GetHeader("api-key"); key != "" {
		return key
	}
	auth := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return after
	}
	return ""
}

// caller resolves the request identity; on failure it writes the error
// response and returns false.
func (h *Handler) caller(c *gin.Context) (*model.User, bool) {
	u, err := h.resolver.Resolve(c.Request.Context(), identityToken(c))
	if err != nil {
		response.FromError(c, err)
		return nil, false
	}
	return u, true
}
