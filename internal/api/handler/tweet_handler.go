package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/pkg/response"
)

type createTweetRequest struct {
	Content  string  `json:"content" binding:"required,tweetcontent"`
	MediaIDs []int64 `json:"media_ids"`
}

// CreateTweet posts a new tweet for the caller, best-effort attaching any
// referenced media.
// @Summary Create a tweet
// @Tags tweets
// @Accept json
// @Produce json
// @Param api-key header string true "caller identity"
// @Param request body createTweetRequest true "tweet body"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/tweets [post]
func (h *Handler) CreateTweet(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok {
		return
	}
	var req createTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	tweet, err := h.tweetSvc.Create(c.Request.Context(), user.ID, req.Content, req.MediaIDs)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"tweet_id": tweet.ID})
}

// Feed returns the caller's personalized feed; without an identity header it
// falls back to the unenriched global listing.
// @Summary Personalized or global tweet feed
// @Tags tweets
// @Produce json
// @Param api-key header string false "caller identity"
// @Success 200 {object} map[string]interface{}
// @Router /api/tweets [get]
func (h *Handler) Feed(c *gin.Context) {
	if identityToken(c) == "" {
		tweets, err := h.feedSvc.GlobalFeed(c.Request.Context())
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, gin.H{"tweets": tweets})
		return
	}

	user, ok := h.caller(c)
	if !ok {
		return
	}
	feed, err := h.feedSvc.UserFeed(c.Request.Context(), user.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"tweets": feed})
}

// DeleteTweet deletes the caller's own tweet, cascading its likes and
// detaching its media.
// @Summary Delete a tweet
// @Tags tweets
// @Produce json
// @Param api-key header string true "caller identity"
// @Param tweet_id path int true "tweet id"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/tweets/{tweet_id} [delete]
func (h *Handler) DeleteTweet(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok {
		return
	}
	tweetID, err := strconv.ParseInt(c.Param("tweet_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid tweet id")
		return
	}
	if err := h.tweetSvc.Delete(c.Request.Context(), user.ID, tweetID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Tweet deleted"})
}

// LikeTweet records a like by the caller.
// @Summary Like a tweet
// @Tags tweets
// @Produce json
// @Param api-key header string true "caller identity"
// @Param tweet_id path int true "tweet id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/tweets/{tweet_id}/likes [post]
func (h *Handler) LikeTweet(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok {
		return
	}
	tweetID, err := strconv.ParseInt(c.Param("tweet_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid tweet id")
		return
	}
	if err := h.relSvc.Like(c.Request.Context(), user.ID, tweetID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Tweet liked"})
}

// UnlikeTweet removes the caller's like.
// @Summary Unlike a tweet
// @Tags tweets
// @Produce json
// @Param api-key header string true "caller identity"
// @Param tweet_id path int true "tweet id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/tweets/{tweet_id}/likes [delete]
func (h *Handler) UnlikeTweet(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok {
		return
	}
	tweetID, err := strconv.ParseInt(c.Param("tweet_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid tweet id")
		return
	}
	if err := h.relSvc.Unlike(c.Request.Context(), user.ID, tweetID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Like removed"})
}

// TweetLikes returns the like count for a tweet. No identity required.
// @Summary Count likes on a tweet
// @Tags tweets
// @Produce json
// @Param tweet_id path int true "tweet id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/tweets/{tweet_id}/likes [get]
func (h *Handler) TweetLikes(c *gin.Context) {
	tweetID, err := strconv.ParseInt(c.Param("tweet_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid tweet id")
		return
	}
	count, err := h.relSvc.CountLikes(c.Request.Context(), tweetID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"likes_count": count})
}
