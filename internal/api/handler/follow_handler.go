package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/pkg/response"
)

// Follow creates a follow edge from the caller to the target user.
// @Summary Follow a user
// @Tags follows
// @Produce json
// @Param api-key header string true "caller identity"
// @Param user_id path int true "target user id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/follows/{user_id} [post]
func (h *Handler) Follow(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok {
		return
	}
	targetID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid user id")
		return
	}
	if err := h.relSvc.Follow(c.Request.Context(), user.ID, targetID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Followed successfully"})
}

// Unfollow removes the caller's follow edge to the target user.
// @Summary Unfollow a user
// @Tags follows
// @Produce json
// @Param api-key header string true "caller identity"
// @Param user_id path int true "target user id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/follows/{user_id} [delete]
func (h *Handler) Unfollow(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok {
		return
	}
	targetID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid user id")
		return
	}
	if err := h.relSvc.Unfollow(c.Request.Context(), user.ID, targetID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Unfollowed successfully"})
}

// ListFollowing lists the users the caller follows, in follow order.
// @Summary List followees
// @Tags follows
// @Produce json
// @Param api-key header string true "caller identity"
// @Success 200 {object} map[string]interface{}
// @Router /api/follows/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok {
		return
	}
	refs, err := h.relSvc.ListFollowing(c.Request.Context(), user.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"following": refs})
}

// ListFollowers lists the caller's followers, in follow order.
// @Summary List followers
// @Tags follows
// @Produce json
// @Param api-key header string true "caller identity"
// @Success 200 {object} map[string]interface{}
// @Router /api/follows/followers [get]
func (h *Handler) ListFollowers(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok {
		return
	}
	refs, err := h.relSvc.ListFollowers(c.Request.Context(), user.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"followers": refs})
}
