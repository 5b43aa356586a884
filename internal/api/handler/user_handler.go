package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/pkg/response"
)

// Me returns the caller's profile with followers and following.
// @Summary Current user profile
// @Tags users
// @Produce json
// @Param api-key header string true "caller identity"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/users/me [get]
func (h *Handler) Me(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok {
		return
	}
	profile, err := h.userSvc.Profile(c.Request.Context(), user.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"user": profile})
}

// DeleteMe removes the caller's account with all owned records.
// @Summary Delete current user
// @Tags users
// @Produce json
// @Param api-key header string true "caller identity"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/users/me [delete]
func (h *Handler) DeleteMe(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok {
		return
	}
	if err := h.userSvc.Delete(c.Request.Context(), user.ID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "User deleted"})
}

// GetUser returns any user's profile by id.
// @Summary User profile
// @Tags users
// @Produce json
// @Param user_id path int true "user id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/users/{user_id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid user id")
		return
	}
	profile, err := h.userSvc.Profile(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"user": profile})
}

// SearchUsers does a case-insensitive name search, capped at 10 results.
// @Summary Search users by name
// @Tags users
// @Produce json
// @Param query query string true "name fragment"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/users/search [get]
func (h *Handler) SearchUsers(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		response.BadRequest(c, "Query parameter is required")
		return
	}
	users, err := h.userSvc.Search(c.Request.Context(), query)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"users": users})
}
