package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/pkg/apperr"
)

// Success writes the result envelope: {"result": true} merged with payload keys.
func Success(c *gin.Context, payload gin.H) {
	body := gin.H{"result": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"result": false, "message": message})
}

func BadRequest(c *gin.Context, message string) { fail(c, http.StatusBadRequest, message) }
func NotFound(c *gin.Context, message string)   { fail(c, http.StatusNotFound, message) }
func Forbidden(c *gin.Context, message string)  { fail(c, http.StatusForbidden, message) }

func InternalError(c *gin.Context, err error) {
	fail(c, http.StatusInternalServerError, "Internal server error")
	_ = c.Error(err)
}

// FromError maps a service error to a status by its apperr kind. Unknown
// errors become 500s and are attached to the gin context for the recovery /
// logging middleware to report.
func FromError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		NotFound(c, err.Error())
	case apperr.KindConflict, apperr.KindInvalid:
		BadRequest(c, err.Error())
	case apperr.KindForbidden:
		Forbidden(c, err.Error())
	default:
		InternalError(c, err)
	}
}
