package middleware

import (
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/microblog/pkg/logger"
)

// Recovery converts panics into 500 responses. Panics and handler-attached
// errors are forwarded to sentry when it is initialized.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				err := fmt.Errorf("panic: %v", r)
				logger.Error("panic recovered", zap.Any("panic", r), zap.String("path", c.Request.URL.Path))
				sentry.CaptureException(err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"result":  false,
					"message": "Internal server error",
				})
			}
		}()
		c.Next()

		for _, ginErr := range c.Errors {
			sentry.CaptureException(ginErr.Err)
		}
	}
}
