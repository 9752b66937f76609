package middleware

import (
	"errors"
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error attached by a handler.
// Storage failures are logged with their cause; clients only see a generic message.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.Internal(err)
		}

		if appErr.Code >= http.StatusInternalServerError {
			logger.Log.Error("request failed",
				"request_id", c.GetString(response.RequestIDKey),
				"method", c.Request.Method,
				"path", c.FullPath(),
				"error", appErr.Err,
			)
			response.Error(c, appErr.Code, "An unexpected error occurred. Please try again later.", gin.H{"kind": appErr.Kind})
			return
		}

		response.Error(c, appErr.Code, appErr.Message, gin.H{"kind": appErr.Kind})
	}
}
