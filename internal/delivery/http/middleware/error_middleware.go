package middleware

import (
	"errors"
	"net/http"

	"go-resume-builder/internal/delivery/http/response"
	"go-resume-builder/internal/domain"
	"go-resume-builder/pkg/apperror"
	"go-resume-builder/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				if appErr.Err != nil {
					// The wrapped cause stays server-side; only the
					// message and details reach the client.
					logger.Log.Error("Request failed",
						"request_id", c.GetString(string(domain.KeyRequestID)),
						"path", c.FullPath(),
						"status", appErr.Code,
						"error", appErr.Err,
					)
				}
				response.Error(c, appErr.Code, appErr.Message, appErr.Details)
			} else {
				logger.Log.Error("Unhandled internal error",
					"request_id", c.GetString(string(domain.KeyRequestID)),
					"path", c.FullPath(),
					"error", err,
				)
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
