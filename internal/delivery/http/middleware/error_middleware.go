package middleware

import (
	"errors"
	"net/http"

	"career-portal-backend/internal/delivery/http/response"
	"career-portal-backend/pkg/apperror"
	"career-portal-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		reqID, _ := c.Get(RequestIDKey)

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("request failed",
					"request_id", reqID,
					"path", c.FullPath(),
					"status", appErr.Code,
					"error", err,
					"cause", appErr.Err,
				)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		// Never expose internal error details to clients
		logger.Log.Error("internal server error", "request_id", reqID, "path", c.FullPath(), "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
