package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("requestId", c.GetString("requestID")),
				)

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message:   "Internal Server Error",
					Details:   "An unexpected error occurred. Please try again later.",
					RequestID: c.GetString("requestID"),
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response carrying the request's
// correlation id so the dashboard can quote it back to support.
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	requestID := c.GetString("requestID")
	Logger.Warn(message, zap.String("details", details), zap.String("requestId", requestID))
	c.JSON(status, ErrorResponse{Message: message, Details: details, RequestID: requestID})
}
