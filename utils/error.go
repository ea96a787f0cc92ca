package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error: "An unexpected error occurred. Please try again later.",
					Code:  "INTERNAL",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, resp ErrorResponse) {
	logger := GetLogger()
	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("code", resp.Code),
		zap.String("path", c.Request.URL.Path),
	}
	if status >= http.StatusInternalServerError {
		logger.Error(resp.Error, fields...)
	} else {
		logger.Warn(resp.Error, fields...)
	}
	c.AbortWithStatusJSON(status, resp)
}
