package middleware

import (
	"net/http"

	"listing-slideshow/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandler maps the last error attached with c.Error to a standardized
// response unless the handler already wrote one.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		appErr := utils.LogAndMapError(err, "Request",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(RequestIDKey))

		if c.Writer.Written() {
			return
		}
		if appErr.HTTPStatus == http.StatusServiceUnavailable && utils.IsRetryableError(err) {
			c.Header("Retry-After", "30")
		}
		c.JSON(appErr.HTTPStatus, gin.H{
			"success": false,
			"error": gin.H{
				"message": appErr.UserMessage,
				"code":    appErr.Code,
			},
		})
	}
}
