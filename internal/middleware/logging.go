package middleware

import (
	"time"

	"listing-slideshow/pkg/logger"

	"github.com/gin-gonic/gin"
)

// quietRoutes are polled by kiosks and scrapers; successful hits log at debug.
var quietRoutes = map[string]bool{
	"/api/playback": true,
	"/health":       true,
	"/metrics":      true,
}

func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		requestID := c.GetString(RequestIDKey)
		switch {
		case status >= 500:
			logger.GlobalLogger.Warnf("%s %s %d %v request_id=%s client_ip=%s", method, path, status, latency, requestID, c.ClientIP())
		case status < 400 && quietRoutes[path]:
			logger.GlobalLogger.Debugf("%s %s %d %v", method, path, status, latency)
		default:
			logger.GlobalLogger.Printf("%s %s %d %v request_id=%s", method, path, status, latency, requestID)
		}
	}
}
