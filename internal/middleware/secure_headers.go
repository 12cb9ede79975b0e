package middleware

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

// SecureHeaders hardens the kiosk pages. imageOrigins extend the img-src
// policy beyond the kiosk's own origin. Playback state is never cached so
// polling clients always see the current slide.
func SecureHeaders(imageOrigins ...string) gin.HandlerFunc {
	policy := contentSecurityPolicy(imageOrigins)
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", policy)
		if strings.HasPrefix(c.Request.URL.Path, "/api/playback") {
			h.Set("Cache-Control", "no-store")
		}
		c.Next()
	}
}

func contentSecurityPolicy(imageOrigins []string) string {
	img := []string{"'self'", "data:"}
	for _, o := range imageOrigins {
		if o = strings.TrimSpace(o); o != "" && !slices.Contains(img, o) {
			img = append(img, o)
		}
	}
	return strings.Join([]string{
		"default-src 'self'",
		"img-src " + strings.Join(img, " "),
		"script-src 'self' 'unsafe-inline'",
		"style-src 'self' 'unsafe-inline'",
		"frame-ancestors 'self'",
	}, "; ")
}
