package handlers

import (
	"net/http"

	"listing-slideshow/internal/playback"

	"github.com/gin-gonic/gin"
)

// Health reports ok while the process serves requests. A kiosk in the error
// state is still healthy: it can recover through a refresh.
func Health(ctrl PlaybackController) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{"status": "ok"}
		if ctrl != nil {
			st := ctrl.Status()
			body["slideshow"] = st.State
			if st.State == playback.StateError {
				body["status"] = "degraded"
			}
		}
		c.JSON(http.StatusOK, body)
	}
}
