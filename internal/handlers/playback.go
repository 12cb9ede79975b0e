package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	apperrors "listing-slideshow/internal/errors"
	"listing-slideshow/internal/models"
	"listing-slideshow/internal/playback"
	"listing-slideshow/internal/utils"

	"github.com/gin-gonic/gin"
)

// refreshTimeout bounds a reload triggered over HTTP. The reload outlives
// the request so a disconnecting client does not leave the kiosk half-loaded.
const refreshTimeout = 2 * time.Minute

type PlaybackHandler struct {
	ctrl     PlaybackController
	snapshot Snapshotter
}

func NewPlaybackHandler(ctrl PlaybackController, snapshot Snapshotter) *PlaybackHandler {
	return &PlaybackHandler{ctrl: ctrl, snapshot: snapshot}
}

type playbackResponse struct {
	State        playback.State `json:"state"`
	Playing      bool           `json:"playing"`
	Index        int            `json:"index"`
	Total        int            `json:"total"`
	Current      models.Slide   `json:"current,omitempty"`
	Error        string         `json:"error,omitempty"`
	Announcement string         `json:"announcement,omitempty"`
	Progress     float64        `json:"progress"`
	Loading      bool           `json:"loading"`
	Accepted     *bool          `json:"accepted,omitempty"`
}

func (h *PlaybackHandler) response(accepted *bool) playbackResponse {
	st := h.ctrl.Status()
	resp := playbackResponse{
		State:    st.State,
		Playing:  st.Playing,
		Index:    st.Index,
		Total:    st.Total,
		Current:  st.Current,
		Error:    st.Error,
		Accepted: accepted,
	}
	if h.snapshot != nil {
		snap := h.snapshot.Snapshot()
		resp.Announcement = snap.Announcement
		resp.Progress = snap.Progress
		resp.Loading = snap.Loading
		if snap.Error != "" {
			resp.Error = snap.Error
		}
	}
	return resp
}

func (h *PlaybackHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.response(nil))
}

// Action applies one of next, previous, play, pause, toggle or refresh.
func (h *PlaybackHandler) Action(c *gin.Context) {
	var accepted *bool
	switch action := c.Param("action"); action {
	case "next":
		accepted = boolPtr(h.ctrl.Next())
	case "previous", "prev":
		accepted = boolPtr(h.ctrl.Previous())
	case "play":
		h.ctrl.Play()
	case "pause":
		h.ctrl.Pause()
	case "toggle":
		h.ctrl.TogglePlayPause()
	case "refresh":
		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), refreshTimeout)
		defer cancel()
		if err := h.ctrl.Refresh(ctx); err != nil {
			if errors.Is(err, playback.ErrSuperseded) {
				c.JSON(http.StatusConflict, h.response(boolPtr(false)))
				return
			}
			c.Error(err)
			return
		}
	default:
		c.Error(utils.WrapError(apperrors.ErrInvalidInput, "unknown playback action %q", action))
		return
	}
	c.JSON(http.StatusOK, h.response(accepted))
}

// Goto jumps to a zero-based index. An out-of-range index is reported as
// not accepted and leaves playback unchanged.
func (h *PlaybackHandler) Goto(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.Error(utils.WrapError(apperrors.ErrInvalidInput, "invalid slide index %q", c.Param("index")))
		return
	}
	c.JSON(http.StatusOK, h.response(boolPtr(h.ctrl.Goto(idx))))
}

func boolPtr(b bool) *bool {
	return &b
}
