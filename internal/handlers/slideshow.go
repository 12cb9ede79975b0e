package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	apperrors "listing-slideshow/internal/errors"
	"listing-slideshow/internal/models"
	"listing-slideshow/internal/utils"

	"github.com/gin-gonic/gin"
)

// maxPlaylistBytes caps the playlist body accepted by Build.
const maxPlaylistBytes = 1 << 20

type SlideshowHandler struct {
	builder SlideshowBuilder
}

func NewSlideshowHandler(builder SlideshowBuilder) *SlideshowHandler {
	return &SlideshowHandler{builder: builder}
}

// Build resolves a playlist posted as the text_content form field or as the
// raw request body. Entries whose listing cannot be fetched are skipped.
func (h *SlideshowHandler) Build(c *gin.Context) {
	text, err := playlistText(c)
	if err != nil {
		h.fail(c, utils.WrapError(apperrors.ErrInvalidInput, "reading playlist: %v", err))
		return
	}
	if strings.TrimSpace(text) == "" {
		h.fail(c, utils.WrapError(apperrors.ErrInvalidInput, "no text content provided"))
		return
	}

	slides, err := h.builder.BuildFromText(c.Request.Context(), text)
	if errors.Is(err, apperrors.ErrEmptyResult) {
		slides, err = []models.Slide{}, nil
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": slides, "count": len(slides)})
}

// Preview builds the query-driven sequence for the request's listing filters.
func (h *SlideshowHandler) Preview(c *gin.Context) {
	opts, err := utils.ParseListingQuery(c.Request.URL.Query())
	if err != nil {
		h.fail(c, err)
		return
	}
	slides, err := h.builder.BuildFromQuery(c.Request.Context(), opts)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": slides, "count": len(slides)})
}

func (h *SlideshowHandler) fail(c *gin.Context, err error) {
	appErr := utils.LogAndMapError(err, "Build slideshow", "path", c.Request.URL.Path)
	c.JSON(appErr.HTTPStatus, gin.H{"success": false, "error": appErr.UserMessage, "data": []models.Slide{}})
}

func playlistText(c *gin.Context) (string, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPlaylistBytes)
	ct := c.ContentType()
	if ct == "application/x-www-form-urlencoded" || ct == "multipart/form-data" {
		return c.PostForm("text_content"), nil
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
