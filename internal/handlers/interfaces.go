package handlers

import (
	"context"

	"listing-slideshow/internal/models"
	"listing-slideshow/internal/playback"
	"listing-slideshow/internal/render"
)

// SlideshowBuilder builds slide sequences on demand.
type SlideshowBuilder interface {
	BuildFromText(ctx context.Context, text string) ([]models.Slide, error)
	BuildFromQuery(ctx context.Context, opts models.ListingOptions) ([]models.Slide, error)
}

// PlaybackController is the hosted controller the kiosk endpoints drive.
type PlaybackController interface {
	Refresh(ctx context.Context) error
	Next() bool
	Previous() bool
	Goto(index int) bool
	Play()
	Pause()
	TogglePlayPause()
	Status() playback.Status
}

// Snapshotter exposes the latest renderer output.
type Snapshotter interface {
	Snapshot() render.Snapshot
}

var (
	_ PlaybackController = (*playback.Controller)(nil)
	_ Snapshotter        = (*render.Recorder)(nil)
)
