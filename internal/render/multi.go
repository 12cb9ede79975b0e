package render

import (
	"listing-slideshow/internal/models"
	"listing-slideshow/internal/playback"
)

// Multi fans every call out to each renderer in order.
type Multi []playback.Renderer

func (m Multi) Render(slide models.Slide) {
	for _, r := range m {
		r.Render(slide)
	}
}

func (m Multi) SetProgress(fraction float64) {
	for _, r := range m {
		r.SetProgress(fraction)
	}
}

func (m Multi) SetCounter(current, total int) {
	for _, r := range m {
		r.SetCounter(current, total)
	}
}

func (m Multi) Announce(text string) {
	for _, r := range m {
		r.Announce(text)
	}
}

func (m Multi) ShowLoading(loading bool) {
	for _, r := range m {
		r.ShowLoading(loading)
	}
}

func (m Multi) ShowError(message string) {
	for _, r := range m {
		r.ShowError(message)
	}
}
