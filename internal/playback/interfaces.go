package playback

import (
	"context"

	"listing-slideshow/internal/models"
)

// Source supplies the slide sequence.
type Source interface {
	LoadSlides(ctx context.Context) ([]models.Slide, error)
	ClearCache()
}

// Renderer displays controller output. Calls are made outside the
// controller's lock; a renderer may call back into the controller, but
// navigation requested while a slide is being rendered is ignored.
type Renderer interface {
	Render(slide models.Slide)
	SetProgress(fraction float64)
	SetCounter(current, total int)
	Announce(text string)
	ShowLoading(loading bool)
	ShowError(message string)
}

// Preloader warms an image ahead of display. Preload must not block.
type Preloader interface {
	Preload(url string)
}

type noopPreloader struct{}

func (noopPreloader) Preload(string) {}
