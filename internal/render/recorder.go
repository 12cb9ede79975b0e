// Package render holds headless playback.Renderer implementations.
package render

import (
	"sync"

	"listing-slideshow/internal/models"
)

// Snapshot is the latest output pushed to a Recorder.
type Snapshot struct {
	Slide        models.Slide `json:"slide,omitempty"`
	Current      int          `json:"current"`
	Total        int          `json:"total"`
	Progress     float64      `json:"progress"`
	Announcement string       `json:"announcement,omitempty"`
	Loading      bool         `json:"loading"`
	Error        string       `json:"error,omitempty"`
}

// Recorder keeps the most recent renderer output so that it can be served
// over HTTP or inspected in tests. It is safe for concurrent use.
type Recorder struct {
	mu   sync.RWMutex
	snap Snapshot
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Render(slide models.Slide) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.Slide = slide
	r.snap.Error = ""
}

func (r *Recorder) SetProgress(fraction float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.Progress = fraction
}

func (r *Recorder) SetCounter(current, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.Current = current
	r.snap.Total = total
}

func (r *Recorder) Announce(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.Announcement = text
}

func (r *Recorder) ShowLoading(loading bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.Loading = loading
}

// ShowError clears the displayed slide; the error replaces it.
func (r *Recorder) ShowError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap = Snapshot{Error: message}
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap
}
