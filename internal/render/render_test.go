package render

import (
	"testing"

	"listing-slideshow/internal/models"
	"listing-slideshow/internal/playback"
)

var (
	_ playback.Renderer = (*Recorder)(nil)
	_ playback.Renderer = Multi(nil)
	_ playback.Renderer = Log{}
)

func TestRecorderKeepsLatestState(t *testing.T) {
	r := NewRecorder()
	slide := &models.MessageSlide{ID: "msg-0", Text: "Welcome"}

	r.ShowLoading(true)
	r.ShowLoading(false)
	r.Render(slide)
	r.SetCounter(2, 5)
	r.SetProgress(0.4)
	r.Announce("Welcome")

	snap := r.Snapshot()
	if snap.Slide != slide || snap.Current != 2 || snap.Total != 5 || snap.Progress != 0.4 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	if snap.Announcement != "Welcome" || snap.Loading {
		t.Errorf("unexpected snapshot: %+v", snap)
	}

	r.ShowError("down")
	snap = r.Snapshot()
	if snap.Error != "down" || snap.Slide != nil || snap.Total != 0 {
		t.Errorf("ShowError did not replace the slide: %+v", snap)
	}
}

func TestMultiFansOut(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	m := Multi{a, b, Log{}}

	m.Render(&models.MessageSlide{ID: "x"})
	m.SetCounter(1, 1)
	m.Announce("x")

	for i, r := range []*Recorder{a, b} {
		snap := r.Snapshot()
		if snap.Slide == nil || snap.Slide.SlideID() != "x" || snap.Total != 1 || snap.Announcement != "x" {
			t.Errorf("recorder %d missed calls: %+v", i, snap)
		}
	}
}
