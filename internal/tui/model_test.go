package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"listing-slideshow/internal/models"
	"listing-slideshow/internal/playback"
)

type fakeController struct {
	calls   []string
	gotoIdx int
	playing bool
}

func (f *fakeController) Init(ctx context.Context) error    { f.calls = append(f.calls, "init"); return nil }
func (f *fakeController) Refresh(ctx context.Context) error { f.calls = append(f.calls, "refresh"); return nil }
func (f *fakeController) Next() bool                        { f.calls = append(f.calls, "next"); return true }
func (f *fakeController) Previous() bool                    { f.calls = append(f.calls, "previous"); return true }
func (f *fakeController) Close()                            { f.calls = append(f.calls, "close") }

func (f *fakeController) Goto(index int) bool {
	f.calls = append(f.calls, "goto")
	f.gotoIdx = index
	return true
}

func (f *fakeController) TogglePlayPause() {
	f.calls = append(f.calls, "toggle")
	f.playing = !f.playing
}

func (f *fakeController) Status() playback.Status {
	return playback.Status{State: playback.StateReady, Playing: f.playing}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, key tea.KeyMsg) (Model, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(key)
	if cmd == nil {
		return next.(Model), nil
	}
	return next.(Model), cmd()
}

func TestKeyBindings(t *testing.T) {
	tests := []struct {
		key  tea.KeyMsg
		want string
	}{
		{tea.KeyMsg{Type: tea.KeyRight}, "next"},
		{runes("l"), "next"},
		{runes("n"), "next"},
		{tea.KeyMsg{Type: tea.KeyLeft}, "previous"},
		{runes("h"), "previous"},
		{runes("p"), "previous"},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, "toggle"},
		{runes("r"), "refresh"},
		{runes("3"), "goto"},
	}
	for _, tt := range tests {
		ctrl := &fakeController{}
		press(t, NewModel(ctrl, ""), tt.key)
		if len(ctrl.calls) != 1 || ctrl.calls[0] != tt.want {
			t.Errorf("key %q called %v; want [%s]", tt.key.String(), ctrl.calls, tt.want)
		}
	}
}

func TestGotoKeyIsOneBased(t *testing.T) {
	ctrl := &fakeController{}
	press(t, NewModel(ctrl, ""), runes("1"))
	if ctrl.gotoIdx != 0 {
		t.Errorf("key 1 went to index %d; want 0", ctrl.gotoIdx)
	}
}

func TestQuitClosesController(t *testing.T) {
	ctrl := &fakeController{}
	m, msg := press(t, NewModel(ctrl, ""), runes("q"))
	if _, ok := msg.(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", msg)
	}
	if len(ctrl.calls) != 1 || ctrl.calls[0] != "close" {
		t.Errorf("expected Close, got %v", ctrl.calls)
	}
	if m.View() != "" {
		t.Error("expected empty view after quit")
	}
}

func TestToggleReportsStatus(t *testing.T) {
	ctrl := &fakeController{}
	m, msg := press(t, NewModel(ctrl, ""), tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	next, _ := m.Update(msg)
	if !next.(Model).playing {
		t.Error("expected playing after toggle status message")
	}
}

func TestRendererMessagesUpdateView(t *testing.T) {
	var sent []tea.Msg
	r := NewRenderer(func(msg tea.Msg) { sent = append(sent, msg) })

	r.ShowLoading(false)
	r.Render(&models.ListingSlide{Listing: models.Listing{
		ID:       "1",
		Title:    "Harbour View Apartment",
		Price:    "€350,000",
		Location: models.Location{City: "Cork", Country: "Ireland"},
		Features: models.Features{Bedrooms: 2, Bathrooms: 1.5, AreaValue: 1200},
	}})
	r.SetCounter(2, 7)
	r.SetProgress(2.0 / 7)
	r.Announce("Harbour View Apartment, €350,000")

	var m tea.Model = NewModel(&fakeController{playing: true}, "/placeholder.jpg")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	for _, msg := range sent {
		m, _ = m.Update(msg)
	}
	view := m.View()
	for _, want := range []string{"Harbour View Apartment", "€350,000", "Cork, Ireland", "2 beds", "1.5 bath", "1,200 sq ft", "2 / 7", "/placeholder.jpg"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if got := m.(Model).announcement; got != "Harbour View Apartment, €350,000" {
		t.Errorf("announcement = %q", got)
	}
}

func TestErrorMessageReplacesSlide(t *testing.T) {
	var m tea.Model = NewModel(&fakeController{}, "")
	m, _ = m.Update(slideMsg{slide: &models.MessageSlide{ID: "msg-0", Text: "Welcome"}})
	m, _ = m.Update(errorMsg("The slideshow could not be loaded."))

	view := m.View()
	if !strings.Contains(view, "could not be loaded") || strings.Contains(view, "Welcome") {
		t.Errorf("unexpected view:\n%s", view)
	}
}

func TestBackgroundColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"navy", "#000080"},
		{" Blue ", "#2563EB"},
		{"#abc", "#abc"},
		{"#003366", "#003366"},
		{"chartreuse-ish", defaultMessageBackground},
		{"", defaultMessageBackground},
	}
	for _, tt := range tests {
		if got := string(backgroundColor(tt.in)); got != tt.want {
			t.Errorf("backgroundColor(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
