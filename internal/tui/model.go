// Package tui is a terminal kiosk for the slideshow.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"listing-slideshow/internal/models"
	"listing-slideshow/internal/playback"
)

const loadTimeout = 2 * time.Minute

// Controller is the part of *playback.Controller the kiosk drives.
type Controller interface {
	Init(ctx context.Context) error
	Refresh(ctx context.Context) error
	Next() bool
	Previous() bool
	Goto(index int) bool
	TogglePlayPause()
	Close()
	Status() playback.Status
}

var _ Controller = (*playback.Controller)(nil)

type statusMsg struct{ status playback.Status }

type loadDoneMsg struct{ err error }

type Model struct {
	ctrl        Controller
	placeholder string

	slide        models.Slide
	current      int
	total        int
	progress     float64
	announcement string
	loading      bool
	err          string
	playing      bool

	width    int
	height   int
	quitting bool
}

// NewModel builds the kiosk model. placeholder is shown as the image line
// for listings without images.
func NewModel(ctrl Controller, placeholder string) Model {
	return Model{ctrl: ctrl, placeholder: placeholder, loading: true}
}

func (m Model) Init() tea.Cmd {
	return m.load(m.ctrl.Init)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case slideMsg:
		m.slide = msg.slide
		m.err = ""
		return m, nil
	case counterMsg:
		m.current, m.total = msg.current, msg.total
		return m, nil
	case progressMsg:
		m.progress = float64(msg)
		return m, nil
	case announceMsg:
		m.announcement = string(msg)
		return m, nil
	case loadingMsg:
		m.loading = bool(msg)
		return m, nil
	case errorMsg:
		m.err = string(msg)
		m.slide = nil
		m.current, m.total, m.progress = 0, 0, 0
		return m, nil
	case statusMsg:
		m.playing = msg.status.Playing
		return m, nil
	case loadDoneMsg:
		// ShowError already carries the user-facing message.
		return m, m.status()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		m.ctrl.Close()
		return m, tea.Quit
	case "right", "l", "n":
		return m, m.do(func() { m.ctrl.Next() })
	case "left", "h", "p":
		return m, m.do(func() { m.ctrl.Previous() })
	case " ", "space":
		m.playing = !m.playing
		return m, m.do(m.ctrl.TogglePlayPause)
	case "r":
		return m, m.load(m.ctrl.Refresh)
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx, _ := strconv.Atoi(key)
		return m, m.do(func() { m.ctrl.Goto(idx - 1) })
	}
	return m, nil
}

// do runs a controller action off the event loop; the controller renders
// back through the Renderer, which posts messages to the program.
func (m Model) do(action func()) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		action()
		return statusMsg{status: ctrl.Status()}
	}
}

func (m Model) status() tea.Cmd {
	return m.do(func() {})
}

func (m Model) load(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		return loadDoneMsg{err: fn(ctx)}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	w := m.width
	if w < 40 {
		w = 72
	}

	var sb strings.Builder
	sb.WriteByte('\n')
	switch {
	case m.err != "":
		sb.WriteString("  ")
		sb.WriteString(errorStyle.Render(m.err))
		sb.WriteString("\n\n  ")
		sb.WriteString(dimStyle.Render("press r to retry"))
		sb.WriteByte('\n')
	case m.slide == nil:
		sb.WriteString("  ")
		sb.WriteString(statusStyle.Render("Loading listings..."))
		sb.WriteByte('\n')
	default:
		sb.WriteString(m.viewSlide(w - 4))
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	sb.WriteString(m.viewFooter(w))
	return sb.String()
}

func (m Model) viewSlide(width int) string {
	switch s := m.slide.(type) {
	case *models.MessageSlide:
		return messageStyle.
			Background(backgroundColor(s.BackgroundColor)).
			Width(width).
			Render(s.Text)
	case *models.ListingSlide:
		return cardStyle.Width(width).Render(m.viewListing(&s.Listing, width-6))
	default:
		return ""
	}
}

func (m Model) viewListing(l *models.Listing, width int) string {
	var lines []string

	header := titleStyle.Render(l.Title)
	if l.Status != "" && l.Status != models.DefaultStatus {
		header += "  " + badgeStyle.Render(strings.ToUpper(l.Status))
	}
	lines = append(lines, header, priceStyle.Render(l.Price), locationStyle.Render(l.Location.String()), "")

	if f := featureLine(l.Features); f != "" {
		lines = append(lines, featureStyle.Render(f))
	}
	if l.Description != "" {
		lines = append(lines, "", lipgloss.NewStyle().Width(width).Render(truncate(l.Description, 3*width)))
	}

	img := l.PrimaryImage(m.placeholder)
	if img.URL != "" {
		label := img.URL
		if img.AltText != "" {
			label = img.AltText + " · " + img.URL
		}
		lines = append(lines, "", dimStyle.Render(truncate(label, width)))
	}
	return strings.Join(lines, "\n")
}

func featureLine(f models.Features) string {
	var parts []string
	if f.Bedrooms > 0 {
		parts = append(parts, plural(f.Bedrooms, "bed"))
	}
	if f.Bathrooms > 0 {
		parts = append(parts, strconv.FormatFloat(f.Bathrooms, 'f', -1, 64)+" bath")
	}
	if f.AreaValue > 0 {
		parts = append(parts, humanize.Comma(int64(f.AreaValue))+" sq ft")
	}
	if f.Sleeps > 0 {
		parts = append(parts, "sleeps "+strconv.Itoa(f.Sleeps))
	}
	if f.PropertyType != "" {
		parts = append(parts, f.PropertyType)
	}
	return strings.Join(parts, "  ·  ")
}

func (m Model) viewFooter(width int) string {
	icon, state := "▶", "playing"
	if !m.playing {
		icon, state = "❚❚", "paused"
	}
	if m.loading {
		icon, state = "…", "loading"
	}

	counter := ""
	if m.total > 0 {
		counter = fmt.Sprintf("%d / %d", m.current, m.total)
	}

	var sb strings.Builder
	barWidth := width - lipgloss.Width(counter) - 6
	if barWidth < 10 {
		barWidth = 10
	}
	sb.WriteString("  ")
	sb.WriteString(renderProgressBar(m.progress, barWidth))
	sb.WriteString("  ")
	sb.WriteString(statusStyle.Render(counter))
	sb.WriteString("\n  ")
	sb.WriteString(statusStyle.Render(icon + "  " + state))
	sb.WriteString("\n\n  ")
	sb.WriteString(dimStyle.Render("←/→ navigate · space play/pause · 1-9 jump · r refresh · q quit"))
	sb.WriteByte('\n')
	return sb.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}

func truncate(s string, max int) string {
	if max <= 1 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
