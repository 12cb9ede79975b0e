package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"listing-slideshow/internal/models"
)

type slideMsg struct{ slide models.Slide }

type counterMsg struct{ current, total int }

type progressMsg float64

type announceMsg string

type loadingMsg bool

type errorMsg string

// Renderer forwards controller output to a running tea.Program as messages,
// so the model is only ever mutated on the program's event loop.
type Renderer struct {
	send func(tea.Msg)
}

// NewRenderer returns a Renderer that delivers messages with send, typically
// (*tea.Program).Send.
func NewRenderer(send func(tea.Msg)) *Renderer {
	return &Renderer{send: send}
}

func (r *Renderer) Render(slide models.Slide)     { r.send(slideMsg{slide: slide}) }
func (r *Renderer) SetProgress(fraction float64)  { r.send(progressMsg(fraction)) }
func (r *Renderer) SetCounter(current, total int) { r.send(counterMsg{current: current, total: total}) }
func (r *Renderer) Announce(text string)          { r.send(announceMsg(text)) }
func (r *Renderer) ShowLoading(loading bool)      { r.send(loadingMsg(loading)) }
func (r *Renderer) ShowError(message string)      { r.send(errorMsg(message)) }
