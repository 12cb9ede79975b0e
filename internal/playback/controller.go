// Package playback drives the slideshow: it owns the current index and the
// play/pause state, runs the auto-advance timer and pushes every change to
// a Renderer.
package playback

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	apperrors "listing-slideshow/internal/errors"
	"listing-slideshow/internal/models"
	"listing-slideshow/internal/utils"
	"listing-slideshow/pkg/clock"
	"listing-slideshow/pkg/logger"
)

// DefaultInterval is how long a listing slide stays up while playing.
const DefaultInterval = 8 * time.Second

// ErrSuperseded is returned by a load whose result was discarded because a
// newer Init or Refresh started while it was in flight.
var ErrSuperseded = errors.New("load superseded by a newer load")

type State int

const (
	StateLoading State = iota
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type Option func(*Controller)

func WithClock(clk clock.Clock) Option {
	return func(c *Controller) { c.clock = clk }
}

func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

func WithPreloader(p Preloader) Option {
	return func(c *Controller) { c.preloader = p }
}

// WithPlaceholderImage sets the URL preloaded for listings without images.
func WithPlaceholderImage(url string) Option {
	return func(c *Controller) { c.placeholder = url }
}

// WithAutoplay controls whether Init starts playing. Defaults to true.
func WithAutoplay(on bool) Option {
	return func(c *Controller) { c.autoplay = on }
}

type Controller struct {
	source      Source
	renderer    Renderer
	preloader   Preloader
	clock       clock.Clock
	interval    time.Duration
	placeholder string
	autoplay    bool

	mu            sync.Mutex
	state         State
	slides        []models.Slide
	index         int
	playing       bool
	resume        bool // play intent while a load is in flight
	transitioning bool
	reshow        bool // a load landed while a transition was rendering
	timer         clock.Timer
	timerSeq      uint64
	generation    uint64
	lastErr       error
}

func New(source Source, renderer Renderer, opts ...Option) *Controller {
	c := &Controller{
		source:    source,
		renderer:  renderer,
		preloader: noopPreloader{},
		clock:     clock.Real(),
		interval:  DefaultInterval,
		autoplay:  true,
		state:     StateLoading,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init loads the sequence, shows the first slide and starts playing if
// autoplay is on. On failure the controller enters the error state and the
// returned error matches errors.ErrFatalInit.
func (c *Controller) Init(ctx context.Context) error {
	return c.load(ctx, c.autoplay)
}

// Refresh pauses, drops the repository cache, reloads from the first slide
// and resumes playback if it was playing before.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	wasPlaying := c.playing || (c.state == StateLoading && c.resume)
	c.playing = false
	c.stopTimerLocked()
	c.mu.Unlock()

	c.source.ClearCache()
	return c.load(ctx, wasPlaying)
}

func (c *Controller) load(ctx context.Context, play bool) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.state = StateLoading
	c.resume = play
	c.playing = false
	c.stopTimerLocked()
	c.mu.Unlock()

	c.renderer.ShowLoading(true)
	slides, err := c.source.LoadSlides(ctx)
	if err == nil && len(slides) == 0 {
		err = apperrors.ErrEmptyResult
	}

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		logger.GlobalLogger.Debugf("Discarding stale slideshow load: generation=%d", gen)
		return ErrSuperseded
	}
	if err != nil {
		fatal := fmt.Errorf("%w: %w", apperrors.ErrFatalInit, err)
		c.state = StateError
		c.slides = nil
		c.index = 0
		c.resume = false
		c.lastErr = fatal
		c.mu.Unlock()

		logger.GlobalLogger.Errorf("Slideshow load failed: error=%v", err)
		c.renderer.ShowLoading(false)
		c.renderer.ShowError(apperrors.MapError(fatal).UserMessage)
		return fatal
	}
	c.slides = slides
	c.index = 0
	c.state = StateReady
	c.playing = c.resume
	c.resume = false
	c.lastErr = nil
	logger.GlobalLogger.Printf("Slideshow loaded: slides=%d, playing=%v", len(slides), c.playing)
	if c.transitioning {
		// The running transition shows the new first slide once its render returns.
		c.reshow = true
		c.mu.Unlock()
		c.renderer.ShowLoading(false)
		return nil
	}
	c.transitioning = true
	c.mu.Unlock()

	c.renderer.ShowLoading(false)
	c.mu.Lock()
	c.showLocked()
	c.mu.Unlock()

	utils.RecordSlideTransition("load")
	return nil
}

// Next moves forward one slide, wrapping to the first. It reports whether
// the request was accepted.
func (c *Controller) Next() bool {
	return c.transition(func(cur, n int) (int, bool) { return (cur + 1) % n, true }, "next")
}

// Previous moves back one slide, wrapping to the last.
func (c *Controller) Previous() bool {
	return c.transition(func(cur, n int) (int, bool) { return (cur - 1 + n) % n, true }, "previous")
}

// Goto jumps to index. Out-of-range indexes are ignored.
func (c *Controller) Goto(index int) bool {
	return c.transition(func(_, n int) (int, bool) { return index, index >= 0 && index < n }, "goto")
}

func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playLocked()
}

func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pauseLocked()
}

func (c *Controller) TogglePlayPause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playing || (c.state == StateLoading && c.resume) {
		c.pauseLocked()
		return
	}
	c.playLocked()
}

// Close stops the timer. The controller can be reused with Init.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = false
	c.resume = false
	c.stopTimerLocked()
}

func (c *Controller) playLocked() {
	if c.state == StateLoading {
		c.resume = true
		return
	}
	if c.state != StateReady || c.playing {
		return
	}
	c.playing = true
	if !c.transitioning {
		c.stopTimerLocked()
		c.scheduleLocked(c.slides[c.index])
	}
}

func (c *Controller) pauseLocked() {
	c.resume = false
	c.playing = false
	c.stopTimerLocked()
}

// transition moves to the index chosen by target and renders it. target
// runs under the lock. Only one transition runs at a time; requests arriving
// meanwhile are dropped.
func (c *Controller) transition(target func(cur, n int) (int, bool), trigger string) bool {
	c.mu.Lock()
	if c.state != StateReady || len(c.slides) == 0 || c.transitioning {
		c.mu.Unlock()
		return false
	}
	idx, ok := target(c.index, len(c.slides))
	if !ok {
		c.mu.Unlock()
		return false
	}
	c.transitioning = true
	c.index = idx
	c.showLocked()
	c.mu.Unlock()

	utils.RecordSlideTransition(trigger)
	return true
}

// showLocked renders the current slide with the lock released, then arms the
// timer. If a load replaced the sequence during the render, the new current
// slide is rendered too. Called with mu held and transitioning set.
func (c *Controller) showLocked() {
	for {
		c.stopTimerLocked()
		c.reshow = false
		n := len(c.slides)
		idx := c.index
		slide := c.slides[idx]
		upcoming := c.slides[(idx+1)%n]
		c.mu.Unlock()

		c.render(slide, idx, n, upcoming)

		c.mu.Lock()
		if c.state != StateReady || len(c.slides) == 0 {
			break
		}
		if c.reshow {
			continue
		}
		if c.playing {
			c.scheduleLocked(c.slides[c.index])
		}
		break
	}
	c.reshow = false
	c.transitioning = false
}

func (c *Controller) render(slide models.Slide, idx, n int, upcoming models.Slide) {
	c.renderer.Render(slide)
	c.renderer.SetCounter(idx+1, n)
	c.renderer.SetProgress(float64(idx+1) / float64(n))
	c.renderer.Announce(Describe(slide))

	if ls, ok := upcoming.(*models.ListingSlide); ok {
		if img := ls.Listing.PrimaryImage(c.placeholder); img.URL != "" {
			c.preloader.Preload(img.URL)
		}
	}
}

// scheduleLocked arms the advance timer for slide. Message slides use their
// own duration.
func (c *Controller) scheduleLocked(slide models.Slide) {
	d := c.interval
	if msg, ok := slide.(*models.MessageSlide); ok && msg.DisplayDuration > 0 {
		d = msg.DisplayDuration
	}
	c.timerSeq++
	seq := c.timerSeq
	c.timer = c.clock.AfterFunc(d, func() { c.onTimer(seq) })
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.timerSeq++
}

// onTimer advances unless the timer was cancelled or replaced. The check
// shares the lock with the transition so a manual move cannot slip between.
func (c *Controller) onTimer(seq uint64) {
	c.transition(func(cur, n int) (int, bool) {
		return (cur + 1) % n, seq == c.timerSeq && c.playing
	}, "auto")
}

// Describe is the accessibility announcement for a slide.
func Describe(slide models.Slide) string {
	switch s := slide.(type) {
	case *models.ListingSlide:
		return s.Listing.Title + ", " + s.Listing.Price
	case *models.MessageSlide:
		return s.Text
	default:
		return ""
	}
}

// Status is a point-in-time snapshot of the controller.
type Status struct {
	State   State        `json:"state"`
	Playing bool         `json:"playing"`
	Index   int          `json:"index"`
	Total   int          `json:"total"`
	Current models.Slide `json:"current,omitempty"`
	Error   string       `json:"error,omitempty"`
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := Status{
		State:   c.state,
		Playing: c.playing,
		Index:   c.index,
		Total:   len(c.slides),
	}
	if c.state == StateReady && len(c.slides) > 0 {
		st.Current = c.slides[c.index]
	}
	if c.lastErr != nil {
		st.Error = c.lastErr.Error()
	}
	return st
}
