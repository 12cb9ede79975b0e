// Command slideshow runs the listing slideshow as a terminal kiosk.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"listing-slideshow/internal/bootstrap"
	"listing-slideshow/internal/playback"
	"listing-slideshow/internal/render"
	"listing-slideshow/internal/tui"
	"listing-slideshow/pkg/clock"
	"listing-slideshow/pkg/logger"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	logPath := flag.String("log", "slideshow.log", "log file; empty disables logging")
	playlist := flag.String("playlist", "", "playlist file, overrides slideshow.playlist_path")
	flag.Parse()

	if *playlist != "" {
		os.Setenv("SLIDESHOW_PLAYLIST", *playlist)
	}

	var logOutput io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOutput = f
	}

	cfg, err := bootstrap.LoadConfiguration(logOutput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	deps := bootstrap.Build(cfg, clock.Real())

	var program *tea.Program
	renderer := tui.NewRenderer(func(msg tea.Msg) { program.Send(msg) })
	preloader := playback.NewHTTPPreloader(cfg.Feed.BaseURL, cfg.FeedTimeout())
	ctrl := playback.New(
		deps.Service,
		render.Multi{renderer, render.Log{}},
		playback.WithClock(deps.Clock),
		playback.WithInterval(cfg.SlideInterval()),
		playback.WithPreloader(preloader),
		playback.WithPlaceholderImage(cfg.Slideshow.PlaceholderImage),
	)

	program = tea.NewProgram(tui.NewModel(ctrl, cfg.Slideshow.PlaceholderImage), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logger.GlobalLogger.Errorf("Slideshow exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "slideshow: %v\n", err)
		ctrl.Close()
		os.Exit(1)
	}
	ctrl.Close()
}
