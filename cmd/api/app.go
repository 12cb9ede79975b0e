package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"listing-slideshow/internal/bootstrap"
	"listing-slideshow/internal/handlers"
	"listing-slideshow/internal/middleware"
	"listing-slideshow/internal/playback"
	"listing-slideshow/internal/render"
	"listing-slideshow/pkg/clock"
	"listing-slideshow/pkg/config"
	"listing-slideshow/pkg/logger"

	"github.com/gin-gonic/gin"
)

// App represents the application structure
type App struct {
	Config           *config.Config
	Router           *gin.Engine
	Deps             *bootstrap.Dependencies
	Controller       *playback.Controller
	Recorder         *render.Recorder
	Preloader        *playback.HTTPPreloader
	SlideshowHandler *handlers.SlideshowHandler
	PlaybackHandler  *handlers.PlaybackHandler
	ListingsProxy    *handlers.ListingsProxy
	RateLimiter      *middleware.RateLimiter
	Server           *http.Server

	stopBackground context.CancelFunc
}

// Create and initialize a new App instance
func NewApp(cfg *config.Config) *App {
	app := &App{Config: cfg}

	ctx, cancel := context.WithCancel(context.Background())
	app.stopBackground = cancel

	// Initialize infrastructure
	app.initializeRateLimiter(ctx)

	// Initialize business logic
	app.initializeDependencies()
	app.initializeController(ctx)

	// Initialize web layer
	app.initializeRouter()

	return app
}

// initialize the rate limiter for the listings proxy
func (a *App) initializeRateLimiter(ctx context.Context) {
	a.RateLimiter = middleware.NewRateLimiter(
		middleware.PerMinute(a.Config.RateLimit.RequestsPerMinute),
		a.Config.RateLimit.Burst,
	)
	go a.RateLimiter.Cleanup(ctx, 10*time.Minute, time.Hour)
}

// initialize all dependencies
func (a *App) initializeDependencies() {
	a.Deps = bootstrap.Build(a.Config, clock.Real())

	proxy, err := handlers.NewListingsProxy(a.Config.Feed.BaseURL, "/api/listings")
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to create listings proxy: %v", err)
		os.Exit(1)
	}
	a.ListingsProxy = proxy
	a.SlideshowHandler = handlers.NewSlideshowHandler(a.Deps.Service)
}

// initialize the hosted playback controller and start the first load in
// the background so the server comes up even when the origin is slow.
func (a *App) initializeController(ctx context.Context) {
	a.Recorder = render.NewRecorder()
	a.Preloader = playback.NewHTTPPreloader(a.Config.Feed.BaseURL, a.Config.FeedTimeout())
	a.Controller = playback.New(
		a.Deps.Service,
		render.Multi{a.Recorder, render.Log{}},
		playback.WithClock(a.Deps.Clock),
		playback.WithInterval(a.Config.SlideInterval()),
		playback.WithPreloader(a.Preloader),
		playback.WithPlaceholderImage(a.Config.Slideshow.PlaceholderImage),
	)
	a.PlaybackHandler = handlers.NewPlaybackHandler(a.Controller, a.Recorder)

	go func() {
		if err := a.Controller.Init(ctx); err != nil {
			logger.GlobalLogger.Errorf("Initial slideshow load failed: %v", err)
		}
	}()
}

// set up the Gin router with middleware and routes
func (a *App) initializeRouter() {
	a.Router = gin.New()
	a.setupMiddleware()
	a.setupRoutes()
}

// cleanup operations
func (a *App) cleanup() {
	a.stopBackground()
	a.Controller.Close()
	a.Preloader.Wait()
}
