// Package bootstrap loads configuration and assembles the slideshow's
// dependency graph for the binaries under cmd/.
package bootstrap

import (
	"io"
	"log"
	"os"

	"listing-slideshow/internal/models"
	"listing-slideshow/internal/repositories"
	"listing-slideshow/internal/services"
	"listing-slideshow/internal/transformers"
	"listing-slideshow/internal/validators"
	"listing-slideshow/pkg/clock"
	"listing-slideshow/pkg/config"
	"listing-slideshow/pkg/feed"
	"listing-slideshow/pkg/logger"
	"listing-slideshow/pkg/metrics"
	"listing-slideshow/pkg/retry"

	"github.com/joho/godotenv"
)

// DefaultConfigPath is used when CONFIG_PATH is unset.
const DefaultConfigPath = "configs/config.yaml"

// LoadConfiguration loads .env, reads the YAML config and initialises the
// global logger writing to logOutput.
func LoadConfiguration(logOutput io.Writer) (*config.Config, error) {
	loadEnvironment()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger.InitLogger(logOutput, cfg.Log.Level)
	metrics.Init()
	return cfg, nil
}

// load environment variables from .env file
func loadEnvironment() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, relying on system environment variables: %v", err)
	}
}

// Dependencies is the assembled slideshow graph.
type Dependencies struct {
	Clock      clock.Clock
	Feed       *feed.Client
	Repository repositories.ListingRepository
	Service    *services.SlideshowService
}

// Build wires the feed client, cache, transformer, repository and service.
func Build(cfg *config.Config, clk clock.Clock) *Dependencies {
	policy := retry.Policy{
		MaxAttempts: cfg.Retry.MaxAttempts,
		Backoff:     retry.Linear(cfg.RetryBaseDelay()),
		Clock:       clk,
	}
	client := feed.NewClient(cfg.Feed.BaseURL, cfg.FeedTimeout(), policy)

	repo := repositories.NewListingRepository(
		client,
		repositories.NewListingCache(),
		transformers.NewListingTransformer(clk, cfg.Slideshow.Currency),
		repositories.RepositoryConfig{
			FallbackEnabled:  cfg.Fallback(),
			PlaceholderImage: cfg.Slideshow.PlaceholderImage,
		},
	)

	query := models.ListingOptions{Limit: cfg.Slideshow.Limit, Filters: map[string]string{}}
	if cfg.Slideshow.Status != "" {
		query.Filters["status"] = cfg.Slideshow.Status
	}
	svc := services.NewSlideshowService(
		repo,
		validators.NewListingValidator(),
		validators.NewPlaylistValidator(),
		services.SlideshowConfig{PlaylistPath: cfg.Slideshow.PlaylistPath, Query: query},
	)

	logger.GlobalLogger.Printf("Slideshow wired: feed=%s, fallback=%v, playlist=%q", client.BaseURL(), cfg.Fallback(), cfg.Slideshow.PlaylistPath)
	return &Dependencies{Clock: clk, Feed: client, Repository: repo, Service: svc}
}
