package main

import (
	"os"

	"listing-slideshow/internal/bootstrap"
	"listing-slideshow/pkg/config"
	"listing-slideshow/pkg/logger"
)

// load environment variables and configuration
func LoadConfiguration() *config.Config {
	cfg, err := bootstrap.LoadConfiguration(os.Stdout)
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to load config: %v", err)
		os.Exit(1)
	}
	return cfg
}
