package render

import (
	"listing-slideshow/internal/models"
	"listing-slideshow/pkg/logger"
)

// Log writes renderer output to the global logger at debug level, errors at
// error level.
type Log struct{}

func (Log) Render(slide models.Slide) {
	logger.GlobalLogger.Debugf("Slide shown: id=%s", slide.SlideID())
}

func (Log) SetProgress(float64) {}

func (Log) SetCounter(current, total int) {
	logger.GlobalLogger.Debugf("Slide counter: %d/%d", current, total)
}

func (Log) Announce(text string) {
	logger.GlobalLogger.Debugf("Announcement: %s", text)
}

func (Log) ShowLoading(loading bool) {
	logger.GlobalLogger.Debugf("Slideshow loading: %v", loading)
}

func (Log) ShowError(message string) {
	logger.GlobalLogger.Errorf("Slideshow error shown: message=%s", message)
}
