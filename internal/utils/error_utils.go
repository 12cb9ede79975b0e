package utils

import (
	"context"
	"errors"
	"fmt"
	"net"

	apperrors "listing-slideshow/internal/errors"
	"listing-slideshow/pkg/feed"
	"listing-slideshow/pkg/logger"
)

// LogAndMapError logs technical details and returns a user-friendly AppError.
func LogAndMapError(err error, operation string, params ...interface{}) *apperrors.AppError {
	appErr := apperrors.MapError(err)
	if appErr == nil {
		return nil
	}

	details := ""
	for i := 0; i+1 < len(params); i += 2 {
		details += fmt.Sprintf(", %v=%v", params[i], params[i+1])
	}
	logger.GlobalLogger.Errorf("%s failed: code=%s%s, error=%s", operation, appErr.Code, details, appErr.TechnicalMessage)
	return appErr
}

// WrapError adds context to an error while preserving the original.
func WrapError(err error, message string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(message, args...), err)
}

// IsRetryableError reports whether err is transient: a network failure,
// a timeout or a 5xx/429 from the origin.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, feed.ErrNetwork) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var reqErr *feed.RequestError
	if errors.As(err, &reqErr) && errors.Is(reqErr.Kind, feed.ErrHTTPStatus) {
		return reqErr.Status >= 500 || reqErr.Status == 429
	}
	return false
}
