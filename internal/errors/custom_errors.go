package errors

import (
	"errors"
	"fmt"
)

// AppError represents a structured application error with user-friendly and technical details.
type AppError struct {
	TechnicalMessage string
	UserMessage      string
	Code             string
	HTTPStatus       int
	OriginalError    error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %v", e.UserMessage, e.OriginalError)
}

// Unwrap returns the original error for error chaining.
func (e *AppError) Unwrap() error {
	return e.OriginalError
}

// NewAppError creates a new AppError instance.
func NewAppError(technicalMessage, userMessage, code string, status int, originalErr error) *AppError {
	return &AppError{
		TechnicalMessage: technicalMessage,
		UserMessage:      userMessage,
		Code:             code,
		HTTPStatus:       status,
		OriginalError:    originalErr,
	}
}

// Sentinel failures raised above the feed client.
var (
	ErrFetchFailure = errors.New("listing fetch failed")
	ErrEmptyResult  = errors.New("no slides available")
	ErrFatalInit    = errors.New("slideshow could not be loaded")
	ErrInvalidInput = errors.New("invalid input")
)

// FetchFailure is returned when the origin could not supply a listing
// resource and no fallback applies.
type FetchFailure struct {
	Operation string
	Key       string
	Err       error
}

func (e *FetchFailure) Error() string {
	return fmt.Sprintf("%s failed: key=%s, error=%v", e.Operation, e.Key, e.Err)
}

func (e *FetchFailure) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrFetchFailure) match any FetchFailure.
func (e *FetchFailure) Is(target error) bool {
	return target == ErrFetchFailure
}

// Common error codes
const (
	ErrCodeListingNotFound    = "LISTING_NOT_FOUND"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeEmptySlideshow     = "EMPTY_SLIDESHOW"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeInvalidParameters  = "INVALID_PARAMETERS"
	ErrCodeInternal           = "INTERNAL_ERROR"
)
