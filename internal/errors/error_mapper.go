package errors

import (
	"errors"
	"net/http"

	"listing-slideshow/pkg/feed"
)

// MapError converts a technical error into a user-friendly AppError.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	technicalMessage := err.Error()

	switch {
	case errors.Is(err, ErrInvalidInput):
		return NewAppError(technicalMessage, MsgInvalidParameters, ErrCodeInvalidParameters, http.StatusBadRequest, err)
	case errors.Is(err, ErrEmptyResult):
		return NewAppError(technicalMessage, MsgEmptySlideshow, ErrCodeEmptySlideshow, http.StatusNotFound, err)
	case isNotFound(err):
		return NewAppError(technicalMessage, MsgListingNotFound, ErrCodeListingNotFound, http.StatusNotFound, err)
	case errors.Is(err, ErrFatalInit):
		return NewAppError(technicalMessage, MsgLoadFailed, ErrCodeServiceUnavailable, http.StatusServiceUnavailable, err)
	case errors.Is(err, ErrFetchFailure),
		errors.Is(err, feed.ErrNetwork),
		errors.Is(err, feed.ErrHTTPStatus),
		errors.Is(err, feed.ErrMalformedResponse):
		return NewAppError(technicalMessage, MsgServiceUnavailable, ErrCodeServiceUnavailable, http.StatusServiceUnavailable, err)
	default:
		return NewAppError(technicalMessage, MsgInternalError, ErrCodeInternal, http.StatusInternalServerError, err)
	}
}

func isNotFound(err error) bool {
	var reqErr *feed.RequestError
	return errors.As(err, &reqErr) && reqErr.Status == http.StatusNotFound
}
