package feed

import (
	"errors"
	"fmt"
)

// Failure kinds reported by the feed client. Match them with errors.Is.
var (
	ErrNetwork           = errors.New("network failure")
	ErrHTTPStatus        = errors.New("unexpected http status")
	ErrMalformedResponse = errors.New("malformed response")
)

// RequestError describes one failed attempt against the listing origin.
type RequestError struct {
	Kind   error
	URL    string
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case ErrHTTPStatus:
		return fmt.Sprintf("%v: url=%s, status=%d", e.Kind, e.URL, e.Status)
	default:
		return fmt.Sprintf("%v: url=%s, error=%v", e.Kind, e.URL, e.Err)
	}
}

func (e *RequestError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
