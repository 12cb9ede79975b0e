package validators

import (
	"fmt"
	"strings"

	apperrors "listing-slideshow/internal/errors"
	"listing-slideshow/internal/models"
	"listing-slideshow/internal/playlist"
)

const (
	MaxLimit          = 200
	MaxPlaylistLength = 500
)

type listingValidator struct{}

func NewListingValidator() ListingValidator {
	return &listingValidator{}
}

func (v *listingValidator) ValidateOptions(opts models.ListingOptions) error {
	if opts.Limit < 0 || opts.Limit > MaxLimit {
		return fmt.Errorf("%w: limit must be between 0 and %d", apperrors.ErrInvalidInput, MaxLimit)
	}
	if opts.Offset < 0 {
		return fmt.Errorf("%w: offset must be non-negative", apperrors.ErrInvalidInput)
	}
	return nil
}

func (v *listingValidator) ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: listing id is required", apperrors.ErrInvalidInput)
	}
	if strings.ContainsAny(id, "/?#") {
		return fmt.Errorf("%w: listing id %q contains reserved characters", apperrors.ErrInvalidInput, id)
	}
	return nil
}

type playlistValidator struct{}

func NewPlaylistValidator() PlaylistValidator {
	return &playlistValidator{}
}

func (v *playlistValidator) ValidatePlaylist(entries []playlist.Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: playlist has no entries", apperrors.ErrInvalidInput)
	}
	if len(entries) > MaxPlaylistLength {
		return fmt.Errorf("%w: playlist has %d entries, maximum is %d", apperrors.ErrInvalidInput, len(entries), MaxPlaylistLength)
	}
	for _, e := range entries {
		if e.Kind == playlist.KindMessage && e.Message == "" {
			return fmt.Errorf("%w: line %d: message text is empty", apperrors.ErrInvalidInput, e.Line)
		}
	}
	return nil
}
