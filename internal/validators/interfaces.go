package validators

import (
	"listing-slideshow/internal/models"
	"listing-slideshow/internal/playlist"
)

type ListingValidator interface {
	ValidateOptions(opts models.ListingOptions) error
	ValidateID(id string) error
}

type PlaylistValidator interface {
	ValidatePlaylist(entries []playlist.Entry) error
}
