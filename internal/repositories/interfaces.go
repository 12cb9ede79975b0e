package repositories

import (
	"context"

	"listing-slideshow/internal/models"
)

// ListingRepository is the read side of the listing origin.
type ListingRepository interface {
	// FetchListings returns the listings for opts. Results are memoised per
	// query; when the origin fails and fallback is allowed the built-in
	// sample set is returned instead (and not cached).
	FetchListings(ctx context.Context, opts models.ListingOptions) ([]models.Listing, error)
	// FetchListing returns one listing. Failures are returned as
	// *errors.FetchFailure; there is no fallback.
	FetchListing(ctx context.Context, id string) (*models.Listing, error)
	// FetchListingImages never fails. On error it returns a single
	// placeholder image.
	FetchListingImages(ctx context.Context, id string) []models.Image
	ClearCache()
}

type ListingCache interface {
	Get(operation, key string) (interface{}, bool)
	Set(key string, value interface{})
	Delete(key string)
	ClearAll()
	Len() int
}
