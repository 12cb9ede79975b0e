package repositories

import (
	"context"
	"encoding/json"
	"net/url"

	apperrors "listing-slideshow/internal/errors"
	"listing-slideshow/internal/models"
	"listing-slideshow/internal/transformers"
	"listing-slideshow/internal/utils"
	"listing-slideshow/pkg/cache"
	"listing-slideshow/pkg/feed"
	"listing-slideshow/pkg/logger"
)

// Origin is the subset of the feed client the repository needs.
type Origin interface {
	Fetch(ctx context.Context, op, path string, query url.Values, decode func(body []byte) error) error
}

var _ Origin = (*feed.Client)(nil)

type RepositoryConfig struct {
	// FallbackEnabled is the default for FetchListings; a caller can still
	// opt out per call with ListingOptions.DisableFallback.
	FallbackEnabled  bool
	PlaceholderImage string
}

type listingRepository struct {
	origin      Origin
	cache       ListingCache
	transformer transformers.ListingTransformer
	config      RepositoryConfig
}

func NewListingRepository(origin Origin, lc ListingCache, tr transformers.ListingTransformer, cfg RepositoryConfig) ListingRepository {
	return &listingRepository{
		origin:      origin,
		cache:       lc,
		transformer: tr,
		config:      cfg,
	}
}

func (r *listingRepository) FetchListings(ctx context.Context, opts models.ListingOptions) ([]models.Listing, error) {
	query := utils.BuildListingQuery(opts)
	key := cache.ListingsKey(query)

	listings, err := cacheOrFetch(r.cache, "fetch_listings", key, func() ([]models.Listing, error) {
		var records []map[string]interface{}
		err := r.origin.Fetch(ctx, "fetch_listings", "/listings", query, func(body []byte) error {
			var decoded interface{}
			if err := json.Unmarshal(body, &decoded); err != nil {
				return err
			}
			extracted, err := transformers.ExtractRecords(decoded)
			if err != nil {
				return err
			}
			records = extracted
			return nil
		})
		if err != nil {
			return nil, err
		}
		return r.transformer.TransformListings(records), nil
	})
	if err == nil {
		return listings, nil
	}

	if opts.DisableFallback || !r.config.FallbackEnabled {
		logger.GlobalLogger.Errorf("Listing fetch failed, fallback disabled: key=%s, error=%v", key, err)
		return nil, &apperrors.FetchFailure{Operation: "fetch listings", Key: key, Err: err}
	}

	sample, sampleErr := SampleListings(r.transformer)
	if sampleErr != nil {
		logger.GlobalLogger.Errorf("Failed to load sample listings: error=%v", sampleErr)
		return nil, &apperrors.FetchFailure{Operation: "fetch listings", Key: key, Err: err}
	}
	utils.RecordFallback("fetch_listings")
	logger.GlobalLogger.Warnf("Listing origin unavailable, serving %d sample listings: key=%s, error=%v", len(sample), key, err)
	return sample, nil
}

func (r *listingRepository) FetchListing(ctx context.Context, id string) (*models.Listing, error) {
	key := cache.ListingKey(id)

	listing, err := cacheOrFetch(r.cache, "fetch_listing", key, func() (*models.Listing, error) {
		var record map[string]interface{}
		err := r.origin.Fetch(ctx, "fetch_listing", "/listings/"+url.PathEscape(id), nil, func(body []byte) error {
			var decoded interface{}
			if err := json.Unmarshal(body, &decoded); err != nil {
				return err
			}
			extracted, err := transformers.ExtractRecord(decoded)
			if err != nil {
				return err
			}
			record = extracted
			return nil
		})
		if err != nil {
			return nil, err
		}
		l := r.transformer.TransformListing(record)
		return &l, nil
	})
	if err != nil {
		logger.GlobalLogger.Errorf("Listing fetch failed: id=%s, error=%v", id, err)
		return nil, &apperrors.FetchFailure{Operation: "fetch listing", Key: key, Err: err}
	}
	return listing, nil
}

func (r *listingRepository) FetchListingImages(ctx context.Context, id string) []models.Image {
	key := cache.ImagesKey(id)

	images, err := cacheOrFetch(r.cache, "fetch_images", key, func() ([]models.Image, error) {
		var items []interface{}
		err := r.origin.Fetch(ctx, "fetch_images", "/listings/"+url.PathEscape(id)+"/images", nil, func(body []byte) error {
			var decoded interface{}
			if err := json.Unmarshal(body, &decoded); err != nil {
				return err
			}
			extracted, err := transformers.ExtractImageItems(decoded)
			if err != nil {
				return err
			}
			items = extracted
			return nil
		})
		if err != nil {
			return nil, err
		}
		return r.transformer.TransformImages(items), nil
	})
	if err != nil {
		utils.RecordFallback("fetch_images")
		logger.GlobalLogger.Warnf("Image fetch failed, using placeholder: id=%s, error=%v", id, err)
		return []models.Image{models.PlaceholderImage(r.config.PlaceholderImage, "")}
	}
	return images
}

func (r *listingRepository) ClearCache() {
	r.cache.ClearAll()
}
