package services

import (
	"context"
	"fmt"
	"sync"

	apperrors "listing-slideshow/internal/errors"
	"listing-slideshow/internal/models"
	"listing-slideshow/internal/playlist"
	"listing-slideshow/internal/repositories"
	"listing-slideshow/internal/transformers"
	"listing-slideshow/internal/validators"
	"listing-slideshow/pkg/logger"
)

// maxImageFetches bounds concurrent image requests while building a sequence.
const maxImageFetches = 4

type SlideshowConfig struct {
	// PlaylistPath, when set, is re-read on every load.
	PlaylistPath string
	Query        models.ListingOptions
}

type SlideshowService struct {
	repo              repositories.ListingRepository
	listingValidator  validators.ListingValidator
	playlistValidator validators.PlaylistValidator
	config            SlideshowConfig
}

func NewSlideshowService(
	repo repositories.ListingRepository,
	listingValidator validators.ListingValidator,
	playlistValidator validators.PlaylistValidator,
	config SlideshowConfig,
) *SlideshowService {
	return &SlideshowService{
		repo:              repo,
		listingValidator:  listingValidator,
		playlistValidator: playlistValidator,
		config:            config,
	}
}

// LoadSlides builds the configured sequence: the playlist file if one is
// set, otherwise the listing query.
func (s *SlideshowService) LoadSlides(ctx context.Context) ([]models.Slide, error) {
	if s.config.PlaylistPath != "" {
		entries, err := playlist.Load(s.config.PlaylistPath)
		if err != nil {
			return nil, err
		}
		if err := s.playlistValidator.ValidatePlaylist(entries); err != nil {
			return nil, err
		}
		return s.BuildFromPlaylist(ctx, entries)
	}
	return s.BuildFromQuery(ctx, s.config.Query)
}

// ClearCache drops everything the repository has memoised.
func (s *SlideshowService) ClearCache() {
	s.repo.ClearCache()
}

// BuildFromQuery loads listings for opts and fills in images for listings
// that arrived without any.
func (s *SlideshowService) BuildFromQuery(ctx context.Context, opts models.ListingOptions) ([]models.Slide, error) {
	if err := s.listingValidator.ValidateOptions(opts); err != nil {
		return nil, err
	}
	listings, err := s.repo.FetchListings(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}
	if len(listings) == 0 {
		return nil, apperrors.ErrEmptyResult
	}

	resolved := make([]models.Listing, len(listings))
	copy(resolved, listings)
	s.attachImages(ctx, resolved)

	slides := make([]models.Slide, 0, len(resolved))
	for i := range resolved {
		slides = append(slides, &models.ListingSlide{Listing: resolved[i]})
	}
	return slides, nil
}

// BuildFromText parses playlist text and builds its sequence.
func (s *SlideshowService) BuildFromText(ctx context.Context, text string) ([]models.Slide, error) {
	entries := playlist.Parse(text)
	if err := s.playlistValidator.ValidatePlaylist(entries); err != nil {
		return nil, err
	}
	return s.BuildFromPlaylist(ctx, entries)
}

// BuildFromPlaylist resolves each entry in order. Listings that cannot be
// fetched are logged and skipped so one bad reference does not sink the
// whole show.
func (s *SlideshowService) BuildFromPlaylist(ctx context.Context, entries []playlist.Entry) ([]models.Slide, error) {
	type pending struct {
		listing *models.Listing
		message *models.MessageSlide
	}
	var items []pending

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsListing() {
			items = append(items, pending{message: &models.MessageSlide{
				ID:              fmt.Sprintf("msg-%d", len(items)),
				Text:            entry.Message,
				BackgroundColor: entry.BackgroundColor,
				DisplayDuration: entry.Duration,
			}})
			continue
		}

		if err := s.listingValidator.ValidateID(entry.Ref); err != nil {
			logger.GlobalLogger.Warnf("Skipping playlist entry: line=%d, ref=%s, error=%v", entry.Line, entry.Ref, err)
			continue
		}
		cached, err := s.repo.FetchListing(ctx, entry.Ref)
		if err != nil {
			logger.GlobalLogger.Errorf("Skipping playlist listing: line=%d, ref=%s, error=%v", entry.Line, entry.Ref, err)
			continue
		}
		l := *cached
		if entry.Kind == playlist.KindRent && !l.IsRental {
			l.IsRental = true
			l.Price = transformers.FormatPrice(l.PriceValue, l.Currency, true)
		}
		items = append(items, pending{listing: &l})
	}

	var listings []models.Listing
	for _, it := range items {
		if it.listing != nil {
			listings = append(listings, *it.listing)
		}
	}
	s.attachImages(ctx, listings)

	slides := make([]models.Slide, 0, len(items))
	next := 0
	for _, it := range items {
		if it.message != nil {
			slides = append(slides, it.message)
			continue
		}
		slides = append(slides, &models.ListingSlide{Listing: listings[next]})
		next++
	}
	if len(slides) == 0 {
		return nil, apperrors.ErrEmptyResult
	}
	return slides, nil
}

// attachImages fetches image sets for listings that have none. The slice
// elements are copies, so cached listings are never modified.
func (s *SlideshowService) attachImages(ctx context.Context, listings []models.Listing) {
	var wg sync.WaitGroup
	sem := make(chan struct{}, maxImageFetches)
	for i := range listings {
		if len(listings[i].Images) > 0 {
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(l *models.Listing) {
			defer wg.Done()
			defer func() { <-sem }()
			l.Images = s.repo.FetchListingImages(ctx, l.ID)
		}(&listings[i])
	}
	wg.Wait()
}
