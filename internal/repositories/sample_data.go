package repositories

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"listing-slideshow/internal/models"
	"listing-slideshow/internal/transformers"
)

//go:embed sample_listings.json
var sampleListingsJSON []byte

// SampleListings returns the built-in listing set served when the origin is
// unreachable. Each call returns a fresh slice.
func SampleListings(tr transformers.ListingTransformer) ([]models.Listing, error) {
	var decoded interface{}
	if err := json.Unmarshal(sampleListingsJSON, &decoded); err != nil {
		return nil, fmt.Errorf("failed to parse sample listings: %v", err)
	}
	records, err := transformers.ExtractRecords(decoded)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample listings: %v", err)
	}
	return tr.TransformListings(records), nil
}
