package transformers

import (
	"listing-slideshow/internal/models"
)

type ListingTransformer interface {
	TransformListing(raw map[string]interface{}) models.Listing
	TransformListings(raw []map[string]interface{}) []models.Listing
	TransformImages(raw []interface{}) []models.Image
}

type LocationTransformer interface {
	NormalizeAddressComponent(input string) string
	ParseLocation(text string) models.Location
}
