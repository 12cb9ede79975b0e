package models

import (
	"strings"
	"time"
)

// Fixed display defaults applied during normalisation.
const (
	DefaultTitle    = "Untitled Property"
	DefaultLocation = "Location not specified"
	DefaultStatus   = "available"
	PriceOnRequest  = "Price on request"
)

// Listing is a normalised property record ready for display.
type Listing struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Price       string    `json:"price"`
	PriceValue  float64   `json:"priceValue"`
	Currency    string    `json:"currency,omitempty"`
	IsRental    bool      `json:"isRental"`
	Location    Location  `json:"location"`
	Features    Features  `json:"features"`
	Description string    `json:"description"`
	Images      []Image   `json:"images"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Location is either structured address parts or a single free-text line.
type Location struct {
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
	Text       string `json:"text,omitempty"`
}

// IsStructured reports whether any address part is set.
func (l Location) IsStructured() bool {
	return l.Address != "" || l.City != "" || l.State != "" || l.PostalCode != "" || l.Country != ""
}

// String renders the location as one display line.
func (l Location) String() string {
	if !l.IsStructured() {
		if l.Text == "" {
			return DefaultLocation
		}
		return l.Text
	}
	var parts []string
	for _, p := range []string{l.Address, l.City} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	region := strings.TrimSpace(l.State + " " + l.PostalCode)
	if region != "" {
		parts = append(parts, region)
	}
	if l.Country != "" {
		parts = append(parts, l.Country)
	}
	return strings.Join(parts, ", ")
}

type Features struct {
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    float64 `json:"bathrooms"`
	AreaValue    int     `json:"area"`
	PropertyType string  `json:"propertyType,omitempty"`
	YearBuilt    int     `json:"yearBuilt,omitempty"`
	GarageSpaces int     `json:"garageSpaces,omitempty"`
	Sleeps       int     `json:"sleeps,omitempty"`
}

type Image struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	AltText      string `json:"altText,omitempty"`
	Caption      string `json:"caption,omitempty"`
}

// PrimaryImage returns the first image, or a placeholder built from
// placeholderURL when the listing has none.
func (l *Listing) PrimaryImage(placeholderURL string) Image {
	if len(l.Images) > 0 && l.Images[0].URL != "" {
		return l.Images[0]
	}
	return PlaceholderImage(placeholderURL, l.Title)
}

// PlaceholderImage is the stand-in shown when a listing has no usable image.
func PlaceholderImage(url, title string) Image {
	alt := "No image available"
	if title != "" {
		alt = "No image available for " + title
	}
	return Image{URL: url, ThumbnailURL: url, AltText: alt}
}

// ListingOptions selects a page of listings from the origin.
type ListingOptions struct {
	Limit           int
	Offset          int
	Filters         map[string]string
	DisableFallback bool
}
