package transformers

import (
	"strings"

	"github.com/google/uuid"

	"listing-slideshow/internal/models"
	"listing-slideshow/pkg/clock"
)

// Alternate field names seen across listing sources, in priority order.
var (
	idKeys          = []string{"id", "propcode", "prop_ref", "reference", "ref", "_id"}
	titleKeys       = []string{"title", "pname", "name", "headline"}
	priceKeys       = []string{"price", "rprice", "listPrice", "list_price", "amount"}
	currencyKeys    = []string{"currency", "rcurrency"}
	bedroomKeys     = []string{"bedrooms", "beds", "rbeds", "bedroomsCount"}
	bathroomKeys    = []string{"bathrooms", "baths", "bathroomsCount"}
	areaKeys        = []string{"area", "sqft", "squareFeet", "livingArea", "size"}
	typeKeys        = []string{"type", "propertyType", "property_type"}
	yearBuiltKeys   = []string{"year_built", "yearBuilt"}
	garageKeys      = []string{"garage_spaces", "garageSpaces", "garage"}
	descriptionKeys = []string{"description", "descr", "descrlong", "descrshort", "rdescr_en", "summary"}
	createdKeys     = []string{"created_at", "createdAt", "listedAt"}
	updatedKeys     = []string{"updated_at", "updatedAt"}
	imageListKeys   = []string{"images", "imagegallery", "photos"}
	mainImageKeys   = []string{"mainImage", "image", "rimage"}
	locationTextKey = []string{"area_name", "areaname", "neighborhood"}
)

type listingTransformer struct {
	clock    clock.Clock
	currency string
	location LocationTransformer
}

// NewListingTransformer builds a normaliser. currency is used when a record
// does not name its own.
func NewListingTransformer(clk clock.Clock, currency string) ListingTransformer {
	if clk == nil {
		clk = clock.Real()
	}
	return &listingTransformer{
		clock:    clk,
		currency: currency,
		location: NewAddressTransformer(),
	}
}

func (t *listingTransformer) TransformListings(raw []map[string]interface{}) []models.Listing {
	listings := make([]models.Listing, 0, len(raw))
	for _, rec := range raw {
		listings = append(listings, t.TransformListing(rec))
	}
	return listings
}

// TransformListing never fails: every field falls back to a display default.
func (t *listingTransformer) TransformListing(raw map[string]interface{}) models.Listing {
	now := t.clock.Now()

	l := models.Listing{
		ID:          getString(raw, idKeys...),
		Title:       getString(raw, titleKeys...),
		Description: getString(raw, descriptionKeys...),
		Status:      strings.ToLower(getString(raw, "status")),
		Currency:    strings.ToUpper(getString(raw, currencyKeys...)),
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Title == "" {
		l.Title = models.DefaultTitle
	}
	if l.Status == "" {
		l.Status = models.DefaultStatus
	}
	if l.Currency == "" {
		l.Currency = strings.ToUpper(t.currency)
	}

	l.IsRental = isRental(raw, l.Status)
	l.PriceValue = getMeasure(raw, priceKeys...)
	l.Price = FormatPrice(getFloat64(raw, priceKeys...), l.Currency, l.IsRental)

	l.Features = t.features(raw)
	l.Location = t.locationOf(raw)
	l.Images = t.imagesOf(raw, l.Title)

	l.CreatedAt = now
	if ts, ok := getTime(raw, createdKeys...); ok {
		l.CreatedAt = ts
	}
	l.UpdatedAt = now
	if ts, ok := getTime(raw, updatedKeys...); ok {
		l.UpdatedAt = ts
	}
	return l
}

// features reads a nested "features" object first, then the top level.
func (t *listingTransformer) features(raw map[string]interface{}) models.Features {
	sources := []map[string]interface{}{raw}
	if nested, ok := raw["features"].(map[string]interface{}); ok {
		sources = []map[string]interface{}{nested, raw}
	}

	var f models.Features
	for _, src := range sources {
		if f.Bedrooms == 0 {
			f.Bedrooms = getCount(src, bedroomKeys...)
		}
		if f.Bathrooms == 0 {
			f.Bathrooms = getMeasure(src, bathroomKeys...)
		}
		if f.AreaValue == 0 {
			f.AreaValue = getCount(src, areaKeys...)
		}
		if f.PropertyType == "" {
			f.PropertyType = getString(src, typeKeys...)
		}
		if f.YearBuilt == 0 {
			f.YearBuilt = getCount(src, yearBuiltKeys...)
		}
		if f.GarageSpaces == 0 {
			f.GarageSpaces = getCount(src, garageKeys...)
		}
		if f.Sleeps == 0 {
			f.Sleeps = getCount(src, "sleeps", "rcomm_max")
		}
	}
	return f
}

func (t *listingTransformer) locationOf(raw map[string]interface{}) models.Location {
	switch v := raw["location"].(type) {
	case string:
		if loc := t.location.ParseLocation(v); loc.IsStructured() || loc.Text != "" {
			return loc
		}
	case map[string]interface{}:
		if loc := structuredLocation(v); loc.IsStructured() {
			return loc
		}
	}

	if loc := structuredLocation(raw); loc.IsStructured() {
		return loc
	}
	if text := getString(raw, locationTextKey...); text != "" {
		return models.Location{Text: t.location.NormalizeAddressComponent(text)}
	}
	return models.Location{Text: models.DefaultLocation}
}

func structuredLocation(m map[string]interface{}) models.Location {
	return models.Location{
		Address:    getString(m, "address", "street", "streetAddress"),
		City:       getString(m, "city", "town"),
		State:      getString(m, "state", "region"),
		PostalCode: getString(m, "zip", "postalCode", "postal_code", "zipCode"),
		Country:    getString(m, "country"),
	}
}

func (t *listingTransformer) imagesOf(raw map[string]interface{}, title string) []models.Image {
	var images []models.Image
	if v, ok := first(raw, imageListKeys...); ok {
		if items, ok := v.([]interface{}); ok {
			images = t.transformImages(items, title)
		}
	}
	if len(images) == 0 {
		if main := getString(raw, mainImageKeys...); main != "" {
			images = []models.Image{{URL: main, ThumbnailURL: main, AltText: title}}
		}
	}
	if images == nil {
		images = []models.Image{}
	}
	return images
}

// TransformImages normalises an image list from the images endpoint.
// Entries may be plain URL strings or objects; entries without a URL are
// dropped.
func (t *listingTransformer) TransformImages(raw []interface{}) []models.Image {
	return t.transformImages(raw, "")
}

func (t *listingTransformer) transformImages(raw []interface{}, title string) []models.Image {
	images := make([]models.Image, 0, len(raw))
	for _, item := range raw {
		var img models.Image
		switch v := item.(type) {
		case string:
			img = models.Image{URL: strings.TrimSpace(v)}
		case map[string]interface{}:
			img = models.Image{
				URL:          getString(v, "url", "src", "href"),
				ThumbnailURL: getString(v, "thumbnail", "thumbnailUrl", "thumb"),
				AltText:      getString(v, "alt", "altText"),
				Caption:      getString(v, "caption"),
			}
		}
		if img.URL == "" {
			continue
		}
		if img.ThumbnailURL == "" {
			img.ThumbnailURL = img.URL
		}
		if img.AltText == "" {
			img.AltText = title
		}
		images = append(images, img)
	}
	return images
}

func isRental(raw map[string]interface{}, status string) bool {
	if getBool(raw, "isRental", "is_rental", "rental") {
		return true
	}
	if _, ok := raw["rprice"]; ok {
		return true
	}
	for _, s := range []string{status, strings.ToLower(getString(raw, "type", "listing_type", "listingType"))} {
		switch s {
		case "rental", "rent", "for rent", "for_rent", "to let":
			return true
		}
	}
	return false
}
