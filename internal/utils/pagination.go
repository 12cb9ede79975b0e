package utils

import (
	"net/url"
	"strconv"
	"strings"

	apperrors "listing-slideshow/internal/errors"
	"listing-slideshow/internal/models"
)

// BuildListingQuery turns listing options into query parameters. Zero limit
// and offset are omitted, as are blank filters. Encoding the result always
// sorts keys, so equal options give equal query strings.
func BuildListingQuery(opts models.ListingOptions) url.Values {
	q := url.Values{}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}
	for key, value := range opts.Filters {
		key = strings.TrimSpace(key)
		if key == "" || key == "limit" || key == "offset" || strings.TrimSpace(value) == "" {
			continue
		}
		q.Set(key, strings.TrimSpace(value))
	}
	return q
}

// ParseListingQuery is the inverse of BuildListingQuery for incoming HTTP
// query strings. Unparsable limit/offset values fail with ErrInvalidInput.
func ParseListingQuery(params url.Values) (models.ListingOptions, error) {
	opts := models.ListingOptions{Filters: map[string]string{}}
	var err error
	if v := params.Get("limit"); v != "" {
		if opts.Limit, err = strconv.Atoi(v); err != nil {
			return opts, WrapError(apperrors.ErrInvalidInput, "invalid limit %q (%v)", v, err)
		}
	}
	if v := params.Get("offset"); v != "" {
		if opts.Offset, err = strconv.Atoi(v); err != nil {
			return opts, WrapError(apperrors.ErrInvalidInput, "invalid offset %q (%v)", v, err)
		}
	}
	for key := range params {
		if key == "limit" || key == "offset" {
			continue
		}
		opts.Filters[key] = params.Get(key)
	}
	return opts, nil
}
