package cache

import (
	"fmt"
	"net/url"
)

// cache key for a listing query. url.Values.Encode sorts by key, so the same
// parameters always produce the same key regardless of insertion order.
func ListingsKey(params url.Values) string {
	return "listings:" + params.Encode()
}

// cache key for a single listing.
func ListingKey(id string) string {
	return fmt.Sprintf("listing:%s", id)
}

// cache key for a listing's image set.
func ImagesKey(id string) string {
	return fmt.Sprintf("images:%s", id)
}
