package transformers

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"listing-slideshow/internal/models"
)

const rentalSuffix = " (for 7 nights)"

// MaxPrice is the largest value FormatPrice renders; bigger prices are capped.
const MaxPrice = 1e15

// CurrencySymbol maps an ISO currency code to its display symbol. Anything
// other than EUR or GBP renders as dollars.
func CurrencySymbol(currency string) string {
	switch strings.ToUpper(strings.TrimSpace(currency)) {
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	default:
		return "$"
	}
}

// FormatPrice renders a price with thousands grouping and no decimals.
// Zero, negative or NaN values render as "Price on request".
func FormatPrice(value float64, currency string, rental bool) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return models.PriceOnRequest
	}
	n := int64(math.Round(math.Min(value, MaxPrice)))
	if n <= 0 {
		return models.PriceOnRequest
	}
	s := CurrencySymbol(currency) + humanize.Comma(n)
	if rental {
		s += rentalSuffix
	}
	return s
}
