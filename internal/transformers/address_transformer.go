package transformers

import (
	"regexp"
	"strings"

	"listing-slideshow/internal/models"
)

var (
	fullAddressRe = regexp.MustCompile(`^(.*?),\s*([^,]+),\s*([A-Za-z]{2})\s+(\d{4,5}(?:-\d{4})?)$`)
	stateRe       = regexp.MustCompile(`^[A-Za-z]{2}$`)
	postalRe      = regexp.MustCompile(`^\d{4,5}(?:-\d{4})?$`)
	spaceRe       = regexp.MustCompile(`\s+`)
)

type addressTransformer struct{}

func NewAddressTransformer() LocationTransformer {
	return &addressTransformer{}
}

// NormalizeAddressComponent trims and collapses whitespace. Case is kept
// because the result is displayed as-is.
func (t *addressTransformer) NormalizeAddressComponent(input string) string {
	return spaceRe.ReplaceAllString(strings.TrimSpace(input), " ")
}

// ParseLocation splits "street, city, ST 12345" style text into parts. Text
// that does not look like a US-style address is kept as free text, e.g.
// "Vilamoura, Algarve".
func (t *addressTransformer) ParseLocation(text string) models.Location {
	text = t.NormalizeAddressComponent(text)
	if text == "" {
		return models.Location{}
	}

	if m := fullAddressRe.FindStringSubmatch(text); len(m) == 5 {
		return models.Location{
			Address:    t.NormalizeAddressComponent(m[1]),
			City:       t.NormalizeAddressComponent(m[2]),
			State:      strings.ToUpper(m[3]),
			PostalCode: m[4],
		}
	}

	parts := strings.Split(text, ",")
	if len(parts) == 3 {
		stateZip := strings.Fields(parts[2])
		if len(stateZip) == 1 && (stateRe.MatchString(stateZip[0]) || postalRe.MatchString(stateZip[0])) {
			loc := models.Location{
				Address: t.NormalizeAddressComponent(parts[0]),
				City:    t.NormalizeAddressComponent(parts[1]),
			}
			if stateRe.MatchString(stateZip[0]) {
				loc.State = strings.ToUpper(stateZip[0])
			} else {
				loc.PostalCode = stateZip[0]
			}
			return loc
		}
	}

	return models.Location{Text: text}
}
