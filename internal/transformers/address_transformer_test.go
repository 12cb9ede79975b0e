package transformers

import (
	"testing"

	"listing-slideshow/internal/models"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in   string
		want models.Location
	}{
		{"", models.Location{}},
		{"123 Main St, Springfield, IL 62701", models.Location{Address: "123 Main St", City: "Springfield", State: "IL", PostalCode: "62701"}},
		{"  9  Elm  Rd, Austin, tx ", models.Location{Address: "9 Elm Rd", City: "Austin", State: "TX"}},
		{"9 Elm Rd, Austin, 73301", models.Location{Address: "9 Elm Rd", City: "Austin", PostalCode: "73301"}},
		{"Vilamoura, Algarve", models.Location{Text: "Vilamoura, Algarve"}},
		{"Quinta do Lago", models.Location{Text: "Quinta do Lago"}},
	}
	tr := NewAddressTransformer()
	for _, tt := range tests {
		if got := tr.ParseLocation(tt.in); got != tt.want {
			t.Errorf("ParseLocation(%q) = %+v; want %+v", tt.in, got, tt.want)
		}
	}
}
