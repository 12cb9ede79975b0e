package models

import (
	"encoding/json"
	"time"
)

// Slide is one entry in the playback sequence: a *ListingSlide or a
// *MessageSlide. The set is closed; switch on the concrete type.
type Slide interface {
	SlideID() string
	slide()
}

type ListingSlide struct {
	Listing Listing
}

func (s *ListingSlide) SlideID() string { return s.Listing.ID }
func (*ListingSlide) slide()            {}

// MarshalJSON flattens the listing and tags it with its kind.
func (s *ListingSlide) MarshalJSON() ([]byte, error) {
	type listing Listing
	return json.Marshal(struct {
		Type string `json:"type"`
		listing
	}{Type: "listing", listing: listing(s.Listing)})
}

// MessageSlide is a text card shown for its own duration instead of the
// regular interval.
type MessageSlide struct {
	ID              string        `json:"id"`
	Text            string        `json:"text"`
	BackgroundColor string        `json:"backgroundColor"`
	DisplayDuration time.Duration `json:"-"`
}

func (s *MessageSlide) SlideID() string { return s.ID }
func (*MessageSlide) slide()            {}

func (s *MessageSlide) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type            string `json:"type"`
		ID              string `json:"id"`
		Text            string `json:"text"`
		BackgroundColor string `json:"backgroundColor"`
		DisplayDuration int64  `json:"displayDuration"`
	}{
		Type:            "message",
		ID:              s.ID,
		Text:            s.Text,
		BackgroundColor: s.BackgroundColor,
		DisplayDuration: s.DisplayDuration.Milliseconds(),
	})
}
