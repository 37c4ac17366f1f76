package models

import "math"

// MovieRecord is the enriched movie returned to API callers. Every key is always
// serialized; absent optional values encode as null.
type MovieRecord struct {
	Name          string  `json:"name"`
	Score         float64 `json:"score"`
	Description   string  `json:"description"`
	DescriptionEN string  `json:"description_en"`
	Image         *string `json:"image"`
	IMDBID        *string `json:"imdb_id"`
	Genre         *string `json:"genre"`
}

// NewPlaceholder builds the record returned when a title could not be resolved.
func NewPlaceholder(name, descriptionEN, description string) MovieRecord {
	return MovieRecord{
		Name:          name,
		Score:         0,
		Description:   description,
		DescriptionEN: descriptionEN,
	}
}

// RoundScore rounds a catalog rating to one decimal place and clamps it to [0,10].
func RoundScore(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 10 {
		v = 10
	}
	return math.Round(v*10) / 10
}

// OptionalString returns nil for the empty string.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
