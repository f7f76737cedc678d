package domain

import (
	"time"
)

// Shop represents a business listed in the directory. AverageRating and
// ReviewCount are derived from the shop's reviews and are never set
// directly by clients.
//
// JSON field names are camelCase to preserve the contract consumed by the
// website and browser extension.
type Shop struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Location      string    `json:"location"`
	AverageRating float64   `json:"averageRating"`
	ReviewCount   int       `json:"reviewCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// RatingSummary is the derived aggregate written back onto a shop after
// a review mutation.
type RatingSummary struct {
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}
