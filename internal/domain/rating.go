package domain

import (
	"math"
)

// RoundRating rounds an average rating to two decimal places, half away
// from zero. All stored and reported averages pass through this.
func RoundRating(avg float64) float64 {
	return math.Round(avg*100) / 100
}
