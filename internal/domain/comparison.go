package domain

import (
	"math"
)

// Comparison is the head-to-head verdict for two shops.
type Comparison struct {
	RatingDifference float64 `json:"ratingDifference"`
	HigherRated      string  `json:"higherRated"`
	MoreReviews      string  `json:"moreReviews"`
}

// Compare builds the verdict for two shops. Ties on rating or review
// count resolve to the first shop, so the result depends on argument
// order only when the shops are exactly level.
func Compare(a, b *Shop) Comparison {
	c := Comparison{
		RatingDifference: RoundRating(math.Abs(a.AverageRating - b.AverageRating)),
		HigherRated:      a.Name,
		MoreReviews:      a.Name,
	}
	if b.AverageRating > a.AverageRating {
		c.HigherRated = b.Name
	}
	if b.ReviewCount > a.ReviewCount {
		c.MoreReviews = b.Name
	}
	return c
}
