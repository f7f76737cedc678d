package domain

import (
	"time"
)

// Review is a single customer rating for a shop. Rating is an integer
// between 1 and 5 inclusive.
type Review struct {
	ID       string    `json:"id"`
	ShopID   string    `json:"shopId"`
	Rating   int       `json:"rating"`
	Comment  string    `json:"comment"`
	Reviewer string    `json:"reviewer"`
	Date     time.Time `json:"date"`
}
