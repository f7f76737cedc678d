package repository

import (
	"context"

	"github.com/wakil120/ShopReview/internal/domain"
)

// SearchMode controls how multiple search terms combine.
type SearchMode string

const (
	// SearchModeAny matches shops whose name contains at least one term.
	SearchModeAny SearchMode = "any"
	// SearchModeAll matches shops whose name contains every term.
	SearchModeAll SearchMode = "all"
)

// ShopFilter defines filter criteria for listing shops. Nil fields are
// ignored; set fields match case-insensitively on the exact value.
type ShopFilter struct {
	Category *string
	Location *string
}

// ShopRepository defines the interface for shop persistence operations.
type ShopRepository interface {
	// Create inserts a new shop into the store.
	Create(ctx context.Context, shop *domain.Shop) error

	// GetByID retrieves a shop by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Shop, error)

	// List returns shops matching the filter, newest first.
	List(ctx context.Context, filter ShopFilter) ([]domain.Shop, error)

	// SearchByName returns shops whose name matches the terms as
	// substrings, highest rated first.
	SearchByName(ctx context.Context, terms []string, mode SearchMode) ([]domain.Shop, error)

	// FindByExactName retrieves a shop by case-insensitive exact name.
	FindByExactName(ctx context.Context, name string) (*domain.Shop, error)

	// FindByNameLike retrieves the best-rated shop whose name contains the
	// given fragment, case-insensitively.
	FindByNameLike(ctx context.Context, fragment string) (*domain.Shop, error)

	// Count reports the number of shops in the store.
	Count(ctx context.Context) (int, error)
}

// ReviewRepository defines the interface for review persistence operations.
type ReviewRepository interface {
	// Create inserts a new review into the store.
	Create(ctx context.Context, review *domain.Review) error

	// GetByID retrieves a review by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Review, error)

	// ListByShopID returns all reviews for a shop, newest first.
	ListByShopID(ctx context.Context, shopID string) ([]domain.Review, error)

	// Delete removes a review and returns the deleted row.
	Delete(ctx context.Context, id string) (*domain.Review, error)

	// RecalculateShopRating recomputes a shop's average rating and review
	// count from its reviews and persists the result, all within a single
	// transaction that locks the shop row.
	RecalculateShopRating(ctx context.Context, shopID string) (*domain.RatingSummary, error)
}
