package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wakil120/ShopReview/internal/domain"
	"github.com/wakil120/ShopReview/internal/event"
	"github.com/wakil120/ShopReview/internal/repository"
	apperrors "github.com/wakil120/ShopReview/pkg/errors"
)

// ReviewService implements the business logic for review operations.
// Every review mutation recomputes the owning shop's rating aggregate
// before the call returns, so reads that follow a mutation observe the
// updated average.
type ReviewService struct {
	reviews  repository.ReviewRepository
	shops    repository.ShopRepository
	producer *event.Producer
	logger   *slog.Logger
	locks    *shopLocks
}

// NewReviewService creates a new review service.
func NewReviewService(reviews repository.ReviewRepository, shops repository.ShopRepository, producer *event.Producer, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		shops:    shops,
		producer: producer,
		logger:   logger,
		locks:    newShopLocks(),
	}
}

// AddReviewInput holds the parameters for submitting a review.
type AddReviewInput struct {
	ShopID   string
	Rating   int
	Comment  string
	Reviewer string
}

// AddReview submits a review for a shop and returns the stored review
// together with the shop carrying its refreshed rating aggregate.
func (s *ReviewService) AddReview(ctx context.Context, input *AddReviewInput) (*domain.Review, *domain.Shop, error) {
	if input.ShopID == "" {
		return nil, nil, apperrors.InvalidInput("shop id is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, nil, apperrors.InvalidInput("rating must be between 1 and 5")
	}
	if input.Comment == "" {
		return nil, nil, apperrors.InvalidInput("comment is required")
	}
	if input.Reviewer == "" {
		return nil, nil, apperrors.InvalidInput("reviewer is required")
	}

	shop, err := s.shops.GetByID(ctx, input.ShopID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.NotFound("shop", input.ShopID)
		}
		return nil, nil, fmt.Errorf("get shop by id: %w", err)
	}

	review := &domain.Review{
		ID:       uuid.New().String(),
		ShopID:   input.ShopID,
		Rating:   input.Rating,
		Comment:  input.Comment,
		Reviewer: input.Reviewer,
		Date:     time.Now().UTC(),
	}

	unlock := s.locks.Lock(shop.ID)
	defer unlock()

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, nil, fmt.Errorf("create review: %w", err)
	}

	summary, err := s.reviews.RecalculateShopRating(ctx, shop.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("recalculate shop rating: %w", err)
	}

	shop.AverageRating = summary.AverageRating
	shop.ReviewCount = summary.ReviewCount

	s.publishReviewCreated(ctx, review, summary)

	s.logger.InfoContext(ctx, "review added",
		slog.String("review_id", review.ID),
		slog.String("shop_id", shop.ID),
		slog.Int("rating", review.Rating),
		slog.Float64("average_rating", summary.AverageRating),
	)

	return review, shop, nil
}

// GetReview retrieves a review by its ID.
func (s *ReviewService) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("review", id)
		}
		return nil, fmt.Errorf("get review by id: %w", err)
	}
	return review, nil
}

// ListShopReviews returns all reviews for a shop, newest first. The shop
// must exist.
func (s *ReviewService) ListShopReviews(ctx context.Context, shopID string) ([]domain.Review, error) {
	if _, err := s.shops.GetByID(ctx, shopID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("shop", shopID)
		}
		return nil, fmt.Errorf("get shop by id: %w", err)
	}

	reviews, err := s.reviews.ListByShopID(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, nil
}

// DeleteReview removes a review and returns the owning shop with its
// refreshed rating aggregate.
func (s *ReviewService) DeleteReview(ctx context.Context, id string) (*domain.Shop, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("review", id)
		}
		return nil, fmt.Errorf("get review by id: %w", err)
	}

	unlock := s.locks.Lock(review.ShopID)
	defer unlock()

	deleted, err := s.reviews.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("review", id)
		}
		return nil, fmt.Errorf("delete review: %w", err)
	}

	summary, err := s.reviews.RecalculateShopRating(ctx, deleted.ShopID)
	if err != nil {
		return nil, fmt.Errorf("recalculate shop rating: %w", err)
	}

	shop, err := s.shops.GetByID(ctx, deleted.ShopID)
	if err != nil {
		return nil, fmt.Errorf("get shop by id: %w", err)
	}

	// The returned shop carries the aggregate this call computed, not
	// whatever a later writer may have stored since the row lock was
	// released.
	shop.AverageRating = summary.AverageRating
	shop.ReviewCount = summary.ReviewCount

	if err := s.producer.PublishReviewDeleted(ctx, deleted); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.deleted event",
			slog.String("review_id", deleted.ID),
			slog.String("error", err.Error()),
		)
	}
	if err := s.producer.PublishShopRatingUpdated(ctx, deleted.ShopID, summary); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish shop.rating_updated event",
			slog.String("shop_id", deleted.ShopID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "review deleted",
		slog.String("review_id", deleted.ID),
		slog.String("shop_id", deleted.ShopID),
		slog.Float64("average_rating", summary.AverageRating),
	)

	return shop, nil
}

func (s *ReviewService) publishReviewCreated(ctx context.Context, review *domain.Review, summary *domain.RatingSummary) {
	if err := s.producer.PublishReviewCreated(ctx, review); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.created event",
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}
	if err := s.producer.PublishShopRatingUpdated(ctx, review.ShopID, summary); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish shop.rating_updated event",
			slog.String("shop_id", review.ShopID),
			slog.String("error", err.Error()),
		)
	}
}
