package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wakil120/ShopReview/internal/domain"
	pkgkafka "github.com/wakil120/ShopReview/pkg/kafka"
)

// Kafka topic constants for shop and review domain events.
const (
	TopicShopCreated       = "shopreview.shop.created"
	TopicShopRatingUpdated = "shopreview.shop.rating_updated"
	TopicReviewCreated     = "shopreview.review.created"
	TopicReviewDeleted     = "shopreview.review.deleted"
)

// Aggregate type constants.
const (
	AggregateTypeShop   = "shop"
	AggregateTypeReview = "review"
)

// Source identifier for events originating from this service.
const SourceShopReview = "shopreview-api"

// ShopCreatedData is the payload for a shop.created event.
type ShopCreatedData struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

// ShopRatingUpdatedData is the payload for a shop.rating_updated event.
type ShopRatingUpdatedData struct {
	ShopID        string  `json:"shop_id"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

// ReviewCreatedData is the payload for a review.created event.
type ReviewCreatedData struct {
	ID       string    `json:"id"`
	ShopID   string    `json:"shop_id"`
	Rating   int       `json:"rating"`
	Reviewer string    `json:"reviewer"`
	Date     time.Time `json:"date"`
}

// ReviewDeletedData is the payload for a review.deleted event.
type ReviewDeletedData struct {
	ID     string `json:"id"`
	ShopID string `json:"shop_id"`
}

// Producer publishes shop and review domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishShopCreated publishes a shop.created event.
func (p *Producer) PublishShopCreated(ctx context.Context, shop *domain.Shop) error {
	data := ShopCreatedData{
		ID:        shop.ID,
		Name:      shop.Name,
		Category:  shop.Category,
		Location:  shop.Location,
		CreatedAt: shop.CreatedAt,
	}

	event, err := pkgkafka.NewEvent(TopicShopCreated, shop.ID, AggregateTypeShop, SourceShopReview, data)
	if err != nil {
		return fmt.Errorf("create shop.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicShopCreated, event); err != nil {
		return fmt.Errorf("publish shop.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published shop.created event",
		slog.String("shop_id", shop.ID),
	)

	return nil
}

// PublishShopRatingUpdated publishes a shop.rating_updated event after a
// recompute.
func (p *Producer) PublishShopRatingUpdated(ctx context.Context, shopID string, summary *domain.RatingSummary) error {
	data := ShopRatingUpdatedData{
		ShopID:        shopID,
		AverageRating: summary.AverageRating,
		ReviewCount:   summary.ReviewCount,
	}

	event, err := pkgkafka.NewEvent(TopicShopRatingUpdated, shopID, AggregateTypeShop, SourceShopReview, data)
	if err != nil {
		return fmt.Errorf("create shop.rating_updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicShopRatingUpdated, event); err != nil {
		return fmt.Errorf("publish shop.rating_updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published shop.rating_updated event",
		slog.String("shop_id", shopID),
	)

	return nil
}

// PublishReviewCreated publishes a review.created event.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	data := ReviewCreatedData{
		ID:       review.ID,
		ShopID:   review.ShopID,
		Rating:   review.Rating,
		Reviewer: review.Reviewer,
		Date:     review.Date,
	}

	event, err := pkgkafka.NewEvent(TopicReviewCreated, review.ID, AggregateTypeReview, SourceShopReview, data)
	if err != nil {
		return fmt.Errorf("create review.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewCreated, event); err != nil {
		return fmt.Errorf("publish review.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.created event",
		slog.String("review_id", review.ID),
		slog.String("shop_id", review.ShopID),
	)

	return nil
}

// PublishReviewDeleted publishes a review.deleted event.
func (p *Producer) PublishReviewDeleted(ctx context.Context, review *domain.Review) error {
	data := ReviewDeletedData{
		ID:     review.ID,
		ShopID: review.ShopID,
	}

	event, err := pkgkafka.NewEvent(TopicReviewDeleted, review.ID, AggregateTypeReview, SourceShopReview, data)
	if err != nil {
		return fmt.Errorf("create review.deleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewDeleted, event); err != nil {
		return fmt.Errorf("publish review.deleted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.deleted event",
		slog.String("review_id", review.ID),
		slog.String("shop_id", review.ShopID),
	)

	return nil
}
