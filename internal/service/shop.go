package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wakil120/ShopReview/internal/domain"
	"github.com/wakil120/ShopReview/internal/event"
	"github.com/wakil120/ShopReview/internal/repository"
	apperrors "github.com/wakil120/ShopReview/pkg/errors"
)

// ShopService implements the business logic for shop operations.
type ShopService struct {
	repo       repository.ShopRepository
	producer   *event.Producer
	logger     *slog.Logger
	searchMode repository.SearchMode
}

// NewShopService creates a new shop service. searchMode controls whether
// multi-term name searches require any or all terms to match.
func NewShopService(repo repository.ShopRepository, producer *event.Producer, logger *slog.Logger, searchMode repository.SearchMode) *ShopService {
	if searchMode != repository.SearchModeAll {
		searchMode = repository.SearchModeAny
	}
	return &ShopService{
		repo:       repo,
		producer:   producer,
		logger:     logger,
		searchMode: searchMode,
	}
}

// CreateShopInput holds the parameters for registering a shop.
type CreateShopInput struct {
	Name     string
	Category string
	Location string
}

// ComparisonResult pairs the two resolved shops with their head-to-head
// verdict.
type ComparisonResult struct {
	Shop1      *domain.Shop      `json:"shop1"`
	Shop2      *domain.Shop      `json:"shop2"`
	Comparison domain.Comparison `json:"comparison"`
}

// CreateShop registers a new shop. Name, category and location are
// stored as given after trimming surrounding whitespace.
func (s *ShopService) CreateShop(ctx context.Context, input *CreateShopInput) (*domain.Shop, error) {
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)
	location := strings.TrimSpace(input.Location)

	if name == "" {
		return nil, apperrors.InvalidInput("shop name is required")
	}
	if category == "" {
		return nil, apperrors.InvalidInput("shop category is required")
	}
	if location == "" {
		return nil, apperrors.InvalidInput("shop location is required")
	}

	shop := &domain.Shop{
		ID:        uuid.New().String(),
		Name:      name,
		Category:  category,
		Location:  location,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, shop); err != nil {
		return nil, fmt.Errorf("create shop: %w", err)
	}

	if err := s.producer.PublishShopCreated(ctx, shop); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish shop.created event",
			slog.String("shop_id", shop.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "shop created",
		slog.String("shop_id", shop.ID),
		slog.String("name", shop.Name),
	)

	return shop, nil
}

// GetShop retrieves a shop by its ID.
func (s *ShopService) GetShop(ctx context.Context, id string) (*domain.Shop, error) {
	shop, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("shop", id)
		}
		return nil, fmt.Errorf("get shop by id: %w", err)
	}
	return shop, nil
}

// ListShops returns shops matching the filter, newest first.
func (s *ShopService) ListShops(ctx context.Context, filter repository.ShopFilter) ([]domain.Shop, error) {
	shops, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	return shops, nil
}

// SearchShops returns shops whose name matches the query, best rated
// first. The query is split on whitespace into terms; each term matches
// as a case-insensitive substring.
func (s *ShopService) SearchShops(ctx context.Context, query string) ([]domain.Shop, error) {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return nil, apperrors.InvalidInput("search query is required")
	}

	shops, err := s.repo.SearchByName(ctx, terms, s.searchMode)
	if err != nil {
		return nil, fmt.Errorf("search shops: %w", err)
	}

	return shops, nil
}

// CompareShopsByID compares two shops resolved by their IDs.
func (s *ShopService) CompareShopsByID(ctx context.Context, id1, id2 string) (*ComparisonResult, error) {
	shop1, err := s.GetShop(ctx, id1)
	if err != nil {
		return nil, err
	}

	shop2, err := s.GetShop(ctx, id2)
	if err != nil {
		return nil, err
	}

	return &ComparisonResult{
		Shop1:      shop1,
		Shop2:      shop2,
		Comparison: domain.Compare(shop1, shop2),
	}, nil
}

// CompareShopsByName compares two shops resolved by name. Each name is
// matched exactly first, ignoring case, then as a substring of the
// best-rated matching shop.
func (s *ShopService) CompareShopsByName(ctx context.Context, name1, name2 string) (*ComparisonResult, error) {
	shop1, err := s.resolveByName(ctx, name1)
	if err != nil {
		return nil, err
	}

	shop2, err := s.resolveByName(ctx, name2)
	if err != nil {
		return nil, err
	}

	return &ComparisonResult{
		Shop1:      shop1,
		Shop2:      shop2,
		Comparison: domain.Compare(shop1, shop2),
	}, nil
}

func (s *ShopService) resolveByName(ctx context.Context, name string) (*domain.Shop, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.InvalidInput("shop name is required")
	}

	shop, err := s.repo.FindByExactName(ctx, name)
	if err == nil {
		return shop, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("find shop by name: %w", err)
	}

	shop, err = s.repo.FindByNameLike(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFoundMsg(fmt.Sprintf("shop %q not found", name))
		}
		return nil, fmt.Errorf("find shop by name fragment: %w", err)
	}

	return shop, nil
}
