// Command seed loads sample shops and reviews into an empty database.
// It is a no-op when the store already holds shops, so it is safe to run
// on every deploy.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/wakil120/ShopReview/internal/config"
	"github.com/wakil120/ShopReview/internal/domain"
	"github.com/wakil120/ShopReview/internal/repository/postgres"
	"github.com/wakil120/ShopReview/migrations"
	"github.com/wakil120/ShopReview/pkg/database"
	"github.com/wakil120/ShopReview/pkg/logger"
)

type sampleShop struct {
	name     string
	category string
	location string
}

type sampleReview struct {
	shopIndex int
	rating    int
	comment   string
	reviewer  string
}

var sampleShops = []sampleShop{
	{"Pizza Paradise", "restaurant", "Downtown"},
	{"Sushi Master", "restaurant", "Mall Center"},
	{"Burger King", "restaurant", "Main Street"},
	{"Thai Heaven", "restaurant", "Midtown"},
	{"Coffee Corner", "restaurant", "Business District"},
}

var sampleReviews = []sampleReview{
	{0, 5, "Best pizza in town!", "John Doe"},
	{0, 4, "Great taste, bit pricey", "Jane Smith"},
	{1, 5, "Fresh and delicious", "Mike Johnson"},
	{2, 3, "Average quality", "Sarah Lee"},
	{3, 4, "Authentic Thai food", "Tom Wilson"},
}

func main() {
	if err := run(); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New("shopreview-seed", cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	shopRepo := postgres.NewShopRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)

	count, err := shopRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count shops: %w", err)
	}
	if count > 0 {
		log.Info("store already populated, skipping seed", slog.Int("shops", count))
		return nil
	}

	now := time.Now().UTC()
	shops := make([]*domain.Shop, 0, len(sampleShops))

	for i, s := range sampleShops {
		shop := &domain.Shop{
			ID:       uuid.New().String(),
			Name:     s.name,
			Category: s.category,
			Location: s.location,
			// Stagger creation times so newest-first listing is stable.
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		}
		if err := shopRepo.Create(ctx, shop); err != nil {
			return fmt.Errorf("create shop %q: %w", s.name, err)
		}
		shops = append(shops, shop)
	}

	touched := make(map[string]bool)
	for i, r := range sampleReviews {
		shop := shops[r.shopIndex]
		review := &domain.Review{
			ID:       uuid.New().String(),
			ShopID:   shop.ID,
			Rating:   r.rating,
			Comment:  r.comment,
			Reviewer: r.reviewer,
			Date:     now.Add(time.Duration(i) * time.Second),
		}
		if err := reviewRepo.Create(ctx, review); err != nil {
			return fmt.Errorf("create review for %q: %w", shop.Name, err)
		}
		touched[shop.ID] = true
	}

	for shopID := range touched {
		if _, err := reviewRepo.RecalculateShopRating(ctx, shopID); err != nil {
			return fmt.Errorf("recalculate rating for shop %s: %w", shopID, err)
		}
	}

	log.Info("seed complete",
		slog.Int("shops", len(shops)),
		slog.Int("reviews", len(sampleReviews)),
	)

	return nil
}
