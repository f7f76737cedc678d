package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wakil120/ShopReview/internal/domain"
	"github.com/wakil120/ShopReview/pkg/database"
	apperrors "github.com/wakil120/ShopReview/pkg/errors"
)

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

const reviewColumns = "id, shop_id, rating, comment, reviewer, created_at"

// Create inserts a new review into the database.
func (r *ReviewRepository) Create(ctx context.Context, rev *domain.Review) error {
	query := `
		INSERT INTO reviews (id, shop_id, rating, comment, reviewer, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		rev.ID,
		rev.ShopID,
		rev.Rating,
		rev.Comment,
		rev.Reviewer,
		rev.Date,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

// GetByID retrieves a review by its ID.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE id = $1`, reviewColumns)

	var rev domain.Review

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rev.ID,
		&rev.ShopID,
		&rev.Rating,
		&rev.Comment,
		&rev.Reviewer,
		&rev.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("query review: %w", err)
	}

	return &rev, nil
}

// ListByShopID returns all reviews for a shop, newest first.
func (r *ReviewRepository) ListByShopID(ctx context.Context, shopID string) ([]domain.Review, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM reviews
		WHERE shop_id = $1
		ORDER BY created_at DESC`,
		reviewColumns,
	)

	rows, err := r.pool.Query(ctx, query, shopID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review

	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(
			&rev.ID,
			&rev.ShopID,
			&rev.Rating,
			&rev.Comment,
			&rev.Reviewer,
			&rev.Date,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, rev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	if reviews == nil {
		reviews = []domain.Review{}
	}

	return reviews, nil
}

// Delete removes a review and returns the deleted row.
func (r *ReviewRepository) Delete(ctx context.Context, id string) (*domain.Review, error) {
	query := fmt.Sprintf(`DELETE FROM reviews WHERE id = $1 RETURNING %s`, reviewColumns)

	var rev domain.Review

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rev.ID,
		&rev.ShopID,
		&rev.Rating,
		&rev.Comment,
		&rev.Reviewer,
		&rev.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("delete review: %w", err)
	}

	return &rev, nil
}

// RecalculateShopRating recomputes a shop's rating aggregate from its
// current reviews and persists it. The shop row is locked for the
// duration of the transaction so concurrent recomputes for the same shop
// serialize and the stored values always reflect a consistent review set.
func (r *ReviewRepository) RecalculateShopRating(ctx context.Context, shopID string) (*domain.RatingSummary, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx, `SELECT true FROM shops WHERE id = $1 FOR UPDATE`, shopID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("lock shop row: %w", err)
	}

	var (
		avg   *float64
		count int
	)
	err = tx.QueryRow(ctx, `SELECT AVG(rating), COUNT(*) FROM reviews WHERE shop_id = $1`, shopID).Scan(&avg, &count)
	if err != nil {
		return nil, fmt.Errorf("aggregate reviews: %w", err)
	}

	summary := &domain.RatingSummary{ReviewCount: count}
	if avg != nil {
		summary.AverageRating = domain.RoundRating(*avg)
	}

	_, err = tx.Exec(ctx,
		`UPDATE shops SET average_rating = $1, review_count = $2 WHERE id = $3`,
		summary.AverageRating, summary.ReviewCount, shopID,
	)
	if err != nil {
		return nil, fmt.Errorf("update shop rating: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return summary, nil
}
