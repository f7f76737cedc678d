package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/wakil120/ShopReview/internal/domain"
	"github.com/wakil120/ShopReview/internal/repository"
	"github.com/wakil120/ShopReview/pkg/database"
	apperrors "github.com/wakil120/ShopReview/pkg/errors"
)

// ShopRepository implements repository.ShopRepository using PostgreSQL.
type ShopRepository struct {
	pool database.DBTX
}

// NewShopRepository creates a new PostgreSQL-backed shop repository.
func NewShopRepository(pool database.DBTX) *ShopRepository {
	return &ShopRepository{pool: pool}
}

const shopColumns = "id, name, category, location, average_rating, review_count, created_at"

// Create inserts a new shop into the database.
func (r *ShopRepository) Create(ctx context.Context, s *domain.Shop) error {
	query := `
		INSERT INTO shops (id, name, category, location, average_rating, review_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		s.ID,
		s.Name,
		s.Category,
		s.Location,
		s.AverageRating,
		s.ReviewCount,
		s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shop: %w", err)
	}

	return nil
}

// GetByID retrieves a shop by its ID.
func (r *ShopRepository) GetByID(ctx context.Context, id string) (*domain.Shop, error) {
	query := fmt.Sprintf(`SELECT %s FROM shops WHERE id = $1`, shopColumns)

	return r.scanShop(ctx, query, id)
}

// List returns shops matching the given filter, newest first.
func (r *ShopRepository) List(ctx context.Context, filter repository.ShopFilter) ([]domain.Shop, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.Category != nil {
		conditions = append(conditions, fmt.Sprintf("LOWER(category) = LOWER($%d)", argIndex))
		args = append(args, *filter.Category)
		argIndex++
	}

	if filter.Location != nil {
		conditions = append(conditions, fmt.Sprintf("LOWER(location) = LOWER($%d)", argIndex))
		args = append(args, *filter.Location)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM shops
		%s
		ORDER BY created_at DESC`,
		shopColumns, whereClause,
	)

	return r.queryShops(ctx, query, args...)
}

// SearchByName returns shops whose name contains the given terms as
// case-insensitive substrings, highest rated first. With SearchModeAny a
// single matching term qualifies a shop; with SearchModeAll every term
// must match.
func (r *ShopRepository) SearchByName(ctx context.Context, terms []string, mode repository.SearchMode) ([]domain.Shop, error) {
	if len(terms) == 0 {
		return []domain.Shop{}, nil
	}

	var (
		conditions []string
		args       []any
	)

	for i, term := range terms {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", i+1))
		args = append(args, "%"+escapeLike(term)+"%")
	}

	joiner := " OR "
	if mode == repository.SearchModeAll {
		joiner = " AND "
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM shops
		WHERE %s
		ORDER BY average_rating DESC, created_at DESC`,
		shopColumns, strings.Join(conditions, joiner),
	)

	return r.queryShops(ctx, query, args...)
}

// FindByExactName retrieves a shop by case-insensitive exact name.
func (r *ShopRepository) FindByExactName(ctx context.Context, name string) (*domain.Shop, error) {
	query := fmt.Sprintf(`SELECT %s FROM shops WHERE LOWER(name) = LOWER($1)`, shopColumns)

	return r.scanShop(ctx, query, name)
}

// FindByNameLike retrieves the best-rated shop whose name contains the
// given fragment, case-insensitively.
func (r *ShopRepository) FindByNameLike(ctx context.Context, fragment string) (*domain.Shop, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM shops
		WHERE name ILIKE $1
		ORDER BY average_rating DESC, created_at DESC
		LIMIT 1`,
		shopColumns,
	)

	return r.scanShop(ctx, query, "%"+escapeLike(fragment)+"%")
}

// Count reports the number of shops in the store.
func (r *ShopRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM shops`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count shops: %w", err)
	}

	return count, nil
}

func (r *ShopRepository) scanShop(ctx context.Context, query string, args ...any) (*domain.Shop, error) {
	var s domain.Shop

	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&s.ID,
		&s.Name,
		&s.Category,
		&s.Location,
		&s.AverageRating,
		&s.ReviewCount,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("query shop: %w", err)
	}

	return &s, nil
}

func (r *ShopRepository) queryShops(ctx context.Context, query string, args ...any) ([]domain.Shop, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	defer rows.Close()

	var shops []domain.Shop

	for rows.Next() {
		var s domain.Shop
		if err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Category,
			&s.Location,
			&s.AverageRating,
			&s.ReviewCount,
			&s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan shop row: %w", err)
		}
		shops = append(shops, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shop rows: %w", err)
	}

	if shops == nil {
		shops = []domain.Shop{}
	}

	return shops, nil
}

// escapeLike escapes the ILIKE wildcard characters in user-supplied
// search input so terms match literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
