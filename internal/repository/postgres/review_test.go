package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wakil120/ShopReview/internal/domain"
	"github.com/wakil120/ShopReview/pkg/database"
	apperrors "github.com/wakil120/ShopReview/pkg/errors"
)

func newReviewTestRepo(t *testing.T) (*ReviewRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewReviewRepository(mock)
	return repo, mock
}

func sampleReview() *domain.Review {
	return &domain.Review{
		ID:       "5b3c1d10-1f1e-4a8e-9d4c-6f3a0b2c9b52",
		ShopID:   "1f1e9b52-8a0a-4a8e-9d4c-6f3a0b2c1d10",
		Rating:   4,
		Comment:  "Great pour-over",
		Reviewer: "mina",
		Date:     time.Now().UTC().Truncate(time.Microsecond),
	}
}

func reviewRows(reviews ...*domain.Review) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "shop_id", "rating", "comment", "reviewer", "created_at"})
	for _, rev := range reviews {
		rows.AddRow(rev.ID, rev.ShopID, rev.Rating, rev.Comment, rev.Reviewer, rev.Date)
	}
	return rows
}

// --- Create Tests ---

func TestReviewRepository_Create_Success(t *testing.T) {
	repo, mock := newReviewTestRepo(t)

	rev := sampleReview()

	mock.ExpectExec("INSERT INTO reviews").
		WithArgs(rev.ID, rev.ShopID, rev.Rating, rev.Comment, rev.Reviewer, rev.Date).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), rev)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// --- GetByID Tests ---

func TestReviewRepository_GetByID_Success(t *testing.T) {
	repo, mock := newReviewTestRepo(t)

	rev := sampleReview()

	mock.ExpectQuery("SELECT (.+) FROM reviews WHERE id =").
		WithArgs(rev.ID).
		WillReturnRows(reviewRows(rev))

	got, err := repo.GetByID(context.Background(), rev.ID)
	require.NoError(t, err)
	assert.Equal(t, rev.Comment, got.Comment)
	assert.Equal(t, rev.Rating, got.Rating)
}

func TestReviewRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newReviewTestRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM reviews WHERE id =").
		WithArgs("missing").
		WillReturnRows(reviewRows())

	got, err := repo.GetByID(context.Background(), "missing")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// --- ListByShopID Tests ---

func TestReviewRepository_ListByShopID(t *testing.T) {
	repo, mock := newReviewTestRepo(t)

	a, b := sampleReview(), sampleReview()
	b.ID = "6c4d2e21-1f1e-4a8e-9d4c-6f3a0b2c9b52"

	mock.ExpectQuery("ORDER BY created_at DESC").
		WithArgs(a.ShopID).
		WillReturnRows(reviewRows(a, b))

	got, err := repo.ListByShopID(context.Background(), a.ShopID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestReviewRepository_ListByShopID_EmptyResultIsNotNil(t *testing.T) {
	repo, mock := newReviewTestRepo(t)

	mock.ExpectQuery("FROM reviews").
		WithArgs("any").
		WillReturnRows(reviewRows())

	got, err := repo.ListByShopID(context.Background(), "any")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// --- Delete Tests ---

func TestReviewRepository_Delete_ReturnsDeletedRow(t *testing.T) {
	repo, mock := newReviewTestRepo(t)

	rev := sampleReview()

	mock.ExpectQuery("DELETE FROM reviews WHERE id = (.+) RETURNING").
		WithArgs(rev.ID).
		WillReturnRows(reviewRows(rev))

	got, err := repo.Delete(context.Background(), rev.ID)
	require.NoError(t, err)
	assert.Equal(t, rev.ShopID, got.ShopID)
	assert.Equal(t, rev.Rating, got.Rating)
}

func TestReviewRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newReviewTestRepo(t)

	mock.ExpectQuery("DELETE FROM reviews").
		WithArgs("missing").
		WillReturnRows(reviewRows())

	got, err := repo.Delete(context.Background(), "missing")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// --- RecalculateShopRating Tests ---

func TestReviewRepository_RecalculateShopRating_Success(t *testing.T) {
	repo, mock := newReviewTestRepo(t)

	shopID := "1f1e9b52-8a0a-4a8e-9d4c-6f3a0b2c1d10"
	avg := 4.5

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT true FROM shops WHERE id = (.+) FOR UPDATE").
		WithArgs(shopID).
		WillReturnRows(pgxmock.NewRows([]string{"bool"}).AddRow(true))
	mock.ExpectQuery(`SELECT AVG\(rating\), COUNT\(\*\) FROM reviews`).
		WithArgs(shopID).
		WillReturnRows(pgxmock.NewRows([]string{"avg", "count"}).AddRow(&avg, 2))
	mock.ExpectExec("UPDATE shops SET average_rating").
		WithArgs(4.5, 2, shopID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	got, err := repo.RecalculateShopRating(context.Background(), shopID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, got.AverageRating)
	assert.Equal(t, 2, got.ReviewCount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_RecalculateShopRating_RoundsAverage(t *testing.T) {
	repo, mock := newReviewTestRepo(t)

	shopID := "1f1e9b52-8a0a-4a8e-9d4c-6f3a0b2c1d10"
	avg := 14.0 / 3

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(shopID).
		WillReturnRows(pgxmock.NewRows([]string{"bool"}).AddRow(true))
	mock.ExpectQuery(`SELECT AVG\(rating\), COUNT\(\*\) FROM reviews`).
		WithArgs(shopID).
		WillReturnRows(pgxmock.NewRows([]string{"avg", "count"}).AddRow(&avg, 3))
	mock.ExpectExec("UPDATE shops SET average_rating").
		WithArgs(4.67, 3, shopID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	got, err := repo.RecalculateShopRating(context.Background(), shopID)
	require.NoError(t, err)
	assert.Equal(t, 4.67, got.AverageRating)
}

func TestReviewRepository_RecalculateShopRating_NoReviews(t *testing.T) {
	repo, mock := newReviewTestRepo(t)

	shopID := "1f1e9b52-8a0a-4a8e-9d4c-6f3a0b2c1d10"

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(shopID).
		WillReturnRows(pgxmock.NewRows([]string{"bool"}).AddRow(true))
	mock.ExpectQuery(`SELECT AVG\(rating\), COUNT\(\*\) FROM reviews`).
		WithArgs(shopID).
		WillReturnRows(pgxmock.NewRows([]string{"avg", "count"}).AddRow(nil, 0))
	mock.ExpectExec("UPDATE shops SET average_rating").
		WithArgs(0.0, 0, shopID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	got, err := repo.RecalculateShopRating(context.Background(), shopID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.AverageRating)
	assert.Equal(t, 0, got.ReviewCount)
}

func TestReviewRepository_RecalculateShopRating_ShopMissing(t *testing.T) {
	repo, mock := newReviewTestRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"bool"}))
	mock.ExpectRollback()

	got, err := repo.RecalculateShopRating(context.Background(), "missing")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReviewRepository_RecalculateShopRating_AggregateError(t *testing.T) {
	repo, mock := newReviewTestRepo(t)

	shopID := "1f1e9b52-8a0a-4a8e-9d4c-6f3a0b2c1d10"

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(shopID).
		WillReturnRows(pgxmock.NewRows([]string{"bool"}).AddRow(true))
	mock.ExpectQuery(`SELECT AVG\(rating\), COUNT\(\*\) FROM reviews`).
		WithArgs(shopID).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	got, err := repo.RecalculateShopRating(context.Background(), shopID)
	assert.Nil(t, got)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}
