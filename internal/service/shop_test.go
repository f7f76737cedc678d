package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wakil120/ShopReview/internal/domain"
	"github.com/wakil120/ShopReview/internal/repository"
	apperrors "github.com/wakil120/ShopReview/pkg/errors"
)

func newTestShopService(repo *mockShopRepository, mode repository.SearchMode) *ShopService {
	return NewShopService(repo, newTestProducer(), newTestLogger(), mode)
}

func strPtr(s string) *string {
	return &s
}

// --- CreateShop Tests ---

func TestCreateShop_Success(t *testing.T) {
	repo := new(mockShopRepository)
	svc := newTestShopService(repo, repository.SearchModeAny)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Shop) bool {
		return s.Name == "Brew Lab" && s.Category == "Cafe" && s.Location == "Ankara"
	})).Return(nil)

	shop, err := svc.CreateShop(context.Background(), &CreateShopInput{
		Name:     "Brew Lab",
		Category: "Cafe",
		Location: "Ankara",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, shop.ID)
	assert.Zero(t, shop.AverageRating)
	assert.Zero(t, shop.ReviewCount)
	assert.False(t, shop.CreatedAt.IsZero())

	repo.AssertExpectations(t)
}

func TestCreateShop_TrimsButPreservesCasing(t *testing.T) {
	repo := new(mockShopRepository)
	svc := newTestShopService(repo, repository.SearchModeAny)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Shop) bool {
		return s.Name == "BREW lab" && s.Category == "Cafe"
	})).Return(nil)

	shop, err := svc.CreateShop(context.Background(), &CreateShopInput{
		Name:     "  BREW lab  ",
		Category: " Cafe ",
		Location: "Ankara",
	})
	require.NoError(t, err)
	assert.Equal(t, "BREW lab", shop.Name)
}

func TestCreateShop_Validation(t *testing.T) {
	repo := new(mockShopRepository)
	svc := newTestShopService(repo, repository.SearchModeAny)

	tests := []struct {
		name  string
		input CreateShopInput
	}{
		{"missing name", CreateShopInput{Category: "Cafe", Location: "Ankara"}},
		{"blank name", CreateShopInput{Name: "   ", Category: "Cafe", Location: "Ankara"}},
		{"missing category", CreateShopInput{Name: "Brew Lab", Location: "Ankara"}},
		{"missing location", CreateShopInput{Name: "Brew Lab", Category: "Cafe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shop, err := svc.CreateShop(context.Background(), &tt.input)
			assert.Nil(t, shop)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}

	repo.AssertNotCalled(t, "Create")
}

// --- GetShop Tests ---

func TestGetShop_NotFound(t *testing.T) {
	repo := new(mockShopRepository)
	svc := newTestShopService(repo, repository.SearchModeAny)

	repo.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound)

	shop, err := svc.GetShop(context.Background(), "missing")
	assert.Nil(t, shop)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// --- ListShops Tests ---

func TestListShops_PassesFilter(t *testing.T) {
	repo := new(mockShopRepository)
	svc := newTestShopService(repo, repository.SearchModeAny)

	filter := repository.ShopFilter{Category: strPtr("Cafe"), Location: strPtr("Ankara")}
	repo.On("List", mock.Anything, filter).Return([]domain.Shop{{Name: "Brew Lab"}}, nil)

	shops, err := svc.ListShops(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, shops, 1)

	repo.AssertExpectations(t)
}

// --- SearchShops Tests ---

func TestSearchShops_SplitsQueryIntoTerms(t *testing.T) {
	repo := new(mockShopRepository)
	svc := newTestShopService(repo, repository.SearchModeAny)

	repo.On("SearchByName", mock.Anything, []string{"coffee", "tea"}, repository.SearchModeAny).
		Return([]domain.Shop{{Name: "Coffee Corner"}}, nil)

	shops, err := svc.SearchShops(context.Background(), "  coffee   tea ")
	require.NoError(t, err)
	assert.Len(t, shops, 1)

	repo.AssertExpectations(t)
}

func TestSearchShops_AllModePassedThrough(t *testing.T) {
	repo := new(mockShopRepository)
	svc := newTestShopService(repo, repository.SearchModeAll)

	repo.On("SearchByName", mock.Anything, []string{"brew", "lab"}, repository.SearchModeAll).
		Return([]domain.Shop{}, nil)

	_, err := svc.SearchShops(context.Background(), "brew lab")
	require.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestSearchShops_BlankQuery(t *testing.T) {
	repo := new(mockShopRepository)
	svc := newTestShopService(repo, repository.SearchModeAny)

	shops, err := svc.SearchShops(context.Background(), "   ")
	assert.Nil(t, shops)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	repo.AssertNotCalled(t, "SearchByName")
}

// --- Compare Tests ---

func TestCompareShopsByID_Success(t *testing.T) {
	repo := new(mockShopRepository)
	svc := newTestShopService(repo, repository.SearchModeAny)

	shop1 := &domain.Shop{ID: "a", Name: "Brew Lab", AverageRating: 4.5, ReviewCount: 10}
	shop2 := &domain.Shop{ID: "b", Name: "Tea House", AverageRating: 3.9, ReviewCount: 25}

	repo.On("GetByID", mock.Anything, "a").Return(shop1, nil)
	repo.On("GetByID", mock.Anything, "b").Return(shop2, nil)

	result, err := svc.CompareShopsByID(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "Brew Lab", result.Comparison.HigherRated)
	assert.Equal(t, "Tea House", result.Comparison.MoreReviews)
	assert.Equal(t, 0.6, result.Comparison.RatingDifference)
	assert.Equal(t, shop1, result.Shop1)
	assert.Equal(t, shop2, result.Shop2)
}

func TestCompareShopsByID_SecondShopMissing(t *testing.T) {
	repo := new(mockShopRepository)
	svc := newTestShopService(repo, repository.SearchModeAny)

	repo.On("GetByID", mock.Anything, "a").Return(&domain.Shop{ID: "a"}, nil)
	repo.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound)

	result, err := svc.CompareShopsByID(context.Background(), "a", "missing")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCompareShopsByName_ExactMatchPreferred(t *testing.T) {
	repo := new(mockShopRepository)
	svc := newTestShopService(repo, repository.SearchModeAny)

	exact := &domain.Shop{ID: "a", Name: "Brew Lab", AverageRating: 4.0}
	other := &domain.Shop{ID: "b", Name: "Tea House", AverageRating: 3.0}

	repo.On("FindByExactName", mock.Anything, "brew lab").Return(exact, nil)
	repo.On("FindByExactName", mock.Anything, "Tea House").Return(other, nil)

	result, err := svc.CompareShopsByName(context.Background(), "brew lab", "Tea House")
	require.NoError(t, err)
	assert.Equal(t, "Brew Lab", result.Comparison.HigherRated)

	repo.AssertNotCalled(t, "FindByNameLike")
}

func TestCompareShopsByName_FallsBackToFuzzy(t *testing.T) {
	repo := new(mockShopRepository)
	svc := newTestShopService(repo, repository.SearchModeAny)

	fuzzy := &domain.Shop{ID: "a", Name: "Brew Lab Coffee", AverageRating: 4.0}
	other := &domain.Shop{ID: "b", Name: "Tea House", AverageRating: 3.0}

	repo.On("FindByExactName", mock.Anything, "brew").Return(nil, apperrors.ErrNotFound)
	repo.On("FindByNameLike", mock.Anything, "brew").Return(fuzzy, nil)
	repo.On("FindByExactName", mock.Anything, "Tea House").Return(other, nil)

	result, err := svc.CompareShopsByName(context.Background(), "brew", "Tea House")
	require.NoError(t, err)
	assert.Equal(t, "Brew Lab Coffee", result.Shop1.Name)
}

func TestCompareShopsByName_NeitherMatchFound(t *testing.T) {
	repo := new(mockShopRepository)
	svc := newTestShopService(repo, repository.SearchModeAny)

	repo.On("FindByExactName", mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound)
	repo.On("FindByNameLike", mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound)

	result, err := svc.CompareShopsByName(context.Background(), "ghost", "whatever")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
