package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wakil120/ShopReview/internal/repository"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, repository.SearchModeAny, cfg.SearchMode())
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
}

func TestLoad_InvalidSearchMode(t *testing.T) {
	t.Setenv("SEARCH_TERM_MODE", "some")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_AllSearchMode(t *testing.T) {
	t.Setenv("SEARCH_TERM_MODE", "all")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, repository.SearchModeAll, cfg.SearchMode())
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "70000")

	_, err := Load()
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	dsn := cfg.Postgres().DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "shopreview_db")
	assert.Contains(t, dsn, "sslmode=disable")
}
