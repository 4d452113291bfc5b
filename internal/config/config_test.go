package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_URL", "")
	t.Setenv("CART_ID", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("STOREFRONT_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, 1, cfg.CartID)
	assert.Nil(t, cfg.KafkaBrokers)
	assert.Zero(t, cfg.HTTPTimeout)
	assert.Equal(t, DefaultTuning(), cfg.Tuning)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("API_URL", "https://shop.example.com/")
	t.Setenv("CART_ID", "7")
	t.Setenv("KAFKA_BROKERS", "k1:9092, ,k2:9092")
	t.Setenv("HTTP_TIMEOUT", "2s")
	t.Setenv("STOREFRONT_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com", cfg.APIURL)
	assert.Equal(t, 7, cfg.CartID)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 2*time.Second, cfg.HTTPTimeout)
}

func TestLoad_TuningOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("page_size: 24\nsearch_debounce: 500ms\n"), 0o600))
	t.Setenv("STOREFRONT_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 24, cfg.Tuning.PageSize)
	assert.Equal(t, 500*time.Millisecond, cfg.Tuning.SearchDebounce)
	assert.Equal(t, 100, cfg.Tuning.CategoryPageSize)
}

func TestLoad_BadTuningFile(t *testing.T) {
	t.Setenv("STOREFRONT_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
}

func TestEnvIntDefault_InvalidFallsBack(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	assert.Equal(t, 5, EnvIntDefault("SOME_INT", 5))
}
