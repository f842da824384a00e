package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("testdata/nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, "gpu-price-service", cfg.AppName)
	assert.Equal(t, "8080", cfg.Rest.PORT)
	assert.Equal(t, "data/gpus.json", cfg.Dataset.File)
	assert.Equal(t, "https://api.mercadolibre.com/sites/MLA/search", cfg.MercadoLibre.SearchURL)
	assert.False(t, cfg.FluentBit.Enabled)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_NAME", "test-service")
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_FILE", "/tmp/gpus.json")
	t.Setenv("ML_SEARCH_URL", "http://localhost:8081/search")
	t.Setenv("FLUENTBIT_ENABLED", "true")
	t.Setenv("FLUENTBIT_HOST", "fluent-bit")
	t.Setenv("FLUENTBIT_PORT", "24224")

	cfg, err := LoadConfig("testdata/nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, "test-service", cfg.AppName)
	assert.Equal(t, "9090", cfg.Rest.PORT)
	assert.Equal(t, "/tmp/gpus.json", cfg.Dataset.File)
	assert.Equal(t, "http://localhost:8081/search", cfg.MercadoLibre.SearchURL)
	assert.True(t, cfg.FluentBit.Enabled)
	assert.Equal(t, "fluent-bit", cfg.FluentBit.Host)
	assert.Equal(t, 24224, cfg.FluentBit.Port)
}

func TestLoadConfigFluentBitWithoutHost(t *testing.T) {
	t.Setenv("FLUENTBIT_ENABLED", "true")
	t.Setenv("FLUENTBIT_HOST", "")

	cfg, err := LoadConfig("testdata/nonexistent.env")
	require.NoError(t, err)

	// Без хоста Fluent Bit тихо отключается
	assert.False(t, cfg.FluentBit.Enabled)
}
