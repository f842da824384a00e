package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpu-price-service/internal/adapters/jsonstore"
	"gpu-price-service/internal/core/usecase"
)

// stubPriceSource - подмена источника цен для тестов HTTP-фасада.
type stubPriceSource struct {
	price float64
	found bool
}

func (s *stubPriceSource) FetchMinPrice(_ context.Context, _ string, _ int) (float64, bool, error) {
	return s.price, s.found, nil
}

func newTestHandlers(t *testing.T, datasetContent string, source *stubPriceSource) (*GpuHandlers, *jsonstore.Store) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gpus.json")
	if datasetContent != "" {
		require.NoError(t, os.WriteFile(path, []byte(datasetContent), 0o644))
	}
	store := jsonstore.New(path)

	handlers := NewGpuHandlers(
		usecase.NewGetGpusUseCase(store),
		usecase.NewUpdatePricesUseCase(store, source),
	)
	return handlers, store
}

func TestHandleGetGpus(t *testing.T) {
	handlers, _ := newTestHandlers(t,
		`[{"name":"RTX 4060","priceArs":500000,"brand":"NVIDIA"}]`,
		&stubPriceSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/gpus", nil)
	rec := httptest.NewRecorder()
	handlers.HandleGetGpus(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`[{"name":"RTX 4060","priceArs":500000,"brand":"NVIDIA"}]`,
		rec.Body.String())
}

func TestHandleGetGpusMissingDataset(t *testing.T) {
	handlers, _ := newTestHandlers(t, "", &stubPriceSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/gpus", nil)
	rec := httptest.NewRecorder()
	handlers.HandleGetGpus(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleUpdatePrices(t *testing.T) {
	handlers, store := newTestHandlers(t,
		`[{"name":"RTX 4060","priceArs":500000}]`,
		&stubPriceSource{price: 480000.7, found: true})

	req := httptest.NewRequest(http.MethodPost, "/api/update-prices",
		strings.NewReader(`{"max_results": 5}`))
	rec := httptest.NewRecorder()
	handlers.HandleUpdatePrices(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp UpdatePricesResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.DryRun)
	assert.True(t, resp.Updated)
	assert.Equal(t, 1, resp.GpuCount)
	assert.Equal(t, store.Path(), resp.DataFile)
	require.Len(t, resp.Changes, 1)
	assert.Equal(t, "RTX 4060", resp.Changes[0].Name)
	require.NotNil(t, resp.Changes[0].OldPriceARS)
	assert.Equal(t, int64(500000), *resp.Changes[0].OldPriceARS)
	assert.Equal(t, int64(480001), resp.Changes[0].NewPriceARS)
}

func TestHandleUpdatePricesEmptyBodyUsesDefaults(t *testing.T) {
	handlers, _ := newTestHandlers(t,
		`[{"name":"RTX 4060","priceArs":500000}]`,
		&stubPriceSource{price: 500000, found: true})

	req := httptest.NewRequest(http.MethodPost, "/api/update-prices", nil)
	rec := httptest.NewRecorder()
	handlers.HandleUpdatePrices(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp UpdatePricesResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Updated) // та же цена - изменений нет
	assert.Empty(t, resp.Changes)
}

func TestHandleUpdatePricesDryRun(t *testing.T) {
	handlers, store := newTestHandlers(t,
		`[{"name":"RTX 4060","priceArs":500000}]`,
		&stubPriceSource{price: 480000.7, found: true})

	before, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/update-prices",
		strings.NewReader(`{"dry_run": true}`))
	rec := httptest.NewRecorder()
	handlers.HandleUpdatePrices(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp UpdatePricesResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.DryRun)
	assert.False(t, resp.Updated)
	assert.Len(t, resp.Changes, 1)

	after, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestHandleUpdatePricesValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"max_results too small", `{"max_results": 0}`},
		{"max_results too large", `{"max_results": 51}`},
		{"negative sleep", `{"sleep_seconds": -0.1}`},
		{"sleep too large", `{"sleep_seconds": 2.5}`},
		{"malformed json", `{"max_results": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlers, _ := newTestHandlers(t,
				`[{"name":"RTX 4060","priceArs":500000}]`,
				&stubPriceSource{price: 1, found: true})

			req := httptest.NewRequest(http.MethodPost, "/api/update-prices",
				strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handlers.HandleUpdatePrices(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleUpdatePricesMissingDataset(t *testing.T) {
	handlers, _ := newTestHandlers(t, "", &stubPriceSource{price: 1, found: true})

	req := httptest.NewRequest(http.MethodPost, "/api/update-prices",
		strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handlers.HandleUpdatePrices(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	handlers, _ := newTestHandlers(t, `[]`, &stubPriceSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handlers.HandleHealth(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
