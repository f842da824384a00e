package mercadolibre

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchMinPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Проверяем параметры запроса и браузерные заголовки
		query := r.URL.Query()
		assert.Equal(t, "rtx 4060", query.Get("q"))
		assert.Equal(t, "10", query.Get("limit"))
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
		assert.Equal(t, "es-AR,es;q=0.9,en;q=0.8", r.Header.Get("Accept-Language"))

		response := SearchResponse{
			Results: []ListingResponse{
				{Price: 520000, CurrencyID: "ARS"},
				{Price: 480000.7, CurrencyID: "ARS"},
				{Price: 400, CurrencyID: "USD"}, // не ARS, должен быть отброшен
				{Price: 495000, CurrencyID: "ARS"},
			},
		}
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	price, found, err := client.FetchMinPrice(context.Background(), "rtx 4060", 10)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 480000.7, price)
}

func TestFetchMinPriceNoARSListings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := SearchResponse{
			Results: []ListingResponse{
				{Price: 400, CurrencyID: "USD"},
			},
		}
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	price, found, err := client.FetchMinPrice(context.Background(), "rtx 4060", 10)

	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, price)
}

func TestFetchMinPriceEmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(SearchResponse{})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, found, err := client.FetchMinPrice(context.Background(), "rtx 4060", 10)

	require.NoError(t, err)
	assert.False(t, found)
}

func TestFetchMinPriceServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, found, err := client.FetchMinPrice(context.Background(), "rtx 4060", 10)

	assert.Error(t, err)
	assert.False(t, found)
}

func TestFetchMinPriceTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // закрываем сразу: любой запрос упадет на транспорте

	client := NewClient(server.URL)
	_, found, err := client.FetchMinPrice(context.Background(), "rtx 4060", 10)

	assert.Error(t, err)
	assert.False(t, found)
}
