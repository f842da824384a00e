package mercadolibre

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"gpu-price-service/internal/contextkeys"
	"gpu-price-service/internal/core/port"
)

// Заголовки "как у браузера", чтобы публичный эндпоинт не отсекал нас как бота.
const (
	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	acceptHeader         = "application/json, text/plain, */*"
	acceptLanguageHeader = "es-AR,es;q=0.9,en;q=0.8"
)

// Client - клиент публичного поискового API MercadoLibre (sites/MLA/search).
// Один запрос на вызов: без пагинации, без ретраев, без кэша.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient - конструктор. baseURL - полный URL поискового эндпоинта,
// например "https://api.mercadolibre.com/sites/MLA/search".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// doRequest - внутренний хелпер для выполнения запросов
func (c *Client) doRequest(ctx context.Context, fullURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", acceptLanguageHeader)

	return c.httpClient.Do(req)
}

// FetchMinPrice реализует PriceSourcePort: один поисковый запрос,
// фильтр по валюте ARS, минимум по цене.
func (c *Client) FetchMinPrice(ctx context.Context, query string, maxResults int) (float64, bool, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "MercadoLibreClient",
		"query":     query,
	})

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(maxResults))
	fullURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	clientLogger.Debug("Sending search request to MercadoLibre", port.Fields{"url": fullURL})

	resp, err := c.doRequest(ctx, fullURL)
	if err != nil {
		clientLogger.Error("Failed to perform request to MercadoLibre", err, nil)
		return 0, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("mercadolibre returned non-success status code %d: %s", resp.StatusCode, string(bodyBytes))
		clientLogger.Error("Received error response from MercadoLibre", err, port.Fields{"status_code": resp.StatusCode})
		return 0, false, err
	}

	var search SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		clientLogger.Error("Failed to decode response from MercadoLibre", err, nil)
		return 0, false, err
	}

	// Берём только объявления в ARS; всё остальное (USD и т.д.) игнорируем.
	minPrice := 0.0
	found := false
	for _, listing := range search.Results {
		if listing.CurrencyID != "ARS" {
			continue
		}
		if !found || listing.Price < minPrice {
			minPrice = listing.Price
			found = true
		}
	}

	if !found {
		clientLogger.Warn("No ARS prices found in search results", port.Fields{"results_count": len(search.Results)})
		return 0, false, nil
	}

	clientLogger.Debug("Minimum ARS price extracted", port.Fields{"price": minPrice})

	return minPrice, true, nil
}
