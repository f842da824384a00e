package mercadolibre

// SearchResponse - интересующая нас часть ответа sites/MLA/search.
type SearchResponse struct {
	Results []ListingResponse `json:"results"`
}

type ListingResponse struct {
	Price      float64 `json:"price"`
	CurrencyID string  `json:"currency_id"`
}
