package rest

import "gpu-price-service/internal/core/domain"

// UpdatePricesRequestDTO - тело POST-запроса на обновление цен.
// Указатели отличают "поле не задано" от нулевого значения: пустое тело
// запроса означает значения по умолчанию.
type UpdatePricesRequestDTO struct {
	DryRun       bool     `json:"dry_run"`
	MaxResults   *int     `json:"max_results"`   // [1, 50], по умолчанию 10
	SleepSeconds *float64 `json:"sleep_seconds"` // [0, 2], по умолчанию 0
}

type UpdatePricesResponseDTO struct {
	DryRun   bool                 `json:"dry_run"`
	Updated  bool                 `json:"updated"`
	GpuCount int                  `json:"gpu_count"`
	DataFile string               `json:"data_file"`
	Changes  []domain.PriceChange `json:"changes"`
}
