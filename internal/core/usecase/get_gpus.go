package usecase

import (
	"context"

	"gpu-price-service/internal/contextkeys"
	"gpu-price-service/internal/core/domain"
	"gpu-price-service/internal/core/port"
)

// GetGpusUseCase отдает датасет как есть.
type GetGpusUseCase struct {
	dataset port.DatasetPort
}

func NewGetGpusUseCase(dataset port.DatasetPort) *GetGpusUseCase {
	return &GetGpusUseCase{dataset: dataset}
}

func (uc *GetGpusUseCase) Execute(ctx context.Context) ([]domain.GpuRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "GetGpus"})

	records, err := uc.dataset.Load(ctx)
	if err != nil {
		logger.Error("Failed to load dataset", err, nil)
		return nil, err
	}

	logger.Debug("Dataset loaded", port.Fields{"gpu_count": len(records)})

	return records, nil
}
