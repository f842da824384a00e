package usecases_port

import (
	"context"

	"gpu-price-service/internal/core/domain"
)

type GetGpusUseCasePort interface {
	Execute(ctx context.Context) ([]domain.GpuRecord, error)
}
