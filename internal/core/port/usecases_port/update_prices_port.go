package usecases_port

import (
	"context"

	"gpu-price-service/internal/core/domain"
)

type UpdatePricesUseCasePort interface {
	Execute(ctx context.Context, params domain.UpdateParams) (*domain.UpdateResult, error)
}
