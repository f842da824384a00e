package port

import (
	"context"

	"gpu-price-service/internal/core/domain"
)

// DatasetPort - контракт хранилища датасета.
// Единственное разделяемое состояние приложения - файл датасета; хранилище
// передается в фасады явно, чтобы тесты могли подставить временный файл.
type DatasetPort interface {
	// Load читает весь датасет. Если файла нет, возвращает domain.ErrDatasetNotFound.
	Load(ctx context.Context) ([]domain.GpuRecord, error)

	// Save перезаписывает файл целиком. Частичной записи и блокировок нет.
	Save(ctx context.Context, records []domain.GpuRecord) error

	// Path возвращает путь к файлу датасета (для ответа API и логов).
	Path() string
}
