package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gpu-price-service/internal/core/domain"
)

// Store реализует DatasetPort поверх одного JSON-файла.
// Файл всегда перезаписывается целиком; temp-файла и atomic rename нет,
// конкурентные писатели не координируются (последний побеждает).
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load читает и разбирает весь датасет. Схема не проверяется сверх того,
// что гарантирует сам разбор JSON.
func (s *Store) Load(_ context.Context) ([]domain.GpuRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDatasetNotFound, s.path)
		}
		return nil, fmt.Errorf("failed to read dataset file %s: %w", s.path, err)
	}

	var records []domain.GpuRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse dataset file %s: %w", s.path, err)
	}

	return records, nil
}

// Save сериализует весь датасет обратно: отступ в два пробела,
// завершающий перевод строки.
func (s *Store) Save(_ context.Context, records []domain.GpuRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write dataset file %s: %w", s.path, err)
	}

	return nil
}
