package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"gpu-price-service/internal/contextkeys"
	"gpu-price-service/internal/core/domain"
	"gpu-price-service/internal/core/port"
)

// UpdatePricesUseCase - конвейер обновления цен: load -> fetch по каждой записи ->
// save (если что-то изменилось и это не dry run). Записи обрабатываются строго
// последовательно, один запрос к маркетплейсу на запись, без ретраев.
type UpdatePricesUseCase struct {
	dataset port.DatasetPort
	prices  port.PriceSourcePort
}

func NewUpdatePricesUseCase(dataset port.DatasetPort, prices port.PriceSourcePort) *UpdatePricesUseCase {
	return &UpdatePricesUseCase{
		dataset: dataset,
		prices:  prices,
	}
}

// Execute - основной метод
func (uc *UpdatePricesUseCase) Execute(ctx context.Context, params domain.UpdateParams) (*domain.UpdateResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "UpdatePrices",
		"max_results": params.MaxResults,
		"dry_run":     params.DryRun,
	})

	records, err := uc.dataset.Load(ctx)
	if err != nil {
		ucLogger.Error("Failed to load dataset", err, nil)
		return nil, fmt.Errorf("could not load dataset: %w", err)
	}

	ucLogger.Info("Starting price refresh", port.Fields{"gpu_count": len(records)})

	// Один проход по записям формирует и список изменений, и флаг updated.
	// Отдельного сравнения снимков до/после нет: два независимых вычисления
	// могли бы разойтись на граничном округлении.
	changes := make([]domain.PriceChange, 0)

	for i := range records {
		record := &records[i]

		query := record.Query()
		if query == "" {
			ucLogger.Warn("GPU entry has neither 'mlQuery' nor 'name'; skipping", nil)
			continue
		}

		price, found, err := uc.prices.FetchMinPrice(ctx, query, params.MaxResults)
		if err != nil {
			// Транзиентная ошибка одной записи не прерывает весь прогон.
			ucLogger.Error("Failed to fetch price, keeping previous value", err, port.Fields{"query": query})
			continue
		}
		if !found {
			continue
		}

		newPrice := int64(math.Round(price))
		oldPrice := record.PriceARS

		// Присваиваем безусловно, даже если значение не поменялось.
		record.PriceARS = &newPrice

		if oldPrice == nil || *oldPrice != newPrice {
			changes = append(changes, domain.PriceChange{
				Name:        record.Name,
				OldPriceARS: oldPrice,
				NewPriceARS: newPrice,
			})
		}

		ucLogger.Info("Fetched price", port.Fields{"query": query, "price_ars": newPrice})

		if params.SleepSeconds > 0 {
			// Пауза вежливости между запросами. Это не настоящий rate limiter:
			// задержка самого запроса не учитывается.
			if err := sleep(ctx, params.SleepSeconds); err != nil {
				return nil, err
			}
		}
	}

	result := &domain.UpdateResult{
		DryRun:   params.DryRun,
		Updated:  len(changes) > 0,
		GpuCount: len(records),
		DataFile: uc.dataset.Path(),
		Changes:  changes,
	}

	if params.DryRun {
		// Dry run никогда не пишет файл и всегда отчитывается как "не обновлено".
		result.Updated = false
		ucLogger.Info("Dry run enabled; dataset file not modified", port.Fields{"changes": len(changes)})
		return result, nil
	}

	if result.Updated {
		if err := uc.dataset.Save(ctx, records); err != nil {
			ucLogger.Error("Failed to save dataset", err, nil)
			return nil, fmt.Errorf("could not save dataset: %w", err)
		}
		ucLogger.Info("Dataset updated", port.Fields{"changes": len(changes)})
	} else {
		ucLogger.Info("Prices already up to date; nothing written", nil)
	}

	return result, nil
}

func sleep(ctx context.Context, seconds float64) error {
	select {
	case <-time.After(time.Duration(seconds * float64(time.Second))):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
