// price-updater - одноразовый батч-прогон конвейера обновления цен,
// тот же конвейер, что и у POST /api/update-prices.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"gpu-price-service/internal/adapters/jsonstore"
	logger_adapter "gpu-price-service/internal/adapters/logger"
	"gpu-price-service/internal/adapters/mercadolibre"
	"gpu-price-service/internal/contextkeys"
	"gpu-price-service/internal/core/domain"
	"gpu-price-service/internal/core/usecase"
)

const defaultSearchURL = "https://api.mercadolibre.com/sites/MLA/search"

// Пауза по умолчанию, чтобы не долбить публичный эндпоинт.
const defaultSleepSeconds = 0.35

func main() {
	dataFile := flag.String("data-file", "data/gpus.json", "path to the GPU dataset JSON file")
	maxResults := flag.Int("max-results", 10, "number of search results to inspect per GPU")
	dryRun := flag.Bool("dry-run", false, "fetch prices but do not overwrite the JSON file")
	sleepSeconds := flag.Float64("sleep", defaultSleepSeconds, "seconds to wait between requests")
	flag.Parse()

	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    slog.LevelInfo,
		UseColor: true,
	})

	searchURL := defaultSearchURL
	if envURL := os.Getenv("ML_SEARCH_URL"); envURL != "" {
		searchURL = envURL
	}

	datasetStore := jsonstore.New(*dataFile)
	priceClient := mercadolibre.NewClient(searchURL)
	updatePrices := usecase.NewUpdatePricesUseCase(datasetStore, priceClient)

	ctx := contextkeys.ContextWithLogger(context.Background(), logger)

	sleep := *sleepSeconds
	if sleep < 0 {
		sleep = 0
	}

	result, err := updatePrices.Execute(ctx, domain.UpdateParams{
		MaxResults:   *maxResults,
		DryRun:       *dryRun,
		SleepSeconds: sleep,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDatasetNotFound) {
			log.Fatalf("Data file not found: %s", *dataFile)
		}
		log.Fatalf("Price update failed: %v", err)
	}

	switch {
	case result.DryRun:
		fmt.Printf("Dry run: %d gpus checked, %d price changes found, data file not modified.\n",
			result.GpuCount, len(result.Changes))
	case result.Updated:
		fmt.Printf("Updated %s: %d gpus, %d price changes.\n",
			result.DataFile, result.GpuCount, len(result.Changes))
	default:
		fmt.Println("Prices already up to date; no changes written.")
	}
}
