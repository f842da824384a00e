package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"gpu-price-service/internal/contextkeys"
	"gpu-price-service/internal/core/domain"
	"gpu-price-service/internal/core/port"
	"gpu-price-service/internal/core/port/usecases_port"
)

const (
	defaultMaxResults = 10
	maxMaxResults     = 50
	maxSleepSeconds   = 2.0
)

type GpuHandlers struct {
	getGpusUC      usecases_port.GetGpusUseCasePort
	updatePricesUC usecases_port.UpdatePricesUseCasePort
}

// NewGpuHandlers - конструктор для наших обработчиков.
func NewGpuHandlers(getGpusUC usecases_port.GetGpusUseCasePort,
	updatePricesUC usecases_port.UpdatePricesUseCasePort) *GpuHandlers {
	return &GpuHandlers{
		getGpusUC:      getGpusUC,
		updatePricesUC: updatePricesUC,
	}
}

// HandleGetGpus - обработчик для GET /api/gpus. Отдает датасет как есть.
func (h *GpuHandlers) HandleGetGpus(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleGetGpus"})

	records, err := h.getGpusUC.Execute(r.Context())
	if err != nil {
		logger.Error("Get gpus use case failed", err, nil)
		if errors.Is(err, domain.ErrDatasetNotFound) {
			WriteJSONError(w, http.StatusInternalServerError, "Dataset file does not exist")
			return
		}
		WriteJSONError(w, http.StatusInternalServerError, "Failed to load gpu dataset")
		return
	}

	RespondWithJSON(w, http.StatusOK, records)
}

// HandleUpdatePrices - обработчик для POST /api/update-prices.
func (h *GpuHandlers) HandleUpdatePrices(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleUpdatePrices"})

	// 1. Декодируем тело запроса. Пустое тело допустимо и означает
	// параметры по умолчанию.
	var reqDTO UpdatePricesRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil && err != io.EOF {
		logger.Error("Failed to decode request body", err, nil)
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// 2. Подставляем значения по умолчанию и валидируем диапазоны
	// до запуска конвейера.
	maxResults := defaultMaxResults
	if reqDTO.MaxResults != nil {
		maxResults = *reqDTO.MaxResults
	}
	if maxResults < 1 || maxResults > maxMaxResults {
		WriteJSONError(w, http.StatusBadRequest,
			fmt.Sprintf("Field 'max_results' must be between 1 and %d", maxMaxResults))
		return
	}

	sleepSeconds := 0.0
	if reqDTO.SleepSeconds != nil {
		sleepSeconds = *reqDTO.SleepSeconds
	}
	if sleepSeconds < 0 || sleepSeconds > maxSleepSeconds {
		WriteJSONError(w, http.StatusBadRequest,
			fmt.Sprintf("Field 'sleep_seconds' must be between 0 and %g", maxSleepSeconds))
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"dry_run":       reqDTO.DryRun,
		"max_results":   maxResults,
		"sleep_seconds": sleepSeconds,
	})
	handlerLogger.Info("Received request to update gpu prices", nil)

	// 3. Вызываем Use Case, передавая ему очищенные и проверенные данные.
	result, err := h.updatePricesUC.Execute(r.Context(), domain.UpdateParams{
		MaxResults:   maxResults,
		DryRun:       reqDTO.DryRun,
		SleepSeconds: sleepSeconds,
	})
	if err != nil {
		handlerLogger.Error("Update prices use case failed", err, nil)
		if errors.Is(err, domain.ErrDatasetNotFound) {
			WriteJSONError(w, http.StatusInternalServerError, "Dataset file does not exist")
			return
		}
		WriteJSONError(w, http.StatusInternalServerError, "Failed to update prices")
		return
	}

	handlerLogger.Info("Price update finished", port.Fields{
		"updated": result.Updated,
		"changes": len(result.Changes),
	})

	RespondWithJSON(w, http.StatusOK, UpdatePricesResponseDTO{
		DryRun:   result.DryRun,
		Updated:  result.Updated,
		GpuCount: result.GpuCount,
		DataFile: result.DataFile,
		Changes:  result.Changes,
	})
}

// HandleHealth - обработчик для GET /api/health.
func (h *GpuHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
