package get_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-LaundryService/internal/usecase/get_availability"
)

const (
	msgMissingDeviceID  = "ID устройства обязателен"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDeviceNotFound   = "устройство не найдено"
	msgDateOutOfHorizon = "дата вне горизонта бронирования"
	msgStoreUnavailable = "хранилище временно недоступно, повторите запрос"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/devices/{deviceId}/availability
// Query params: date (optional, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["deviceId"]
	if deviceID == "" {
		handlers.RespondBadRequest(w, msgMissingDeviceID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(deviceID, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /devices/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrDeviceNotFound):
			h.logger.Warn("GET /devices/{id}/availability - Device not found: device_id=%s", deviceID)
			handlers.RespondNotFound(w, msgDeviceNotFound)

		case errors.Is(err, getAvailability.ErrDateOutOfHorizon):
			h.logger.Warn("GET /devices/{id}/availability - Date out of horizon: %v", err)
			handlers.RespondBadRequest(w, msgDateOutOfHorizon)

		case errors.Is(err, getAvailability.ErrStoreUnavailable):
			h.logger.Error("GET /devices/{id}/availability - Store unavailable: %v", err)
			handlers.RespondUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("GET /devices/{id}/availability - Failed to get availability: device_id=%s, error=%v", deviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /devices/{id}/availability - Availability retrieved: device_id=%s, days=%d, slots=%d",
		deviceID, len(result.Days), slotCount(result))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
