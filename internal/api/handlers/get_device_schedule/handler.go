package get_device_schedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/service/reservations"
)

const (
	msgDeviceNotFound   = "устройство не найдено"
	msgStoreUnavailable = "хранилище временно недоступно, повторите запрос"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/devices/{deviceId}/reservations
// Только интервалы, без данных о пользователях
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["deviceId"]

	schedule, err := h.service.DeviceSchedule(r.Context(), deviceID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrDeviceNotFound):
			h.logger.Warn("GET /devices/{id}/reservations - Device not found: device_id=%s", deviceID)
			handlers.RespondNotFound(w, msgDeviceNotFound)

		case errors.Is(err, reservations.ErrStoreUnavailable):
			h.logger.Error("GET /devices/{id}/reservations - Store unavailable: %v", err)
			handlers.RespondUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("GET /devices/{id}/reservations - Failed to get schedule: device_id=%s, error=%v", deviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /devices/{id}/reservations - Schedule retrieved: device_id=%s, intervals=%d",
		deviceID, len(schedule.Intervals))
	handlers.RespondJSON(w, http.StatusOK, schedule)
}
