package get_device

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/service/devices"
)

const (
	msgDeviceNotFound   = "устройство не найдено"
	msgStoreUnavailable = "хранилище временно недоступно, повторите запрос"
)

type Handler struct {
	service DeviceService
	logger  Logger
}

func NewHandler(service DeviceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/devices/{deviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["deviceId"]

	device, err := h.service.GetByID(r.Context(), deviceID)
	if err != nil {
		switch {
		case errors.Is(err, devices.ErrDeviceNotFound):
			h.logger.Warn("GET /devices/{id} - Device not found: device_id=%s", deviceID)
			handlers.RespondNotFound(w, msgDeviceNotFound)

		case errors.Is(err, devices.ErrStoreUnavailable):
			h.logger.Error("GET /devices/{id} - Store unavailable: %v", err)
			handlers.RespondUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("GET /devices/{id} - Failed to get device: device_id=%s, error=%v", deviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, device)
}
