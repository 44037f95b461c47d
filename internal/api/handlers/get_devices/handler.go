package get_devices

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/service/devices"
)

const (
	msgInvalidCategory  = "некорректная категория, ожидается washer или dryer"
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

// Handle GET /api/v1/devices
// Query params: category (optional, washer|dryer)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	result, err := h.service.List(r.Context(), category)
	if err != nil {
		switch {
		case errors.Is(err, devices.ErrInvalidCategory):
			h.logger.Warn("GET /devices - Invalid category: %q", category)
			handlers.RespondBadRequest(w, msgInvalidCategory)

		case errors.Is(err, devices.ErrStoreUnavailable):
			h.logger.Error("GET /devices - Store unavailable: %v", err)
			handlers.RespondUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("GET /devices - Failed to list devices: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /devices - Devices retrieved: category=%q, count=%d", category, len(result.Devices))
	handlers.RespondJSON(w, http.StatusOK, result)
}
