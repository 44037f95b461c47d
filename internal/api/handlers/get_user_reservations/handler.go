package get_user_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/service/reservations"
	"github.com/m04kA/SMC-LaundryService/internal/service/reservations/models"
)

const (
	msgMissingUserID    = "отсутствует ID пользователя"
	msgInvalidUpcoming  = "параметр upcoming должен быть true или false"
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

// Handle GET /api/v1/me/reservations
// Query params: upcoming (optional, bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /me/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq := &models.ListUserReservationsRequest{UserID: userID}
	if upcoming := r.URL.Query().Get("upcoming"); upcoming != "" {
		value, err := strconv.ParseBool(upcoming)
		if err != nil {
			h.logger.Warn("GET /me/reservations - Invalid upcoming flag: %q", upcoming)
			handlers.RespondBadRequest(w, msgInvalidUpcoming)
			return
		}
		serviceReq.UpcomingOnly = value
	}

	result, err := h.service.ListForUser(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, reservations.ErrStoreUnavailable) {
			h.logger.Error("GET /me/reservations - Store unavailable: %v", err)
			handlers.RespondUnavailable(w, msgStoreUnavailable)
			return
		}
		h.logger.Error("GET /me/reservations - Failed to list reservations: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /me/reservations - Reservations retrieved: user_id=%s, count=%d", userID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
