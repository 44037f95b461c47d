package create_reservation

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/domain"
	createReservation "github.com/m04kA/SMC-LaundryService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequest   = "некорректный формат запроса"
	msgMissingStartTime = "не указано время начала"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgInvalidInput     = "некорректные данные бронирования"
	msgDeviceNotFound   = "устройство не найдено"
	msgSlotConflict     = "выбранное время пересекается с существующим бронированием"
	msgUnavailable      = "хранилище временно недоступно, повторите запрос"

	msgRuleBlackout  = "бронирование не может начинаться в ночное время"
	msgRulePast      = "время начала уже прошло"
	msgRuleHorizon   = "время начала за пределами горизонта бронирования"
	msgRuleMalformed = "некорректное время начала, ожидается RFC 3339 с часовым поясом"
	msgRuleUnknown   = "время начала нарушает правила бронирования"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	if strings.TrimSpace(req.StartTime) == "" {
		h.logger.Warn("POST /reservations - Missing start time: device_id=%s", req.DeviceID)
		handlers.RespondBadRequest(w, msgMissingStartTime)
		return
	}

	// Неразбираемое время начала нарушает правило политики, как blackout или horizon
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Policy violation: device_id=%s, rule=%s, start=%q: %v",
			req.DeviceID, domain.RuleMalformedTime, req.StartTime, err)
		handlers.RespondPolicyViolation(w, domain.RuleMalformedTime, msgRuleMalformed)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var violation *createReservation.PolicyViolationError
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrDeviceNotFound):
			h.logger.Warn("POST /reservations - Device not found: device_id=%s", req.DeviceID)
			handlers.RespondNotFound(w, msgDeviceNotFound)

		case errors.As(err, &violation):
			h.logger.Warn("POST /reservations - Policy violation: device_id=%s, rule=%s", req.DeviceID, violation.Rule)
			handlers.RespondPolicyViolation(w, violation.Rule, ruleMessage(violation.Rule))

		case errors.Is(err, createReservation.ErrSlotConflict):
			h.logger.Warn("POST /reservations - Slot conflict: device_id=%s, start=%s", req.DeviceID, req.StartTime)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createReservation.ErrStoreUnavailable):
			h.logger.Error("POST /reservations - Store unavailable: %v", err)
			handlers.RespondUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%s, device_id=%s, error=%v",
				userID, req.DeviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: id=%d, device_id=%s, user_id=%s, start=%s",
		result.ID, result.DeviceID, userID, result.StartAt.Format("2006-01-02 15:04"))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func ruleMessage(rule string) string {
	switch rule {
	case domain.RuleBlackout:
		return msgRuleBlackout
	case domain.RulePast:
		return msgRulePast
	case domain.RuleHorizon:
		return msgRuleHorizon
	case domain.RuleMalformedTime:
		return msgRuleMalformed
	default:
		return msgRuleUnknown
	}
}
