package create_reservation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/internal/infra/storage"
	"github.com/m04kA/SMC-LaundryService/pkg/txmanager"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.UserID) == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.DeviceID) == "" {
		return fmt.Errorf("%w: deviceID is required", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	return nil
}

// validatePolicy проверяет правила политики в порядке blackout, past, horizon
func validatePolicy(policy domain.BookingPolicy, start, now time.Time) error {
	if policy.InBlackout(start) {
		return &PolicyViolationError{
			Rule: domain.RuleBlackout,
			Detail: fmt.Sprintf("bookings cannot start between %02d:00 and %02d:00",
				policy.BlackoutStartHour, policy.BlackoutEndHour),
		}
	}

	if policy.RejectPast && start.Before(now) {
		return &PolicyViolationError{
			Rule:   domain.RulePast,
			Detail: "start time is in the past",
		}
	}

	if policy.EnforceHorizon && !start.Before(policy.HorizonEnd(now)) {
		return &PolicyViolationError{
			Rule:   domain.RuleHorizon,
			Detail: fmt.Sprintf("can only book %d days in advance", policy.HorizonDays),
		}
	}

	return nil
}

// mapStoreError переводит ошибки хранилища и менеджера транзакций в ошибки usecase
func mapStoreError(err error, op string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: %s: %v", ErrDeviceNotFound, op, err)
	case errors.Is(err, errRetryable):
		return err
	case isSerializationFailure(err):
		return fmt.Errorf("%w: %s: %v", errRetryable, op, err)
	case errors.Is(err, storage.ErrConflict):
		return fmt.Errorf("%w: %s: %v", ErrSlotConflict, op, err)
	case errors.Is(err, storage.ErrUnavailable), errors.Is(err, txmanager.ErrBeginTx):
		return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
	default:
		return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
	}
}

// isSerializationFailure транзакцию прервала конкурентная, повтор может пройти
func isSerializationFailure(err error) bool {
	return errors.Is(err, errRetryable) ||
		errors.Is(err, txmanager.ErrSerialization) ||
		errors.Is(err, storage.ErrSerialization)
}

// isUsecaseError сообщает, что ошибка уже переведена в терминах usecase
func isUsecaseError(err error) bool {
	return errors.Is(err, ErrDeviceNotFound) ||
		errors.Is(err, ErrPolicyViolation) ||
		errors.Is(err, ErrSlotConflict) ||
		errors.Is(err, ErrStoreUnavailable) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInternal)
}

// isExpectedFailure ошибки, вызванные запросом, а не сбоем сервиса
func isExpectedFailure(err error) bool {
	return errors.Is(err, ErrSlotConflict) || errors.Is(err, ErrDeviceNotFound)
}
