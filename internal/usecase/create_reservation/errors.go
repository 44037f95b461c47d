package create_reservation

import (
	"errors"
	"fmt"
)

var (
	// ErrDeviceNotFound возвращается, когда устройство не найдено в реестре
	ErrDeviceNotFound = errors.New("create_reservation: device not found")

	// ErrPolicyViolation возвращается, когда время начала нарушает правило политики.
	// Конкретное правило доступно через *PolicyViolationError
	ErrPolicyViolation = errors.New("create_reservation: policy violation")

	// ErrSlotConflict возвращается, когда интервал пересекается с существующим бронированием
	ErrSlotConflict = errors.New("create_reservation: slot conflicts with an existing reservation")

	// ErrStoreUnavailable возвращается, когда хранилище недоступно; ничего не записано, запрос можно повторить
	ErrStoreUnavailable = errors.New("create_reservation: store unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")

	// errRetryable транзакция прервана конкурентной, её нужно выполнить заново
	errRetryable = errors.New("create_reservation: transaction aborted by a concurrent one")
)

// PolicyViolationError нарушение конкретного правила (blackout, past, horizon)
type PolicyViolationError struct {
	Rule   string
	Detail string
}

func (e *PolicyViolationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", ErrPolicyViolation, e.Rule)
	}
	return fmt.Sprintf("%s: %s: %s", ErrPolicyViolation, e.Rule, e.Detail)
}

// Is позволяет сравнивать через errors.Is(err, ErrPolicyViolation)
func (e *PolicyViolationError) Is(target error) bool {
	return target == ErrPolicyViolation
}

// Исходы для метрик
const (
	OutcomeSuccess         = "success"
	OutcomeConflict        = "conflict"
	OutcomePolicyViolation = "policy_violation"
	OutcomeNotFound        = "not_found"
	OutcomeInvalid         = "invalid"
	OutcomeUnavailable     = "store_unavailable"
	OutcomeError           = "error"
)

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrSlotConflict):
		return OutcomeConflict
	case errors.Is(err, ErrPolicyViolation):
		return OutcomePolicyViolation
	case errors.Is(err, ErrDeviceNotFound):
		return OutcomeNotFound
	case errors.Is(err, ErrInvalidInput):
		return OutcomeInvalid
	case errors.Is(err, ErrStoreUnavailable):
		return OutcomeUnavailable
	default:
		return OutcomeError
	}
}
