package get_availability

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/internal/infra/storage"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil || strings.TrimSpace(req.DeviceID) == "" {
		return fmt.Errorf("%w: deviceID is required", ErrInvalidInput)
	}
	return nil
}

// selectDays оставляет запрошенную дату, если она задана и входит в горизонт
func selectDays(policy domain.BookingPolicy, now time.Time, date *time.Time) ([]time.Time, error) {
	days := horizonDays(policy, now)
	if date == nil {
		return days, nil
	}

	for _, day := range days {
		if sameDate(day, *date) {
			return []time.Time{day}, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrDateOutOfHorizon, date.Format(domain.DateFormat))
}

// sameDate сравнивает календарные даты без учёта часового пояса date
func sameDate(day, date time.Time) bool {
	y1, m1, d1 := day.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func mapStoreError(err error, op string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: %s: %v", ErrDeviceNotFound, op, err)
	case errors.Is(err, storage.ErrUnavailable):
		return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
	default:
		return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
	}
}
