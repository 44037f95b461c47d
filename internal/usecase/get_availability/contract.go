package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// DeviceRepository источник устройств (реестр)
type DeviceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Device, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// ListByDeviceInRange активные бронирования устройства, пересекающиеся с [from, to)
	ListByDeviceInRange(ctx context.Context, deviceID string, from, to time.Time) ([]*domain.Reservation, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
