package create_reservation

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
	LockDevice(ctx context.Context, deviceID string) error
	ListByDeviceInRange(ctx context.Context, deviceID string, from, to time.Time) ([]*domain.Reservation, error)
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder учёт исходов бронирования
type MetricsRecorder interface {
	ObserveReservation(outcome string)
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
