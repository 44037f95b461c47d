package devices

import (
	"context"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// DeviceRepository источник устройств (обычно кеш поверх репозитория)
type DeviceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Device, error)
	List(ctx context.Context) ([]*domain.Device, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
