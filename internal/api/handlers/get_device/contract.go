package get_device

import (
	"context"

	"github.com/m04kA/SMC-LaundryService/internal/service/devices/models"
)

type DeviceService interface {
	GetByID(ctx context.Context, id string) (*models.DeviceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
