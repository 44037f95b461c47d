package get_devices

import (
	"context"

	"github.com/m04kA/SMC-LaundryService/internal/service/devices/models"
)

type DeviceService interface {
	List(ctx context.Context, category string) (*models.DeviceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
