package get_device_schedule

import (
	"context"

	"github.com/m04kA/SMC-LaundryService/internal/service/reservations/models"
)

type ReservationService interface {
	DeviceSchedule(ctx context.Context, deviceID string) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
