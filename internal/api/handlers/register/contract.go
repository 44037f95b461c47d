package register

import (
	"context"

	"github.com/m04kA/SMC-LaundryService/internal/service/auth/models"
)

type AuthService interface {
	Register(ctx context.Context, req *models.CredentialsRequest) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
