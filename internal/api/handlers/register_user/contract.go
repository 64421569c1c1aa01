package register_user

import (
	"context"

	"github.com/m04kA/SMC-CourtService/internal/domain"
)

type ModerationService interface {
	Register(ctx context.Context, name string, role domain.UserRole) (*domain.User, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
