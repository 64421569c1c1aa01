package moderation

import (
	"context"

	"github.com/m04kA/SMC-CourtService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	SetActive(ctx context.Context, id int64, active bool) error
	SetVerified(ctx context.Context, id int64, verified bool) error
}

// FacilityRepository интерфейс репозитория площадок (каталог)
type FacilityRepository interface {
	GetFacilityByID(ctx context.Context, id int64) (*domain.Facility, error)
	SetFacilityApproval(ctx context.Context, id int64, status domain.ApprovalStatus) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
