package catalog

import (
	"context"

	"github.com/m04kA/SMC-CourtService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	CreateFacility(ctx context.Context, facility *domain.Facility) (*domain.Facility, error)
	GetFacilityByID(ctx context.Context, id int64) (*domain.Facility, error)
	CreateCourt(ctx context.Context, court *domain.Court) (*domain.Court, error)
	GetCourtByID(ctx context.Context, id int64) (*domain.Court, error)
	GetCourtsByFacility(ctx context.Context, facilityID int64) ([]*domain.Court, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
