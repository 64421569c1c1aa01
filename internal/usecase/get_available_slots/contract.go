package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetCourtByID(ctx context.Context, id int64) (*domain.Court, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByCourtAndDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.Booking, error)
}

// ModerationGate интерфейс сервиса модерации.
// Флаги одобрения НЕ кешируются - каждый запрос проходит через gate.
type ModerationGate interface {
	AuthorizeFacilityForBooking(ctx context.Context, facilityID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
