package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	"github.com/m04kA/SMC-CourtService/internal/infra/notify"
	bookingRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CourtService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByFacilityWithFilter(ctx context.Context, filter domain.FacilityBookingsFilter) ([]*domain.Booking, error)
	UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) error
	CancelIf(ctx context.Context, id int64, from domain.BookingStatus, reason string) error
	GetElapsedConfirmed(ctx context.Context, today time.Time, nowTime types.TimeString) ([]*domain.Booking, error)
	AggregateByFacility(ctx context.Context, facilityID int64, from, to *time.Time) ([]bookingRepo.StatusStat, error)
}

// CatalogRepository интерфейс репозитория каталога (площадки)
type CatalogRepository interface {
	GetFacilityByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// EventPublisher интерфейс публикации событий жизненного цикла.
// Реализация обязана быть fire-and-forget: Publish не блокирует вызывающего.
type EventPublisher interface {
	Publish(event notify.BookingEvent)
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
