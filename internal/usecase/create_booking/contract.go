package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	"github.com/m04kA/SMC-CourtService/internal/infra/notify"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetCourtByID(ctx context.Context, id int64) (*domain.Court, error)
}

// BookingRepository интерфейс репозитория бронирований.
// Внутри транзакции GetActiveByCourtAndDate блокирует строки (FOR UPDATE).
type BookingRepository interface {
	GetActiveByCourtAndDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ModerationGate интерфейс сервиса модерации.
// Проверки пользователя и площадки выполняются на каждый запрос.
type ModerationGate interface {
	AuthorizeBooker(ctx context.Context, userID int64) error
	AuthorizeFacilityForBooking(ctx context.Context, facilityID int64) error
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
