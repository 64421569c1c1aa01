package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking represents a court reservation in the system
type Booking struct {
	ID         int64
	UserID     int64
	CourtID    int64
	FacilityID int64 // денормализация для выборок по площадке

	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      BookingStatus

	// TotalAmount фиксируется при создании и больше не меняется
	TotalAmount float64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its slot
// (only pending and confirmed bookings block availability)
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if the booking reached a final status
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted
}

// CanTransitionTo reports whether the status state machine allows
// the transition from the current status to the target one.
// Pending   -> Confirmed | Cancelled
// Confirmed -> Completed | Cancelled
// Cancelled and Completed are terminal.
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusCompleted || target == StatusCancelled
	case StatusCancelled, StatusCompleted:
		return false
	default:
		return false
	}
}

// Overlaps reports whether the booking's half-open interval [start, end)
// overlaps the given window. Touching boundaries do not overlap.
func (b *Booking) Overlaps(start, end types.TimeString) bool {
	return b.StartTime.IsBefore(end) && b.EndTime.IsAfter(start)
}

// FacilityBookingsFilter фильтр для выборки бронирований площадки
type FacilityBookingsFilter struct {
	FacilityID      int64
	CourtID         *int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *BookingStatus
	IncludeInactive bool // включать ли отменённые и завершённые
}

// ValidBookingStatus проверяет, что строка является допустимым статусом
func ValidBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return BookingStatus(s), true
	default:
		return "", false
	}
}
