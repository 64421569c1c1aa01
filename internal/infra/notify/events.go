package notify

import (
	"time"

	"github.com/m04kA/SMC-CourtService/internal/domain"
)

// Routing keys публикуемых событий жизненного цикла бронирования
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
	EventBookingCompleted = "booking.completed"
)

// BookingEvent envelope события для downstream-потребителей
// (уведомления, отчёты). EventID уникален и служит ключом идемпотентности
// на стороне потребителя.
type BookingEvent struct {
	EventID    string  `json:"event_id"`
	Event      string  `json:"event"`
	BookingID  int64   `json:"booking_id"`
	UserID     int64   `json:"user_id"`
	CourtID    int64   `json:"court_id"`
	FacilityID int64   `json:"facility_id"`
	Date       string  `json:"date"`       // YYYY-MM-DD
	StartTime  string  `json:"start_time"` // HH:MM
	EndTime    string  `json:"end_time"`   // HH:MM
	Status     string  `json:"status"`
	Amount     float64 `json:"amount"`
	OccurredAt string  `json:"occurred_at"` // RFC3339
}

// NewBookingEvent собирает envelope события из бронирования
func NewBookingEvent(eventID, event string, b *domain.Booking, occurredAt time.Time) BookingEvent {
	return BookingEvent{
		EventID:    eventID,
		Event:      event,
		BookingID:  b.ID,
		UserID:     b.UserID,
		CourtID:    b.CourtID,
		FacilityID: b.FacilityID,
		Date:       b.BookingDate.Format(domain.DateFormat),
		StartTime:  b.StartTime.String(),
		EndTime:    b.EndTime.String(),
		Status:     string(b.Status),
		Amount:     b.TotalAmount,
		OccurredAt: occurredAt.Format(time.RFC3339),
	}
}
