package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	"github.com/m04kA/SMC-CourtService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64
	CourtID   int64
	Date      time.Time // дата операционного дня (без времени)
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	UserID      int64
	CourtID     int64
	FacilityID  int64
	Date        string // YYYY-MM-DD
	StartTime   string // HH:MM
	EndTime     string // HH:MM
	Status      string
	TotalAmount float64
	CreatedAt   time.Time
}

// fromDomain конвертирует доменную модель в ответ
func fromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:          b.ID,
		UserID:      b.UserID,
		CourtID:     b.CourtID,
		FacilityID:  b.FacilityID,
		Date:        b.BookingDate.Format(domain.DateFormat),
		StartTime:   b.StartTime.String(),
		EndTime:     b.EndTime.String(),
		Status:      string(b.Status),
		TotalAmount: b.TotalAmount,
		CreatedAt:   b.CreatedAt,
	}
}
