package models

import (
	"time"

	"github.com/m04kA/SMC-CourtService/internal/domain"
)

// Decision решение владельца площадки по заявке на бронирование
type Decision string

const (
	DecisionConfirm Decision = "confirm"
	DecisionReject  Decision = "reject"
)

// Request модели

// DecideBookingRequest запрос владельца на подтверждение/отклонение заявки
type DecideBookingRequest struct {
	OwnerID  int64
	Decision Decision
	Reason   string // используется при отклонении
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	ActorID int64
	Reason  string
}

// GetUserBookingsRequest запрос истории бронирований пользователя
type GetUserBookingsRequest struct {
	UserID  int64
	ActorID int64
	Status  *string
}

// GetFacilityBookingsRequest запрос бронирований площадки с фильтрацией
type GetFacilityBookingsRequest struct {
	FacilityID      int64
	ActorID         int64
	CourtID         *int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *string
	IncludeInactive bool
}

// ToDomainFilter конвертирует запрос в domain фильтр
func (r *GetFacilityBookingsRequest) ToDomainFilter() (domain.FacilityBookingsFilter, error) {
	filter := domain.FacilityBookingsFilter{
		FacilityID:      r.FacilityID,
		CourtID:         r.CourtID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, ok := domain.ValidBookingStatus(*r.Status)
		if !ok {
			return domain.FacilityBookingsFilter{}, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// GetFacilityReportRequest запрос отчёта по площадке за период
type GetFacilityReportRequest struct {
	FacilityID int64
	ActorID    int64
	From       *time.Time
	To         *time.Time
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"userId"`
	CourtID     int64   `json:"courtId"`
	FacilityID  int64   `json:"facilityId"`
	BookingDate string  `json:"bookingDate"` // "2025-10-15"
	StartTime   string  `json:"startTime"`   // "10:00"
	EndTime     string  `json:"endTime"`     // "11:00"
	Status      string  `json:"status"`
	TotalAmount float64 `json:"totalAmount"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FacilityReportResponse отчёт по площадке: количество и суммы по статусам.
// Revenue считается только по confirmed и completed бронированиям.
type FacilityReportResponse struct {
	FacilityID int64            `json:"facilityId"`
	From       *string          `json:"from,omitempty"`
	To         *string          `json:"to,omitempty"`
	Counts     map[string]int64 `json:"counts"`
	Revenue    float64          `json:"revenue"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		CourtID:            b.CourtID,
		FacilityID:         b.FacilityID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		EndTime:            b.EndTime.String(),
		Status:             string(b.Status),
		TotalAmount:        b.TotalAmount,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
