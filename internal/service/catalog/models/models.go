package models

import (
	"time"

	"github.com/m04kA/SMC-CourtService/internal/domain"
)

// Request модели

// CreateFacilityRequest запрос на регистрацию площадки
type CreateFacilityRequest struct {
	OwnerID   int64
	Name      string
	Location  string
	Amenities []string
}

// CreateCourtRequest запрос на добавление корта
type CreateCourtRequest struct {
	FacilityID          int64
	OwnerID             int64
	SportType           string
	OpenTime            string // "06:00"
	CloseTime           string // "22:00"
	SlotDurationMinutes int
	BasePrice           float64
	WeekendPrice        *float64
}

// Response модели

// FacilityResponse ответ с данными площадки
type FacilityResponse struct {
	ID             int64     `json:"id"`
	OwnerID        int64     `json:"ownerId"`
	Name           string    `json:"name"`
	Location       string    `json:"location"`
	ApprovalStatus string    `json:"approvalStatus"`
	Amenities      []string  `json:"amenities"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CourtResponse ответ с данными корта
type CourtResponse struct {
	ID                  int64     `json:"id"`
	FacilityID          int64     `json:"facilityId"`
	SportType           string    `json:"sportType"`
	OpenTime            string    `json:"openTime"`
	CloseTime           string    `json:"closeTime"`
	SlotDurationMinutes int       `json:"slotDurationMinutes"`
	BasePrice           float64   `json:"basePrice"`
	WeekendPrice        *float64  `json:"weekendPrice,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// CourtListResponse ответ со списком кортов
type CourtListResponse struct {
	Courts []CourtResponse `json:"courts"`
}

// Методы конвертации

// FromDomainFacility конвертирует domain модель в DTO
func FromDomainFacility(f *domain.Facility) *FacilityResponse {
	if f == nil {
		return nil
	}

	amenities := f.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	return &FacilityResponse{
		ID:             f.ID,
		OwnerID:        f.OwnerID,
		Name:           f.Name,
		Location:       f.Location,
		ApprovalStatus: string(f.ApprovalStatus),
		Amenities:      amenities,
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}

// FromDomainCourt конвертирует domain модель в DTO
func FromDomainCourt(c *domain.Court) *CourtResponse {
	if c == nil {
		return nil
	}

	return &CourtResponse{
		ID:                  c.ID,
		FacilityID:          c.FacilityID,
		SportType:           c.SportType,
		OpenTime:            c.OpenTime.String(),
		CloseTime:           c.CloseTime.String(),
		SlotDurationMinutes: c.SlotDurationMinutes,
		BasePrice:           c.BasePrice,
		WeekendPrice:        c.WeekendPrice,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

// FromDomainCourtList конвертирует список кортов в DTO
func FromDomainCourtList(courts []*domain.Court) *CourtListResponse {
	resp := &CourtListResponse{
		Courts: make([]CourtResponse, 0, len(courts)),
	}

	for _, court := range courts {
		if courtResp := FromDomainCourt(court); courtResp != nil {
			resp.Courts = append(resp.Courts, *courtResp)
		}
	}

	return resp
}
