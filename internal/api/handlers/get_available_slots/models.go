package get_available_slots

import (
	"github.com/m04kA/SMC-CourtService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CourtService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель временного окна
type SlotResponse struct {
	StartTime   string `json:"startTime"` // "10:00"
	EndTime     string `json:"endTime"`   // "11:00"
	IsAvailable bool   `json:"isAvailable"`
}

// AvailableSlotsResponse HTTP модель расписания на день
type AvailableSlotsResponse struct {
	CourtID int64          `json:"courtId"`
	Date    string         `json:"date"` // "2025-10-15"
	Slots   []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:   slot.StartTime.String(),
			EndTime:     slot.EndTime.String(),
			IsAvailable: slot.IsAvailable,
		})
	}

	return &AvailableSlotsResponse{
		CourtID: resp.CourtID,
		Date:    resp.Date.Format(domain.DateFormat),
		Slots:   slots,
	}
}
