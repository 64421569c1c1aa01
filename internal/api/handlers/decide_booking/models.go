package decide_booking

import (
	"github.com/m04kA/SMC-CourtService/internal/service/bookings/models"
)

// DecideBookingRequest HTTP request model
type DecideBookingRequest struct {
	Decision string `json:"decision"` // "confirm" | "reject"
	Reason   string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *DecideBookingRequest) ToServiceRequest(ownerID int64) (*models.DecideBookingRequest, bool) {
	decision := models.Decision(r.Decision)
	if decision != models.DecisionConfirm && decision != models.DecisionReject {
		return nil, false
	}

	return &models.DecideBookingRequest{
		OwnerID:  ownerID,
		Decision: decision,
		Reason:   r.Reason,
	}, true
}
