package set_facility_approval

import (
	"context"

	"github.com/m04kA/SMC-CourtService/internal/domain"
)

type ModerationService interface {
	SetFacilityApproval(ctx context.Context, adminID, facilityID int64, status domain.ApprovalStatus) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
