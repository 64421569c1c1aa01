package get_facility_courts

import (
	"context"

	"github.com/m04kA/SMC-CourtService/internal/service/catalog/models"
)

type CatalogService interface {
	GetFacilityCourts(ctx context.Context, facilityID int64) (*models.CourtListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
