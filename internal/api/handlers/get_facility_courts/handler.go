package get_facility_courts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtService/internal/service/catalog"
)

const (
	msgInvalidFacilityID   = "некорректный ID площадки"
	msgFacilityNotFound    = "площадка не найдена"
	msgFacilityNotApproved = "площадка не прошла модерацию"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/courts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	facilityID, err := strconv.ParseInt(vars["facilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/courts - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	courts, err := h.service.GetFacilityCourts(r.Context(), facilityID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/{id}/courts - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, catalog.ErrFacilityNotApproved):
			h.logger.Warn("GET /facilities/{id}/courts - Facility not approved: facility_id=%d", facilityID)
			handlers.RespondForbidden(w, msgFacilityNotApproved)

		default:
			h.logger.Error("GET /facilities/{id}/courts - Failed to get courts: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facilities/{id}/courts - Courts retrieved: facility_id=%d, count=%d",
		facilityID, len(courts.Courts))
	handlers.RespondJSON(w, http.StatusOK, courts)
}
