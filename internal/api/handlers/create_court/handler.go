package create_court

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtService/internal/service/catalog"
	"github.com/m04kA/SMC-CourtService/internal/service/catalog/models"
)

const (
	msgInvalidFacilityID  = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgFacilityNotFound   = "площадка не найдена"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные данные корта"
)

// CreateCourtRequest HTTP request model
type CreateCourtRequest struct {
	SportType           string   `json:"sportType"`
	OpenTime            string   `json:"openTime"`  // "06:00"
	CloseTime           string   `json:"closeTime"` // "22:00"
	SlotDurationMinutes int      `json:"slotDurationMinutes"`
	BasePrice           float64  `json:"basePrice"`
	WeekendPrice        *float64 `json:"weekendPrice,omitempty"`
}

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

// Handle POST /api/v1/facilities/{facilityId}/courts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	facilityID, err := strconv.ParseInt(vars["facilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /facilities/{id}/courts - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /facilities/{id}/courts - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateCourtRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /facilities/{id}/courts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	court, err := h.service.CreateCourt(r.Context(), &models.CreateCourtRequest{
		FacilityID:          facilityID,
		OwnerID:             ownerID,
		SportType:           req.SportType,
		OpenTime:            req.OpenTime,
		CloseTime:           req.CloseTime,
		SlotDurationMinutes: req.SlotDurationMinutes,
		BasePrice:           req.BasePrice,
		WeekendPrice:        req.WeekendPrice,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrFacilityNotFound):
			h.logger.Warn("POST /facilities/{id}/courts - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("POST /facilities/{id}/courts - Access denied: facility_id=%d, owner_id=%d",
				facilityID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /facilities/{id}/courts - Invalid input: facility_id=%d: %v", facilityID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /facilities/{id}/courts - Failed to create court: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /facilities/{id}/courts - Court created: court_id=%d, facility_id=%d", court.ID, facilityID)
	handlers.RespondJSON(w, http.StatusCreated, court)
}
