package create_facility

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtService/internal/service/catalog"
	"github.com/m04kA/SMC-CourtService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgUserNotFound       = "пользователь не найден"
	msgNotOwnerRole       = "требуется роль владельца площадки"
	msgInvalidInput       = "некорректные данные площадки"
)

// CreateFacilityRequest HTTP request model
type CreateFacilityRequest struct {
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Amenities []string `json:"amenities,omitempty"`
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

// Handle POST /api/v1/facilities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /facilities - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateFacilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /facilities - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	facility, err := h.service.CreateFacility(r.Context(), &models.CreateFacilityRequest{
		OwnerID:   ownerID,
		Name:      req.Name,
		Location:  req.Location,
		Amenities: req.Amenities,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrUserNotFound):
			h.logger.Warn("POST /facilities - User not found: owner_id=%d", ownerID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, catalog.ErrNotOwnerRole):
			h.logger.Warn("POST /facilities - Not an owner: owner_id=%d", ownerID)
			handlers.RespondForbidden(w, msgNotOwnerRole)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /facilities - Invalid input: owner_id=%d: %v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /facilities - Failed to create facility: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /facilities - Facility created: facility_id=%d, owner_id=%d", facility.ID, ownerID)
	handlers.RespondJSON(w, http.StatusCreated, facility)
}
