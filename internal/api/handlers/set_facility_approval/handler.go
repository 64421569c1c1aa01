package set_facility_approval

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtService/internal/domain"
	"github.com/m04kA/SMC-CourtService/internal/service/moderation"
)

const (
	msgInvalidFacilityID  = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус модерации, ожидается approved или rejected"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgFacilityNotFound   = "площадка не найдена"
	msgNotAdmin           = "требуется роль администратора платформы"
)

// SetFacilityApprovalRequest HTTP request model
type SetFacilityApprovalRequest struct {
	Status string `json:"status"` // "approved" | "rejected"
}

type Handler struct {
	service ModerationService
	logger  Logger
}

func NewHandler(service ModerationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/facilities/{facilityId}/approval
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	facilityID, err := strconv.ParseInt(vars["facilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/facilities/{id}/approval - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /admin/facilities/{id}/approval - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetFacilityApprovalRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/facilities/{id}/approval - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Админ выносит решение: вернуть площадку в pending нельзя
	status, ok := domain.ValidApprovalStatus(req.Status)
	if !ok || status == domain.ApprovalPending {
		h.logger.Warn("PATCH /admin/facilities/{id}/approval - Invalid status: %q", req.Status)
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	if err := h.service.SetFacilityApproval(r.Context(), adminID, facilityID, status); err != nil {
		switch {
		case errors.Is(err, moderation.ErrFacilityNotFound):
			h.logger.Warn("PATCH /admin/facilities/{id}/approval - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, moderation.ErrNotAdmin):
			h.logger.Warn("PATCH /admin/facilities/{id}/approval - Not an admin: admin_id=%d", adminID)
			handlers.RespondForbidden(w, msgNotAdmin)

		case errors.Is(err, moderation.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/facilities/{id}/approval - Invalid input: facility_id=%d: %v", facilityID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /admin/facilities/{id}/approval - Failed: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/facilities/{id}/approval - Approval updated: facility_id=%d, status=%s, admin_id=%d",
		facilityID, status, adminID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}
