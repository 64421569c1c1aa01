package set_user_active

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtService/internal/service/moderation"
)

const (
	msgInvalidUserID      = "некорректный ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgUserNotFound       = "пользователь не найден"
	msgNotAdmin           = "требуется роль администратора платформы"
)

// SetUserActiveRequest HTTP request model
type SetUserActiveRequest struct {
	Active *bool `json:"active"`
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

// Handle PATCH /api/v1/admin/users/{userId}/active
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/users/{id}/active - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /admin/users/{id}/active - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetUserActiveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || req.Active == nil {
		h.logger.Warn("PATCH /admin/users/{id}/active - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetUserActive(r.Context(), adminID, userID, *req.Active); err != nil {
		switch {
		case errors.Is(err, moderation.ErrUserNotFound):
			h.logger.Warn("PATCH /admin/users/{id}/active - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, moderation.ErrNotAdmin):
			h.logger.Warn("PATCH /admin/users/{id}/active - Not an admin: admin_id=%d", adminID)
			handlers.RespondForbidden(w, msgNotAdmin)

		default:
			h.logger.Error("PATCH /admin/users/{id}/active - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/users/{id}/active - User activity updated: user_id=%d, active=%t, admin_id=%d",
		userID, *req.Active, adminID)
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"active": *req.Active})
}
