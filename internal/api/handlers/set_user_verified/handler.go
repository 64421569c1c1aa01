package set_user_verified

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

// SetUserVerifiedRequest HTTP request model
type SetUserVerifiedRequest struct {
	Verified *bool `json:"verified"`
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

// Handle PATCH /api/v1/admin/users/{userId}/verify
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/users/{id}/verify - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /admin/users/{id}/verify - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetUserVerifiedRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || req.Verified == nil {
		h.logger.Warn("PATCH /admin/users/{id}/verify - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetUserVerified(r.Context(), adminID, userID, *req.Verified); err != nil {
		switch {
		case errors.Is(err, moderation.ErrUserNotFound):
			h.logger.Warn("PATCH /admin/users/{id}/verify - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, moderation.ErrNotAdmin):
			h.logger.Warn("PATCH /admin/users/{id}/verify - Not an admin: admin_id=%d", adminID)
			handlers.RespondForbidden(w, msgNotAdmin)

		default:
			h.logger.Error("PATCH /admin/users/{id}/verify - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/users/{id}/verify - User verification updated: user_id=%d, verified=%t, admin_id=%d",
		userID, *req.Verified, adminID)
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"verified": *req.Verified})
}
