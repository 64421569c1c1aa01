package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-CourtService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgSlotUnavailable     = "выбранное временное окно недоступно"
	msgUserNotFound        = "пользователь не найден"
	msgUserBanned          = "пользователь заблокирован"
	msgCourtNotFound       = "корт не найден"
	msgFacilityNotFound    = "площадка не найдена"
	msgFacilityNotApproved = "площадка не прошла модерацию"
	msgPastStartTime       = "время начала бронирования уже прошло"
	msgMisalignedWindow    = "окно не выровнено по сетке слотов корта"
	msgTransientConflict   = "временный конфликт бронирований, повторите запрос"
	msgInvalidInput        = "некорректные параметры бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: user_id=%d, court_id=%d", userID, req.CourtID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrTransient):
			h.logger.Warn("POST /bookings - Transient conflict: user_id=%d, court_id=%d", userID, req.CourtID)
			handlers.RespondServiceUnavailable(w, msgTransientConflict)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrUserBanned):
			h.logger.Warn("POST /bookings - User banned: user_id=%d", userID)
			handlers.RespondForbidden(w, msgUserBanned)

		case errors.Is(err, createBooking.ErrCourtNotFound):
			h.logger.Warn("POST /bookings - Court not found: court_id=%d", req.CourtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, createBooking.ErrFacilityNotFound):
			h.logger.Warn("POST /bookings - Facility not found: court_id=%d", req.CourtID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, createBooking.ErrFacilityNotApproved):
			h.logger.Warn("POST /bookings - Facility not approved: court_id=%d", req.CourtID)
			handlers.RespondForbidden(w, msgFacilityNotApproved)

		case errors.Is(err, createBooking.ErrPastStartTime):
			h.logger.Warn("POST /bookings - Past start time: user_id=%d, court_id=%d", userID, req.CourtID)
			handlers.RespondBadRequest(w, msgPastStartTime)

		case errors.Is(err, createBooking.ErrMisalignedWindow):
			h.logger.Warn("POST /bookings - Misaligned window: user_id=%d, court_id=%d", userID, req.CourtID)
			handlers.RespondBadRequest(w, msgMisalignedWindow)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, court_id=%d: %v", userID, req.CourtID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, court_id=%d, error=%v",
				userID, req.CourtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, court_id=%d",
		result.ID, userID, req.CourtID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
