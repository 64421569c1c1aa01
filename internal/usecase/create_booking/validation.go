package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-CourtService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}
	return nil
}

// validateWindow проверяет выравнивание запрошенного окна по сетке слотов
// корта и возвращает число занимаемых слотов.
//
// Окно валидно, если:
//   - оно целиком внутри рабочих часов корта
//   - начало лежит на границе сетки: (start - open) кратно длине слота
//   - длина окна кратна длине слота и не равна нулю
//
// Бронирование может занимать несколько подряд идущих слотов одним окном.
func validateWindow(court *domain.Court, req *Request) (int, error) {
	if req.StartTime.IsBefore(court.OpenTime) || req.EndTime.IsAfter(court.CloseTime) {
		return 0, fmt.Errorf("%w: window is outside operating hours %s-%s",
			ErrMisalignedWindow, court.OpenTime, court.CloseTime)
	}

	offset, err := court.OpenTime.MinutesBetween(req.StartTime)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if offset%court.SlotDurationMinutes != 0 {
		return 0, fmt.Errorf("%w: start %s is not on the slot grid", ErrMisalignedWindow, req.StartTime)
	}

	length, err := req.StartTime.MinutesBetween(req.EndTime)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if length <= 0 || length%court.SlotDurationMinutes != 0 {
		return 0, fmt.Errorf("%w: window length %d min is not a multiple of slot duration %d min",
			ErrMisalignedWindow, length, court.SlotDurationMinutes)
	}

	return length / court.SlotDurationMinutes, nil
}
