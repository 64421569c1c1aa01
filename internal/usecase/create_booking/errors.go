package create_booking

import "errors"

var (
	// ErrUserNotFound пользователь не найден
	ErrUserNotFound = errors.New("create_booking: user not found")
	// ErrUserBanned пользователь деактивирован и не может бронировать
	ErrUserBanned = errors.New("create_booking: user is banned")
	// ErrCourtNotFound корт не найден
	ErrCourtNotFound = errors.New("create_booking: court not found")
	// ErrFacilityNotFound площадка не найдена
	ErrFacilityNotFound = errors.New("create_booking: facility not found")
	// ErrFacilityNotApproved площадка не прошла модерацию
	ErrFacilityNotApproved = errors.New("create_booking: facility is not approved")
	// ErrSlotUnavailable запрошенное окно пересекается с активным бронированием
	ErrSlotUnavailable = errors.New("create_booking: slot is unavailable")
	// ErrPastStartTime начало бронирования не в будущем
	ErrPastStartTime = errors.New("create_booking: start time is in the past")
	// ErrMisalignedWindow окно не выровнено по сетке слотов корта
	ErrMisalignedWindow = errors.New("create_booking: window is not aligned to the slot grid")
	// ErrTransient конкурентные бронирования исчерпали попытки транзакции,
	// запрос можно безопасно повторить
	ErrTransient = errors.New("create_booking: transient conflict, retry the request")
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("create_booking: invalid input")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("create_booking: internal error")
)
