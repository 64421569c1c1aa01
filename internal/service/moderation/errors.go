package moderation

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("moderation: user not found")

	// ErrFacilityNotFound возвращается, когда площадка не найдена
	ErrFacilityNotFound = errors.New("moderation: facility not found")

	// ErrUserBanned возвращается, когда пользователь деактивирован
	ErrUserBanned = errors.New("moderation: user is banned")

	// ErrFacilityNotApproved возвращается, когда площадка не прошла модерацию
	ErrFacilityNotApproved = errors.New("moderation: facility is not approved")

	// ErrNotAdmin возвращается, когда действие требует роли platform_admin
	ErrNotAdmin = errors.New("moderation: platform admin role required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("moderation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("moderation: internal error")
)
