package catalog

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда площадка не найдена
	ErrFacilityNotFound = errors.New("catalog: facility not found")

	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("catalog: court not found")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("catalog: user not found")

	// ErrAccessDenied возвращается, когда действие доступно только владельцу
	ErrAccessDenied = errors.New("catalog: access denied")

	// ErrNotOwnerRole возвращается, когда пользователь не имеет роли владельца площадки
	ErrNotOwnerRole = errors.New("catalog: facility owner role required")

	// ErrFacilityNotApproved возвращается при чтении кортов неодобренной площадки
	ErrFacilityNotApproved = errors.New("catalog: facility is not approved")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("catalog: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
