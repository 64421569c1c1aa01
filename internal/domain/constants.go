package domain

// Business validation constants
const (
	MinSlotDurationMinutes = 15
	MaxSlotDurationMinutes = 240

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxNameLength               = 200
	MaxLocationLength           = 500
	MaxAmenities                = 50
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, занимающие слот при подсчёте доступности
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы, освобождающие слот
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
}
