package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CourtService/pkg/types"
)

// Request модель запроса на получение слотов корта
type Request struct {
	CourtID int64
	Date    time.Time // дата операционного дня (без времени)
}

// Response модель ответа с расписанием слотов на день
type Response struct {
	CourtID int64
	Date    time.Time
	Slots   []Slot
}

// Slot временное окно фиксированной длины
type Slot struct {
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
}
