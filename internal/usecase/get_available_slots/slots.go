package get_available_slots

import (
	"github.com/m04kA/SMC-CourtService/internal/domain"
)

// generateSlots разбивает операционный день корта на непрерывные
// непересекающиеся окна фиксированной длины, по возрастанию времени начала.
// Последнее неполное окно перед закрытием отбрасывается.
//
// Прошедшие по времени окна текущего дня НЕ скрываются - календарь
// возвращает весь день, а попытку бронирования в прошлое отклоняет
// уже создание бронирования.
func generateSlots(court *domain.Court) ([]Slot, error) {
	slots := make([]Slot, 0)
	current := court.OpenTime

	for current.IsBefore(court.CloseTime) {
		slotEnd, err := current.AddMinutes(court.SlotDurationMinutes)
		if err != nil {
			return nil, err
		}
		if slotEnd.IsAfter(court.CloseTime) {
			break
		}

		slots = append(slots, Slot{
			StartTime:   current,
			EndTime:     slotEnd,
			IsAvailable: true,
		})
		current = slotEnd
	}

	return slots, nil
}

// markUnavailable помечает занятые окна.
// Окно занято, если с ним пересекается активное (pending/confirmed)
// бронирование. Интервалы полуоткрытые: бронирование, заканчивающееся
// ровно в начале окна, НЕ конфликтует.
//
// Примеры:
// - Окно 11:00-12:00, бронирование 10:30-11:30 → занято (пересечение 11:00-11:30)
// - Окно 11:00-12:00, бронирование 10:00-11:00 → свободно (граничат)
// - Окно 11:00-12:00, бронирование 12:00-13:00 → свободно (граничат)
func markUnavailable(slots []Slot, bookings []*domain.Booking) []Slot {
	for i := range slots {
		for _, booking := range bookings {
			if !booking.IsActive() {
				continue
			}
			// Полуоткрытые интервалы: пересечение только при строгих неравенствах
			if booking.StartTime.IsBefore(slots[i].EndTime) && booking.EndTime.IsAfter(slots[i].StartTime) {
				slots[i].IsAvailable = false
				break
			}
		}
	}
	return slots
}
