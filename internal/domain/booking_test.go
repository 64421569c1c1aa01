package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBooking_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   BookingStatus
		to     BookingStatus
		wantOK bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to completed", StatusPending, StatusCompleted, false},
		{"confirmed to completed", StatusConfirmed, StatusCompleted, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed to pending", StatusConfirmed, StatusPending, false},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, false},
		{"cancelled cannot be completed", StatusCancelled, StatusCompleted, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"completed cannot revert", StatusCompleted, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.from}
			assert.Equal(t, tt.wantOK, b.CanTransitionTo(tt.to))
		})
	}
}

func TestBooking_IsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).IsActive())
	assert.True(t, (&Booking{Status: StatusConfirmed}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelled}).IsActive())
	assert.False(t, (&Booking{Status: StatusCompleted}).IsActive())
}

func TestBooking_Overlaps(t *testing.T) {
	b := &Booking{StartTime: "10:00", EndTime: "11:00"}

	// Полуоткрытые интервалы: границы не пересекаются
	assert.False(t, b.Overlaps("09:00", "10:00"))
	assert.False(t, b.Overlaps("11:00", "12:00"))

	// Частичные пересечения
	assert.True(t, b.Overlaps("09:30", "10:30"))
	assert.True(t, b.Overlaps("10:30", "11:30"))

	// Вложенность в обе стороны
	assert.True(t, b.Overlaps("10:15", "10:45"))
	assert.True(t, b.Overlaps("09:00", "12:00"))

	// Точное совпадение
	assert.True(t, b.Overlaps("10:00", "11:00"))
}

func TestValidBookingStatus(t *testing.T) {
	status, ok := ValidBookingStatus("confirmed")
	assert.True(t, ok)
	assert.Equal(t, StatusConfirmed, status)

	_, ok = ValidBookingStatus("unknown")
	assert.False(t, ok)
}
