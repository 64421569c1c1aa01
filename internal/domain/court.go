package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtService/pkg/types"
)

// Court represents a bookable court inside a facility.
// Price and operating hours may change, but changes affect only future
// slot computations — existing bookings keep their frozen total amount.
type Court struct {
	ID                  int64
	FacilityID          int64
	SportType           string
	OpenTime            types.TimeString // например, "06:00"
	CloseTime           types.TimeString // например, "22:00"
	SlotDurationMinutes int
	BasePrice           float64
	WeekendPrice        *float64 // nil = действует базовая цена
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ResolveRate returns the per-slot rate for the given date.
// Pricing is resolved to a single number here; no external negotiation.
func (c *Court) ResolveRate(date time.Time) float64 {
	if c.WeekendPrice != nil {
		wd := date.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			return *c.WeekendPrice
		}
	}
	return c.BasePrice
}
