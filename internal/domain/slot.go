package domain

import "github.com/m04kA/SMC-CourtService/pkg/types"

// Slot represents a fixed-duration bookable time window on a court's day
type Slot struct {
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
}
