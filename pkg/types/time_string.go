package types

import (
	"errors"
	"fmt"
	"time"
)

// TimeString represents a wall-clock time of day in "HH:MM" format.
// It is stored and transferred as a plain string and compared lexicographically,
// which is correct for the zero-padded 24-hour format.
//
// The special value "24:00" is valid as an exclusive end-of-day boundary:
// it can close an interval (closing time, booking end) but never open one,
// since no valid time compares after it.
type TimeString string

const timeLayout = "15:04"

// EndOfDay is the exclusive upper boundary of a day.
const EndOfDay TimeString = "24:00"

// ErrInvalidTimeString is returned when a string is not a valid "HH:MM" time.
var ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")

// NewTimeString creates a TimeString from the time-of-day part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// String returns the underlying "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks that the value is a well-formed "HH:MM" time or the
// exclusive end-of-day boundary "24:00".
func (t TimeString) Validate() error {
	if t == EndOfDay {
		return nil
	}
	if len(t) != 5 {
		return ErrInvalidTimeString
	}
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// IsBefore reports whether t is strictly earlier than other.
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// Minutes returns the number of minutes since midnight.
func (t TimeString) Minutes() (int, error) {
	if t == EndOfDay {
		return 24 * 60, nil
	}
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes returns the time shifted forward by the given number of minutes.
// Returns an error if the result crosses midnight, since a time-of-day value
// cannot represent the next calendar day.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}

	total += minutes
	if total > 24*60 {
		return "", fmt.Errorf("time %s + %d minutes crosses midnight", t, minutes)
	}
	// 24:00 is allowed as an exclusive end-of-day boundary
	if total == 24*60 {
		return TimeString("24:00"), nil
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// MinutesBetween returns the number of minutes from t to other.
// Negative if other is earlier than t.
func (t TimeString) MinutesBetween(other TimeString) (int, error) {
	from, err := t.Minutes()
	if err != nil {
		return 0, err
	}
	to, err := other.Minutes()
	if err != nil {
		return 0, err
	}
	return to - from, nil
}

// ToTime combines the time-of-day with a calendar date in the date's location.
// "24:00" maps to midnight of the following day.
func (t TimeString) ToTime(date time.Time) (time.Time, error) {
	if t == EndOfDay {
		return time.Date(date.Year(), date.Month(), date.Day(),
			0, 0, 0, 0, date.Location()).AddDate(0, 0, 1), nil
	}
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, date.Location()), nil
}
