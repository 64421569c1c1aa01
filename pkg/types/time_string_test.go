package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	tests := []struct {
		name    string
		value   TimeString
		wantErr bool
	}{
		{"valid morning", "09:30", false},
		{"valid midnight", "00:00", false},
		{"valid late", "23:59", false},
		{"end of day boundary", "24:00", false},
		{"past end of day", "24:01", true},
		{"missing leading zero", "9:30", true},
		{"out of range hour", "25:00", true},
		{"out of range minute", "10:60", true},
		{"garbage", "abcde", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.value.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("22:30").IsAfter("22:00"))
	// 24:00 как эксклюзивная граница конца дня сравнивается лексикографически
	assert.True(t, TimeString("23:59").IsBefore("24:00"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("10:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), got)

	// ровно до полуночи - допустимая эксклюзивная граница
	got, err = TimeString("23:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), got)

	// переход через полночь запрещён
	_, err = TimeString("23:30").AddMinutes(60)
	assert.Error(t, err)
}

func TestTimeString_MinutesBetween(t *testing.T) {
	got, err := TimeString("09:00").MinutesBetween("10:30")
	require.NoError(t, err)
	assert.Equal(t, 90, got)

	got, err = TimeString("10:30").MinutesBetween("09:00")
	require.NoError(t, err)
	assert.Equal(t, -90, got)

	// до эксклюзивной границы конца дня
	got, err = TimeString("23:00").MinutesBetween(EndOfDay)
	require.NoError(t, err)
	assert.Equal(t, 60, got)
}

func TestTimeString_ToTime(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	got, err := TimeString("14:30").ToTime(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 15, 14, 30, 0, 0, time.UTC), got)

	// "24:00" - полночь следующего дня
	got, err = EndOfDay.ToTime(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC), got)
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2025, 10, 15, 7, 5, 0, 0, time.UTC))
	assert.Equal(t, TimeString("07:05"), ts)
}
