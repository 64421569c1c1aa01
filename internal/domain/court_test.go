package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCourt_ResolveRate(t *testing.T) {
	weekendPrice := 150.0
	court := &Court{BasePrice: 100.0, WeekendPrice: &weekendPrice}

	wednesday := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 100.0, court.ResolveRate(wednesday))
	assert.Equal(t, 150.0, court.ResolveRate(saturday))
	assert.Equal(t, 150.0, court.ResolveRate(sunday))
}

func TestCourt_ResolveRate_NoWeekendPrice(t *testing.T) {
	court := &Court{BasePrice: 100.0}

	saturday := time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 100.0, court.ResolveRate(saturday))
}
