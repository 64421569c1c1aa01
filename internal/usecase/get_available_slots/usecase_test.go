package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-CourtService/internal/service/moderation"
)

// Фейки

type fakeCatalogRepo struct {
	court *domain.Court
	err   error
}

func (f *fakeCatalogRepo) GetCourtByID(_ context.Context, _ int64) (*domain.Court, error) {
	return f.court, f.err
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetActiveByCourtAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fakeGate struct {
	err error
}

func (f *fakeGate) AuthorizeFacilityForBooking(_ context.Context, _ int64) error {
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testCourt() *domain.Court {
	return &domain.Court{
		ID:                  1,
		FacilityID:          10,
		OpenTime:            "09:00",
		CloseTime:           "12:00",
		SlotDurationMinutes: 60,
	}
}

func TestGenerateSlots(t *testing.T) {
	slots, err := generateSlots(testCourt())
	require.NoError(t, err)

	require.Len(t, slots, 3)
	assert.Equal(t, "09:00", slots[0].StartTime.String())
	assert.Equal(t, "10:00", slots[0].EndTime.String())
	assert.Equal(t, "11:00", slots[2].StartTime.String())
	assert.Equal(t, "12:00", slots[2].EndTime.String())
	for _, slot := range slots {
		assert.True(t, slot.IsAvailable)
	}
}

func TestGenerateSlots_DropsIncompleteLastWindow(t *testing.T) {
	court := testCourt()
	court.CloseTime = "11:30" // последнее окно 11:00-12:00 не помещается

	slots, err := generateSlots(court)
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.Equal(t, "11:00", slots[1].EndTime.String())
}

func TestGenerateSlots_UntilMidnight(t *testing.T) {
	court := testCourt()
	court.OpenTime = "22:00"
	court.CloseTime = "24:00"

	slots, err := generateSlots(court)
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.Equal(t, "24:00", slots[1].EndTime.String())
}

func TestMarkUnavailable_HalfOpenBoundaries(t *testing.T) {
	slots, err := generateSlots(testCourt())
	require.NoError(t, err)

	// Бронирование 10:00-11:00 занимает только среднее окно:
	// граничащие окна 09:00-10:00 и 11:00-12:00 остаются свободными
	bookings := []*domain.Booking{
		{Status: domain.StatusConfirmed, StartTime: "10:00", EndTime: "11:00"},
	}

	marked := markUnavailable(slots, bookings)
	assert.True(t, marked[0].IsAvailable)
	assert.False(t, marked[1].IsAvailable)
	assert.True(t, marked[2].IsAvailable)
}

func TestMarkUnavailable_PartialOverlap(t *testing.T) {
	slots, err := generateSlots(testCourt())
	require.NoError(t, err)

	// Бронирование 09:30-10:30 пересекает два окна
	bookings := []*domain.Booking{
		{Status: domain.StatusPending, StartTime: "09:30", EndTime: "10:30"},
	}

	marked := markUnavailable(slots, bookings)
	assert.False(t, marked[0].IsAvailable)
	assert.False(t, marked[1].IsAvailable)
	assert.True(t, marked[2].IsAvailable)
}

func TestMarkUnavailable_IgnoresInactive(t *testing.T) {
	slots, err := generateSlots(testCourt())
	require.NoError(t, err)

	bookings := []*domain.Booking{
		{Status: domain.StatusCancelled, StartTime: "09:00", EndTime: "12:00"},
		{Status: domain.StatusCompleted, StartTime: "09:00", EndTime: "12:00"},
	}

	marked := markUnavailable(slots, bookings)
	for _, slot := range marked {
		assert.True(t, slot.IsAvailable)
	}
}

func TestExecute_Success(t *testing.T) {
	uc := NewUseCase(
		&fakeCatalogRepo{court: testCourt()},
		&fakeBookingRepo{bookings: []*domain.Booking{
			{Status: domain.StatusConfirmed, StartTime: "09:00", EndTime: "10:00"},
		}},
		&fakeGate{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		CourtID: 1,
		Date:    time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 3)
	assert.False(t, resp.Slots[0].IsAvailable)
	assert.True(t, resp.Slots[1].IsAvailable)
	assert.True(t, resp.Slots[2].IsAvailable)
}

func TestExecute_CourtNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeCatalogRepo{err: catalogRepo.ErrCourtNotFound},
		&fakeBookingRepo{},
		&fakeGate{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		CourtID: 42,
		Date:    time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestExecute_FacilityNotApproved(t *testing.T) {
	uc := NewUseCase(
		&fakeCatalogRepo{court: testCourt()},
		&fakeBookingRepo{},
		&fakeGate{err: moderation.ErrFacilityNotApproved},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		CourtID: 1,
		Date:    time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrFacilityNotApproved)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeCatalogRepo{}, &fakeBookingRepo{}, &fakeGate{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{CourtID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
