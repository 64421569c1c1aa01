package bookings

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	"github.com/m04kA/SMC-CourtService/internal/infra/notify"
	bookingRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-CourtService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CourtService/pkg/types"
)

// Фейки

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[int64]*domain.Booking
	stats    []bookingRepo.StatusStat
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByFacilityWithFilter(_ context.Context, filter domain.FacilityBookingsFilter) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.FacilityID != filter.FacilityID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatusIf(_ context.Context, id int64, from, to domain.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = to
	return nil
}

func (f *fakeBookingRepo) CancelIf(_ context.Context, id int64, from domain.BookingStatus, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = domain.StatusCancelled
	if reason != "" {
		b.CancellationReason = &reason
	}
	now := time.Now()
	b.CancelledAt = &now
	return nil
}

func (f *fakeBookingRepo) GetElapsedConfirmed(_ context.Context, today time.Time, nowTime types.TimeString) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.Status != domain.StatusConfirmed {
			continue
		}
		if b.BookingDate.Before(today) ||
			(b.BookingDate.Equal(today) && !b.EndTime.IsAfter(nowTime)) {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) AggregateByFacility(_ context.Context, _ int64, _, _ *time.Time) ([]bookingRepo.StatusStat, error) {
	return f.stats, nil
}

type fakeCatalogRepo struct {
	facility *domain.Facility
	err      error
}

func (f *fakeCatalogRepo) GetFacilityByID(_ context.Context, _ int64) (*domain.Facility, error) {
	return f.facility, f.err
}

type fakePublisher struct {
	mu     sync.Mutex
	events []notify.BookingEvent
}

func (f *fakePublisher) Publish(event notify.BookingEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakePublisher) eventNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.events))
	for _, e := range f.events {
		names = append(names, e.Event)
	}
	return names
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Вспомогательные конструкторы

const (
	ownerID    = int64(100)
	partyID    = int64(5)
	strangerID = int64(77)
)

func testFacility() *domain.Facility {
	return &domain.Facility{ID: 10, OwnerID: ownerID, ApprovalStatus: domain.ApprovalApproved}
}

func testBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          1,
		UserID:      partyID,
		CourtID:     1,
		FacilityID:  10,
		BookingDate: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "11:00",
		Status:      status,
		TotalAmount: 100.0,
	}
}

func newTestService(repo *fakeBookingRepo, pub *fakePublisher, now time.Time) *Service {
	return NewService(repo, &fakeCatalogRepo{facility: testFacility()}, pub, nopLogger{}).
		WithTimeProvider(&fixedTimeProvider{now: now})
}

var beforeStart = time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)
var afterEnd = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

// Decide

func TestDecide_Confirm(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusPending))
	pub := &fakePublisher{}
	svc := newTestService(repo, pub, beforeStart)

	resp, err := svc.Decide(context.Background(), 1, &models.DecideBookingRequest{
		OwnerID:  ownerID,
		Decision: models.DecisionConfirm,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, []string{notify.EventBookingConfirmed}, pub.eventNames())
}

func TestDecide_Reject(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusPending))
	pub := &fakePublisher{}
	svc := newTestService(repo, pub, beforeStart)

	resp, err := svc.Decide(context.Background(), 1, &models.DecideBookingRequest{
		OwnerID:  ownerID,
		Decision: models.DecisionReject,
		Reason:   "площадка на ремонте",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "площадка на ремонте", *resp.CancellationReason)
	assert.Equal(t, []string{notify.EventBookingCancelled}, pub.eventNames())
}

func TestDecide_NotOwner(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusPending))
	svc := newTestService(repo, &fakePublisher{}, beforeStart)

	_, err := svc.Decide(context.Background(), 1, &models.DecideBookingRequest{
		OwnerID:  strangerID,
		Decision: models.DecisionConfirm,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestDecide_AlreadyDecided(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusConfirmed))
	svc := newTestService(repo, &fakePublisher{}, beforeStart)

	_, err := svc.Decide(context.Background(), 1, &models.DecideBookingRequest{
		OwnerID:  ownerID,
		Decision: models.DecisionConfirm,
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

// Cancel

func TestCancel_PendingByParty(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusPending))
	pub := &fakePublisher{}
	svc := newTestService(repo, pub, beforeStart)

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		ActorID: partyID,
		Reason:  "планы изменились",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.NotNil(t, resp.CancelledAt)
	assert.Equal(t, []string{notify.EventBookingCancelled}, pub.eventNames())
}

func TestCancel_WithoutReason(t *testing.T) {
	// Отмена без причины допустима; причина в ответе отсутствует, а не пустая
	repo := newFakeBookingRepo(testBooking(domain.StatusPending))
	svc := newTestService(repo, &fakePublisher{}, beforeStart)

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		ActorID: partyID,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Nil(t, resp.CancellationReason)
	assert.NotNil(t, resp.CancelledAt)
}

func TestCancel_ConfirmedBeforeStart(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusConfirmed))
	svc := newTestService(repo, &fakePublisher{}, beforeStart)

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{ActorID: partyID})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
}

func TestCancel_ConfirmedAfterStartRefused(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusConfirmed))
	// 10:30 - бронирование уже началось
	svc := newTestService(repo, &fakePublisher{}, time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC))

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{ActorID: partyID})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel_TerminalRefused(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCancelled, domain.StatusCompleted} {
		repo := newFakeBookingRepo(testBooking(status))
		svc := newTestService(repo, &fakePublisher{}, beforeStart)

		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{ActorID: partyID})
		assert.ErrorIs(t, err, ErrInvalidTransition, "status %s", status)
	}
}

func TestCancel_Stranger(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusPending))
	svc := newTestService(repo, &fakePublisher{}, beforeStart)

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{ActorID: strangerID})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

// Complete

func TestComplete_AfterEnd(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusConfirmed))
	pub := &fakePublisher{}
	svc := newTestService(repo, pub, afterEnd)

	actor := ownerID
	resp, err := svc.Complete(context.Background(), 1, &actor)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, []string{notify.EventBookingCompleted}, pub.eventNames())
}

func TestComplete_BeforeEndRefused(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusConfirmed))
	svc := newTestService(repo, &fakePublisher{}, beforeStart)

	actor := ownerID
	_, err := svc.Complete(context.Background(), 1, &actor)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestComplete_IdempotentRepeat(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusCompleted))
	pub := &fakePublisher{}
	svc := newTestService(repo, pub, afterEnd)

	actor := ownerID
	resp, err := svc.Complete(context.Background(), 1, &actor)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	// повторное завершение не публикует событие
	assert.Empty(t, pub.eventNames())
}

func TestComplete_PendingRefused(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusPending))
	svc := newTestService(repo, &fakePublisher{}, afterEnd)

	actor := ownerID
	_, err := svc.Complete(context.Background(), 1, &actor)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestComplete_SystemCallWithoutActor(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusConfirmed))
	svc := newTestService(repo, &fakePublisher{}, afterEnd)

	resp, err := svc.Complete(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
}

// CompleteElapsed

func TestCompleteElapsed(t *testing.T) {
	elapsed := testBooking(domain.StatusConfirmed)

	future := testBooking(domain.StatusConfirmed)
	future.ID = 2
	future.BookingDate = time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)

	pending := testBooking(domain.StatusPending)
	pending.ID = 3
	pending.BookingDate = time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)

	repo := newFakeBookingRepo(elapsed, future, pending)
	pub := &fakePublisher{}
	svc := newTestService(repo, pub, afterEnd)

	completed, err := svc.CompleteElapsed(context.Background())
	require.NoError(t, err)

	require.Len(t, completed, 1)
	assert.Equal(t, int64(1), completed[0].ID)
	assert.Equal(t, []string{notify.EventBookingCompleted}, pub.eventNames())

	// неистёкшие и pending не тронуты
	current, err := repo.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, current.Status)
}

// GetFacilityReport

func TestGetFacilityReport_RevenueFromConfirmedAndCompleted(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.stats = []bookingRepo.StatusStat{
		{Status: domain.StatusPending, Count: 2, Amount: 200},
		{Status: domain.StatusConfirmed, Count: 3, Amount: 300},
		{Status: domain.StatusCompleted, Count: 4, Amount: 400},
		{Status: domain.StatusCancelled, Count: 1, Amount: 100},
	}
	svc := newTestService(repo, &fakePublisher{}, afterEnd)

	resp, err := svc.GetFacilityReport(context.Background(), &models.GetFacilityReportRequest{
		FacilityID: 10,
		ActorID:    ownerID,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.Counts[string(domain.StatusConfirmed)])
	assert.Equal(t, 700.0, resp.Revenue)
}

func TestGetFacilityReport_NotOwner(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakePublisher{}, afterEnd)

	_, err := svc.GetFacilityReport(context.Background(), &models.GetFacilityReportRequest{
		FacilityID: 10,
		ActorID:    strangerID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

// Чтения

func TestGetByID_PartyAndOwnerOnly(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusPending))
	svc := newTestService(repo, &fakePublisher{}, beforeStart)

	_, err := svc.GetByID(context.Background(), 1, partyID)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 1, ownerID)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 1, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakePublisher{}, beforeStart)

	_, err := svc.GetByID(context.Background(), 42, partyID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_SelfOnly(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusPending))
	svc := newTestService(repo, &fakePublisher{}, beforeStart)

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID:  partyID,
		ActorID: partyID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID:  partyID,
		ActorID: strangerID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetFacilityBookings_FiltersInactiveByDefault(t *testing.T) {
	active := testBooking(domain.StatusConfirmed)
	cancelled := testBooking(domain.StatusCancelled)
	cancelled.ID = 2

	repo := newFakeBookingRepo(active, cancelled)
	svc := newTestService(repo, &fakePublisher{}, beforeStart)

	resp, err := svc.GetFacilityBookings(context.Background(), &models.GetFacilityBookingsRequest{
		FacilityID: 10,
		ActorID:    ownerID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	resp, err = svc.GetFacilityBookings(context.Background(), &models.GetFacilityBookingsRequest{
		FacilityID:      10,
		ActorID:         ownerID,
		IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}

func TestGetFacilityBookings_FacilityNotFound(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), &fakeCatalogRepo{err: catalogRepo.ErrFacilityNotFound}, &fakePublisher{}, nopLogger{})

	_, err := svc.GetFacilityBookings(context.Background(), &models.GetFacilityBookingsRequest{
		FacilityID: 99,
		ActorID:    ownerID,
	})
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}
