package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	"github.com/m04kA/SMC-CourtService/internal/infra/notify"
	catalogRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-CourtService/internal/service/moderation"
	"github.com/m04kA/SMC-CourtService/pkg/txmanager"
	"github.com/m04kA/SMC-CourtService/pkg/types"
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
	mu      sync.Mutex
	active  []*domain.Booking
	created []*domain.Booking
	nextID  int64
}

func (f *fakeBookingRepo) GetActiveByCourtAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Booking, 0, len(f.active))
	for _, b := range f.active {
		if b.IsActive() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	created := *booking
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	f.active = append(f.active, &created)
	f.created = append(f.created, &created)
	return &created, nil
}

type fakeGate struct {
	bookerErr   error
	facilityErr error
}

func (f *fakeGate) AuthorizeBooker(_ context.Context, _ int64) error {
	return f.bookerErr
}

func (f *fakeGate) AuthorizeFacilityForBooking(_ context.Context, _ int64) error {
	return f.facilityErr
}

// fakeTxManager выполняет fn как есть: сериализация проверяется на уровне БД,
// здесь проверяется только атомарная последовательность проверка+вставка
type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

// fakeSerialTxManager пропускает транзакции строго по одной, как это
// делает сериализуемая изоляция: проверка и вставка внутри fn атомарны
// относительно других транзакций
type fakeSerialTxManager struct {
	mu sync.Mutex
}

func (f *fakeSerialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
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

func testCourt() *domain.Court {
	weekendPrice := 150.0
	return &domain.Court{
		ID:                  1,
		FacilityID:          10,
		OpenTime:            "09:00",
		CloseTime:           "22:00",
		SlotDurationMinutes: 60,
		BasePrice:           100.0,
		WeekendPrice:        &weekendPrice,
	}
}

func newTestUseCase(catalog *fakeCatalogRepo, bookings *fakeBookingRepo, gate *fakeGate, tx TxManager, pub *fakePublisher) *UseCase {
	return NewUseCase(catalog, bookings, gate, tx, pub, nopLogger{}).
		WithTimeProvider(&fixedTimeProvider{
			now: time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC),
		})
}

func validRequest() *Request {
	return &Request{
		UserID:    5,
		CourtID:   1,
		Date:      time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), // среда
		StartTime: "10:00",
		EndTime:   "11:00",
	}
}

// Тесты

func TestExecute_Success(t *testing.T) {
	bookings := &fakeBookingRepo{}
	pub := &fakePublisher{}
	uc := newTestUseCase(&fakeCatalogRepo{court: testCourt()}, bookings, &fakeGate{}, &fakeTxManager{}, pub)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(10), resp.FacilityID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 100.0, resp.TotalAmount)

	require.Len(t, pub.events, 1)
	assert.Equal(t, notify.EventBookingCreated, pub.events[0].Event)
}

func TestExecute_AmountFrozenPerSlotRate(t *testing.T) {
	tests := []struct {
		name       string
		date       time.Time
		start, end string
		want       float64
	}{
		{"weekday single slot", time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), "10:00", "11:00", 100.0},
		{"weekday three slots", time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), "10:00", "13:00", 300.0},
		{"saturday uses weekend price", time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC), "10:00", "12:00", 300.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeCatalogRepo{court: testCourt()}, &fakeBookingRepo{}, &fakeGate{}, &fakeTxManager{}, &fakePublisher{})

			req := validRequest()
			req.Date = tt.date
			req.StartTime = domainTime(tt.start)
			req.EndTime = domainTime(tt.end)

			resp, err := uc.Execute(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.TotalAmount)
		})
	}
}

func TestExecute_LastSlotUntilMidnight(t *testing.T) {
	// Корт работает до полуночи: окно 23:00-24:00 бронируется
	court := testCourt()
	court.CloseTime = types.EndOfDay
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(&fakeCatalogRepo{court: court}, bookings, &fakeGate{}, &fakeTxManager{}, &fakePublisher{})

	req := validRequest()
	req.StartTime = domainTime("23:00")
	req.EndTime = types.EndOfDay

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "24:00", resp.EndTime)
	assert.Equal(t, 100.0, resp.TotalAmount)
}

func TestExecute_SlotUnavailable(t *testing.T) {
	bookings := &fakeBookingRepo{
		active: []*domain.Booking{
			{ID: 99, Status: domain.StatusConfirmed, StartTime: "10:30", EndTime: "11:30"},
		},
	}
	uc := newTestUseCase(&fakeCatalogRepo{court: testCourt()}, bookings, &fakeGate{}, &fakeTxManager{}, &fakePublisher{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Empty(t, bookings.created)
}

func TestExecute_AdjacentBookingDoesNotConflict(t *testing.T) {
	// Полуоткрытые интервалы: бронирование, заканчивающееся в 10:00,
	// не конфликтует с окном 10:00-11:00
	bookings := &fakeBookingRepo{
		active: []*domain.Booking{
			{ID: 99, Status: domain.StatusConfirmed, StartTime: "09:00", EndTime: "10:00"},
		},
	}
	uc := newTestUseCase(&fakeCatalogRepo{court: testCourt()}, bookings, &fakeGate{}, &fakeTxManager{}, &fakePublisher{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	// Отменённое бронирование не занимает слот - окно снова доступно
	bookings := &fakeBookingRepo{
		active: []*domain.Booking{
			{ID: 99, Status: domain.StatusCancelled, StartTime: "10:00", EndTime: "11:00"},
		},
	}
	uc := newTestUseCase(&fakeCatalogRepo{court: testCourt()}, bookings, &fakeGate{}, &fakeTxManager{}, &fakePublisher{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_MisalignedWindow(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
	}{
		{"off grid start", "10:30", "11:30"},
		{"length not multiple", "10:00", "11:30"},
		{"before opening", "08:00", "09:00"},
		{"after closing", "21:30", "22:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeCatalogRepo{court: testCourt()}, &fakeBookingRepo{}, &fakeGate{}, &fakeTxManager{}, &fakePublisher{})

			req := validRequest()
			req.StartTime = domainTime(tt.start)
			req.EndTime = domainTime(tt.end)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrMisalignedWindow)
		})
	}
}

func TestExecute_PastStartTime(t *testing.T) {
	uc := newTestUseCase(&fakeCatalogRepo{court: testCourt()}, &fakeBookingRepo{}, &fakeGate{}, &fakeTxManager{}, &fakePublisher{})

	req := validRequest()
	req.Date = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC) // вчера относительно Now

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPastStartTime)
}

func TestExecute_BannedUser(t *testing.T) {
	uc := newTestUseCase(&fakeCatalogRepo{court: testCourt()}, &fakeBookingRepo{}, &fakeGate{bookerErr: moderation.ErrUserBanned}, &fakeTxManager{}, &fakePublisher{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUserBanned)
}

func TestExecute_FacilityNotApproved(t *testing.T) {
	uc := newTestUseCase(&fakeCatalogRepo{court: testCourt()}, &fakeBookingRepo{}, &fakeGate{facilityErr: moderation.ErrFacilityNotApproved}, &fakeTxManager{}, &fakePublisher{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrFacilityNotApproved)
}

func TestExecute_CourtNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeCatalogRepo{err: catalogRepo.ErrCourtNotFound}, &fakeBookingRepo{}, &fakeGate{}, &fakeTxManager{}, &fakePublisher{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestExecute_RetriesExhaustedSurfaceAsTransient(t *testing.T) {
	tx := &fakeTxManager{err: fmt.Errorf("%w: serialization failure", txmanager.ErrRetryExhausted)}
	uc := newTestUseCase(&fakeCatalogRepo{court: testCourt()}, &fakeBookingRepo{}, &fakeGate{}, tx, &fakePublisher{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTransient)
}

func TestExecute_SecondOverlappingRequestLoses(t *testing.T) {
	// Два последовательных запроса на одно окно: первый создаёт,
	// второй видит активное бронирование и получает отказ
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(&fakeCatalogRepo{court: testCourt()}, bookings, &fakeGate{}, &fakeTxManager{}, &fakePublisher{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	second := validRequest()
	second.UserID = 6
	_, err = uc.Execute(context.Background(), second)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Len(t, bookings.created, 1)
}

func TestExecute_ConcurrentRequestsExactlyOneWins(t *testing.T) {
	// K конкурентных запросов на одно окно: ровно один создаёт
	// бронирование, остальные получают отказ по занятости
	const workers = 16

	bookings := &fakeBookingRepo{}
	pub := &fakePublisher{}
	uc := newTestUseCase(&fakeCatalogRepo{court: testCourt()}, bookings, &fakeGate{}, &fakeSerialTxManager{}, pub)

	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			req.UserID = int64(i + 1)
			_, errs[i] = uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	var successes, unavailable int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrSlotUnavailable):
			unavailable++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, unavailable)
	assert.Len(t, bookings.created, 1)
	assert.Len(t, pub.events, 1)
}

func domainTime(s string) types.TimeString {
	return types.TimeString(s)
}
