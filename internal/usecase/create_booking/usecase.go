package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-CourtService/internal/infra/notify"
	"github.com/m04kA/SMC-CourtService/internal/service/moderation"
	"github.com/m04kA/SMC-CourtService/pkg/txmanager"
)

// UseCase use case создания бронирования.
//
// Эксклюзивность окна гарантируется сериализуемой транзакцией: чтение
// активных бронирований корта (FOR UPDATE) и вставка выполняются атомарно,
// конкурирующие запросы на пересекающиеся окна сериализуются БД.
type UseCase struct {
	catalogRepo  CatalogRepository
	bookingRepo  BookingRepository
	gate         ModerationGate
	txManager    TxManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	bookingRepo BookingRepository,
	gate ModerationGate,
	txManager TxManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:  catalogRepo,
		bookingRepo:  bookingRepo,
		gate:         gate,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверка пользователя через gate модерации
	if err := uc.gate.AuthorizeBooker(ctx, req.UserID); err != nil {
		switch {
		case errors.Is(err, moderation.ErrUserNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, moderation.ErrUserBanned):
			uc.logger.Warn("CreateBooking: user id=%d is banned", req.UserID)
			return nil, ErrUserBanned
		default:
			uc.logger.Error("CreateBooking: gate error for user id=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: moderation gate: %v", ErrInternal, err)
		}
	}

	// 3. Получаем корт и проверяем его площадку
	court, err := uc.catalogRepo.GetCourtByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrCourtNotFound) {
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("CreateBooking: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	if err := uc.gate.AuthorizeFacilityForBooking(ctx, court.FacilityID); err != nil {
		switch {
		case errors.Is(err, moderation.ErrFacilityNotApproved):
			uc.logger.Warn("CreateBooking: facility id=%d not approved", court.FacilityID)
			return nil, ErrFacilityNotApproved
		case errors.Is(err, moderation.ErrFacilityNotFound):
			return nil, ErrFacilityNotFound
		default:
			uc.logger.Error("CreateBooking: gate error for facility id=%d: %v", court.FacilityID, err)
			return nil, fmt.Errorf("%w: moderation gate: %v", ErrInternal, err)
		}
	}

	// 4. Выравнивание окна по сетке слотов
	numSlots, err := validateWindow(court, req)
	if err != nil {
		uc.logger.Warn("CreateBooking: window validation failed: %v", err)
		return nil, err
	}

	// 5. Начало бронирования строго в будущем
	startAt, err := req.StartTime.ToTime(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !startAt.After(uc.timeProvider.Now()) {
		uc.logger.Warn("CreateBooking: start %s %s is in the past", req.Date.Format(domain.DateFormat), req.StartTime)
		return nil, ErrPastStartTime
	}

	// 6. Сумма фиксируется при создании: тариф на дату × число слотов
	totalAmount := court.ResolveRate(req.Date) * float64(numSlots)

	booking := &domain.Booking{
		UserID:      req.UserID,
		CourtID:     req.CourtID,
		FacilityID:  court.FacilityID,
		BookingDate: truncateToDay(req.Date),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      domain.StatusPending,
		TotalAmount: totalAmount,
	}

	// 7. Проверка пересечений и вставка - атомарно, в сериализуемой транзакции
	var created *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		active, err := uc.bookingRepo.GetActiveByCourtAndDate(txCtx, req.CourtID, booking.BookingDate)
		if err != nil {
			return fmt.Errorf("failed to get active bookings: %w", err)
		}

		for _, existing := range active {
			if existing.Overlaps(req.StartTime, req.EndTime) {
				return ErrSlotUnavailable
			}
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotUnavailable):
			uc.logger.Warn("CreateBooking: slot %s-%s on court=%d is unavailable",
				req.StartTime, req.EndTime, req.CourtID)
			return nil, ErrSlotUnavailable
		case errors.Is(err, txmanager.ErrRetryExhausted):
			// Конкурентные бронирования исчерпали попытки - клиент может повторить
			uc.logger.Warn("CreateBooking: serialization retries exhausted for court=%d: %v", req.CourtID, err)
			return nil, fmt.Errorf("%w: %v", ErrTransient, err)
		default:
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	// Событие публикуется после коммита, fire-and-forget
	uc.publisher.Publish(notify.NewBookingEvent("", notify.EventBookingCreated, created, uc.timeProvider.Now()))

	uc.logger.Info("CreateBooking: booking id=%d created for user=%d court=%d %s %s-%s amount=%.2f",
		created.ID, created.UserID, created.CourtID,
		created.BookingDate.Format(domain.DateFormat), created.StartTime, created.EndTime, created.TotalAmount)

	return fromDomain(created), nil
}

// truncateToDay отбрасывает компонент времени, сохраняя дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
