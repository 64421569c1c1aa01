package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	"github.com/m04kA/SMC-CourtService/internal/infra/notify"
	bookingRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-CourtService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CourtService/pkg/types"
)

// Service сервис жизненного цикла бронирований: чтение, подтверждение,
// отмена и завершение. Создание вынесено в usecase create_booking,
// так как требует сериализуемой транзакции.
//
// Переходы статусов выполняются через условный UPDATE со status-предусловием
// (оптимистичная конкуренция): устаревший переход двух конкурирующих акторов
// громко завершается ErrInvalidTransition, а не портит состояние.
type Service struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID.
// Доступно участнику бронирования и владельцу площадки.
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkPartyAccess(ctx, booking, actorID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actorID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя.
// Пользователь видит только собственную историю.
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	if req.ActorID != req.UserID {
		s.logger.Warn("GetUserBookings: user=%d requested history of user=%d", req.ActorID, req.UserID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, ok := domain.ValidBookingStatus(*req.Status)
		if !ok {
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// GetFacilityBookings получает бронирования площадки с фильтрацией.
// Доступно только владельцу площадки.
func (s *Service) GetFacilityBookings(ctx context.Context, req *models.GetFacilityBookingsRequest) (*models.BookingListResponse, error) {
	if err := s.checkOwnerAccess(ctx, req.FacilityID, req.ActorID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetFacilityBookings: invalid filter for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByFacilityWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetFacilityBookings: repository error for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: GetFacilityBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// Decide применяет решение владельца площадки по заявке:
// confirm: Pending -> Confirmed, reject: Pending -> Cancelled с причиной.
func (s *Service) Decide(ctx context.Context, bookingID int64, req *models.DecideBookingRequest) (*models.BookingResponse, error) {
	if req.Decision != models.DecisionConfirm && req.Decision != models.DecisionReject {
		return nil, fmt.Errorf("%w: unknown decision %q", ErrInvalidInput, req.Decision)
	}
	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// Решение принимает только владелец площадки этого корта
	if err := s.checkOwnerAccess(ctx, booking.FacilityID, req.OwnerID); err != nil {
		s.logger.Warn("Decide: user=%d is not the owner of facility=%d", req.OwnerID, booking.FacilityID)
		return nil, err
	}

	if req.Decision == models.DecisionConfirm {
		err = s.bookingRepo.UpdateStatusIf(ctx, bookingID, domain.StatusPending, domain.StatusConfirmed)
	} else {
		err = s.bookingRepo.CancelIf(ctx, bookingID, domain.StatusPending, req.Reason)
	}
	if err != nil {
		return nil, s.mapTransitionError(ctx, bookingID, err, "Decide")
	}

	updated, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	event := notify.EventBookingConfirmed
	if req.Decision == models.DecisionReject {
		event = notify.EventBookingCancelled
	}
	s.publishEvent(event, updated)

	s.logger.Info("Decide: booking id=%d -> %s by owner=%d", bookingID, updated.Status, req.OwnerID)
	return models.FromDomainBooking(updated), nil
}

// Cancel отменяет бронирование.
// Pending может отменить участник или владелец площадки в любой момент;
// Confirmed - только до начала бронирования (ретроактивная отмена запрещена).
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.checkPartyAccess(ctx, booking, req.ActorID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", req.ActorID, bookingID)
		return nil, err
	}

	switch booking.Status {
	case domain.StatusPending:
		// отменяется без временных ограничений
	case domain.StatusConfirmed:
		startAt, err := booking.StartTime.ToTime(booking.BookingDate)
		if err != nil {
			return nil, fmt.Errorf("%w: Cancel - invalid start time: %v", ErrInternal, err)
		}
		if !s.timeProvider.Now().Before(startAt) {
			s.logger.Warn("Cancel: booking id=%d already started, refusing retroactive cancellation", bookingID)
			return nil, ErrInvalidTransition
		}
	default:
		return nil, ErrInvalidTransition
	}

	if err := s.bookingRepo.CancelIf(ctx, bookingID, booking.Status, req.Reason); err != nil {
		return nil, s.mapTransitionError(ctx, bookingID, err, "Cancel")
	}

	updated, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(notify.EventBookingCancelled, updated)

	s.logger.Info("Cancel: booking id=%d cancelled by user=%d", bookingID, req.ActorID)
	return models.FromDomainBooking(updated), nil
}

// Complete завершает подтверждённое бронирование после его окончания.
// actorID == nil означает системный вызов (фоновое завершение).
//
// Идемпотентно: повторное завершение уже завершённого бронирования -
// успешный no-op с тем же итоговым состоянием, чтобы периодический
// обход мог безопасно перезапускаться.
func (s *Service) Complete(ctx context.Context, bookingID int64, actorID *int64) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if actorID != nil {
		if err := s.checkOwnerAccess(ctx, booking.FacilityID, *actorID); err != nil {
			s.logger.Warn("Complete: user=%d is not the owner of facility=%d", *actorID, booking.FacilityID)
			return nil, err
		}
	}

	// Идемпотентный повтор
	if booking.Status == domain.StatusCompleted {
		return models.FromDomainBooking(booking), nil
	}

	if booking.Status != domain.StatusConfirmed {
		return nil, ErrInvalidTransition
	}

	endAt, err := booking.EndTime.ToTime(booking.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: Complete - invalid end time: %v", ErrInternal, err)
	}
	if s.timeProvider.Now().Before(endAt) {
		s.logger.Warn("Complete: booking id=%d has not ended yet", bookingID)
		return nil, ErrInvalidTransition
	}

	err = s.bookingRepo.UpdateStatusIf(ctx, bookingID, domain.StatusConfirmed, domain.StatusCompleted)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			// Возможна гонка с фоновым завершением: если бронирование уже
			// завершено кем-то другим, это успех
			current, getErr := s.getBooking(ctx, bookingID)
			if getErr == nil && current.Status == domain.StatusCompleted {
				return models.FromDomainBooking(current), nil
			}
		}
		return nil, s.mapTransitionError(ctx, bookingID, err, "Complete")
	}

	updated, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(notify.EventBookingCompleted, updated)

	s.logger.Info("Complete: booking id=%d completed", bookingID)
	return models.FromDomainBooking(updated), nil
}

// CompleteElapsed завершает все подтверждённые бронирования, чьё время
// окончания уже прошло. Вызывается scheduler-ом; безопасно к перезапуску.
func (s *Service) CompleteElapsed(ctx context.Context) ([]*domain.Booking, error) {
	now := s.timeProvider.Now()
	today := truncateToDay(now)

	elapsed, err := s.bookingRepo.GetElapsedConfirmed(ctx, today, types.NewTimeString(now))
	if err != nil {
		s.logger.Error("CompleteElapsed: repository error: %v", err)
		return nil, fmt.Errorf("%w: CompleteElapsed - repository error: %v", ErrInternal, err)
	}

	completed := make([]*domain.Booking, 0, len(elapsed))
	for _, booking := range elapsed {
		err := s.bookingRepo.UpdateStatusIf(ctx, booking.ID, domain.StatusConfirmed, domain.StatusCompleted)
		if err != nil {
			// Конкурирующий переход (отмена или ручное завершение) - пропускаем
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				continue
			}
			s.logger.Error("CompleteElapsed: failed to complete booking id=%d: %v", booking.ID, err)
			continue
		}

		booking.Status = domain.StatusCompleted
		s.publishEvent(notify.EventBookingCompleted, booking)
		completed = append(completed, booking)
	}

	return completed, nil
}

// GetFacilityReport агрегирует статистику бронирований площадки за период.
// Только чтение, только для владельца площадки.
func (s *Service) GetFacilityReport(ctx context.Context, req *models.GetFacilityReportRequest) (*models.FacilityReportResponse, error) {
	if err := s.checkOwnerAccess(ctx, req.FacilityID, req.ActorID); err != nil {
		return nil, err
	}

	stats, err := s.bookingRepo.AggregateByFacility(ctx, req.FacilityID, req.From, req.To)
	if err != nil {
		s.logger.Error("GetFacilityReport: repository error for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: GetFacilityReport - repository error: %v", ErrInternal, err)
	}

	resp := &models.FacilityReportResponse{
		FacilityID: req.FacilityID,
		Counts:     make(map[string]int64, len(stats)),
	}
	if req.From != nil {
		from := req.From.Format(domain.DateFormat)
		resp.From = &from
	}
	if req.To != nil {
		to := req.To.Format(domain.DateFormat)
		resp.To = &to
	}

	for _, stat := range stats {
		resp.Counts[string(stat.Status)] = stat.Count
		// Выручка считается по подтверждённым и завершённым бронированиям
		if stat.Status == domain.StatusConfirmed || stat.Status == domain.StatusCompleted {
			resp.Revenue += stat.Amount
		}
	}

	return resp, nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("getBooking: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

// checkPartyAccess проверяет, что actor - участник бронирования
// или владелец площадки
func (s *Service) checkPartyAccess(ctx context.Context, booking *domain.Booking, actorID int64) error {
	if booking.UserID == actorID {
		return nil
	}
	if err := s.checkOwnerAccess(ctx, booking.FacilityID, actorID); err != nil {
		return ErrAccessDenied
	}
	return nil
}

// checkOwnerAccess проверяет, что actor - владелец площадки
func (s *Service) checkOwnerAccess(ctx context.Context, facilityID int64, actorID int64) error {
	facility, err := s.catalogRepo.GetFacilityByID(ctx, facilityID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrFacilityNotFound) {
			return ErrFacilityNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get facility id=%d: %v", facilityID, err)
		return fmt.Errorf("%w: checkOwnerAccess - repository error: %v", ErrInternal, err)
	}

	if facility.OwnerID != actorID {
		return ErrAccessDenied
	}

	return nil
}

// mapTransitionError конвертирует ошибку репозитория при переходе статуса:
// конфликт предусловия перечитывается и превращается в ErrInvalidTransition
func (s *Service) mapTransitionError(ctx context.Context, bookingID int64, err error, op string) error {
	if errors.Is(err, bookingRepo.ErrStatusConflict) {
		if _, getErr := s.bookingRepo.GetByID(ctx, bookingID); errors.Is(getErr, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Warn("%s: stale transition for booking id=%d", op, bookingID)
		return ErrInvalidTransition
	}
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func (s *Service) publishEvent(event string, booking *domain.Booking) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(notify.NewBookingEvent("", event, booking, s.timeProvider.Now()))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
