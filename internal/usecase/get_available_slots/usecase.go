package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-CourtService/internal/service/moderation"
)

// UseCase use case календаря слотов: разбивает операционный день корта
// на окна фиксированной длины и помечает занятые.
//
// Чистая функция от (корт, дата, активные бронирования): результат
// пересчитывается при каждом вызове и нигде не кешируется.
type UseCase struct {
	catalogRepo CatalogRepository
	bookingRepo BookingRepository
	gate        ModerationGate
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	bookingRepo BookingRepository,
	gate ModerationGate,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo: catalogRepo,
		bookingRepo: bookingRepo,
		gate:        gate,
		logger:      logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем корт
	court, err := uc.catalogRepo.GetCourtByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrCourtNotFound) {
			uc.logger.Warn("GetAvailableSlots: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	// 3. Корты неодобренной площадки невидимы для бронирования
	if err := uc.gate.AuthorizeFacilityForBooking(ctx, court.FacilityID); err != nil {
		switch {
		case errors.Is(err, moderation.ErrFacilityNotApproved):
			uc.logger.Warn("GetAvailableSlots: facility id=%d not approved", court.FacilityID)
			return nil, ErrFacilityNotApproved
		case errors.Is(err, moderation.ErrFacilityNotFound):
			return nil, ErrFacilityNotFound
		default:
			uc.logger.Error("GetAvailableSlots: gate error for facility id=%d: %v", court.FacilityID, err)
			return nil, fmt.Errorf("%w: moderation gate: %v", ErrInternal, err)
		}
	}

	// 4. Генерируем окна операционного дня
	slots, err := generateSlots(court)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots for court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 5. Получаем активные бронирования на эту дату
	bookings, err := uc.bookingRepo.GetActiveByCourtAndDate(ctx, req.CourtID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Помечаем занятые окна
	slots = markUnavailable(slots, bookings)

	uc.logger.Info("GetAvailableSlots: court=%d date=%s slots=%d",
		req.CourtID, req.Date.Format(domain.DateFormat), len(slots))

	return &Response{
		CourtID: req.CourtID,
		Date:    req.Date,
		Slots:   slots,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
