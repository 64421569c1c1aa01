package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/catalog"
	userRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/user"
	"github.com/m04kA/SMC-CourtService/internal/service/catalog/models"
	"github.com/m04kA/SMC-CourtService/pkg/types"
)

// Service сервис каталога: регистрация площадок и кортов, публичные чтения.
// Каталог read-mostly; статус модерации меняется только через moderation service.
type Service struct {
	catalogRepo CatalogRepository
	userRepo    UserRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, userRepo UserRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// CreateFacility регистрирует новую площадку в статусе pending.
// Доступно только пользователям с ролью facility_owner.
func (s *Service) CreateFacility(ctx context.Context, req *models.CreateFacilityRequest) (*models.FacilityResponse, error) {
	if err := validateCreateFacility(req); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.GetByID(ctx, req.OwnerID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("CreateFacility: failed to get user id=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: CreateFacility - repository error: %v", ErrInternal, err)
	}

	if owner.Role != domain.RoleFacilityOwner {
		s.logger.Warn("CreateFacility: user id=%d has role=%s, owner role required", req.OwnerID, owner.Role)
		return nil, ErrNotOwnerRole
	}

	created, err := s.catalogRepo.CreateFacility(ctx, &domain.Facility{
		OwnerID:        req.OwnerID,
		Name:           req.Name,
		Location:       req.Location,
		ApprovalStatus: domain.ApprovalPending,
		Amenities:      req.Amenities,
	})
	if err != nil {
		s.logger.Error("CreateFacility: failed to create facility: %v", err)
		return nil, fmt.Errorf("%w: CreateFacility - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateFacility: created facility id=%d owner=%d", created.ID, created.OwnerID)
	return models.FromDomainFacility(created), nil
}

// CreateCourt добавляет корт на площадку. Доступно только её владельцу.
func (s *Service) CreateCourt(ctx context.Context, req *models.CreateCourtRequest) (*models.CourtResponse, error) {
	openTime, closeTime, err := validateCreateCourt(req)
	if err != nil {
		return nil, err
	}

	facility, err := s.getFacility(ctx, req.FacilityID)
	if err != nil {
		return nil, err
	}

	if facility.OwnerID != req.OwnerID {
		s.logger.Warn("CreateCourt: user id=%d is not the owner of facility id=%d", req.OwnerID, req.FacilityID)
		return nil, ErrAccessDenied
	}

	created, err := s.catalogRepo.CreateCourt(ctx, &domain.Court{
		FacilityID:          req.FacilityID,
		SportType:           req.SportType,
		OpenTime:            openTime,
		CloseTime:           closeTime,
		SlotDurationMinutes: req.SlotDurationMinutes,
		BasePrice:           req.BasePrice,
		WeekendPrice:        req.WeekendPrice,
	})
	if err != nil {
		s.logger.Error("CreateCourt: failed to create court: %v", err)
		return nil, fmt.Errorf("%w: CreateCourt - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateCourt: created court id=%d facility=%d", created.ID, created.FacilityID)
	return models.FromDomainCourt(created), nil
}

// GetFacilityCourts возвращает корты площадки для публичного каталога.
// Корты неодобренной площадки невидимы для бронирования.
func (s *Service) GetFacilityCourts(ctx context.Context, facilityID int64) (*models.CourtListResponse, error) {
	facility, err := s.getFacility(ctx, facilityID)
	if err != nil {
		return nil, err
	}

	if !facility.IsApproved() {
		return nil, ErrFacilityNotApproved
	}

	courts, err := s.catalogRepo.GetCourtsByFacility(ctx, facilityID)
	if err != nil {
		s.logger.Error("GetFacilityCourts: repository error for facility=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: GetFacilityCourts - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCourtList(courts), nil
}

func (s *Service) getFacility(ctx context.Context, id int64) (*domain.Facility, error) {
	facility, err := s.catalogRepo.GetFacilityByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrFacilityNotFound) {
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("getFacility: repository error for facility=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return facility, nil
}

// Валидация

func validateCreateFacility(req *models.CreateFacilityRequest) error {
	if req.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}
	if req.Name == "" || len(req.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if req.Location == "" || len(req.Location) > domain.MaxLocationLength {
		return fmt.Errorf("%w: location must be 1..%d characters", ErrInvalidInput, domain.MaxLocationLength)
	}
	if len(req.Amenities) > domain.MaxAmenities {
		return fmt.Errorf("%w: too many amenities", ErrInvalidInput)
	}
	return nil
}

func validateCreateCourt(req *models.CreateCourtRequest) (types.TimeString, types.TimeString, error) {
	if req.FacilityID <= 0 {
		return "", "", fmt.Errorf("%w: facilityID must be positive", ErrInvalidInput)
	}
	if req.OwnerID <= 0 {
		return "", "", fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}
	if req.SportType == "" {
		return "", "", fmt.Errorf("%w: sportType is required", ErrInvalidInput)
	}

	openTime, err := types.NewTimeStringFromString(req.OpenTime)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid openTime: %v", ErrInvalidInput, err)
	}
	closeTime, err := types.NewTimeStringFromString(req.CloseTime)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid closeTime: %v", ErrInvalidInput, err)
	}
	if !openTime.IsBefore(closeTime) {
		return "", "", fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidInput)
	}

	if req.SlotDurationMinutes < domain.MinSlotDurationMinutes || req.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return "", "", fmt.Errorf("%w: slotDurationMinutes must be %d..%d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if req.BasePrice < 0 {
		return "", "", fmt.Errorf("%w: basePrice must be non-negative", ErrInvalidInput)
	}
	if req.WeekendPrice != nil && *req.WeekendPrice < 0 {
		return "", "", fmt.Errorf("%w: weekendPrice must be non-negative", ErrInvalidInput)
	}

	return openTime, closeTime, nil
}
