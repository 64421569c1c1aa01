package moderation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/catalog"
	userRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/user"
)

// Service единственный владелец флагов модерации: бан пользователей и
// статус одобрения площадок. Остальные компоненты НЕ кешируют и не
// дублируют эти флаги - каждый booking-affecting вызов проходит через
// Authorize* методы этого сервиса.
type Service struct {
	users      UserRepository
	facilities FacilityRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса модерации
func NewService(users UserRepository, facilities FacilityRepository, logger Logger) *Service {
	return &Service{
		users:      users,
		facilities: facilities,
		logger:     logger,
	}
}

// Register регистрирует нового пользователя.
// Пользователь создается активным и неподтверждённым.
func (s *Service) Register(ctx context.Context, name string, role domain.UserRole) (*domain.User, error) {
	if name == "" || len(name) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if _, ok := domain.ValidUserRole(string(role)); !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	// Администраторы не создаются через публичную регистрацию
	if role == domain.RolePlatformAdmin {
		return nil, fmt.Errorf("%w: cannot self-register as platform admin", ErrInvalidInput)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Name:       name,
		Role:       role,
		IsActive:   true,
		IsVerified: false,
	})
	if err != nil {
		s.logger.Error("Register: failed to create user: %v", err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: created user id=%d role=%s", created.ID, created.Role)
	return created, nil
}

// AuthorizeBooker проверяет, что пользователь существует и не забанен (I3)
func (s *Service) AuthorizeBooker(ctx context.Context, userID int64) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("AuthorizeBooker: failed to get user id=%d: %v", userID, err)
		return fmt.Errorf("%w: AuthorizeBooker - repository error: %v", ErrInternal, err)
	}

	if !u.CanBook() {
		s.logger.Warn("AuthorizeBooker: user id=%d is banned", userID)
		return ErrUserBanned
	}

	return nil
}

// AuthorizeFacilityForBooking проверяет, что площадка существует и
// одобрена модерацией (I2). Неодобренная площадка невидима для бронирования.
func (s *Service) AuthorizeFacilityForBooking(ctx context.Context, facilityID int64) error {
	f, err := s.facilities.GetFacilityByID(ctx, facilityID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrFacilityNotFound) {
			return ErrFacilityNotFound
		}
		s.logger.Error("AuthorizeFacilityForBooking: failed to get facility id=%d: %v", facilityID, err)
		return fmt.Errorf("%w: AuthorizeFacilityForBooking - repository error: %v", ErrInternal, err)
	}

	if !f.IsApproved() {
		s.logger.Warn("AuthorizeFacilityForBooking: facility id=%d has status=%s", facilityID, f.ApprovalStatus)
		return ErrFacilityNotApproved
	}

	return nil
}

// SetUserActive включает/выключает пользователя. Только platform_admin.
// Уже созданные бронирования забаненного пользователя не трогаются -
// блокируются только новые.
func (s *Service) SetUserActive(ctx context.Context, adminID, userID int64, active bool) error {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}

	if err := s.users.SetActive(ctx, userID, active); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("SetUserActive: failed to update user id=%d: %v", userID, err)
		return fmt.Errorf("%w: SetUserActive - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetUserActive: admin=%d set user id=%d active=%t", adminID, userID, active)
	return nil
}

// SetUserVerified помечает пользователя подтверждённым. Только platform_admin.
func (s *Service) SetUserVerified(ctx context.Context, adminID, userID int64, verified bool) error {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}

	if err := s.users.SetVerified(ctx, userID, verified); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("SetUserVerified: failed to update user id=%d: %v", userID, err)
		return fmt.Errorf("%w: SetUserVerified - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetUserVerified: admin=%d set user id=%d verified=%t", adminID, userID, verified)
	return nil
}

// SetFacilityApproval меняет статус модерации площадки. Только platform_admin.
// Существующие подтверждённые бронирования отклонённой позже площадки
// остаются в силе - сознательное политическое решение, не упущение.
func (s *Service) SetFacilityApproval(ctx context.Context, adminID, facilityID int64, status domain.ApprovalStatus) error {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}

	if _, ok := domain.ValidApprovalStatus(string(status)); !ok {
		return fmt.Errorf("%w: unknown approval status %q", ErrInvalidInput, status)
	}

	if err := s.facilities.SetFacilityApproval(ctx, facilityID, status); err != nil {
		if errors.Is(err, catalogRepo.ErrFacilityNotFound) {
			return ErrFacilityNotFound
		}
		s.logger.Error("SetFacilityApproval: failed to update facility id=%d: %v", facilityID, err)
		return fmt.Errorf("%w: SetFacilityApproval - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetFacilityApproval: admin=%d set facility id=%d status=%s", adminID, facilityID, status)
	return nil
}

// requireAdmin проверяет, что actor существует, активен и имеет роль platform_admin
func (s *Service) requireAdmin(ctx context.Context, adminID int64) error {
	u, err := s.users.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrNotAdmin
		}
		s.logger.Error("requireAdmin: failed to get user id=%d: %v", adminID, err)
		return fmt.Errorf("%w: requireAdmin - repository error: %v", ErrInternal, err)
	}

	if !u.IsActive || !u.IsAdmin() {
		s.logger.Warn("requireAdmin: user id=%d is not an active platform admin", adminID)
		return ErrNotAdmin
	}

	return nil
}
