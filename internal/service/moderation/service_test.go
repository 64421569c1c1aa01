package moderation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/catalog"
	userRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/user"
)

// Фейки

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[int64]*domain.User)}
	for _, u := range users {
		repo.users[u.ID] = u
		if u.ID > repo.nextID {
			repo.nextID = u.ID
		}
	}
	return repo
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	f.nextID++
	created := *u
	created.ID = f.nextID
	f.users[created.ID] = &created
	return &created, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) SetActive(_ context.Context, id int64, active bool) error {
	u, ok := f.users[id]
	if !ok {
		return userRepo.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (f *fakeUserRepo) SetVerified(_ context.Context, id int64, verified bool) error {
	u, ok := f.users[id]
	if !ok {
		return userRepo.ErrUserNotFound
	}
	u.IsVerified = verified
	return nil
}

type fakeFacilityRepo struct {
	facilities map[int64]*domain.Facility
}

func newFakeFacilityRepo(facilities ...*domain.Facility) *fakeFacilityRepo {
	repo := &fakeFacilityRepo{facilities: make(map[int64]*domain.Facility)}
	for _, f := range facilities {
		repo.facilities[f.ID] = f
	}
	return repo
}

func (f *fakeFacilityRepo) GetFacilityByID(_ context.Context, id int64) (*domain.Facility, error) {
	facility, ok := f.facilities[id]
	if !ok {
		return nil, catalogRepo.ErrFacilityNotFound
	}
	copied := *facility
	return &copied, nil
}

func (f *fakeFacilityRepo) SetFacilityApproval(_ context.Context, id int64, status domain.ApprovalStatus) error {
	facility, ok := f.facilities[id]
	if !ok {
		return catalogRepo.ErrFacilityNotFound
	}
	facility.ApprovalStatus = status
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func admin() *domain.User {
	return &domain.User{ID: 1, Name: "admin", Role: domain.RolePlatformAdmin, IsActive: true}
}

// Register

func TestRegister(t *testing.T) {
	svc := NewService(newFakeUserRepo(), newFakeFacilityRepo(), nopLogger{})

	user, err := svc.Register(context.Background(), "alice", domain.RoleRegularUser)
	require.NoError(t, err)

	assert.True(t, user.IsActive)
	assert.False(t, user.IsVerified)
	assert.Equal(t, domain.RoleRegularUser, user.Role)
}

func TestRegister_AdminRoleForbidden(t *testing.T) {
	svc := NewService(newFakeUserRepo(), newFakeFacilityRepo(), nopLogger{})

	_, err := svc.Register(context.Background(), "mallory", domain.RolePlatformAdmin)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegister_InvalidInput(t *testing.T) {
	svc := NewService(newFakeUserRepo(), newFakeFacilityRepo(), nopLogger{})

	_, err := svc.Register(context.Background(), "", domain.RoleRegularUser)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(context.Background(), "bob", domain.UserRole("superuser"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// AuthorizeBooker

func TestAuthorizeBooker(t *testing.T) {
	users := newFakeUserRepo(
		&domain.User{ID: 5, Role: domain.RoleRegularUser, IsActive: true},
		&domain.User{ID: 6, Role: domain.RoleRegularUser, IsActive: false},
	)
	svc := NewService(users, newFakeFacilityRepo(), nopLogger{})

	assert.NoError(t, svc.AuthorizeBooker(context.Background(), 5))
	assert.ErrorIs(t, svc.AuthorizeBooker(context.Background(), 6), ErrUserBanned)
	assert.ErrorIs(t, svc.AuthorizeBooker(context.Background(), 42), ErrUserNotFound)
}

// AuthorizeFacilityForBooking

func TestAuthorizeFacilityForBooking(t *testing.T) {
	facilities := newFakeFacilityRepo(
		&domain.Facility{ID: 10, ApprovalStatus: domain.ApprovalApproved},
		&domain.Facility{ID: 11, ApprovalStatus: domain.ApprovalPending},
		&domain.Facility{ID: 12, ApprovalStatus: domain.ApprovalRejected},
	)
	svc := NewService(newFakeUserRepo(), facilities, nopLogger{})

	assert.NoError(t, svc.AuthorizeFacilityForBooking(context.Background(), 10))
	assert.ErrorIs(t, svc.AuthorizeFacilityForBooking(context.Background(), 11), ErrFacilityNotApproved)
	assert.ErrorIs(t, svc.AuthorizeFacilityForBooking(context.Background(), 12), ErrFacilityNotApproved)
	assert.ErrorIs(t, svc.AuthorizeFacilityForBooking(context.Background(), 99), ErrFacilityNotFound)
}

// Админские операции

func TestSetUserActive(t *testing.T) {
	users := newFakeUserRepo(
		admin(),
		&domain.User{ID: 5, Role: domain.RoleRegularUser, IsActive: true},
	)
	svc := NewService(users, newFakeFacilityRepo(), nopLogger{})

	require.NoError(t, svc.SetUserActive(context.Background(), 1, 5, false))

	banned, err := users.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, banned.IsActive)
}

func TestSetUserActive_NotAdmin(t *testing.T) {
	users := newFakeUserRepo(
		&domain.User{ID: 2, Role: domain.RoleRegularUser, IsActive: true},
		&domain.User{ID: 5, Role: domain.RoleRegularUser, IsActive: true},
	)
	svc := NewService(users, newFakeFacilityRepo(), nopLogger{})

	assert.ErrorIs(t, svc.SetUserActive(context.Background(), 2, 5, false), ErrNotAdmin)
}

func TestSetUserActive_InactiveAdmin(t *testing.T) {
	deactivated := admin()
	deactivated.IsActive = false
	users := newFakeUserRepo(
		deactivated,
		&domain.User{ID: 5, Role: domain.RoleRegularUser, IsActive: true},
	)
	svc := NewService(users, newFakeFacilityRepo(), nopLogger{})

	assert.ErrorIs(t, svc.SetUserActive(context.Background(), 1, 5, false), ErrNotAdmin)
}

func TestSetUserVerified(t *testing.T) {
	users := newFakeUserRepo(
		admin(),
		&domain.User{ID: 5, Role: domain.RoleFacilityOwner, IsActive: true},
	)
	svc := NewService(users, newFakeFacilityRepo(), nopLogger{})

	require.NoError(t, svc.SetUserVerified(context.Background(), 1, 5, true))

	verified, err := users.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
}

func TestSetFacilityApproval(t *testing.T) {
	users := newFakeUserRepo(admin())
	facilities := newFakeFacilityRepo(&domain.Facility{ID: 10, ApprovalStatus: domain.ApprovalPending})
	svc := NewService(users, facilities, nopLogger{})

	require.NoError(t, svc.SetFacilityApproval(context.Background(), 1, 10, domain.ApprovalApproved))

	facility, err := facilities.GetFacilityByID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalApproved, facility.ApprovalStatus)
}

func TestSetFacilityApproval_NotAdmin(t *testing.T) {
	users := newFakeUserRepo(&domain.User{ID: 2, Role: domain.RoleFacilityOwner, IsActive: true})
	facilities := newFakeFacilityRepo(&domain.Facility{ID: 10, ApprovalStatus: domain.ApprovalPending})
	svc := NewService(users, facilities, nopLogger{})

	assert.ErrorIs(t, svc.SetFacilityApproval(context.Background(), 2, 10, domain.ApprovalApproved), ErrNotAdmin)
}

func TestSetFacilityApproval_UnknownStatus(t *testing.T) {
	users := newFakeUserRepo(admin())
	facilities := newFakeFacilityRepo(&domain.Facility{ID: 10})
	svc := NewService(users, facilities, nopLogger{})

	err := svc.SetFacilityApproval(context.Background(), 1, 10, domain.ApprovalStatus("archived"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
