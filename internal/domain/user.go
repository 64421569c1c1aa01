package domain

import "time"

// UserRole represents the role of a user in the system
type UserRole string

const (
	RoleRegularUser   UserRole = "regular_user"
	RoleFacilityOwner UserRole = "facility_owner"
	RolePlatformAdmin UserRole = "platform_admin"
)

// User represents a platform account.
// IsActive and IsVerified are mutated only through the moderation service.
type User struct {
	ID         int64
	Name       string
	Role       UserRole
	IsActive   bool // false = забанен
	IsVerified bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CanBook returns true if the user is allowed to create bookings
func (u *User) CanBook() bool {
	return u.IsActive
}

// IsAdmin returns true if the user has platform administrator rights
func (u *User) IsAdmin() bool {
	return u.Role == RolePlatformAdmin
}

// ValidUserRole проверяет, что строка является допустимой ролью
func ValidUserRole(s string) (UserRole, bool) {
	switch UserRole(s) {
	case RoleRegularUser, RoleFacilityOwner, RolePlatformAdmin:
		return UserRole(s), true
	default:
		return "", false
	}
}
