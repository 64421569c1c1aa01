package domain

import "time"

// ApprovalStatus represents the moderation status of a facility
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Facility represents a sports facility listed by an owner.
// ApprovalStatus is mutated only through the moderation service.
// Courts under a non-approved facility are invisible to booking.
type Facility struct {
	ID             int64
	OwnerID        int64
	Name           string
	Location       string
	ApprovalStatus ApprovalStatus
	Amenities      []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsApproved returns true if the facility is open for new bookings
func (f *Facility) IsApproved() bool {
	return f.ApprovalStatus == ApprovalApproved
}

// ValidApprovalStatus проверяет, что строка является допустимым статусом модерации
func ValidApprovalStatus(s string) (ApprovalStatus, bool) {
	switch ApprovalStatus(s) {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return ApprovalStatus(s), true
	default:
		return "", false
	}
}
