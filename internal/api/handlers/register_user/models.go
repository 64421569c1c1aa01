package register_user

import (
	"time"

	"github.com/m04kA/SMC-CourtService/internal/domain"
)

// RegisterUserRequest HTTP request model
type RegisterUserRequest struct {
	Name string `json:"name"`
	Role string `json:"role"` // "regular_user" | "facility_owner"
}

// UserResponse HTTP response model
type UserResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	IsActive   bool   `json:"isActive"`
	IsVerified bool   `json:"isVerified"`
	CreatedAt  string `json:"createdAt"`
}

// FromDomainUser конвертирует domain модель в HTTP response
func FromDomainUser(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Role:       string(u.Role),
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
	}
}
