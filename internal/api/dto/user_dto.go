package dto

import (
	"time"

	"github.com/spec-kit/shop-auth-service/internal/domain"
)

// CreateUserRequest payload for invite-gated registration.
type CreateUserRequest struct {
	ShopID   string `json:"shop_id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// UpdateUserRequest payload for role/active updates. Pointer fields
// distinguish "absent" from zero values.
type UpdateUserRequest struct {
	Role   *string `json:"role"`
	Active *bool   `json:"active"`
}

// InviteUserRequest payload for creating an invite.
type InviteUserRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AcceptInviteRequest payload for the manual invite completion path.
type AcceptInviteRequest struct {
	Email string `json:"email"`
}

// UserResponse is the public shape of an account.
type UserResponse struct {
	ID        string    `json:"id"`
	ShopID    *string   `json:"shop_id,omitempty"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// InviteResponse is the public shape of an invite.
type InviteResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse maps a domain user. The password hash never leaves the
// service.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		ShopID:    user.ShopID,
		Email:     user.Email,
		Role:      string(user.Role),
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
	}
}

// NewInviteResponse maps a domain invite.
func NewInviteResponse(invite *domain.Invite) InviteResponse {
	return InviteResponse{
		ID:        invite.ID,
		Email:     invite.Email,
		Role:      string(invite.Role),
		Status:    string(invite.Status),
		CreatedAt: invite.CreatedAt,
	}
}
