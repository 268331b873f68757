package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopmart-io/shopmart-backend/pkg/db/models"
	"github.com/shopmart-io/shopmart-backend/pkg/enums"
	"github.com/shopmart-io/shopmart-backend/pkg/types"
)

// UserDTO exposes safe account data in API responses. The password hash
// never appears here.
type UserDTO struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Role        enums.UserRole    `json:"role"`
	Phone       *string           `json:"phone,omitempty"`
	Avatar      *string           `json:"avatar,omitempty"`
	Addresses   types.AddressList `json:"addresses"`
	IsActive    bool              `json:"is_active"`
	LastLoginAt *time.Time        `json:"last_login_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// AuthResultDTO pairs the account with its freshly minted access token.
type AuthResultDTO struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

// NewUserDTO builds a DTO from the persisted model.
func NewUserDTO(user *models.User) *UserDTO {
	addresses := user.Addresses
	if addresses == nil {
		addresses = types.AddressList{}
	}
	return &UserDTO{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		Phone:       user.Phone,
		Avatar:      user.Avatar,
		Addresses:   addresses,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}
