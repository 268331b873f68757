package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopmart-io/shopmart-backend/pkg/enums"
	"github.com/shopmart-io/shopmart-backend/pkg/types"
)

// User represents a storefront account. PasswordHash never leaves the
// persistence layer; DTOs re-shape the row before it is serialized.
type User struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string            `gorm:"column:name;not null"`
	Email        string            `gorm:"column:email;type:text;not null;uniqueIndex:users_email_key"`
	PasswordHash string            `gorm:"column:password_hash;not null"`
	Role         enums.UserRole    `gorm:"column:role;not null;default:'customer'"`
	Phone        *string           `gorm:"column:phone"`
	Avatar       *string           `gorm:"column:avatar"`
	Addresses    types.AddressList `gorm:"column:addresses;type:jsonb;serializer:json"`
	IsActive     bool              `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time        `gorm:"column:last_login_at"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
