package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopmart-io/shopmart-backend/pkg/enums"
	"github.com/shopmart-io/shopmart-backend/pkg/types"
)

// Order is an immutable purchase record. Items, shipping address and pricing
// are snapshots; only Status, StatusHistory, Payment and Tracking mutate
// after creation.
type Order struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber     string              `gorm:"column:order_number;not null;uniqueIndex:orders_order_number_key"`
	UserID          uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	Items           types.OrderItems    `gorm:"column:items;type:jsonb;serializer:json;not null"`
	ShippingAddress types.Address       `gorm:"column:shipping_address;type:jsonb;serializer:json;not null"`
	Payment         types.OrderPayment  `gorm:"column:payment;type:jsonb;serializer:json;not null"`
	Pricing         types.OrderPricing  `gorm:"column:pricing;type:jsonb;serializer:json;not null"`
	Status          enums.OrderStatus   `gorm:"column:status;not null;default:'pending';index"`
	StatusHistory   types.StatusHistory `gorm:"column:status_history;type:jsonb;serializer:json"`
	Tracking        types.OrderTracking `gorm:"column:tracking;type:jsonb;serializer:json"`
	Notes           *string             `gorm:"column:notes"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime;index:orders_created_at_idx,sort:desc"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
