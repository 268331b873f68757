package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart holds a user's open basket. The unique index on UserID enforces the
// one-cart-per-user invariant at the store.
type Cart struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:carts_user_id_key"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// CartItem is one line of a cart. Price is the unit price snapshotted when
// the line was added; it is not reconciled with later catalog edits.
type CartItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID    uuid.UUID `gorm:"column:cart_id;type:uuid;not null;uniqueIndex:cart_items_cart_product_key"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:cart_items_cart_product_key"`
	Product   *Product  `gorm:"foreignKey:ProductID"`
	Quantity  int       `gorm:"column:quantity;not null;default:1"`
	Variant   *string   `gorm:"column:variant"`
	Price     float64   `gorm:"column:price;type:numeric(12,2);not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
