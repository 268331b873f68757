package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/shopmart-io/shopmart-backend/pkg/enums"
)

// Review is a customer's product rating. The composite unique index keeps it
// to one review per (product, user) pair.
type Review struct {
	ID                 uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID          uuid.UUID          `gorm:"column:product_id;type:uuid;not null;uniqueIndex:reviews_product_user_key"`
	UserID             uuid.UUID          `gorm:"column:user_id;type:uuid;not null;uniqueIndex:reviews_product_user_key"`
	User               *User              `gorm:"foreignKey:UserID"`
	Rating             int                `gorm:"column:rating;not null"`
	Title              *string            `gorm:"column:title"`
	Comment            string             `gorm:"column:comment;not null"`
	Images             pq.StringArray     `gorm:"column:images;type:text[]"`
	IsVerifiedPurchase bool               `gorm:"column:is_verified_purchase;not null;default:false"`
	Helpful            int                `gorm:"column:helpful;not null;default:0"`
	Status             enums.ReviewStatus `gorm:"column:status;not null;default:'pending';index"`
	CreatedAt          time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
