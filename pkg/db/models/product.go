package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/shopmart-io/shopmart-backend/pkg/types"
)

// Product is the canonical catalog listing. Deletion is a soft flip of
// IsActive; read paths filter on it explicitly.
type Product struct {
	ID             uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string                `gorm:"column:name;not null"`
	Description    string                `gorm:"column:description;not null"`
	Price          float64               `gorm:"column:price;type:numeric(12,2);not null"`
	CompareAtPrice *float64              `gorm:"column:compare_at_price;type:numeric(12,2)"`
	CategoryID     uuid.UUID             `gorm:"column:category_id;type:uuid;not null"`
	Category       *Category             `gorm:"foreignKey:CategoryID"`
	Subcategory    *string               `gorm:"column:subcategory"`
	Brand          *string               `gorm:"column:brand"`
	Stock          int                   `gorm:"column:stock;not null;default:0"`
	SKU            string                `gorm:"column:sku;not null;uniqueIndex:products_sku_key"`
	Images         types.ProductImages   `gorm:"column:images;type:jsonb;serializer:json"`
	RatingAverage  float64               `gorm:"column:rating_average;type:numeric(3,2);not null;default:0"`
	RatingCount    int                   `gorm:"column:rating_count;not null;default:0"`
	Variants       types.ProductVariants `gorm:"column:variants;type:jsonb;serializer:json"`
	Specifications types.Specifications  `gorm:"column:specifications;type:jsonb;serializer:json"`
	Tags           pq.StringArray        `gorm:"column:tags;type:text[]"`
	IsActive       bool                  `gorm:"column:is_active;not null;default:true"`
	IsFeatured     bool                  `gorm:"column:is_featured;not null;default:false"`
	CreatedAt      time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
