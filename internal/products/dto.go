package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopmart-io/shopmart-backend/pkg/db/models"
	"github.com/shopmart-io/shopmart-backend/pkg/types"
)

// CategoryRefDTO surfaces the joined category name/slug on product payloads.
type CategoryRefDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// ProductDTO represents the catalog product payload returned to clients.
type ProductDTO struct {
	ID             uuid.UUID             `json:"id"`
	Name           string                `json:"name"`
	Description    string                `json:"description"`
	Price          float64               `json:"price"`
	CompareAtPrice *float64              `json:"compare_at_price,omitempty"`
	Category       *CategoryRefDTO       `json:"category,omitempty"`
	Subcategory    *string               `json:"subcategory,omitempty"`
	Brand          *string               `json:"brand,omitempty"`
	Stock          int                   `json:"stock"`
	SKU            string                `json:"sku"`
	Images         types.ProductImages   `json:"images"`
	RatingAverage  float64               `json:"rating_average"`
	RatingCount    int                   `json:"rating_count"`
	Variants       types.ProductVariants `json:"variants,omitempty"`
	Specifications types.Specifications  `json:"specifications,omitempty"`
	Tags           []string              `json:"tags"`
	IsActive       bool                  `json:"is_active"`
	IsFeatured     bool                  `json:"is_featured"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// NewProductDTO builds a DTO from the persisted model. The category ref is
// populated when the association was loaded.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:             product.ID,
		Name:           product.Name,
		Description:    product.Description,
		Price:          product.Price,
		CompareAtPrice: product.CompareAtPrice,
		Subcategory:    product.Subcategory,
		Brand:          product.Brand,
		Stock:          product.Stock,
		SKU:            product.SKU,
		Images:         product.Images,
		RatingAverage:  product.RatingAverage,
		RatingCount:    product.RatingCount,
		Variants:       product.Variants,
		Specifications: product.Specifications,
		Tags:           append([]string{}, product.Tags...),
		IsActive:       product.IsActive,
		IsFeatured:     product.IsFeatured,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
	if product.Category != nil && product.Category.ID != uuid.Nil {
		dto.Category = &CategoryRefDTO{
			ID:   product.Category.ID,
			Name: product.Category.Name,
			Slug: product.Category.Slug,
		}
	}
	return dto
}

// NewProductDTOs maps a slice of rows.
func NewProductDTOs(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewProductDTO(&rows[i]))
	}
	return out
}
