package categories

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopmart-io/shopmart-backend/pkg/db/models"
)

// ParentRefDTO surfaces the resolved parent name/slug on category payloads.
type ParentRefDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// CategoryDTO is the category payload returned to clients.
type CategoryDTO struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description *string       `json:"description,omitempty"`
	Image       *string       `json:"image,omitempty"`
	Parent      *ParentRefDTO `json:"parent,omitempty"`
	Level       int           `json:"level"`
	IsActive    bool          `json:"is_active"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NewCategoryDTO builds a DTO from the persisted model.
func NewCategoryDTO(category *models.Category) *CategoryDTO {
	dto := &CategoryDTO{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		Image:       category.Image,
		Level:       category.Level,
		IsActive:    category.IsActive,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
	if category.Parent != nil && category.Parent.ID != uuid.Nil {
		dto.Parent = &ParentRefDTO{
			ID:   category.Parent.ID,
			Name: category.Parent.Name,
			Slug: category.Parent.Slug,
		}
	}
	return dto
}

// NewCategoryDTOs maps a slice of rows.
func NewCategoryDTOs(rows []models.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewCategoryDTO(&rows[i]))
	}
	return out
}
