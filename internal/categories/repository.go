package categories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopmart-io/shopmart-backend/pkg/db/models"
)

// Repository handles category persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to category operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads a category, optionally seeing inactive rows.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Category, error) {
	qb := r.db.WithContext(ctx)
	if !includeInactive {
		qb = qb.Where("is_active = ?", true)
	}
	var category models.Category
	if err := qb.Preload("Parent").First(&category, "categories.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindBySlug loads an active category by slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Create inserts a new category row.
func (r *Repository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Update saves the full category row, leaving the joined parent alone.
func (r *Repository) Update(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// SoftDelete flips is_active off.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns active categories ordered by level then name, parents joined.
func (r *Repository) List(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).
		Preload("Parent").
		Where("is_active = ?", true).
		Order("level ASC").
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}

// CountChildren reports how many active categories point at the parent.
func (r *Repository) CountChildren(ctx context.Context, parentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("parent_id = ? AND is_active = ?", parentID, true).
		Count(&count).
		Error
	return count, err
}
