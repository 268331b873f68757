package review

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopmart-io/shopmart-backend/pkg/db/models"
	"github.com/shopmart-io/shopmart-backend/pkg/enums"
	"github.com/shopmart-io/shopmart-backend/pkg/pagination"
)

// Repository wires together review persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new review row.
func (r *Repository) Create(ctx context.Context, row *models.Review) (*models.Review, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// FindByID loads a review with its author joined.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var row models.Review
	err := r.db.WithContext(ctx).Preload("User").First(&row, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListApprovedByProduct pages through a product's approved reviews, newest
// first, with the reviewer joined.
func (r *Repository) ListApprovedByProduct(ctx context.Context, productID uuid.UUID, params pagination.Params) ([]models.Review, int64, error) {
	params = params.Normalize()
	base := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("product_id = ? AND status = ?", productID, enums.ReviewStatusApproved)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Review
	err := base.
		Preload("User").
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update persists the full review row, leaving the joined author alone.
func (r *Repository) Update(ctx context.Context, row *models.Review) (*models.Review, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// ApprovedAggregate recomputes the rating average and count over a
// product's approved reviews.
func (r *Repository) ApprovedAggregate(ctx context.Context, productID uuid.UUID) (float64, int, error) {
	var agg struct {
		Average float64
		Count   int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("product_id = ? AND status = ?", productID, enums.ReviewStatusApproved).
		Scan(&agg).Error
	if err != nil {
		return 0, 0, err
	}
	return agg.Average, int(agg.Count), nil
}
