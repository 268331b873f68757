package order

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopmart-io/shopmart-backend/pkg/db/models"
	"github.com/shopmart-io/shopmart-backend/pkg/enums"
	"github.com/shopmart-io/shopmart-backend/pkg/pagination"
)

// Repository wires together order persistence helpers.
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

// Create inserts a new order row.
func (r *Repository) Create(ctx context.Context, row *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// FindByID loads an order regardless of owner. Admin paths use this.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var row models.Order
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByIDForUser loads an order only when it belongs to the user.
func (r *Repository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	var row models.Order
	err := r.db.WithContext(ctx).
		First(&row, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListByUser pages through the user's orders, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, int64, error) {
	params = params.Normalize()
	base := r.db.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Order
	err := base.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update persists the full order row.
func (r *Repository) Update(ctx context.Context, row *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// HasDeliveredOrderWithProduct reports whether the user has a delivered
// order containing the product. Review verification leans on this.
func (r *Repository) HasDeliveredOrderWithProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("user_id = ? AND status = ?", userID, enums.OrderStatusDelivered).
		Where("items @> ?", `[{"product_id":"`+productID.String()+`"}]`).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
