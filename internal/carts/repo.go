package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopmart-io/shopmart-backend/pkg/db/models"
)

// Repository wires together cart persistence helpers.
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

// GetOrCreateByUser loads the user's cart with its items and joined products,
// creating an empty cart first if none exists. The unique index on user_id
// makes concurrent first calls converge on a single row.
func (r *Repository) GetOrCreateByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	row := models.Cart{UserID: userID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&row).Error
	if err != nil {
		return nil, err
	}
	return r.FindByUser(ctx, userID)
}

// FindByUser loads the user's cart with items and their products preloaded.
func (r *Repository) FindByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var row models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(qb *gorm.DB) *gorm.DB {
			return qb.Order("cart_items.created_at ASC")
		}).
		Preload("Items.Product").
		First(&row, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ReplaceItems swaps the cart's stored lines for the given set in one shot.
// Callers pass the reducer output, so the write always reflects a full state.
func (r *Repository) ReplaceItems(ctx context.Context, cartID uuid.UUID, lines []Line) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return touchCart(tx, cartID)
		}
		items := make([]models.CartItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, models.CartItem{
				CartID:    cartID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Variant:   line.Variant,
				Price:     line.Price,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		return touchCart(tx, cartID)
	})
}

// Clear removes every line from the cart.
func (r *Repository) Clear(ctx context.Context, cartID uuid.UUID) error {
	return r.ReplaceItems(ctx, cartID, nil)
}

func touchCart(tx *gorm.DB, cartID uuid.UUID) error {
	return tx.Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("updated_at", gorm.Expr("now()")).Error
}
