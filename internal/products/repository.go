package product

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopmart-io/shopmart-backend/pkg/db/models"
	"github.com/shopmart-io/shopmart-backend/pkg/pagination"
)

// Repository wires together product persistence helpers.
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

// FindByID loads the product with its category joined in. Inactive rows are
// filtered out unless includeInactive is set.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Product, error) {
	qb := r.db.WithContext(ctx).Joins("Category")
	if !includeInactive {
		qb = qb.Where("products.is_active = ?", true)
	}
	var product models.Product
	if err := qb.First(&product, "products.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBySKU loads a product by its SKU regardless of active state.
func (r *Repository) FindBySKU(ctx context.Context, sku string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Create inserts a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Update saves the full product row, leaving the joined category alone.
func (r *Repository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// SoftDelete flips is_active off. Reads filter on the flag, so the row
// disappears from public surfaces without losing order history references.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
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

// AdjustStock applies a delta to the product stock, refusing to go negative.
// Returns gorm.ErrRecordNotFound when the product is missing and
// ErrInsufficientStock when the decrement would underflow.
func (r *Repository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) error {
	tx := r.db.WithContext(ctx)

	result := tx.Model(&models.Product{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}

// SetRatingAggregate overwrites the denormalized review aggregate.
func (r *Repository) SetRatingAggregate(ctx context.Context, id uuid.UUID, average float64, count int) error {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"rating_average": average,
			"rating_count":   count,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ErrInsufficientStock signals a stock decrement below zero.
var ErrInsufficientStock = fmt.Errorf("insufficient stock")

// List returns a page of products with the total unpaginated count.
func (r *Repository) List(ctx context.Context, input ListInput) ([]models.Product, int64, error) {
	params := input.Pagination.Normalize()

	base := r.db.WithContext(ctx).Model(&models.Product{})
	base = applyFilters(base, input.Filters)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	qb := r.db.WithContext(ctx).Model(&models.Product{}).Joins("Category")
	qb = applyFilters(qb, input.Filters)
	qb = applySort(qb, input)

	var rows []models.Product
	err := qb.
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Search runs a rank-ordered full-text lookup over active products.
func (r *Repository) Search(ctx context.Context, query string, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = pagination.DefaultLimit
	}
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Joins("Category").
		Where("products.is_active = ?", true).
		Where("products.search_vector @@ plainto_tsquery('english', ?)", query).
		Order(rankOrder(query)).
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}

func applyFilters(qb *gorm.DB, filters ListFilters) *gorm.DB {
	if !filters.IncludeInactive {
		qb = qb.Where("products.is_active = ?", true)
	}
	if filters.CategoryID != nil {
		qb = qb.Where("products.category_id = ?", *filters.CategoryID)
	}
	if filters.Subcategory != nil {
		qb = qb.Where("products.subcategory = ?", *filters.Subcategory)
	}
	if filters.Brand != nil {
		qb = qb.Where("products.brand = ?", *filters.Brand)
	}
	if filters.PriceMin != nil {
		qb = qb.Where("products.price >= ?", *filters.PriceMin)
	}
	if filters.PriceMax != nil {
		qb = qb.Where("products.price <= ?", *filters.PriceMax)
	}
	if filters.MinRating != nil {
		qb = qb.Where("products.rating_average >= ?", *filters.MinRating)
	}
	if filters.FeaturedOnly {
		qb = qb.Where("products.is_featured = ?", true)
	}
	if filters.InStockOnly {
		qb = qb.Where("products.stock > 0")
	}
	if filters.Query != "" {
		qb = qb.Where("products.search_vector @@ plainto_tsquery('english', ?)", filters.Query)
	}
	return qb
}

func applySort(qb *gorm.DB, input ListInput) *gorm.DB {
	if input.SortField == "" {
		if input.Filters.Query != "" {
			return qb.Order(rankOrder(input.Filters.Query))
		}
		return qb.Order("products.created_at DESC")
	}
	column := sortColumns[input.SortField]
	direction := "DESC"
	if input.SortOrder == "asc" {
		direction = "ASC"
	}
	return qb.Order(fmt.Sprintf("%s %s", column, direction))
}

func rankOrder(query string) clause.OrderBy {
	return clause.OrderBy{
		Expression: clause.Expr{
			SQL:  "ts_rank(products.search_vector, plainto_tsquery('english', ?)) DESC",
			Vars: []interface{}{query},
		},
	}
}
