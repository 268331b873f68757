package product

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopmart-io/shopmart-backend/pkg/db/models"
	"github.com/shopmart-io/shopmart-backend/pkg/pagination"
)

func TestRepositoryListAndSoftDelete(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	defer tx.Rollback()

	ctx := context.Background()
	repo := NewRepository(tx)

	category := mustCreateTestCategory(t, tx, "Lighting")
	other := mustCreateTestCategory(t, tx, "Office")

	cheap := mustCreateTestProduct(t, tx, category.ID, func(p *models.Product) {
		p.Price = 9.99
		p.Stock = 5
	})
	mid := mustCreateTestProduct(t, tx, category.ID, func(p *models.Product) {
		p.Price = 49.99
		p.Stock = 0
	})
	mustCreateTestProduct(t, tx, other.ID, func(p *models.Product) {
		p.Price = 99.99
	})

	t.Run("categoryFilter", func(t *testing.T) {
		rows, total, err := repo.List(ctx, ListInput{
			Filters:    ListFilters{CategoryID: &category.ID},
			Pagination: pagination.Params{Page: 1, Limit: 12},
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if total != 2 || len(rows) != 2 {
			t.Fatalf("expected 2 products in category, got total=%d rows=%d", total, len(rows))
		}
		for _, row := range rows {
			if row.Category == nil || row.Category.Name != "Lighting" {
				t.Fatalf("expected joined category, got %+v", row.Category)
			}
		}
	})

	t.Run("priceRange", func(t *testing.T) {
		min, max := 5.0, 20.0
		rows, total, err := repo.List(ctx, ListInput{
			Filters:    ListFilters{PriceMin: &min, PriceMax: &max},
			Pagination: pagination.Params{Page: 1, Limit: 12},
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if total != 1 || len(rows) != 1 || rows[0].ID != cheap.ID {
			t.Fatalf("expected only the cheap product, got total=%d", total)
		}
	})

	t.Run("inStockOnly", func(t *testing.T) {
		rows, _, err := repo.List(ctx, ListInput{
			Filters:    ListFilters{CategoryID: &category.ID, InStockOnly: true},
			Pagination: pagination.Params{Page: 1, Limit: 12},
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		for _, row := range rows {
			if row.ID == mid.ID {
				t.Fatal("out-of-stock product should be filtered")
			}
		}
	})

	t.Run("paginationDisjoint", func(t *testing.T) {
		page1, total, err := repo.List(ctx, ListInput{
			Pagination: pagination.Params{Page: 1, Limit: 2},
		})
		if err != nil {
			t.Fatalf("list page 1: %v", err)
		}
		page2, _, err := repo.List(ctx, ListInput{
			Pagination: pagination.Params{Page: 2, Limit: 2},
		})
		if err != nil {
			t.Fatalf("list page 2: %v", err)
		}
		if total < 3 {
			t.Fatalf("expected at least 3 products, got %d", total)
		}
		seen := map[uuid.UUID]bool{}
		for _, row := range page1 {
			seen[row.ID] = true
		}
		for _, row := range page2 {
			if seen[row.ID] {
				t.Fatalf("product %s appears on both pages", row.ID)
			}
		}
	})

	t.Run("softDeleteHidesFromReads", func(t *testing.T) {
		if err := repo.SoftDelete(ctx, cheap.ID); err != nil {
			t.Fatalf("soft delete: %v", err)
		}
		if _, err := repo.FindByID(ctx, cheap.ID, false); !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Fatalf("expected active read to miss, got %v", err)
		}
		row, err := repo.FindByID(ctx, cheap.ID, true)
		if err != nil {
			t.Fatalf("expected admin read to find the row, got %v", err)
		}
		if row.IsActive {
			t.Fatal("expected is_active=false after soft delete")
		}
		if err := repo.SoftDelete(ctx, cheap.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Fatalf("double delete should report not found, got %v", err)
		}
	})
}

func TestRepositoryAdjustStock(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	defer tx.Rollback()

	ctx := context.Background()
	repo := NewRepository(tx)
	category := mustCreateTestCategory(t, tx, "Stocked")
	row := mustCreateTestProduct(t, tx, category.ID, func(p *models.Product) {
		p.Stock = 3
	})

	if err := repo.AdjustStock(ctx, row.ID, -2); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if err := repo.AdjustStock(ctx, row.ID, -2); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if err := repo.AdjustStock(ctx, row.ID, 4); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if err := repo.AdjustStock(ctx, uuid.New(), -1); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found for unknown product, got %v", err)
	}
}

func mustCreateTestCategory(t *testing.T, tx *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{
		ID:       uuid.New(),
		Name:     fmt.Sprintf("%s %s", name, uuid.NewString()[:8]),
		Slug:     fmt.Sprintf("%s-%s", name, uuid.NewString()[:8]),
		IsActive: true,
	}
	if err := tx.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, categoryID uuid.UUID, mutate func(*models.Product)) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:          uuid.New(),
		Name:        "Test Product",
		Description: "A product used by repository tests",
		Price:       19.99,
		CategoryID:  categoryID,
		Stock:       10,
		SKU:         fmt.Sprintf("SKU-%s", uuid.NewString()),
		IsActive:    true,
	}
	if mutate != nil {
		mutate(product)
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}
