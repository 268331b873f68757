package categories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shopmart-io/shopmart-backend/pkg/db/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("SHOPMART_DB_DSN")
	if dsn == "" {
		t.Skip("SHOPMART_DB_DSN is not set")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return conn
}

func TestRepositoryTreeOperations(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	defer tx.Rollback()

	ctx := context.Background()
	repo := NewRepository(tx)

	root := mustCreateCategory(t, tx, "Root", nil, 0)
	child := mustCreateCategory(t, tx, "Child", &root.ID, 1)
	mustCreateCategory(t, tx, "Grandchild", &child.ID, 2)

	t.Run("listOrdersByLevelThenName", func(t *testing.T) {
		rows, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		lastLevel := -1
		for _, row := range rows {
			if row.Level < lastLevel {
				t.Fatalf("rows out of level order: %d after %d", row.Level, lastLevel)
			}
			lastLevel = row.Level
		}
	})

	t.Run("parentResolved", func(t *testing.T) {
		row, err := repo.FindByID(ctx, child.ID, false)
		if err != nil {
			t.Fatalf("find child: %v", err)
		}
		if row.Parent == nil || row.Parent.Name != root.Name {
			t.Fatalf("expected parent preloaded, got %+v", row.Parent)
		}
	})

	t.Run("countChildren", func(t *testing.T) {
		count, err := repo.CountChildren(ctx, root.ID)
		if err != nil {
			t.Fatalf("count children: %v", err)
		}
		if count != 1 {
			t.Fatalf("expected 1 child, got %d", count)
		}
	})

	t.Run("softDeleteHides", func(t *testing.T) {
		if err := repo.SoftDelete(ctx, child.ID); err != nil {
			t.Fatalf("soft delete: %v", err)
		}
		if _, err := repo.FindByID(ctx, child.ID, false); !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Fatalf("expected active read to miss, got %v", err)
		}
		if _, err := repo.FindByID(ctx, child.ID, true); err != nil {
			t.Fatalf("expected admin read to find the row, got %v", err)
		}
	})
}

func mustCreateCategory(t *testing.T, tx *gorm.DB, name string, parentID *uuid.UUID, level int) *models.Category {
	t.Helper()
	suffix := uuid.NewString()[:8]
	category := &models.Category{
		ID:       uuid.New(),
		Name:     fmt.Sprintf("%s %s", name, suffix),
		Slug:     Slugify(fmt.Sprintf("%s %s", name, suffix)),
		ParentID: parentID,
		Level:    level,
		IsActive: true,
	}
	if err := tx.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}
