package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopmart-io/shopmart-backend/pkg/migrate"
)

func TestCartsMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_carts_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no carts migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS carts",
		"CREATE UNIQUE INDEX IF NOT EXISTS carts_user_id_key",
		"CREATE TABLE IF NOT EXISTS cart_items",
		"REFERENCES carts(id) ON DELETE CASCADE",
		"CHECK (quantity > 0)",
		"CREATE UNIQUE INDEX IF NOT EXISTS cart_items_cart_product_key ON cart_items (cart_id, product_id)",
		"DROP TABLE IF EXISTS cart_items",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestReviewsMigrationEnforcesOneReviewPerPair(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_reviews_table.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no reviews migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "CREATE UNIQUE INDEX IF NOT EXISTS reviews_product_user_key ON reviews (product_id, user_id)") {
		t.Errorf("missing composite unique index on (product_id, user_id)")
	}
	if !strings.Contains(content, "CHECK (rating BETWEEN 1 AND 5)") {
		t.Errorf("missing rating range check")
	}
}

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("ValidateDir: %v", err)
	}
}
