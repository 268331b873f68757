package product

import (
	"testing"

	"github.com/google/uuid"

	"github.com/shopmart-io/shopmart-backend/pkg/db/models"
	pkgerrors "github.com/shopmart-io/shopmart-backend/pkg/errors"
)

func TestNormalizeSort(t *testing.T) {
	t.Run("whitelistedFields", func(t *testing.T) {
		for _, field := range []string{"created_at", "price", "name", "rating_average"} {
			got, order, err := normalizeSort(field, "asc")
			if err != nil {
				t.Fatalf("expected %q to be accepted, got %v", field, err)
			}
			if got != field || order != "asc" {
				t.Fatalf("unexpected normalization %q/%q", got, order)
			}
		}
	})

	t.Run("emptyDefaultsToDesc", func(t *testing.T) {
		field, order, err := normalizeSort("", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if field != "" || order != "desc" {
			t.Fatalf("unexpected defaults %q/%q", field, order)
		}
	})

	t.Run("unknownFieldRejected", func(t *testing.T) {
		_, _, err := normalizeSort("password_hash", "asc")
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("badOrderRejected", func(t *testing.T) {
		_, _, err := normalizeSort("price", "sideways")
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestValidatePriceRange(t *testing.T) {
	low, high := 10.0, 5.0
	if err := validatePriceRange(ListFilters{PriceMin: &low, PriceMax: &high}); err == nil {
		t.Fatal("expected inverted range to be rejected")
	}

	neg := -1.0
	if err := validatePriceRange(ListFilters{PriceMin: &neg}); err == nil {
		t.Fatal("expected negative min to be rejected")
	}

	if err := validatePriceRange(ListFilters{PriceMin: &high, PriceMax: &low}); err != nil {
		t.Fatalf("expected valid range to pass, got %v", err)
	}
	if err := validatePriceRange(ListFilters{}); err != nil {
		t.Fatalf("expected empty filters to pass, got %v", err)
	}
}

func TestValidateCreateInput(t *testing.T) {
	valid := CreateProductInput{
		Name:        "Desk Lamp",
		Description: "Adjustable desk lamp",
		Price:       49.99,
		CategoryID:  uuid.New(),
		Stock:       10,
		SKU:         "LAMP-001",
	}
	if err := validateCreateInput(valid); err != nil {
		t.Fatalf("expected valid input to pass, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*CreateProductInput)
	}{
		{"missingName", func(in *CreateProductInput) { in.Name = "  " }},
		{"missingDescription", func(in *CreateProductInput) { in.Description = "" }},
		{"missingSKU", func(in *CreateProductInput) { in.SKU = "" }},
		{"missingCategory", func(in *CreateProductInput) { in.CategoryID = uuid.Nil }},
		{"negativePrice", func(in *CreateProductInput) { in.Price = -0.01 }},
		{"negativeStock", func(in *CreateProductInput) { in.Stock = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := valid
			tc.mutate(&input)
			err := validateCreateInput(input)
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestApplyUpdateTrimsAndCopies(t *testing.T) {
	row := &models.Product{
		Name:        "old name",
		Description: "old description",
		SKU:         "OLD-SKU",
		Price:       10,
		Stock:       3,
	}

	name := "  New Name "
	sku := " NEW-SKU "
	price := 25.5
	tags := []string{"sale", "new"}
	featured := true

	applyUpdate(row, UpdateProductInput{
		Name:       &name,
		SKU:        &sku,
		Price:      &price,
		Tags:       &tags,
		IsFeatured: &featured,
	})

	if row.Name != "New Name" {
		t.Fatalf("expected trimmed name, got %q", row.Name)
	}
	if row.SKU != "NEW-SKU" {
		t.Fatalf("expected trimmed sku, got %q", row.SKU)
	}
	if row.Price != price {
		t.Fatalf("expected price %v, got %v", price, row.Price)
	}
	if row.Description != "old description" {
		t.Fatalf("unset fields must not change, got %q", row.Description)
	}
	if !row.IsFeatured {
		t.Fatal("expected featured flag set")
	}

	tags[0] = "mutated"
	if row.Tags[0] == "mutated" {
		t.Fatal("expected tags to be copied, not aliased")
	}
}
