package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopmart-io/shopmart-backend/pkg/db"
	"github.com/shopmart-io/shopmart-backend/pkg/db/models"
	pkgerrors "github.com/shopmart-io/shopmart-backend/pkg/errors"
	"github.com/shopmart-io/shopmart-backend/pkg/pagination"
	"github.com/shopmart-io/shopmart-backend/pkg/types"
)

// Service exposes catalog product operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	GetProduct(ctx context.Context, productID uuid.UUID, includeInactive bool) (*ProductDTO, error)
	ListProducts(ctx context.Context, input ListInput) (*ListResult, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]ProductDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name           string
	Description    string
	Price          float64
	CompareAtPrice *float64
	CategoryID     uuid.UUID
	Subcategory    *string
	Brand          *string
	Stock          int
	SKU            string
	Images         types.ProductImages
	Variants       types.ProductVariants
	Specifications types.Specifications
	Tags           []string
	IsActive       bool
	IsFeatured     bool
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name           *string
	Description    *string
	Price          *float64
	CompareAtPrice *float64
	CategoryID     *uuid.UUID
	Subcategory    *string
	Brand          *string
	Stock          *int
	SKU            *string
	Images         *types.ProductImages
	Variants       *types.ProductVariants
	Specifications *types.Specifications
	Tags           *[]string
	IsActive       *bool
	IsFeatured     *bool
}

type categoryLoader interface {
	FindByID(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Category, error)
}

// service implements the catalog product service.
type service struct {
	repo       *Repository
	dbClient   *db.Client
	categories categoryLoader
	cache      *Cache
}

// NewService constructs a product service instance. The cache may be nil.
func NewService(repo *Repository, dbClient *db.Client, categories categoryLoader, cache *Cache) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category loader required")
	}
	return &service{
		repo:       repo,
		dbClient:   dbClient,
		categories: categories,
		cache:      cache,
	}, nil
}

// CreateProduct validates the category and inserts the catalog row.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}
	if err := s.ensureCategoryExists(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	row := &models.Product{
		Name:           strings.TrimSpace(input.Name),
		Description:    strings.TrimSpace(input.Description),
		Price:          input.Price,
		CompareAtPrice: input.CompareAtPrice,
		CategoryID:     input.CategoryID,
		Subcategory:    input.Subcategory,
		Brand:          input.Brand,
		Stock:          input.Stock,
		SKU:            strings.TrimSpace(input.SKU),
		Images:         input.Images,
		Variants:       input.Variants,
		Specifications: input.Specifications,
		Tags:           input.Tags,
		IsActive:       input.IsActive,
		IsFeatured:     input.IsFeatured,
	}

	created, err := s.repo.Create(ctx, row)
	if err != nil {
		if db.IsUniqueViolation(err, "products_sku_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product with this SKU already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}

	return s.loadDTO(ctx, created.ID)
}

// UpdateProduct applies the partial update and refreshes the cache.
func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if input.Price != nil && *input.Price < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}

	row, err := s.repo.FindByID(ctx, productID, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if input.CategoryID != nil && *input.CategoryID != row.CategoryID {
		if err := s.ensureCategoryExists(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	applyUpdate(row, input)
	row.Category = nil

	if _, err := s.repo.Update(ctx, row); err != nil {
		if db.IsUniqueViolation(err, "products_sku_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product with this SKU already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}

	s.cache.Invalidate(ctx, productID)
	return s.loadDTO(ctx, productID)
}

// DeleteProduct soft-deletes so historic orders keep a resolvable reference.
func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	s.cache.Invalidate(ctx, productID)
	return nil
}

// GetProduct serves from cache when possible. Only the public view is
// cached so stale inactive rows can never leak out of it.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID, includeInactive bool) (*ProductDTO, error) {
	if !includeInactive {
		if dto := s.cache.GetProduct(ctx, productID); dto != nil {
			return dto, nil
		}
	}

	row, err := s.repo.FindByID(ctx, productID, includeInactive)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	dto := NewProductDTO(row)
	if !includeInactive {
		s.cache.SetProduct(ctx, dto)
	}
	return dto, nil
}

// ListProducts applies filters, sorting and pagination over the catalog.
func (s *service) ListProducts(ctx context.Context, input ListInput) (*ListResult, error) {
	if err := validatePriceRange(input.Filters); err != nil {
		return nil, err
	}
	field, order, err := normalizeSort(input.SortField, input.SortOrder)
	if err != nil {
		return nil, err
	}
	input.SortField = field
	input.SortOrder = order
	input.Pagination = input.Pagination.Normalize()

	rows, total, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}

	return &ListResult{
		Items:       NewProductDTOs(rows),
		Total:       total,
		Pages:       pagination.Pages(total, input.Pagination.Limit),
		CurrentPage: input.Pagination.Page,
		Limit:       input.Pagination.Limit,
	}, nil
}

// SearchProducts returns rank-ordered matches for the query string.
func (s *service) SearchProducts(ctx context.Context, query string, limit int) ([]ProductDTO, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query is required")
	}
	rows, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: search products")
	}
	return NewProductDTOs(rows), nil
}

func (s *service) ensureCategoryExists(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "category does not exist")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return nil
}

func (s *service) loadDTO(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	row, err := s.repo.FindByID(ctx, id, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product detail")
	}
	return NewProductDTO(row), nil
}

func validateCreateInput(input CreateProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}
	if strings.TrimSpace(input.SKU) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if input.CategoryID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	if input.Price < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}
	return nil
}

func applyUpdate(row *models.Product, input UpdateProductInput) {
	if input.Name != nil {
		row.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		row.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		row.Price = *input.Price
	}
	if input.CompareAtPrice != nil {
		row.CompareAtPrice = input.CompareAtPrice
	}
	if input.CategoryID != nil {
		row.CategoryID = *input.CategoryID
	}
	if input.Subcategory != nil {
		row.Subcategory = input.Subcategory
	}
	if input.Brand != nil {
		row.Brand = input.Brand
	}
	if input.Stock != nil {
		row.Stock = *input.Stock
	}
	if input.SKU != nil {
		row.SKU = strings.TrimSpace(*input.SKU)
	}
	if input.Images != nil {
		row.Images = *input.Images
	}
	if input.Variants != nil {
		row.Variants = *input.Variants
	}
	if input.Specifications != nil {
		row.Specifications = *input.Specifications
	}
	if input.Tags != nil {
		row.Tags = append([]string{}, (*input.Tags)...)
	}
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		row.IsFeatured = *input.IsFeatured
	}
}
