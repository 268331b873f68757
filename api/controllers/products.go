package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/shopmart-io/shopmart-backend/api/responses"
	"github.com/shopmart-io/shopmart-backend/api/validators"
	productsvc "github.com/shopmart-io/shopmart-backend/internal/products"
	pkgerrors "github.com/shopmart-io/shopmart-backend/pkg/errors"
	"github.com/shopmart-io/shopmart-backend/pkg/logger"
	"github.com/shopmart-io/shopmart-backend/pkg/pagination"
	"github.com/shopmart-io/shopmart-backend/pkg/types"
)

// ListProducts serves the public catalog listing with filtering and sorting.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		input, err := parseListInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListProducts(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// SearchProducts serves lightweight full-text product search.
func SearchProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		query := validators.SanitizeString(r.URL.Query().Get("q"), 200)
		if query == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "search query is required"))
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 10, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.SearchProducts(r.Context(), query, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// GetProduct serves a single catalog product.
func GetProduct(svc productsvc.Service, logg *logger.Logger, includeInactive bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id, includeInactive)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

type productImageRequest struct {
	URL string `json:"url" validate:"required,max=500"`
	Alt string `json:"alt,omitempty" validate:"omitempty,max=200"`
}

type productVariantRequest struct {
	Name    string   `json:"name" validate:"required,max=100"`
	Options []string `json:"options" validate:"required,min=1,dive,required"`
}

type specificationRequest struct {
	Key   string `json:"key" validate:"required,max=100"`
	Value string `json:"value" validate:"required,max=500"`
}

type createProductRequest struct {
	Name           string                  `json:"name" validate:"required,max=200"`
	Description    string                  `json:"description" validate:"required"`
	Price          float64                 `json:"price" validate:"required,gt=0"`
	CompareAtPrice *float64                `json:"compare_at_price,omitempty" validate:"omitempty,gt=0"`
	Category       string                  `json:"category" validate:"required,uuid"`
	Subcategory    *string                 `json:"subcategory,omitempty" validate:"omitempty,max=100"`
	Brand          *string                 `json:"brand,omitempty" validate:"omitempty,max=100"`
	Stock          int                     `json:"stock" validate:"min=0"`
	SKU            string                  `json:"sku" validate:"required,max=100"`
	Images         []productImageRequest   `json:"images,omitempty"`
	Variants       []productVariantRequest `json:"variants,omitempty"`
	Specifications []specificationRequest  `json:"specifications,omitempty"`
	Tags           []string                `json:"tags,omitempty" validate:"omitempty,dive,required"`
	IsActive       *bool                   `json:"is_active,omitempty"`
	IsFeatured     *bool                   `json:"is_featured,omitempty"`
}

// CreateProduct handles admin product creation.
func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

type updateProductRequest struct {
	Name           *string                  `json:"name,omitempty" validate:"omitempty,max=200"`
	Description    *string                  `json:"description,omitempty"`
	Price          *float64                 `json:"price,omitempty" validate:"omitempty,gt=0"`
	CompareAtPrice *float64                 `json:"compare_at_price,omitempty" validate:"omitempty,gt=0"`
	Category       *string                  `json:"category,omitempty" validate:"omitempty,uuid"`
	Subcategory    *string                  `json:"subcategory,omitempty" validate:"omitempty,max=100"`
	Brand          *string                  `json:"brand,omitempty" validate:"omitempty,max=100"`
	Stock          *int                     `json:"stock,omitempty" validate:"omitempty,min=0"`
	SKU            *string                  `json:"sku,omitempty" validate:"omitempty,max=100"`
	Images         *[]productImageRequest   `json:"images,omitempty"`
	Variants       *[]productVariantRequest `json:"variants,omitempty"`
	Specifications *[]specificationRequest  `json:"specifications,omitempty"`
	Tags           *[]string                `json:"tags,omitempty"`
	IsActive       *bool                    `json:"is_active,omitempty"`
	IsFeatured     *bool                    `json:"is_featured,omitempty"`
}

// UpdateProduct handles admin product mutation.
func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// DeleteProduct handles admin product soft deletion.
func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func parseListInput(r *http.Request) (productsvc.ListInput, error) {
	q := r.URL.Query()
	input := productsvc.ListInput{
		SortField: validators.SanitizeString(q.Get("sort"), 40),
		SortOrder: validators.SanitizeString(q.Get("order"), 8),
	}

	page, err := validators.ParseQueryInt(r, "page", pagination.DefaultPage, 1, 1<<20)
	if err != nil {
		return productsvc.ListInput{}, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return productsvc.ListInput{}, err
	}
	input.Pagination = pagination.Params{Page: page, Limit: limit}

	if raw := strings.TrimSpace(q.Get("category")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return productsvc.ListInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		input.Filters.CategoryID = &id
	}
	if raw := validators.SanitizeString(q.Get("subcategory"), 100); raw != "" {
		input.Filters.Subcategory = &raw
	}
	if raw := validators.SanitizeString(q.Get("brand"), 100); raw != "" {
		input.Filters.Brand = &raw
	}
	if value, ok, err := parseQueryFloat(q.Get("min_price"), "min_price"); err != nil {
		return productsvc.ListInput{}, err
	} else if ok {
		input.Filters.PriceMin = &value
	}
	if value, ok, err := parseQueryFloat(q.Get("max_price"), "max_price"); err != nil {
		return productsvc.ListInput{}, err
	} else if ok {
		input.Filters.PriceMax = &value
	}
	if value, ok, err := parseQueryFloat(q.Get("min_rating"), "min_rating"); err != nil {
		return productsvc.ListInput{}, err
	} else if ok {
		input.Filters.MinRating = &value
	}
	input.Filters.FeaturedOnly = q.Get("featured") == "true"
	input.Filters.InStockOnly = q.Get("in_stock") == "true"
	input.Filters.Query = validators.SanitizeString(q.Get("q"), 200)

	return input, nil
}

func parseQueryFloat(raw, field string) (float64, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").
			WithDetails(map[string]any{"field": field})
	}
	return value, true, nil
}

func (p createProductRequest) toCreateInput() (productsvc.CreateProductInput, error) {
	categoryID, err := uuid.Parse(p.Category)
	if err != nil {
		return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}

	input := productsvc.CreateProductInput{
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		CompareAtPrice: p.CompareAtPrice,
		CategoryID:     categoryID,
		Subcategory:    p.Subcategory,
		Brand:          p.Brand,
		Stock:          p.Stock,
		SKU:            p.SKU,
		Images:         toProductImages(p.Images),
		Variants:       toProductVariants(p.Variants),
		Specifications: toSpecifications(p.Specifications),
		Tags:           p.Tags,
		IsActive:       true,
	}
	if p.IsActive != nil {
		input.IsActive = *p.IsActive
	}
	if p.IsFeatured != nil {
		input.IsFeatured = *p.IsFeatured
	}
	return input, nil
}

func (p updateProductRequest) toUpdateInput() (productsvc.UpdateProductInput, error) {
	input := productsvc.UpdateProductInput{
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		CompareAtPrice: p.CompareAtPrice,
		Subcategory:    p.Subcategory,
		Brand:          p.Brand,
		Stock:          p.Stock,
		SKU:            p.SKU,
		Tags:           p.Tags,
		IsActive:       p.IsActive,
		IsFeatured:     p.IsFeatured,
	}
	if p.Category != nil {
		categoryID, err := uuid.Parse(*p.Category)
		if err != nil {
			return productsvc.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		input.CategoryID = &categoryID
	}
	if p.Images != nil {
		images := toProductImages(*p.Images)
		input.Images = &images
	}
	if p.Variants != nil {
		variants := toProductVariants(*p.Variants)
		input.Variants = &variants
	}
	if p.Specifications != nil {
		specs := toSpecifications(*p.Specifications)
		input.Specifications = &specs
	}
	return input, nil
}

func toProductImages(in []productImageRequest) types.ProductImages {
	out := make(types.ProductImages, 0, len(in))
	for _, img := range in {
		out = append(out, types.ProductImage{URL: img.URL, Alt: img.Alt})
	}
	return out
}

func toProductVariants(in []productVariantRequest) types.ProductVariants {
	out := make(types.ProductVariants, 0, len(in))
	for _, variant := range in {
		out = append(out, types.ProductVariant{Name: variant.Name, Options: variant.Options})
	}
	return out
}

func toSpecifications(in []specificationRequest) types.Specifications {
	out := make(types.Specifications, 0, len(in))
	for _, spec := range in {
		out = append(out, types.Specification{Key: spec.Key, Value: spec.Value})
	}
	return out
}
