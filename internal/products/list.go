package product

import (
	"strings"

	"github.com/google/uuid"

	pkgerrors "github.com/shopmart-io/shopmart-backend/pkg/errors"
	"github.com/shopmart-io/shopmart-backend/pkg/pagination"
)

// ListFilters describe the supported filter knobs for the browse endpoint.
type ListFilters struct {
	CategoryID      *uuid.UUID `json:"category,omitempty"`
	Subcategory     *string    `json:"subcategory,omitempty"`
	Brand           *string    `json:"brand,omitempty"`
	PriceMin        *float64   `json:"min_price,omitempty"`
	PriceMax        *float64   `json:"max_price,omitempty"`
	MinRating       *float64   `json:"min_rating,omitempty"`
	FeaturedOnly    bool       `json:"featured,omitempty"`
	InStockOnly     bool       `json:"in_stock,omitempty"`
	IncludeInactive bool       `json:"-"`
	Query           string     `json:"q,omitempty"`
}

// ListInput captures the inputs needed to paginate, filter and sort the catalog.
type ListInput struct {
	Filters    ListFilters
	Pagination pagination.Params
	SortField  string
	SortOrder  string
}

// ListResult is the paginated browse payload.
type ListResult struct {
	Items       []ProductDTO `json:"products"`
	Total       int64        `json:"total"`
	Pages       int          `json:"pages"`
	CurrentPage int          `json:"current_page"`
	Limit       int          `json:"limit"`
}

var sortColumns = map[string]string{
	"created_at":     "products.created_at",
	"price":          "products.price",
	"name":           "products.name",
	"rating_average": "products.rating_average",
}

// normalizeSort validates the requested sort against the whitelist. An empty
// field means caller default (creation date, or rank when searching).
func normalizeSort(field, order string) (string, string, error) {
	field = strings.ToLower(strings.TrimSpace(field))
	order = strings.ToLower(strings.TrimSpace(order))

	if field != "" {
		if _, ok := sortColumns[field]; !ok {
			return "", "", pkgerrors.New(pkgerrors.CodeValidation, "unsupported sort field").
				WithDetails(map[string]any{"field": field})
		}
	}

	switch order {
	case "":
		order = "desc"
	case "asc", "desc":
	default:
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "sort order must be asc or desc")
	}

	return field, order, nil
}

func validatePriceRange(filters ListFilters) error {
	if filters.PriceMin != nil && *filters.PriceMin < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "min_price cannot be negative")
	}
	if filters.PriceMax != nil && *filters.PriceMax < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "max_price cannot be negative")
	}
	if filters.PriceMin != nil && filters.PriceMax != nil && *filters.PriceMin > *filters.PriceMax {
		return pkgerrors.New(pkgerrors.CodeValidation, "min_price cannot exceed max_price")
	}
	return nil
}
