package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopmart-io/shopmart-backend/pkg/db/models"
	pkgerrors "github.com/shopmart-io/shopmart-backend/pkg/errors"
)

// Service exposes basket operations scoped to a single user.
type Service interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*CartDTO, error)
	SetQuantity(ctx context.Context, userID uuid.UUID, productID uuid.UUID, quantity int) (*CartDTO, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*CartDTO, error)
	ClearCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
}

// AddItemInput is the validated payload for adding a product to the cart.
type AddItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Variant   *string
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Product, error)
}

type service struct {
	repo     *Repository
	products productLoader
}

// NewService constructs a cart service instance.
func NewService(repo *Repository, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, products: products}, nil
}

// GetCart returns the user's cart, creating an empty one on first access.
func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	row, err := s.repo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load cart")
	}
	return NewCartDTO(row, stateFromRow(row)), nil
}

// AddItem snapshots the product's current unit price onto a new or merged
// line. The product must exist and be active.
func (s *service) AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*CartDTO, error) {
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	row, err := s.products.FindByID(ctx, input.ProductID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load product")
	}

	line := Line{
		ProductID: row.ID,
		Name:      row.Name,
		Price:     row.Price,
		Quantity:  input.Quantity,
		Variant:   input.Variant,
	}
	if len(row.Images) > 0 {
		url := row.Images[0].URL
		line.Image = &url
	}

	return s.apply(ctx, userID, func(state State) (State, error) {
		return state.Add(line), nil
	})
}

// SetQuantity overwrites the quantity on an existing line.
func (s *service) SetQuantity(ctx context.Context, userID uuid.UUID, productID uuid.UUID, quantity int) (*CartDTO, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	return s.apply(ctx, userID, func(state State) (State, error) {
		if !state.Contains(productID) {
			return state, pkgerrors.New(pkgerrors.CodeNotFound, "product is not in the cart")
		}
		return state.SetQuantity(productID, quantity), nil
	})
}

// RemoveItem drops the line for the product.
func (s *service) RemoveItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*CartDTO, error) {
	return s.apply(ctx, userID, func(state State) (State, error) {
		if !state.Contains(productID) {
			return state, pkgerrors.New(pkgerrors.CodeNotFound, "product is not in the cart")
		}
		return state.Remove(productID), nil
	})
}

// ClearCart empties the basket.
func (s *service) ClearCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	return s.apply(ctx, userID, func(state State) (State, error) {
		return state.Clear(), nil
	})
}

// apply loads the cart, runs the transition against the reducer state and
// persists the full resulting line set.
func (s *service) apply(ctx context.Context, userID uuid.UUID, transition func(State) (State, error)) (*CartDTO, error) {
	row, err := s.repo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load cart")
	}

	next, err := transition(stateFromRow(row))
	if err != nil {
		return nil, err
	}

	if err := s.repo.ReplaceItems(ctx, row.ID, next.Lines); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to persist cart")
	}

	row, err = s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to reload cart")
	}
	return NewCartDTO(row, stateFromRow(row)), nil
}
