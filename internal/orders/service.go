package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	cart "github.com/shopmart-io/shopmart-backend/internal/carts"
	product "github.com/shopmart-io/shopmart-backend/internal/products"
	"github.com/shopmart-io/shopmart-backend/pkg/checkout"
	"github.com/shopmart-io/shopmart-backend/pkg/db"
	"github.com/shopmart-io/shopmart-backend/pkg/db/models"
	"github.com/shopmart-io/shopmart-backend/pkg/enums"
	pkgerrors "github.com/shopmart-io/shopmart-backend/pkg/errors"
	"github.com/shopmart-io/shopmart-backend/pkg/pagination"
	"github.com/shopmart-io/shopmart-backend/pkg/types"
)

// Service exposes order lifecycle operations.
type Service interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*OrderDTO, error)
	ListOrders(ctx context.Context, userID uuid.UUID, params pagination.Params) (*ListResult, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, input UpdateStatusInput) (*OrderDTO, error)
}

// CreateOrderInput is the validated payload for placing an order from the
// user's cart.
type CreateOrderInput struct {
	ShippingAddress types.Address
	PaymentMethod   enums.PaymentMethod
	Notes           *string
}

// UpdateStatusInput carries an admin status transition. Tracking details are
// accepted alongside the shipped transition.
type UpdateStatusInput struct {
	Status   enums.OrderStatus
	Note     string
	Tracking *types.OrderTracking
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	carts    *cart.Repository
	products *product.Repository
	rules    checkout.Rules
	now      func() time.Time
}

// NewService constructs an order service instance.
func NewService(repo *Repository, dbClient *db.Client, carts *cart.Repository, products *product.Repository, rules checkout.Rules) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		carts:    carts,
		products: products,
		rules:    rules,
		now:      time.Now,
	}, nil
}

// CreateOrder snapshots the user's cart into an immutable order. Item
// snapshots, stock decrements, the order insert and the cart wipe all happen
// in one transaction.
func (s *service) CreateOrder(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*OrderDTO, error) {
	if missing := input.ShippingAddress.Validate(); missing != "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping address is missing "+missing).
			WithDetails(map[string]string{"field": missing})
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported payment method")
	}

	var created *models.Order
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		cartRow, err := s.carts.WithTx(tx).FindByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load cart")
		}
		if len(cartRow.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		items, subtotal, err := s.snapshotItems(ctx, tx, cartRow.Items)
		if err != nil {
			return err
		}

		breakdown := s.rules.Compute(subtotal)
		now := s.now().UTC()

		created = &models.Order{
			OrderNumber:     NewOrderNumber(now),
			UserID:          userID,
			Items:           items,
			ShippingAddress: input.ShippingAddress,
			Payment: types.OrderPayment{
				Method: input.PaymentMethod,
				Status: enums.PaymentStatusPending,
			},
			Pricing: types.OrderPricing{
				Subtotal: breakdown.Subtotal,
				Tax:      breakdown.Tax,
				Shipping: breakdown.Shipping,
				Discount: 0,
				Total:    breakdown.Total,
			},
			Status: enums.OrderStatusPending,
			StatusHistory: types.StatusHistory{{
				Status:    enums.OrderStatusPending,
				Timestamp: now,
				Note:      "order placed",
			}},
			Notes: input.Notes,
		}
		if _, err := s.repo.WithTx(tx).Create(ctx, created); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to create order")
		}

		if err := s.carts.WithTx(tx).Clear(ctx, cartRow.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to clear cart")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewOrderDTO(created), nil
}

// snapshotItems copies the cart lines into order item snapshots and
// decrements stock per line. Prices come from the cart, not the live
// catalog.
func (s *service) snapshotItems(ctx context.Context, tx *gorm.DB, lines []models.CartItem) (types.OrderItems, float64, error) {
	productRepo := s.products.WithTx(tx)
	items := make(types.OrderItems, 0, len(lines))
	var subtotal float64

	for _, line := range lines {
		if line.Product == nil || !line.Product.IsActive {
			return nil, 0, pkgerrors.New(pkgerrors.CodeStateConflict, "a cart item is no longer available").
				WithDetails(map[string]string{"product_id": line.ProductID.String()})
		}

		if err := productRepo.AdjustStock(ctx, line.ProductID, -line.Quantity); err != nil {
			switch {
			case errors.Is(err, product.ErrInsufficientStock):
				return nil, 0, pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient stock for "+line.Product.Name).
					WithDetails(map[string]string{"product_id": line.ProductID.String()})
			case errors.Is(err, gorm.ErrRecordNotFound):
				return nil, 0, pkgerrors.New(pkgerrors.CodeStateConflict, "a cart item is no longer available").
					WithDetails(map[string]string{"product_id": line.ProductID.String()})
			default:
				return nil, 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to reserve stock")
			}
		}

		item := types.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Product.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
		}
		if line.Variant != nil {
			item.Variant = *line.Variant
		}
		if len(line.Product.Images) > 0 {
			item.Image = line.Product.Images[0].URL
		}
		items = append(items, item)
		subtotal += line.Price * float64(line.Quantity)
	}
	return items, subtotal, nil
}

// ListOrders pages through the user's order history.
func (s *service) ListOrders(ctx context.Context, userID uuid.UUID, params pagination.Params) (*ListResult, error) {
	params = params.Normalize()
	rows, total, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list orders")
	}
	return &ListResult{
		Items:       NewOrderDTOs(rows),
		Total:       total,
		Pages:       pagination.Pages(total, params.Limit),
		CurrentPage: params.Page,
		Limit:       params.Limit,
	}, nil
}

// GetOrder loads one of the user's orders.
func (s *service) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error) {
	row, err := s.repo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load order")
	}
	return NewOrderDTO(row), nil
}

// UpdateStatus applies an admin lifecycle transition, appending to the
// status history. Cancelling restores the reserved stock.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, input UpdateStatusInput) (*OrderDTO, error) {
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}

	var updated *models.Order
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		row, err := s.repo.WithTx(tx).FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load order")
		}

		if !row.Status.CanTransitionTo(input.Status) {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot move order from %s to %s", row.Status, input.Status)).
				WithDetails(map[string]string{
					"current": row.Status.String(),
					"next":    input.Status.String(),
				})
		}

		if input.Status == enums.OrderStatusCancelled {
			if err := s.restoreStock(ctx, tx, row.Items); err != nil {
				return err
			}
		}

		now := s.now().UTC()
		row.Status = input.Status
		row.StatusHistory = append(row.StatusHistory, types.StatusHistoryEntry{
			Status:    input.Status,
			Timestamp: now,
			Note:      strings.TrimSpace(input.Note),
		})
		if input.Tracking != nil {
			row.Tracking = *input.Tracking
		}
		if row.Payment.Method == enums.PaymentMethodCOD && input.Status == enums.OrderStatusDelivered {
			row.Payment.Status = enums.PaymentStatusCompleted
			row.Payment.PaidAt = &now
		}

		updated, err = s.repo.WithTx(tx).Update(ctx, row)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to update order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewOrderDTO(updated), nil
}

func (s *service) restoreStock(ctx context.Context, tx *gorm.DB, items types.OrderItems) error {
	productRepo := s.products.WithTx(tx)
	for _, item := range items {
		err := productRepo.AdjustStock(ctx, item.ProductID, item.Quantity)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to restore stock")
		}
	}
	return nil
}
