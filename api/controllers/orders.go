package controllers

import (
	"net/http"
	"strings"

	"github.com/shopmart-io/shopmart-backend/api/responses"
	"github.com/shopmart-io/shopmart-backend/api/validators"
	ordersvc "github.com/shopmart-io/shopmart-backend/internal/orders"
	"github.com/shopmart-io/shopmart-backend/pkg/enums"
	pkgerrors "github.com/shopmart-io/shopmart-backend/pkg/errors"
	"github.com/shopmart-io/shopmart-backend/pkg/logger"
	"github.com/shopmart-io/shopmart-backend/pkg/pagination"
	"github.com/shopmart-io/shopmart-backend/pkg/types"
)

type shippingAddressRequest struct {
	Street  string `json:"street" validate:"required,max=200"`
	City    string `json:"city" validate:"required,max=100"`
	State   string `json:"state" validate:"required,max=100"`
	ZipCode string `json:"zip_code" validate:"required,max=20"`
	Country string `json:"country" validate:"required,max=100"`
}

type createOrderRequest struct {
	ShippingAddress shippingAddressRequest `json:"shipping_address" validate:"required"`
	PaymentMethod   string                 `json:"payment_method" validate:"required"`
	Notes           *string                `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// CreateOrder places an order from the authenticated user's cart.
func CreateOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(strings.TrimSpace(payload.PaymentMethod))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		placed, err := svc.CreateOrder(r.Context(), userID, ordersvc.CreateOrderInput{
			ShippingAddress: types.Address{
				Street:  payload.ShippingAddress.Street,
				City:    payload.ShippingAddress.City,
				State:   payload.ShippingAddress.State,
				ZipCode: payload.ShippingAddress.ZipCode,
				Country: payload.ShippingAddress.Country,
			},
			PaymentMethod: method,
			Notes:         payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, placed)
	}
}

// ListOrders pages through the authenticated user's order history.
func ListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParseQueryInt(r, "page", pagination.DefaultPage, 1, 1<<20)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListOrders(r.Context(), userID, pagination.Params{Page: page, Limit: limit})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// GetOrder returns one of the authenticated user's orders.
func GetOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := pathUUID(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		placed, err := svc.GetOrder(r.Context(), userID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, placed)
	}
}

type updateOrderStatusRequest struct {
	Status   string                   `json:"status" validate:"required"`
	Note     string                   `json:"note,omitempty" validate:"omitempty,max=500"`
	Tracking *orderTrackingRequest    `json:"tracking,omitempty"`
}

type orderTrackingRequest struct {
	Carrier        string `json:"carrier" validate:"required,max=100"`
	TrackingNumber string `json:"tracking_number" validate:"required,max=100"`
	TrackingURL    string `json:"tracking_url,omitempty" validate:"omitempty,max=500"`
}

// UpdateOrderStatus applies an admin lifecycle transition to an order.
func UpdateOrderStatus(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		orderID, err := pathUUID(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(strings.TrimSpace(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		input := ordersvc.UpdateStatusInput{Status: status, Note: payload.Note}
		if payload.Tracking != nil {
			input.Tracking = &types.OrderTracking{
				Carrier:        payload.Tracking.Carrier,
				TrackingNumber: payload.Tracking.TrackingNumber,
				TrackingURL:    payload.Tracking.TrackingURL,
			}
		}

		updated, err := svc.UpdateStatus(r.Context(), orderID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}
