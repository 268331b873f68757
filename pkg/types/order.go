package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopmart-io/shopmart-backend/pkg/enums"
)

// OrderItem is a point-in-time snapshot of a purchased product. It is copied
// from the catalog at order time; later product edits never touch it.
type OrderItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	Variant   string    `json:"variant,omitempty"`
	Image     string    `json:"image,omitempty"`
}

// OrderItems is the JSONB item snapshot list.
type OrderItems []OrderItem

// OrderPricing is the persisted price breakdown for an order.
type OrderPricing struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// OrderPayment is the payment sub-record stored on an order.
type OrderPayment struct {
	Method        enums.PaymentMethod `json:"method"`
	Status        enums.PaymentStatus `json:"status"`
	TransactionID string              `json:"transaction_id,omitempty"`
	PaidAt        *time.Time          `json:"paid_at,omitempty"`
}

// OrderTracking holds carrier details once an order ships.
type OrderTracking struct {
	Carrier        string `json:"carrier,omitempty"`
	TrackingNumber string `json:"tracking_number,omitempty"`
	TrackingURL    string `json:"tracking_url,omitempty"`
}

// StatusHistoryEntry records one lifecycle transition.
type StatusHistoryEntry struct {
	Status    enums.OrderStatus `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Note      string            `json:"note,omitempty"`
}

// StatusHistory is the JSONB transition log, oldest first.
type StatusHistory []StatusHistoryEntry
