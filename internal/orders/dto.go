package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopmart-io/shopmart-backend/pkg/db/models"
	"github.com/shopmart-io/shopmart-backend/pkg/enums"
	"github.com/shopmart-io/shopmart-backend/pkg/types"
)

// OrderDTO is the purchase record payload returned to clients.
type OrderDTO struct {
	ID              uuid.UUID           `json:"id"`
	OrderNumber     string              `json:"order_number"`
	UserID          uuid.UUID           `json:"user_id"`
	Items           types.OrderItems    `json:"items"`
	ShippingAddress types.Address       `json:"shipping_address"`
	Payment         types.OrderPayment  `json:"payment"`
	Pricing         types.OrderPricing  `json:"pricing"`
	Status          enums.OrderStatus   `json:"status"`
	StatusHistory   types.StatusHistory `json:"status_history"`
	Tracking        types.OrderTracking `json:"tracking"`
	Notes           *string             `json:"notes,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// ListResult is a paginated slice of a user's orders.
type ListResult struct {
	Items       []OrderDTO `json:"items"`
	Total       int64      `json:"total"`
	Pages       int        `json:"pages"`
	CurrentPage int        `json:"current_page"`
	Limit       int        `json:"limit"`
}

// NewOrderDTO maps an order row onto the API payload.
func NewOrderDTO(row *models.Order) *OrderDTO {
	dto := &OrderDTO{
		ID:              row.ID,
		OrderNumber:     row.OrderNumber,
		UserID:          row.UserID,
		Items:           row.Items,
		ShippingAddress: row.ShippingAddress,
		Payment:         row.Payment,
		Pricing:         row.Pricing,
		Status:          row.Status,
		StatusHistory:   row.StatusHistory,
		Tracking:        row.Tracking,
		Notes:           row.Notes,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
	if dto.Items == nil {
		dto.Items = types.OrderItems{}
	}
	if dto.StatusHistory == nil {
		dto.StatusHistory = types.StatusHistory{}
	}
	return dto
}

// NewOrderDTOs maps a slice of rows.
func NewOrderDTOs(rows []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewOrderDTO(&rows[i]))
	}
	return out
}
