package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopmart-io/shopmart-backend/pkg/db/models"
)

// CartItemDTO is one basket line as returned to clients. Price is the unit
// price captured when the line was added.
type CartItemDTO struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	Variant   *string   `json:"variant,omitempty"`
	Image     *string   `json:"image,omitempty"`
}

// CartDTO is the full basket payload with derived totals.
type CartDTO struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"user_id"`
	Items       []CartItemDTO `json:"items"`
	TotalItems  int           `json:"total_items"`
	TotalAmount float64       `json:"total_amount"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NewCartDTO maps a cart row and its computed state onto the API payload.
func NewCartDTO(row *models.Cart, state State) *CartDTO {
	items := make([]CartItemDTO, 0, len(state.Lines))
	for _, line := range state.Lines {
		items = append(items, CartItemDTO{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Variant:   line.Variant,
			Image:     line.Image,
		})
	}
	return &CartDTO{
		ID:          row.ID,
		UserID:      row.UserID,
		Items:       items,
		TotalItems:  state.TotalItems,
		TotalAmount: state.TotalAmount,
		UpdatedAt:   row.UpdatedAt,
	}
}

// stateFromRow rebuilds the reducer state from persisted items, pulling the
// display name and first image from the joined product when it loaded.
func stateFromRow(row *models.Cart) State {
	lines := make([]Line, 0, len(row.Items))
	for _, item := range row.Items {
		line := Line{
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Variant:   item.Variant,
		}
		if item.Product != nil {
			line.Name = item.Product.Name
			if len(item.Product.Images) > 0 {
				url := item.Product.Images[0].URL
				line.Image = &url
			}
		}
		lines = append(lines, line)
	}
	return NewState(lines)
}
