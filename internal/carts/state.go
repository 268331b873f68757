package cart

import (
	"math"

	"github.com/google/uuid"
)

// Line is one cart entry. Price is the unit price snapshotted when the line
// was added; it is not reconciled with later catalog edits.
type Line struct {
	ProductID uuid.UUID
	Name      string
	Price     float64
	Quantity  int
	Variant   *string
	Image     *string
}

// State is the full cart contents with derived aggregates. Transitions
// always recompute TotalItems and TotalAmount from the complete line list,
// never patch them incrementally.
type State struct {
	Lines       []Line
	TotalItems  int
	TotalAmount float64
}

// NewState builds a state from existing lines, computing the aggregates.
func NewState(lines []Line) State {
	return recompute(append([]Line{}, lines...))
}

// Add merges the incoming line: an existing product id gains its quantity,
// anything else is appended.
func (s State) Add(line Line) State {
	lines := append([]Line{}, s.Lines...)
	merged := false
	for i := range lines {
		if lines[i].ProductID == line.ProductID {
			lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, line)
	}
	return recompute(lines)
}

// Remove drops the line for the product. A missing id is a no-op.
func (s State) Remove(productID uuid.UUID) State {
	lines := make([]Line, 0, len(s.Lines))
	for _, line := range s.Lines {
		if line.ProductID != productID {
			lines = append(lines, line)
		}
	}
	return recompute(lines)
}

// SetQuantity overwrites the quantity on the matching line. A missing id is
// a no-op.
func (s State) SetQuantity(productID uuid.UUID, quantity int) State {
	lines := append([]Line{}, s.Lines...)
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = quantity
			break
		}
	}
	return recompute(lines)
}

// Clear empties the cart and zeroes the aggregates.
func (s State) Clear() State {
	return recompute(nil)
}

// Contains reports whether the product has a line in the cart.
func (s State) Contains(productID uuid.UUID) bool {
	for _, line := range s.Lines {
		if line.ProductID == productID {
			return true
		}
	}
	return false
}

func recompute(lines []Line) State {
	state := State{Lines: lines}
	if state.Lines == nil {
		state.Lines = []Line{}
	}
	var amount float64
	for _, line := range state.Lines {
		state.TotalItems += line.Quantity
		amount += line.Price * float64(line.Quantity)
	}
	state.TotalAmount = math.Round(amount*100) / 100
	return state
}
