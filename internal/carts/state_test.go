package cart

import (
	"math"
	"testing"

	"github.com/google/uuid"
)

func checkAggregates(t *testing.T, state State) {
	t.Helper()
	items := 0
	var amount float64
	for _, line := range state.Lines {
		items += line.Quantity
		amount += line.Price * float64(line.Quantity)
	}
	amount = math.Round(amount*100) / 100
	if state.TotalItems != items {
		t.Fatalf("TotalItems=%d, recomputed %d", state.TotalItems, items)
	}
	if state.TotalAmount != amount {
		t.Fatalf("TotalAmount=%v, recomputed %v", state.TotalAmount, amount)
	}
}

func TestAddMergesSameProduct(t *testing.T) {
	productID := uuid.New()
	state := NewState(nil)

	state = state.Add(Line{ProductID: productID, Name: "Lamp", Price: 19.99, Quantity: 2})
	checkAggregates(t, state)
	state = state.Add(Line{ProductID: productID, Name: "Lamp", Price: 19.99, Quantity: 3})
	checkAggregates(t, state)

	if len(state.Lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(state.Lines))
	}
	if state.Lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", state.Lines[0].Quantity)
	}
	if state.TotalItems != 5 {
		t.Fatalf("expected 5 items, got %d", state.TotalItems)
	}
}

func TestAddAppendsDistinctProducts(t *testing.T) {
	state := NewState(nil).
		Add(Line{ProductID: uuid.New(), Price: 10, Quantity: 1}).
		Add(Line{ProductID: uuid.New(), Price: 5.5, Quantity: 2})
	checkAggregates(t, state)

	if len(state.Lines) != 2 {
		t.Fatalf("expected two lines, got %d", len(state.Lines))
	}
	if state.TotalAmount != 21 {
		t.Fatalf("expected total 21, got %v", state.TotalAmount)
	}
}

func TestRemove(t *testing.T) {
	keep := uuid.New()
	drop := uuid.New()
	state := NewState(nil).
		Add(Line{ProductID: keep, Price: 3, Quantity: 1}).
		Add(Line{ProductID: drop, Price: 7, Quantity: 2})

	state = state.Remove(drop)
	checkAggregates(t, state)
	if len(state.Lines) != 1 || state.Lines[0].ProductID != keep {
		t.Fatalf("expected only the kept line, got %+v", state.Lines)
	}

	t.Run("missingIDIsNoOp", func(t *testing.T) {
		next := state.Remove(uuid.New())
		checkAggregates(t, next)
		if len(next.Lines) != 1 || next.TotalItems != state.TotalItems {
			t.Fatalf("no-op remove changed state: %+v", next)
		}
	})
}

func TestSetQuantity(t *testing.T) {
	productID := uuid.New()
	state := NewState(nil).Add(Line{ProductID: productID, Price: 4.25, Quantity: 1})

	state = state.SetQuantity(productID, 4)
	checkAggregates(t, state)
	if state.Lines[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", state.Lines[0].Quantity)
	}
	if state.TotalAmount != 17 {
		t.Fatalf("expected total 17, got %v", state.TotalAmount)
	}

	t.Run("missingIDIsNoOp", func(t *testing.T) {
		next := state.SetQuantity(uuid.New(), 9)
		checkAggregates(t, next)
		if next.TotalItems != state.TotalItems {
			t.Fatalf("no-op set changed totals: %+v", next)
		}
	})
}

func TestClear(t *testing.T) {
	state := NewState(nil).
		Add(Line{ProductID: uuid.New(), Price: 10, Quantity: 3}).
		Clear()
	checkAggregates(t, state)

	if len(state.Lines) != 0 || state.TotalItems != 0 || state.TotalAmount != 0 {
		t.Fatalf("expected empty state, got %+v", state)
	}
}

func TestTransitionSequencesKeepAggregatesConsistent(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	state := NewState(nil)

	steps := []func(State) State{
		func(s State) State { return s.Add(Line{ProductID: a, Price: 12.34, Quantity: 2}) },
		func(s State) State { return s.Add(Line{ProductID: b, Price: 0.99, Quantity: 5}) },
		func(s State) State { return s.SetQuantity(a, 1) },
		func(s State) State { return s.Add(Line{ProductID: c, Price: 199.95, Quantity: 1}) },
		func(s State) State { return s.Remove(b) },
		func(s State) State { return s.Add(Line{ProductID: a, Price: 12.34, Quantity: 3}) },
		func(s State) State { return s.SetQuantity(c, 2) },
		func(s State) State { return s.Remove(uuid.New()) },
	}
	for i, step := range steps {
		state = step(state)
		if state.TotalItems < 0 || state.TotalAmount < 0 {
			t.Fatalf("negative aggregate after step %d: %+v", i, state)
		}
		checkAggregates(t, state)
	}

	if len(state.Lines) != 2 {
		t.Fatalf("expected lines for a and c, got %d", len(state.Lines))
	}
}

func TestRepeatedAddIsAdditive(t *testing.T) {
	productID := uuid.New()
	one := NewState(nil).Add(Line{ProductID: productID, Price: 2.5, Quantity: 6})
	two := NewState(nil).
		Add(Line{ProductID: productID, Price: 2.5, Quantity: 2}).
		Add(Line{ProductID: productID, Price: 2.5, Quantity: 4})

	if one.TotalItems != two.TotalItems || one.TotalAmount != two.TotalAmount {
		t.Fatalf("split adds diverged: %+v vs %+v", one, two)
	}
}

func TestTransitionsDoNotMutateInput(t *testing.T) {
	productID := uuid.New()
	original := NewState(nil).Add(Line{ProductID: productID, Price: 5, Quantity: 1})

	_ = original.Add(Line{ProductID: productID, Price: 5, Quantity: 10})
	_ = original.SetQuantity(productID, 99)
	_ = original.Remove(productID)

	if original.Lines[0].Quantity != 1 || original.TotalItems != 1 {
		t.Fatalf("input state was mutated: %+v", original)
	}
}
