package checkout

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shopmart-io/shopmart-backend/pkg/config"
)

// Rules holds the canonical pricing constants. The cart and checkout screens
// used to carry diverging copies of these numbers; every caller now goes
// through this package.
type Rules struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFlatFee       decimal.Decimal
	TaxRate               decimal.Decimal
}

// DefaultRules mirrors the config defaults: free shipping over 500, flat fee
// of 100 below it, 18% tax.
func DefaultRules() Rules {
	return Rules{
		FreeShippingThreshold: decimal.NewFromInt(500),
		ShippingFlatFee:       decimal.NewFromInt(100),
		TaxRate:               decimal.NewFromFloat(0.18),
	}
}

// RulesFromConfig parses the configured constants.
func RulesFromConfig(cfg config.CheckoutConfig) (Rules, error) {
	threshold, err := decimal.NewFromString(cfg.FreeShippingThreshold)
	if err != nil {
		return Rules{}, fmt.Errorf("parsing free shipping threshold: %w", err)
	}
	fee, err := decimal.NewFromString(cfg.ShippingFlatFee)
	if err != nil {
		return Rules{}, fmt.Errorf("parsing shipping flat fee: %w", err)
	}
	rate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return Rules{}, fmt.Errorf("parsing tax rate: %w", err)
	}
	if threshold.IsNegative() || fee.IsNegative() || rate.IsNegative() {
		return Rules{}, fmt.Errorf("checkout constants must be non-negative")
	}
	return Rules{
		FreeShippingThreshold: threshold,
		ShippingFlatFee:       fee,
		TaxRate:               rate,
	}, nil
}

// Breakdown is the derived price composition for a given subtotal.
type Breakdown struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Compute derives shipping, tax and total from the subtotal. Shipping is
// waived strictly above the threshold. Every derived step is rounded to two
// decimal places before it feeds the next one.
func (r Rules) Compute(subtotal float64) Breakdown {
	sub := decimal.NewFromFloat(subtotal).Round(2)
	if sub.IsNegative() {
		sub = decimal.Zero
	}

	shipping := r.ShippingFlatFee.Round(2)
	if sub.IsZero() || sub.GreaterThan(r.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := sub.Mul(r.TaxRate).Round(2)
	total := sub.Add(shipping).Add(tax).Round(2)

	return Breakdown{
		Subtotal: sub.InexactFloat64(),
		Shipping: shipping.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}
}
