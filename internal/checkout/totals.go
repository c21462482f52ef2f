package checkout

import (
	"encoding/json"
	"fmt"

	"github.com/angelmondragon/secondnest/internal/cart"
	"github.com/angelmondragon/secondnest/pkg/config"
	"github.com/shopspring/decimal"
)

// Rates are the pricing constants applied to a cart.
type Rates struct {
	ShippingFee    decimal.Decimal
	TaxRate        decimal.Decimal
	MembershipRate decimal.Decimal
}

// DefaultRates: flat 29.99 shipping, 8.875% tax, 10% membership discount.
var DefaultRates = Rates{
	ShippingFee:    decimal.RequireFromString("29.99"),
	TaxRate:        decimal.RequireFromString("0.08875"),
	MembershipRate: decimal.RequireFromString("0.10"),
}

// RatesFromConfig parses configured overrides.
func RatesFromConfig(cfg config.CheckoutConfig) (Rates, error) {
	shipping, err := decimal.NewFromString(cfg.ShippingFee)
	if err != nil {
		return Rates{}, fmt.Errorf("invalid shipping fee %q: %w", cfg.ShippingFee, err)
	}
	tax, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return Rates{}, fmt.Errorf("invalid tax rate %q: %w", cfg.TaxRate, err)
	}
	membership, err := decimal.NewFromString(cfg.MembershipRate)
	if err != nil {
		return Rates{}, fmt.Errorf("invalid membership rate %q: %w", cfg.MembershipRate, err)
	}
	if shipping.IsNegative() || tax.IsNegative() || membership.IsNegative() {
		return Rates{}, fmt.Errorf("checkout rates must not be negative")
	}
	return Rates{ShippingFee: shipping, TaxRate: tax, MembershipRate: membership}, nil
}

// Totals is derived from a cart snapshot and never stored.
type Totals struct {
	Subtotal  decimal.Decimal
	Shipping  decimal.Decimal
	Tax       decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
	ItemCount int
}

// MarshalJSON renders amounts as JSON numbers without rounding.
func (t Totals) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Subtotal  json.Number `json:"subtotal"`
		Shipping  json.Number `json:"shipping"`
		Tax       json.Number `json:"tax"`
		Discount  json.Number `json:"discount"`
		Total     json.Number `json:"total"`
		ItemCount int         `json:"itemCount"`
	}{
		Subtotal:  json.Number(t.Subtotal.String()),
		Shipping:  json.Number(t.Shipping.String()),
		Tax:       json.Number(t.Tax.String()),
		Discount:  json.Number(t.Discount.String()),
		Total:     json.Number(t.Total.String()),
		ItemCount: t.ItemCount,
	})
}

// Calculator computes totals with a fixed set of rates.
type Calculator struct {
	rates Rates
}

func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// Compute derives totals for lines. Shipping applies only to a non-zero subtotal.
func (c *Calculator) Compute(lines []cart.Line, membership bool) Totals {
	subtotal := decimal.Zero
	items := 0
	for _, l := range lines {
		subtotal = subtotal.Add(decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
		items += l.Quantity
	}

	shipping := decimal.Zero
	if subtotal.IsPositive() {
		shipping = c.rates.ShippingFee
	}
	tax := subtotal.Mul(c.rates.TaxRate)
	discount := decimal.Zero
	if membership {
		discount = subtotal.Mul(c.rates.MembershipRate)
	}

	return Totals{
		Subtotal:  subtotal,
		Shipping:  shipping,
		Tax:       tax,
		Discount:  discount,
		Total:     subtotal.Add(shipping).Add(tax).Sub(discount),
		ItemCount: items,
	}
}

// ComputeTotals applies DefaultRates.
func ComputeTotals(lines []cart.Line, membership bool) Totals {
	return NewCalculator(DefaultRates).Compute(lines, membership)
}
