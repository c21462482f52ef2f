package checkout

import (
	"encoding/json"
	"testing"

	"github.com/angelmondragon/secondnest/internal/cart"
	"github.com/angelmondragon/secondnest/internal/catalog"
	"github.com/angelmondragon/secondnest/pkg/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func line(id string, price float64, qty int) cart.Line {
	return cart.Line{Listing: catalog.Listing{ID: id, Price: price}, Quantity: qty}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeTotalsScenario(t *testing.T) {
	got := ComputeTotals([]cart.Line{line("2", 89, 2)}, false)

	require.True(t, got.Subtotal.Equal(dec("178")), "subtotal %s", got.Subtotal)
	require.True(t, got.Shipping.Equal(dec("29.99")), "shipping %s", got.Shipping)
	require.True(t, got.Tax.Equal(dec("15.7975")), "tax %s", got.Tax)
	require.True(t, got.Discount.IsZero())
	require.True(t, got.Total.Equal(dec("223.7875")), "total %s", got.Total)
	require.Equal(t, 2, got.ItemCount)
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	got := ComputeTotals(nil, true)
	for _, v := range []decimal.Decimal{got.Subtotal, got.Shipping, got.Tax, got.Discount, got.Total} {
		require.True(t, v.IsZero())
	}
}

func TestMembershipDiscountAndIdentity(t *testing.T) {
	lines := []cart.Line{line("1", 199, 1), line("3", 49, 3), line("x", 0.1, 7)}
	got := ComputeTotals(lines, true)

	require.True(t, got.Discount.Equal(got.Subtotal.Mul(dec("0.10"))))
	identity := got.Subtotal.Add(got.Shipping).Add(got.Tax).Sub(got.Discount)
	require.True(t, got.Total.Equal(identity))

	again := ComputeTotals(lines, true)
	require.True(t, again.Total.Equal(got.Total))
}

func TestRatesFromConfig(t *testing.T) {
	rates, err := RatesFromConfig(config.CheckoutConfig{ShippingFee: "0", TaxRate: "0.05", MembershipRate: "0.2"})
	require.NoError(t, err)

	got := NewCalculator(rates).Compute([]cart.Line{line("1", 100, 1)}, true)
	require.True(t, got.Shipping.IsZero())
	require.True(t, got.Total.Equal(dec("85")), "total %s", got.Total)

	_, err = RatesFromConfig(config.CheckoutConfig{ShippingFee: "abc", TaxRate: "0", MembershipRate: "0"})
	require.Error(t, err)
	_, err = RatesFromConfig(config.CheckoutConfig{ShippingFee: "-1", TaxRate: "0", MembershipRate: "0"})
	require.Error(t, err)
}

func TestTotalsJSONUsesNumbers(t *testing.T) {
	raw, err := json.Marshal(ComputeTotals([]cart.Line{line("2", 89, 2)}, false))
	require.NoError(t, err)
	require.JSONEq(t, `{"subtotal":178,"shipping":29.99,"tax":15.7975,"discount":0,"total":223.7875,"itemCount":2}`, string(raw))
}
