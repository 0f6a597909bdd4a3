package money

import "github.com/Rhymond/go-money"

// Format renders a numeric amount under a currency code using that
// currency's standard symbol and decimal convention, e.g. 59.99 under
// "CAD" formats as "$59.99". It is pure and never fails: unknown codes
// fall back to go-money's default two-decimal rendering.
func Format(amount float64, code string) string {
	return money.NewFromFloat(amount, code).Display()
}
