package pos

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// Totals are derived values, recomputed on every read and never stored.
// Display rounding to 2 places happens only at presentation time.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// Totals recomputes subtotal, promotion discount and total from the current
// cart state. A fixed discount is clamped to the subtotal so the total is
// never negative.
func (c *Cart) Totals() Totals {
	subtotal := decimal.Zero
	for _, l := range c.lines {
		subtotal = subtotal.Add(l.LineTotal())
	}

	discount := decimal.Zero
	if p := c.promotion; p != nil {
		switch {
		case p.DiscountPercentage != nil:
			discount = subtotal.Mul(*p.DiscountPercentage).Div(oneHundred)
		case p.DiscountAmount != nil:
			discount = *p.DiscountAmount
			if discount.GreaterThan(subtotal) {
				discount = subtotal
			}
		}
	}

	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{Subtotal: subtotal, Discount: discount, Total: total}
}
