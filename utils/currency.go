package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders a monetary amount in Indian rupee display format
// with lakh/crore digit grouping. Rounding to 2 places happens here only;
// stored and derived values stay unrounded.
// Example: 123456.50 -> "₹1,23,456.50"
func FormatCurrency(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	integerPart := parts[0]
	decimalPart := parts[1]

	// Indian grouping: last three digits, then pairs.
	grouped := integerPart
	if len(integerPart) > 3 {
		head := integerPart[:len(integerPart)-3]
		tail := integerPart[len(integerPart)-3:]

		var pairs []string
		for len(head) > 2 {
			pairs = append([]string{head[len(head)-2:]}, pairs...)
			head = head[:len(head)-2]
		}
		if head != "" {
			pairs = append([]string{head}, pairs...)
		}
		grouped = strings.Join(append(pairs, tail), ",")
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s₹%s.%s", sign, grouped, decimalPart)
}
