package xlsx

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders a currency amount for the statement export:
// grouped-thousands digits, "-" for zero, a leading minus for negative
// amounts. The export contract renders absent and zero values identically.
func FormatAmount(d decimal.Decimal) string {
	if d.IsZero() {
		return "-"
	}
	s := d.Round(0).String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	grouped := groupThousands(s)
	if neg {
		return "-" + grouped
	}
	return grouped
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatCount renders an order count: grouped digits, "-" for zero.
func FormatCount(n int) string {
	if n == 0 {
		return "-"
	}
	return FormatAmount(decimal.NewFromInt(int64(n)))
}
