package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupees renders an amount with Indian digit grouping, e.g. ₹12,34,567.00
func FormatRupees(d decimal.Decimal) string {
	return "₹" + GroupIndian(d.StringFixed(2))
}

// FormatRupeesWhole renders an amount rounded to whole rupees, e.g. ₹12,34,567
func FormatRupeesWhole(d decimal.Decimal) string {
	return "₹" + GroupIndian(d.Round(0).StringFixed(0))
}

// FormatPercent formats a fraction (0.125) as a percentage string (12.50%)
func FormatPercent(fraction decimal.Decimal) string {
	return fraction.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// GroupIndian inserts lakh/crore separators into a plain decimal string.
// The last three integer digits form one group, every two digits before that another.
func GroupIndian(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	if len(intPart) > 3 {
		head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		intPart = strings.Join(append(groups, tail), ",")
	}

	if neg {
		return "-" + intPart + frac
	}
	return intPart + frac
}
