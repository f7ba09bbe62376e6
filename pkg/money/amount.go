package money

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a rupee amount read from user input. Unlike decimal.Decimal it never
// fails to decode: empty, null or non-numeric values decode as zero.
type Amount struct {
	decimal.Decimal
}

// New wraps a decimal as an Amount
func New(d decimal.Decimal) Amount {
	return Amount{d}
}

// FromInt creates an Amount from a whole number of rupees
func FromInt(v int64) Amount {
	return Amount{decimal.NewFromInt(v)}
}

// FromFloat creates an Amount from a float64
func FromFloat(v float64) Amount {
	return Amount{decimal.NewFromFloat(v)}
}

// Parse converts free-form user text into a decimal. Currency symbols, grouping
// commas and whitespace are ignored; anything else that does not parse yields zero.
func Parse(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimPrefix(s, "Rs.")
	s = strings.TrimPrefix(s, "Rs")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// UnmarshalText implements encoding.TextUnmarshaler (used by yaml.v3)
func (a *Amount) UnmarshalText(text []byte) error {
	a.Decimal = Parse(string(text))
	return nil
}

// UnmarshalJSON accepts numbers, numeric strings, null and garbage alike
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	if string(data) == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = Parse(string(data))
	return nil
}

// MarshalJSON writes the amount as a bare JSON number
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// NonNegative returns the amount clamped at zero
func (a Amount) NonNegative() decimal.Decimal {
	return NonNegative(a.Decimal)
}

// NonNegative clamps d at zero
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Sum adds up a list of amounts
func Sum(amounts ...Amount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.Decimal)
	}
	return total
}
