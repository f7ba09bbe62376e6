package calculation

import (
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationLog is the append-only audit trail of one regime run
type CalculationLog struct {
	entries      []domain.LogEntry
	taxSavedRate decimal.Decimal
}

// NewCalculationLog creates an empty log. taxSavedRate is the assumed marginal
// rate used to estimate the tax saved by each deduction or exemption.
func NewCalculationLog(taxSavedRate decimal.Decimal) *CalculationLog {
	return &CalculationLog{taxSavedRate: taxSavedRate}
}

// Append records an entry as-is
func (l *CalculationLog) Append(e domain.LogEntry) {
	l.entries = append(l.entries, e)
}

// Note records a neutral, informational entry
func (l *CalculationLog) Note(section, item string, amount decimal.Decimal, explanation string) {
	l.Append(domain.LogEntry{
		Section:     section,
		Item:        item,
		Amount:      amount,
		Explanation: explanation,
		Category:    domain.CategoryNeutral,
	})
}

// Saving records an amount that reduces taxable income, with its cap (nil when
// uncapped) and an estimated tax saved
func (l *CalculationLog) Saving(section, item string, amount decimal.Decimal, cap *decimal.Decimal, explanation string, category domain.LogCategory) {
	l.Append(domain.LogEntry{
		Section:     section,
		Item:        item,
		Amount:      amount,
		Cap:         cap,
		Explanation: explanation,
		TaxSaved:    decimalPtr(l.TaxSaved(amount)),
		Category:    category,
	})
}

// TaxSaved estimates the tax an amount of deduction saves at the display rate
func (l *CalculationLog) TaxSaved(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(l.taxSavedRate)
}

// Entries returns a copy of the entries in the order they were appended
func (l *CalculationLog) Entries() []domain.LogEntry {
	out := make([]domain.LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries
func (l *CalculationLog) Len() int { return len(l.entries) }

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// least returns the smallest of the given values
func least(first decimal.Decimal, rest ...decimal.Decimal) decimal.Decimal {
	return decimal.Min(first, rest...)
}

// floor0 clamps a value at zero
func floor0(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// capAt returns min(max(amount, 0), limit)
func capAt(amount, limit decimal.Decimal) decimal.Decimal {
	return decimal.Min(floor0(amount), limit)
}

// pct renders a fraction as "30%" for explanations
func pct(rate decimal.Decimal) string {
	return rate.Mul(hundred).String() + "%"
}
