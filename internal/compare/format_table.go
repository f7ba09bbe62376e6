package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxgo/pkg/money"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a side-by-side table of both regimes
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("REGIME COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	if compSet.ProfileName != "" {
		sb.WriteString(fmt.Sprintf("Profile: %s\n", compSet.ProfileName))
	}
	sb.WriteString(fmt.Sprintf("Fiscal Year: %s\n", compSet.FiscalYear))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Tax Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	labelWidth := 28
	numWidth := 20

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n",
		labelWidth, "",
		numWidth, tf.header(compSet.Old, compSet),
		numWidth, tf.header(compSet.New, compSet)))
	sb.WriteString(strings.Repeat("-", 72) + "\n")

	rows := []struct {
		label string
		value func(*ComparisonResult) decimal.Decimal
	}{
		{"Gross Income", func(r *ComparisonResult) decimal.Decimal { return r.GrossIncome }},
		{"Exemptions", func(r *ComparisonResult) decimal.Decimal { return r.Exemptions }},
		{"Deductions", func(r *ComparisonResult) decimal.Decimal { return r.Deductions }},
		{"Taxable Income", func(r *ComparisonResult) decimal.Decimal { return r.TaxableIncome }},
		{"Capital Gains Tax", func(r *ComparisonResult) decimal.Decimal { return r.CapitalGainsTax }},
		{"Final Tax", func(r *ComparisonResult) decimal.Decimal { return r.FinalTax }},
		{"Balance Due", func(r *ComparisonResult) decimal.Decimal { return r.BalanceDue }},
		{"Estimated Tax Saved", func(r *ComparisonResult) decimal.Decimal { return r.TaxSaved }},
	}
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n",
			labelWidth, row.label,
			numWidth, money.FormatRupees(row.value(compSet.Old)),
			numWidth, money.FormatRupees(row.value(compSet.New))))
	}
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n",
		labelWidth, "Effective Rate",
		numWidth, money.FormatPercent(compSet.Old.EffectiveRate),
		numWidth, money.FormatPercent(compSet.New.EffectiveRate)))

	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Recommended: %s (saves %s)\n",
		compSet.Recommended.Title(), money.FormatRupees(compSet.Savings)))

	if len(compSet.TopSavings) > 0 {
		sb.WriteString("\nWHAT SAVED YOU MONEY\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, e := range compSet.TopSavings {
			sb.WriteString(fmt.Sprintf("%-12s %-40s %17s\n",
				e.Section, tf.truncate(e.Item, 40), money.FormatRupees(*e.TaxSaved)))
		}
	}

	if len(compSet.HardBlocks) > 0 {
		sb.WriteString("\nINPUT PROBLEMS\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, b := range compSet.HardBlocks {
			sb.WriteString(fmt.Sprintf("! %s\n", b))
		}
	}

	if len(compSet.Warnings) > 0 {
		sb.WriteString("\nWARNINGS\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, w := range compSet.Warnings {
			sb.WriteString(fmt.Sprintf("- %s\n", w))
		}
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) header(r *ComparisonResult, compSet *ComparisonSet) string {
	if r.Regime == compSet.Recommended {
		return r.RegimeName + " *"
	}
	return r.RegimeName
}

// truncate truncates a string to maxLen runes
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// FormatCompact creates a single-line summary of the comparison
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	return fmt.Sprintf("%s: %s | %s: %s | Recommended: %s (saves %s)",
		compSet.Old.RegimeName, money.FormatRupees(compSet.Old.FinalTax),
		compSet.New.RegimeName, money.FormatRupees(compSet.New.FinalTax),
		compSet.Recommended.Title(), money.FormatRupees(compSet.Savings))
}
