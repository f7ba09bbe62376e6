package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates one CSV row per regime
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Regime",
		"Recommended",
		"Gross Income",
		"Exemptions",
		"Deductions",
		"Taxable Income",
		"Capital Gains Tax",
		"Final Tax",
		"Effective Rate",
		"Balance Due",
		"Tax Saved",
		"Tax Diff from Other",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, r := range compSet.Results() {
		if err := writer.Write(cf.formatRow(r, r.Regime == compSet.Recommended)); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, recommended bool) []string {
	flag := "no"
	if recommended {
		flag = "yes"
	}
	return []string{
		string(result.Regime),
		flag,
		result.GrossIncome.StringFixed(2),
		result.Exemptions.StringFixed(2),
		result.Deductions.StringFixed(2),
		result.TaxableIncome.StringFixed(2),
		result.CapitalGainsTax.StringFixed(2),
		result.FinalTax.StringFixed(2),
		result.EffectiveRate.StringFixed(4),
		result.BalanceDue.StringFixed(2),
		result.TaxSaved.StringFixed(2),
		result.TaxDiffFromOther.StringFixed(2),
	}
}
