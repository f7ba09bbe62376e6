package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVLogFormatter writes the calculation log, one row per entry in log order
type CSVLogFormatter struct{}

func (c CSVLogFormatter) Name() string { return "csv" }

func (c CSVLogFormatter) Format(result *domain.RegimeResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Section", "Item", "Amount", "Cap", "TaxSaved", "Category", "Explanation"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, e := range result.Log {
		row := []string{
			e.Section,
			e.Item,
			e.Amount.StringFixed(2),
			optional(e.Cap),
			optional(e.TaxSaved),
			string(e.Category),
			e.Explanation,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVSummarizer writes the headline figures of a result as a single row
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "summary-csv" }

func (c CSVSummarizer) Format(result *domain.RegimeResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Regime", "FiscalYear", "GrossIncome", "Exemptions", "Deductions", "TaxableIncome",
		"SlabTax", "Rebate", "MarginalRelief", "Surcharge", "Cess", "CapitalGainsTax", "FinalTax", "EffectiveRate", "BalanceDue"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	row := []string{
		string(result.Regime),
		result.FiscalYear,
		result.GrossIncome.StringFixed(2),
		result.Exemptions.StringFixed(2),
		result.Deductions.StringFixed(2),
		result.TaxableIncome.StringFixed(2),
		result.SlabTax.StringFixed(2),
		result.Rebate.StringFixed(2),
		result.MarginalRelief.StringFixed(2),
		result.Surcharge.StringFixed(2),
		result.Cess.StringFixed(2),
		result.CapitalGainsTax.StringFixed(2),
		result.FinalTax.StringFixed(2),
		result.EffectiveRate.StringFixed(4),
		result.BalanceDue.StringFixed(2),
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func optional(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
