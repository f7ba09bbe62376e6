package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/pkg/money"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders a short summary of a regime result
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(result *domain.RegimeResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s TAX SUMMARY (FY %s)\n", strings.ToUpper(result.Regime.Title()), result.FiscalYear)
	fmt.Fprintln(&buf, strings.Repeat("=", 48))
	writeLine(&buf, "Gross Income", result.GrossIncome)
	writeLine(&buf, "Taxable Income", result.TaxableIncome)
	writeLine(&buf, "Final Tax", result.FinalTax)
	fmt.Fprintf(&buf, "%-24s %22s\n", "Effective Rate", money.FormatPercent(result.EffectiveRate))
	writeLine(&buf, "Balance Due", result.BalanceDue)
	if n := len(result.HardBlocks); n > 0 {
		fmt.Fprintf(&buf, "\n%d input problem(s); run with --format console for details\n", n)
	}
	return buf.Bytes(), nil
}

// ConsoleVerboseFormatter renders the full computation with the calculation log
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(result *domain.RegimeResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintf(&buf, "INCOME TAX COMPUTATION: %s, FISCAL YEAR %s\n", strings.ToUpper(result.Regime.Title()), result.FiscalYear)
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintf(&buf, "Age category: %s\n\n", result.AgeCategory)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	writeSection(&buf, "INCOME")
	in := result.Income
	writeLine(&buf, "Salary", in.Salary)
	writeLine(&buf, "Retirement Benefits", in.RetirementBenefits)
	writeLine(&buf, "House Property", in.HouseProperty)
	writeLine(&buf, "Interest", in.Interest)
	writeLine(&buf, "Dividends", in.Dividends)
	writeLine(&buf, "Gifts", in.Gifts)
	if !in.ShortTermPropertyGain.IsZero() {
		writeLine(&buf, "Short-term Property Gain", in.ShortTermPropertyGain)
	}
	writeLine(&buf, "Other", in.Other)
	writeLine(&buf, "GROSS TOTAL INCOME", result.GrossIncome)
	if in.AgriculturalExcluded.IsPositive() {
		writeLine(&buf, "Agricultural (excluded)", in.AgriculturalExcluded)
	}
	fmt.Fprintln(&buf)

	writeSection(&buf, "EXEMPTIONS & DEDUCTIONS")
	writeLine(&buf, "Exemptions", result.Exemptions)
	writeLine(&buf, "Deductions", result.Deductions)
	writeLine(&buf, "TAXABLE INCOME", result.TaxableIncome)
	fmt.Fprintln(&buf)

	if len(result.HRA) > 0 {
		writeSection(&buf, "HRA BY MONTH")
		fmt.Fprintf(&buf, "%-9s %14s %14s %14s %14s\n", "Month", "HRA", "Rent", "Salary Limit", "Exempt")
		for _, m := range result.HRA {
			fmt.Fprintf(&buf, "%-9s %14s %14s %14s %14s\n", m.Month,
				m.HRAReceived.StringFixed(2), m.RentPaid.StringFixed(2),
				m.SalaryLimit.StringFixed(2), m.Exempt.StringFixed(2))
		}
		fmt.Fprintln(&buf)
	}

	writeSection(&buf, "TAX")
	writeLine(&buf, "Slab Tax", result.SlabTax)
	writeLine(&buf, "Rebate u/s 87A", result.Rebate.Neg())
	if result.MarginalRelief.IsPositive() {
		writeLine(&buf, "Marginal Relief", result.MarginalRelief.Neg())
	}
	writeLine(&buf, "Surcharge", result.Surcharge)
	if result.SurchargeRelief.IsPositive() {
		writeLine(&buf, "Surcharge Relief", result.SurchargeRelief.Neg())
	}
	writeLine(&buf, "Cess", result.Cess)
	writeLine(&buf, "Capital Gains Tax", result.CapitalGainsTax)
	writeLine(&buf, "FINAL TAX", result.FinalTax)
	fmt.Fprintf(&buf, "%-24s %22s\n", "Effective Rate", money.FormatPercent(result.EffectiveRate))
	writeLine(&buf, "Taxes Paid", result.TaxesPaid)
	writeLine(&buf, "BALANCE DUE", result.BalanceDue)
	fmt.Fprintln(&buf)

	cg := result.CapitalGains
	if cg.TotalTaxableGains.IsPositive() || cg.UnabsorbedSTLoss.IsPositive() || cg.UnabsorbedLTLoss.IsPositive() {
		writeSection(&buf, "CAPITAL GAINS")
		writeLine(&buf, "Taxable STCG", cg.TaxableSTCG)
		writeLine(&buf, "Taxable LTCG", cg.TaxableLTCG)
		if cg.Property != nil && cg.Property.LongTerm {
			fmt.Fprintf(&buf, "%-24s %22s\n", "Property Method", cg.Property.Method)
		}
		writeLine(&buf, "Unabsorbed ST Loss", cg.UnabsorbedSTLoss)
		writeLine(&buf, "Unabsorbed LT Loss", cg.UnabsorbedLTLoss)
		fmt.Fprintln(&buf)
	}

	writeSavings(&buf, result)
	writeLog(&buf, result.Log)

	if len(result.HardBlocks) > 0 {
		writeSection(&buf, "INPUT PROBLEMS")
		for _, b := range result.HardBlocks {
			fmt.Fprintf(&buf, "! %s\n", b)
		}
		fmt.Fprintln(&buf)
	}
	if len(result.Warnings) > 0 {
		writeSection(&buf, "WARNINGS")
		for _, w := range result.Warnings {
			fmt.Fprintf(&buf, "- %s\n", w)
		}
		fmt.Fprintln(&buf)
	}

	return buf.Bytes(), nil
}

// CategoryTitle is the display heading of a log category
func CategoryTitle(c domain.LogCategory) string {
	switch c {
	case domain.CategoryWealthBuilding:
		return "Wealth building"
	case domain.CategoryExpenseBased:
		return "Expense based"
	case domain.CategoryDonation:
		return "Donations"
	}
	return "Other"
}

func writeSavings(buf *bytes.Buffer, result *domain.RegimeResult) {
	total := result.TotalTaxSaved()
	if !total.IsPositive() {
		return
	}
	writeSection(buf, "WHAT SAVED YOU MONEY")
	for _, c := range []domain.LogCategory{domain.CategoryWealthBuilding, domain.CategoryExpenseBased, domain.CategoryDonation, domain.CategoryNeutral} {
		saved := decimal.Zero
		for _, e := range result.EntriesByCategory(c) {
			if e.TaxSaved != nil {
				saved = saved.Add(*e.TaxSaved)
			}
		}
		if saved.IsPositive() {
			writeLine(buf, CategoryTitle(c), saved)
		}
	}
	writeLine(buf, "Total (estimate)", total)
	fmt.Fprintln(buf)
}

func writeLog(buf *bytes.Buffer, entries []domain.LogEntry) {
	if len(entries) == 0 {
		return
	}
	writeSection(buf, "CALCULATION LOG")
	for _, e := range entries {
		fmt.Fprintf(buf, "%-10s %-34s %18s", e.Section, truncate(e.Item, 34), money.FormatRupees(e.Amount))
		if e.Cap != nil {
			fmt.Fprintf(buf, "  cap %s", money.FormatRupees(*e.Cap))
		}
		fmt.Fprintln(buf)
		if e.Explanation != "" {
			fmt.Fprintf(buf, "           %s\n", e.Explanation)
		}
	}
	fmt.Fprintln(buf)
}

func writeSection(buf *bytes.Buffer, title string) {
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("-", len(title)))
}

func writeLine(buf *bytes.Buffer, label string, amount decimal.Decimal) {
	fmt.Fprintf(buf, "%-24s %22s\n", label+":", money.FormatRupees(amount))
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
