package calculation

import (
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/pkg/money"
	"github.com/shopspring/decimal"
)

var epfWarnRate = decimal.NewFromFloat(0.12)

// ValidateProfile inspects a profile for suspicious or inconsistent input. Warnings
// are informational; hard blocks describe inputs that are logically inconsistent.
// Neither stops the calculation.
func ValidateProfile(p *domain.UserTaxProfile, cfg *domain.TaxConfiguration) (warnings, hardBlocks []string) {
	fy := cfg.FiscalYear

	for i, j := range p.EmploymentPeriods {
		name := fmt.Sprintf("employment period %d (%s)", i+1, employerName(j))
		hardBlocks = append(hardBlocks, periodProblems(name, j.Period)...)
		warnings = append(warnings, outsideFiscalYear(name, j.Period, fy)...)

		gross := j.GrossSalary.NonNegative()
		components := money.Sum(j.BasicPlusDA, j.HRAReceived, j.LTAReceived, j.ChildrenEducation,
			j.HostelAllowance, j.TransportAllowance, j.OtherAllowances)
		if components.GreaterThan(gross) {
			hardBlocks = append(hardBlocks, fmt.Sprintf("%s: salary components %s exceed gross salary %s",
				name, money.FormatRupees(components), money.FormatRupees(gross)))
		}
		if basic := j.BasicPlusDA.NonNegative(); basic.IsPositive() && j.EPFContribution.GreaterThan(basic.Mul(epfWarnRate)) {
			warnings = append(warnings, fmt.Sprintf("%s: EPF contribution %s is unusually high (above %s of basic)",
				name, money.FormatRupees(j.EPFContribution.Decimal), pct(epfWarnRate)))
		}
		for _, neg := range negativeAmounts([]namedAmount{
			{"gross salary", j.GrossSalary}, {"basic", j.BasicPlusDA}, {"HRA", j.HRAReceived}, {"bonus", j.Bonus},
			{"EPF", j.EPFContribution}, {"employee NPS", j.EmployeeNPSContribution}, {"employer NPS", j.EmployerNPSContribution},
		}) {
			warnings = append(warnings, fmt.Sprintf("%s: negative %s treated as zero", name, neg))
		}
		for k := i + 1; k < len(p.EmploymentPeriods); k++ {
			if j.Overlaps(fy, p.EmploymentPeriods[k].Period) {
				warnings = append(warnings, fmt.Sprintf("%s overlaps employment period %d; salary and HRA are summed for shared months",
					name, k+1))
			}
		}
	}

	for i, r := range p.RentPeriods {
		name := fmt.Sprintf("rent period %d", i+1)
		hardBlocks = append(hardBlocks, periodProblems(name, r.Period)...)
		warnings = append(warnings, outsideFiscalYear(name, r.Period, fy)...)
		if r.Amount.IsNegative() {
			warnings = append(warnings, fmt.Sprintf("%s: negative rent treated as zero", name))
		}
		for k := i + 1; k < len(p.RentPeriods); k++ {
			if r.Overlaps(fy, p.RentPeriods[k].Period) {
				warnings = append(warnings, fmt.Sprintf("%s overlaps rent period %d; only the first is used for shared months", name, k+1))
			}
		}
	}
	if totalRent(p.RentPeriods).IsPositive() && !ReceivesHRA(p.EmploymentPeriods) {
		warnings = append(warnings, "Rent is paid but no HRA is received; the rent deduction under 80GG may apply instead")
	}

	for _, inv := range p.Investments80C {
		if !KnownInvestmentType(inv.Type) {
			warnings = append(warnings, fmt.Sprintf("Unknown 80C investment type %q counted in the pool", inv.Type))
		}
		if inv.Amount.IsNegative() {
			warnings = append(warnings, fmt.Sprintf("Negative 80C investment %q treated as zero", inv.Type))
		}
	}

	for _, d := range p.Donations {
		cat, ok := cfg.Donations.Categories[d.Category]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("Unknown donation category %q is ignored", d.Category))
			continue
		}
		if d.IsCash() && cat.CashDisallowed {
			warnings = append(warnings, fmt.Sprintf("Cash donation to %s is not deductible", d.Category))
		} else if d.IsCash() && d.Amount.GreaterThan(cfg.Donations.CashLimit) {
			warnings = append(warnings, fmt.Sprintf("Cash donation of %s to %s exceeds the %s cash limit and is disallowed",
				money.FormatRupees(d.Amount.Decimal), d.Category, money.FormatRupees(cfg.Donations.CashLimit)))
		}
	}

	if p.Loans.HomeLoanInterest80EE.IsPositive() && p.Loans.HomeLoanInterest80EEA.IsPositive() {
		warnings = append(warnings, "80EE and 80EEA cannot both be claimed; 80EEA will be ignored")
	}

	if sale := p.CapitalGains.Property; sale != nil {
		acq, sold := sale.AcquisitionDate, sale.SaleDate
		if !acq.IsZero() && !sold.IsZero() {
			if sold.Before(acq.Time) {
				hardBlocks = append(hardBlocks, fmt.Sprintf("Property sale date %s is before acquisition date %s", sold, acq))
			} else if months := domain.MonthsBetween(acq.Time, sold.Time); months < cfg.CapitalGains.LongTermHoldingMonths {
				warnings = append(warnings, fmt.Sprintf("Property held %d months is short-term; gain is taxed at slab rates", months))
			}
		}
	}

	return warnings, hardBlocks
}

func periodProblems(name string, p domain.Period) []string {
	var out []string
	if p.StartMonth < 0 || p.StartMonth > 12 || p.EndMonth < 0 || p.EndMonth > 12 {
		out = append(out, fmt.Sprintf("%s: month must be between 1 and 12", name))
		return out
	}
	if p.StartYear != 0 && p.StartMonth != 0 && p.EndYear != 0 && p.EndMonth != 0 {
		start := domain.YearMonth{Year: p.StartYear, Month: p.StartMonth}
		end := domain.YearMonth{Year: p.EndYear, Month: p.EndMonth}
		if end.Index() < start.Index() {
			out = append(out, fmt.Sprintf("%s: ends (%s) before it starts (%s)", name, end, start))
		}
	}
	return out
}

func outsideFiscalYear(name string, p domain.Period, fy domain.FiscalYear) []string {
	start, end := p.Bounds(fy)
	if end.Index() < fy.First().Index() || start.Index() > fy.Last().Index() {
		return []string{fmt.Sprintf("%s (%s to %s) lies outside fiscal year %s", name, start, end, fy.Label)}
	}
	return nil
}

type namedAmount struct {
	name   string
	amount money.Amount
}

func negativeAmounts(fields []namedAmount) []string {
	var out []string
	for _, f := range fields {
		if f.amount.IsNegative() {
			out = append(out, f.name)
		}
	}
	return out
}
