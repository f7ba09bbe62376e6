package calculation

import (
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/pkg/money"
	"github.com/shopspring/decimal"
)

// PoolItem is one contribution counted towards the 80C pool
type PoolItem struct {
	Section  string
	Label    string
	Amount   decimal.Decimal
	Category domain.LogCategory
}

// Pool80CResult is the outcome of the shared 80C/80CCC/80CCD(1) pool
type Pool80CResult struct {
	Items []PoolItem
	Gross decimal.Decimal
	Cap   decimal.Decimal
	Total decimal.Decimal
}

var investmentLabels = map[string]string{
	domain.InvestmentPPF:               "Public Provident Fund",
	domain.InvestmentELSS:              "ELSS mutual funds",
	domain.InvestmentLifeInsurance:     "Life insurance premium",
	domain.InvestmentNSC:               "National Savings Certificate",
	domain.InvestmentTaxSaverFD:        "Tax-saver fixed deposit",
	domain.InvestmentHomeLoanPrincipal: "Home loan principal",
	domain.InvestmentTuitionFees:       "Children's tuition fees",
	domain.InvestmentSukanyaSamriddhi:  "Sukanya Samriddhi Yojana",
	domain.InvestmentSCSS:              "Senior Citizens Savings Scheme",
	domain.InvestmentULIP:              "ULIP premium",
	domain.InvestmentStampDuty:         "Stamp duty and registration",
	domain.InvestmentOther:             "Other 80C investment",
}

// InvestmentCategory returns the display category for an 80C investment type
func InvestmentCategory(kind string) domain.LogCategory {
	switch kind {
	case domain.InvestmentLifeInsurance, domain.InvestmentTuitionFees, domain.InvestmentStampDuty:
		return domain.CategoryExpenseBased
	case domain.InvestmentPPF, domain.InvestmentELSS, domain.InvestmentNSC, domain.InvestmentTaxSaverFD,
		domain.InvestmentHomeLoanPrincipal, domain.InvestmentSukanyaSamriddhi, domain.InvestmentSCSS,
		domain.InvestmentULIP, domain.InvestmentOther:
		return domain.CategoryWealthBuilding
	}
	return domain.CategoryNeutral
}

// KnownInvestmentType reports whether kind is a recognised 80C investment
func KnownInvestmentType(kind string) bool {
	_, ok := investmentLabels[kind]
	return ok
}

// Calculate80CPool sums EPF, listed investments, 80CCC pension plans and the
// employee NPS contribution (itself limited to a share of basic salary), then
// applies the single shared cap. Excess contributions are dropped silently.
func Calculate80CPool(p *domain.UserTaxProfile, cfg *domain.TaxConfiguration, rules domain.RegimeRules, log *CalculationLog) Pool80CResult {
	limits := cfg.Deductions
	res := Pool80CResult{Cap: limits.Section80CLimit}

	if !rules.Allows(domain.Section80C) {
		if contributionsTo80C(p).IsPositive() {
			log.Note(domain.Section80C, "80C pool", decimal.Zero, fmt.Sprintf("80C deductions are not available under the %s", rules.Name))
		}
		return res
	}

	for _, j := range p.EmploymentPeriods {
		if epf := j.EPFContribution.NonNegative(); epf.IsPositive() {
			res.Items = append(res.Items, PoolItem{domain.Section80C, "Employee provident fund: " + employerName(j), epf, domain.CategoryWealthBuilding})
		}
	}
	for _, inv := range p.Investments80C {
		amount := inv.Amount.NonNegative()
		if amount.IsZero() {
			continue
		}
		label, ok := investmentLabels[inv.Type]
		if !ok {
			label = "Investment: " + inv.Type
		}
		if inv.Description != "" {
			label += " (" + inv.Description + ")"
		}
		res.Items = append(res.Items, PoolItem{domain.Section80C, label, amount, InvestmentCategory(inv.Type)})
	}
	if rules.Allows(domain.Section80CCC) {
		if pension := p.Pension.PensionPlan80CCC.NonNegative(); pension.IsPositive() {
			res.Items = append(res.Items, PoolItem{domain.Section80CCC, "Pension plan contribution", pension, domain.CategoryWealthBuilding})
		}
	}
	if rules.Allows(domain.Section80CCD1) {
		if nps, limit, actual := EmployeeNPSDeduction(p.EmploymentPeriods, limits.EmployeeNPSSalaryRate); actual.IsPositive() {
			if nps.LessThan(actual) {
				log.Note(domain.Section80CCD1, "Employee NPS contribution limited", nps,
					fmt.Sprintf("Contribution %s limited to %s of basic salary (%s)", money.FormatRupees(actual), pct(limits.EmployeeNPSSalaryRate), money.FormatRupees(limit)))
			}
			res.Items = append(res.Items, PoolItem{domain.Section80CCD1, "Employee NPS contribution", nps, domain.CategoryWealthBuilding})
		}
	}

	for _, it := range res.Items {
		res.Gross = res.Gross.Add(it.Amount)
	}
	res.Total = decimal.Min(res.Gross, res.Cap)

	// Each item is credited with its proportional share of the capped total.
	share := decimal.Zero
	if res.Gross.IsPositive() {
		share = res.Total.Div(res.Gross)
	}
	for _, it := range res.Items {
		allowed := it.Amount.Mul(share)
		log.Append(domain.LogEntry{
			Section: it.Section,
			Item:    it.Label,
			Amount:  allowed,
			Cap:     decimalPtr(res.Cap),
			Explanation: fmt.Sprintf("Contributed %s; counts %s towards the shared %s limit",
				money.FormatRupees(it.Amount), money.FormatRupees(allowed), money.FormatRupees(res.Cap)),
			TaxSaved: decimalPtr(log.TaxSaved(allowed)),
			Category: it.Category,
		})
	}

	if res.Gross.IsPositive() {
		explanation := fmt.Sprintf("Total contributions %s within the %s limit", money.FormatRupees(res.Gross), money.FormatRupees(res.Cap))
		if res.Gross.GreaterThan(res.Cap) {
			explanation = fmt.Sprintf("Total contributions %s capped at %s; %s not deductible",
				money.FormatRupees(res.Gross), money.FormatRupees(res.Cap), money.FormatRupees(res.Gross.Sub(res.Cap)))
		}
		log.Append(domain.LogEntry{
			Section:     domain.Section80CCE,
			Item:        "80C pool deduction",
			Amount:      res.Total,
			Cap:         decimalPtr(res.Cap),
			Explanation: explanation,
			Category:    domain.CategoryNeutral,
		})
	}
	return res
}

// EmployeeNPSDeduction returns the allowed 80CCD(1) amount, the salary-based limit
// and the actual contribution
func EmployeeNPSDeduction(jobs []domain.EmploymentPeriod, rate decimal.Decimal) (allowed, limit, actual decimal.Decimal) {
	basic := decimal.Zero
	actual = decimal.Zero
	for _, j := range jobs {
		actual = actual.Add(j.EmployeeNPSContribution.NonNegative())
		basic = basic.Add(j.BasicPlusDA.NonNegative())
	}
	limit = basic.Mul(rate)
	return decimal.Min(actual, limit), limit, actual
}

func contributionsTo80C(p *domain.UserTaxProfile) decimal.Decimal {
	total := p.Pension.PensionPlan80CCC.NonNegative()
	for _, j := range p.EmploymentPeriods {
		total = total.Add(j.EPFContribution.NonNegative()).Add(j.EmployeeNPSContribution.NonNegative())
	}
	for _, inv := range p.Investments80C {
		total = total.Add(inv.Amount.NonNegative())
	}
	return total
}
