package calculation

import (
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/pkg/money"
	"github.com/shopspring/decimal"
)

// ExemptionResult is the total of all Section 10 exemptions for one run
type ExemptionResult struct {
	HRA        HRAResult
	LTA        decimal.Decimal
	Allowances decimal.Decimal
	Gratuity   decimal.Decimal
	Leave      decimal.Decimal
	VRS        decimal.Decimal
	Total      decimal.Decimal
}

// CalculateExemptions computes the salary exemptions a regime permits. Retirement
// benefit exemptions are controlled separately by the regime's rules.
func CalculateExemptions(p *domain.UserTaxProfile, cfg *domain.TaxConfiguration, rules domain.RegimeRules, log *CalculationLog) ExemptionResult {
	var er ExemptionResult
	limits := cfg.Exemptions

	if rules.AllowExemptions {
		er.HRA = CalculateHRA(cfg.FiscalYear, p.EmploymentPeriods, p.RentPeriods, limits.HRA, log)
		er.LTA = LTAExemption(p, log)
		er.Allowances = AllowanceExemptions(p, limits, log)
	} else if hasSalaryAllowances(p) {
		log.Note(domain.SectionAllowances, "Salary exemptions", decimal.Zero,
			fmt.Sprintf("HRA, LTA and allowance exemptions are not available under the %s", rules.Name))
	}

	if rules.AllowRetirementExemptions {
		er.Gratuity = GratuityExemption(p.RetirementBenefits, p.IsGovernmentEmployee, limits.Gratuity, log)
		er.Leave = LeaveEncashmentExemption(p.RetirementBenefits, p.IsGovernmentEmployee, limits.LeaveEncashment, log)
		er.VRS = VRSExemption(p.RetirementBenefits, limits.VRSLimit, log)
	} else if p.RetirementBenefits.Total().IsPositive() {
		log.Note(domain.SectionGratuity, "Retirement benefit exemptions", decimal.Zero,
			fmt.Sprintf("Gratuity, leave encashment and VRS exemptions are not applied under the %s", rules.Name))
	}

	er.Total = er.HRA.Exemption.Add(er.LTA).Add(er.Allowances).Add(er.Gratuity).Add(er.Leave).Add(er.VRS)
	return er
}

func hasSalaryAllowances(p *domain.UserTaxProfile) bool {
	for _, j := range p.EmploymentPeriods {
		if money.Sum(j.HRAReceived, j.LTAReceived, j.ChildrenEducation, j.HostelAllowance, j.TransportAllowance).IsPositive() {
			return true
		}
	}
	return false
}

// LTAExemption exempts leave travel allowance up to the actual travel cost
func LTAExemption(p *domain.UserTaxProfile, log *CalculationLog) decimal.Decimal {
	received := decimal.Zero
	for _, j := range p.EmploymentPeriods {
		received = received.Add(j.LTAReceived.NonNegative())
	}
	if received.IsZero() {
		return decimal.Zero
	}
	travel := p.Allowances.LTATravelCost.NonNegative()
	exempt := decimal.Min(received, travel)
	if exempt.IsZero() {
		log.Note(domain.SectionLTA, "Leave travel allowance", decimal.Zero, "No eligible travel cost claimed against LTA received")
		return exempt
	}
	log.Saving(domain.SectionLTA, "Leave travel allowance", exempt, decimalPtr(received),
		fmt.Sprintf("Least of LTA received %s and travel cost %s", money.FormatRupees(received), money.FormatRupees(travel)),
		domain.CategoryExpenseBased)
	return exempt
}

// AllowanceExemptions covers children education, hostel and transport allowances
func AllowanceExemptions(p *domain.UserTaxProfile, limits domain.ExemptionLimits, log *CalculationLog) decimal.Decimal {
	education, hostel, transport := decimal.Zero, decimal.Zero, decimal.Zero
	for _, j := range p.EmploymentPeriods {
		education = education.Add(j.ChildrenEducation.NonNegative())
		hostel = hostel.Add(j.HostelAllowance.NonNegative())
		transport = transport.Add(j.TransportAllowance.NonNegative())
	}

	total := decimal.Zero
	childCap := func(rule domain.ChildAllowance, children int) decimal.Decimal {
		if children > rule.MaxChildren {
			children = rule.MaxChildren
		}
		if children < 0 {
			children = 0
		}
		return rule.MonthlyPerChild.Mul(twelve).Mul(decimal.NewFromInt(int64(children)))
	}

	if education.IsPositive() {
		limit := childCap(limits.ChildrenEducation, p.Allowances.ChildrenInSchool)
		exempt := capAt(education, limit)
		total = total.Add(exempt)
		log.Saving(domain.SectionAllowances, "Children education allowance", exempt, decimalPtr(limit),
			fmt.Sprintf("%s per child per month for up to %d children", money.FormatRupees(limits.ChildrenEducation.MonthlyPerChild), limits.ChildrenEducation.MaxChildren),
			domain.CategoryExpenseBased)
	}
	if hostel.IsPositive() {
		limit := childCap(limits.Hostel, p.Allowances.ChildrenInHostel)
		exempt := capAt(hostel, limit)
		total = total.Add(exempt)
		log.Saving(domain.SectionAllowances, "Hostel expenditure allowance", exempt, decimalPtr(limit),
			fmt.Sprintf("%s per child per month for up to %d children", money.FormatRupees(limits.Hostel.MonthlyPerChild), limits.Hostel.MaxChildren),
			domain.CategoryExpenseBased)
	}
	if transport.IsPositive() {
		if !p.Allowances.DisabledEmployee {
			log.Note(domain.SectionAllowances, "Transport allowance", decimal.Zero, "Exempt only for employees with a disability")
		} else {
			limit := limits.DisabledTransport.Mul(twelve)
			exempt := capAt(transport, limit)
			total = total.Add(exempt)
			log.Saving(domain.SectionAllowances, "Transport allowance (disability)", exempt, decimalPtr(limit),
				fmt.Sprintf("%s per month", money.FormatRupees(limits.DisabledTransport)), domain.CategoryExpenseBased)
		}
	}
	return total
}

// GratuityExemption: fully exempt for government employees, otherwise
// least(actual, statutory limit, 15/26 x last drawn salary x years of service)
func GratuityExemption(rb domain.RetirementBenefits, government bool, rule domain.GratuityRule, log *CalculationLog) decimal.Decimal {
	received := rb.GratuityReceived.NonNegative()
	if received.IsZero() {
		return decimal.Zero
	}
	if government {
		log.Saving(domain.SectionGratuity, "Gratuity", received, nil,
			"Gratuity received by a government employee is fully exempt", domain.CategoryNeutral)
		return received
	}
	formula := rb.LastDrawnMonthlySalary.NonNegative().
		Mul(rule.DaysNumerator).Div(rule.DaysDivisor).
		Mul(decimal.NewFromInt(int64(max(rb.YearsOfService, 0))))
	exempt := least(received, rule.Limit, formula)
	log.Saving(domain.SectionGratuity, "Gratuity", exempt, decimalPtr(rule.Limit),
		fmt.Sprintf("Least of received %s, limit %s and %s/%s x last salary x %d years = %s",
			money.FormatRupees(received), money.FormatRupees(rule.Limit), rule.DaysNumerator, rule.DaysDivisor, rb.YearsOfService, money.FormatRupees(formula)),
		domain.CategoryNeutral)
	return exempt
}

// LeaveEncashmentExemption: fully exempt for government employees, otherwise
// least(actual, statutory limit, N months of last drawn salary)
func LeaveEncashmentExemption(rb domain.RetirementBenefits, government bool, rule domain.LeaveEncashRule, log *CalculationLog) decimal.Decimal {
	received := rb.LeaveEncashmentReceived.NonNegative()
	if received.IsZero() {
		return decimal.Zero
	}
	if government {
		log.Saving(domain.SectionLeaveEncashment, "Leave encashment", received, nil,
			"Leave encashment received by a government employee is fully exempt", domain.CategoryNeutral)
		return received
	}
	formula := rb.LastDrawnMonthlySalary.NonNegative().Mul(rule.SalaryMonths)
	exempt := least(received, rule.Limit, formula)
	log.Saving(domain.SectionLeaveEncashment, "Leave encashment", exempt, decimalPtr(rule.Limit),
		fmt.Sprintf("Least of received %s, limit %s and %s months of salary", money.FormatRupees(received), money.FormatRupees(rule.Limit), rule.SalaryMonths),
		domain.CategoryNeutral)
	return exempt
}

// VRSExemption exempts voluntary retirement compensation up to the limit
func VRSExemption(rb domain.RetirementBenefits, limit decimal.Decimal, log *CalculationLog) decimal.Decimal {
	received := rb.VRSCompensation.NonNegative()
	if received.IsZero() {
		return decimal.Zero
	}
	exempt := decimal.Min(received, limit)
	log.Saving(domain.SectionVRS, "Voluntary retirement compensation", exempt, decimalPtr(limit),
		fmt.Sprintf("Exempt up to %s", money.FormatRupees(limit)), domain.CategoryNeutral)
	return exempt
}
