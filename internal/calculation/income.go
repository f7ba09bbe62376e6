package calculation

import (
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/pkg/money"
	"github.com/shopspring/decimal"
)

// AggregateIncome sums every income source into gross total income. Capital gains
// taxed at special rates are handled separately; slabRatedGain is the part of
// capital gains (short-term property) that is taxed at slab rates instead.
func AggregateIncome(p *domain.UserTaxProfile, cfg *domain.TaxConfiguration, rules domain.RegimeRules, slabRatedGain decimal.Decimal, log *CalculationLog) domain.IncomeBreakdown {
	var ib domain.IncomeBreakdown

	for _, job := range p.EmploymentPeriods {
		gross := job.GrossSalary.NonNegative()
		bonus := job.Bonus.NonNegative()
		amount := gross.Add(bonus)
		ib.Salary = ib.Salary.Add(amount)
		if amount.IsZero() {
			continue
		}
		explanation := fmt.Sprintf("Gross salary %s", money.FormatRupees(gross))
		if bonus.IsPositive() {
			explanation += fmt.Sprintf(" plus bonus %s", money.FormatRupees(bonus))
		}
		log.Note(domain.SectionSalary, "Salary: "+employerName(job), amount, explanation)
	}

	rb := p.RetirementBenefits
	ib.RetirementBenefits = money.Sum(
		money.New(rb.GratuityReceived.NonNegative()),
		money.New(rb.LeaveEncashmentReceived.NonNegative()),
		money.New(rb.VRSCompensation.NonNegative()),
	)
	if ib.RetirementBenefits.IsPositive() {
		log.Note(domain.SectionSalary, "Retirement benefits received", ib.RetirementBenefits,
			"Gratuity, leave encashment and VRS compensation are part of salary income")
	}

	ib.HouseProperty = HousePropertyIncome(p.HouseProperty, cfg, rules, log)

	ib.Interest = p.OtherIncome.SavingsInterest.NonNegative().Add(p.OtherIncome.DepositInterest.NonNegative())
	if ib.Interest.IsPositive() {
		log.Note(domain.SectionOtherSources, "Interest income", ib.Interest, "Savings and deposit interest")
	}
	ib.Dividends = p.OtherIncome.Dividends.NonNegative()
	if ib.Dividends.IsPositive() {
		log.Note(domain.SectionOtherSources, "Dividends", ib.Dividends, "Dividends are taxed at slab rates")
	}
	ib.Other = p.OtherIncome.Other.NonNegative()
	if ib.Other.IsPositive() {
		log.Note(domain.SectionOtherSources, "Other income", ib.Other, "Income from other sources")
	}

	ib.Gifts = GiftIncome(p.OtherIncome.GiftsFromNonRelatives.NonNegative(), cfg.Income.GiftExemptionLimit, log)

	ib.ShortTermPropertyGain = floor0(slabRatedGain)
	if ib.ShortTermPropertyGain.IsPositive() {
		log.Note(domain.SectionIncome, "Short-term gain on property", ib.ShortTermPropertyGain,
			"Property held for less than the long-term period is taxed at slab rates")
	}

	if agri := p.OtherIncome.AgriculturalIncome.NonNegative(); agri.IsPositive() {
		ib.AgriculturalExcluded = agri
		log.Append(domain.LogEntry{
			Section:     domain.SectionAgricultural,
			Item:        "Agricultural income",
			Amount:      agri,
			Explanation: "Agricultural income is exempt and excluded from total income",
			TaxSaved:    decimalPtr(log.TaxSaved(agri)),
			Category:    domain.CategoryNeutral,
		})
	}

	total := ib.Salary.Add(ib.RetirementBenefits).Add(ib.HouseProperty).Add(ib.Interest).
		Add(ib.Dividends).Add(ib.Other).Add(ib.Gifts).Add(ib.ShortTermPropertyGain)
	ib.Total = floor0(total)
	log.Note(domain.SectionIncome, "Gross total income", ib.Total, "Sum of all heads of income")
	return ib
}

// HousePropertyIncome computes income from house property. The let-out property
// gets the standard deduction on net annual value and its loan interest; where the
// regime allows house property loss, self-occupied interest is also deducted and
// the overall loss is limited to the set-off cap. Otherwise the result floors at zero.
func HousePropertyIncome(hp domain.HouseProperty, cfg *domain.TaxConfiguration, rules domain.RegimeRules, log *CalculationLog) decimal.Decimal {
	rent := hp.RentReceived.NonNegative()
	letOutInterest := hp.LetOutLoanInterest.NonNegative()
	selfOccupied := hp.SelfOccupiedLoanInterest.NonNegative()
	if rent.IsZero() && letOutInterest.IsZero() && selfOccupied.IsZero() {
		return decimal.Zero
	}

	nav := rent.Sub(hp.MunicipalTaxes.NonNegative())
	standard := floor0(nav).Mul(cfg.Income.HousePropertyStandardRate)
	income := nav.Sub(standard).Sub(letOutInterest)

	if rent.IsPositive() {
		log.Note(domain.SectionHouseProperty, "Net annual value", nav,
			fmt.Sprintf("Rent %s less municipal taxes", money.FormatRupees(rent)))
		log.Saving(domain.SectionHouseProperty, "Standard deduction on house property", standard, nil,
			fmt.Sprintf("%s of net annual value for repairs and maintenance", pct(cfg.Income.HousePropertyStandardRate)),
			domain.CategoryExpenseBased)
	}
	if letOutInterest.IsPositive() {
		log.Saving(domain.SectionHomeLoan24B, "Interest on let-out property loan", letOutInterest, nil,
			"Interest on a let-out property is deductible without limit", domain.CategoryExpenseBased)
	}

	if !rules.AllowHousePropertyLoss {
		if selfOccupied.IsPositive() {
			log.Note(domain.SectionHomeLoan24B, "Interest on self-occupied property", decimal.Zero,
				fmt.Sprintf("Not deductible under the %s", rules.Name))
		}
		if income.IsNegative() {
			log.Note(domain.SectionHouseProperty, "House property loss", decimal.Zero,
				fmt.Sprintf("Loss of %s cannot be set off under the %s; floored at zero", money.FormatRupees(income.Neg()), rules.Name))
			income = decimal.Zero
		}
		log.Note(domain.SectionHouseProperty, "Income from house property", income, "")
		return income
	}

	if selfOccupied.IsPositive() {
		allowed := capAt(selfOccupied, cfg.Deductions.HomeLoanInterest)
		income = income.Sub(allowed)
		log.Saving(domain.SectionHomeLoan24B, "Interest on self-occupied property", allowed, decimalPtr(cfg.Deductions.HomeLoanInterest),
			fmt.Sprintf("Home loan interest %s, limited to %s", money.FormatRupees(selfOccupied), money.FormatRupees(cfg.Deductions.HomeLoanInterest)),
			domain.CategoryExpenseBased)
	}
	if limit := cfg.Deductions.HousePropertyLossCap; income.LessThan(limit.Neg()) {
		log.Note(domain.SectionHouseProperty, "House property loss limited", limit.Neg(),
			fmt.Sprintf("Loss of %s limited to %s for set-off; the rest carries forward", money.FormatRupees(income.Neg()), money.FormatRupees(limit)))
		income = limit.Neg()
	}
	log.Note(domain.SectionHouseProperty, "Income from house property", income, "")
	return income
}

// GiftIncome includes gifts from non-relatives in full once their aggregate
// exceeds the exemption limit, and excludes them entirely otherwise
func GiftIncome(gifts, limit decimal.Decimal, log *CalculationLog) decimal.Decimal {
	if gifts.IsZero() {
		return decimal.Zero
	}
	if gifts.GreaterThan(limit) {
		log.Note(domain.SectionGifts, "Gifts from non-relatives", gifts,
			fmt.Sprintf("Aggregate exceeds %s, so the whole amount is taxable", money.FormatRupees(limit)))
		return gifts
	}
	log.Note(domain.SectionGifts, "Gifts from non-relatives", decimal.Zero,
		fmt.Sprintf("Aggregate %s does not exceed %s and is exempt", money.FormatRupees(gifts), money.FormatRupees(limit)))
	return decimal.Zero
}

func employerName(job domain.EmploymentPeriod) string {
	if job.Employer != "" {
		return job.Employer
	}
	if job.ID != "" {
		return job.ID
	}
	return "employer"
}
