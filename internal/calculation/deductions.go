package calculation

import (
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/pkg/money"
	"github.com/shopspring/decimal"
)

// DeductionResult holds every deduction from gross total income for one regime
type DeductionResult struct {
	Standard        decimal.Decimal
	ProfessionalTax decimal.Decimal
	Pool80C         Pool80CResult
	NPS80CCD1B      decimal.Decimal
	EmployerNPS     decimal.Decimal
	HealthInsurance decimal.Decimal
	Disability80DD  decimal.Decimal
	Disability80U   decimal.Decimal
	Medical80DDB    decimal.Decimal
	Education80E    decimal.Decimal
	HomeLoan80EE    decimal.Decimal
	HomeLoan80EEA   decimal.Decimal
	EVLoan80EEB     decimal.Decimal
	Interest80TT    decimal.Decimal
	Rent80GG        decimal.Decimal
	Donations       DonationResult
	Total           decimal.Decimal
}

// DeductionInput is what the deduction stage needs from earlier stages
type DeductionInput struct {
	Income      domain.IncomeBreakdown
	HRAReceived bool
}

// CalculateDeductions runs the standard deduction and every Chapter VI-A category
// the regime allows. Sections missing from the regime's allow-list are skipped
// with a note when the user claimed them. 80GG and donations depend on income
// after the other deductions, so they run last.
func CalculateDeductions(p *domain.UserTaxProfile, cfg *domain.TaxConfiguration, rules domain.RegimeRules, in DeductionInput, log *CalculationLog) DeductionResult {
	var dr DeductionResult
	limits := cfg.Deductions
	age := p.AgeCategory.Normalize()

	allowed := func(section string, claimed bool) bool {
		if rules.Allows(section) {
			return true
		}
		if claimed {
			log.Note(section, "Section "+section, decimal.Zero, fmt.Sprintf("Not available under the %s", rules.Name))
		}
		return false
	}

	salaryIncome := in.Income.Salary.Add(in.Income.RetirementBenefits)
	if salaryIncome.IsPositive() && allowed(domain.SectionStandardDed, true) {
		dr.Standard = StandardDeduction(salaryIncome, rules.StandardDeduction, log)
	}

	professional := decimal.Zero
	for _, j := range p.EmploymentPeriods {
		professional = professional.Add(j.ProfessionalTax.NonNegative())
	}
	if allowed(domain.SectionProfessionalTax, professional.IsPositive()) && professional.IsPositive() {
		dr.ProfessionalTax = capAt(professional, limits.ProfessionalTax)
		log.Saving(domain.SectionProfessionalTax, "Professional tax", dr.ProfessionalTax, decimalPtr(limits.ProfessionalTax),
			fmt.Sprintf("Professional tax paid %s, limited to %s", money.FormatRupees(professional), money.FormatRupees(limits.ProfessionalTax)),
			domain.CategoryExpenseBased)
	}

	dr.Pool80C = Calculate80CPool(p, cfg, rules, log)

	if nps := p.Pension.AdditionalNPS80CCD1B.NonNegative(); allowed(domain.Section80CCD1B, nps.IsPositive()) && nps.IsPositive() {
		dr.NPS80CCD1B = capAt(nps, limits.Section80CCD1B)
		log.Saving(domain.Section80CCD1B, "Additional NPS contribution", dr.NPS80CCD1B, decimalPtr(limits.Section80CCD1B),
			fmt.Sprintf("Over and above the 80C pool, up to %s", money.FormatRupees(limits.Section80CCD1B)),
			domain.CategoryWealthBuilding)
	}

	dr.EmployerNPS = EmployerNPSDeduction(p.EmploymentPeriods, rules, log)
	if allowed(domain.Section80D, healthClaimed(p.HealthInsurance)) {
		dr.HealthInsurance = HealthInsuranceDeduction(p.HealthInsurance, age, limits.Section80D, log)
	}
	if allowed(domain.Section80DD, p.Disability.Dependent != domain.DisabilityNone) {
		dr.Disability80DD = disabilityDeduction(domain.Section80DD, "Disabled dependant", p.Disability.Dependent, limits.Section80DD, log)
	}
	if allowed(domain.Section80U, p.Disability.Self != domain.DisabilityNone) {
		dr.Disability80U = disabilityDeduction(domain.Section80U, "Self with disability", p.Disability.Self, limits.Section80U, log)
	}
	if medical := p.Disability.MedicalTreatment.NonNegative(); allowed(domain.Section80DDB, medical.IsPositive()) && medical.IsPositive() {
		limit := limits.Section80DDB.Normal
		if p.Disability.MedicalPatientSenior {
			limit = limits.Section80DDB.Senior
		}
		dr.Medical80DDB = capAt(medical, limit)
		log.Saving(domain.Section80DDB, "Treatment of specified diseases", dr.Medical80DDB, decimalPtr(limit),
			fmt.Sprintf("Medical expenditure %s, limited to %s", money.FormatRupees(medical), money.FormatRupees(limit)),
			domain.CategoryExpenseBased)
	}
	if edu := p.Loans.EducationLoanInterest.NonNegative(); allowed(domain.Section80E, edu.IsPositive()) && edu.IsPositive() {
		dr.Education80E = edu
		log.Saving(domain.Section80E, "Education loan interest", edu, nil, "Interest on an education loan is deductible without limit",
			domain.CategoryExpenseBased)
	}

	dr.HomeLoan80EE, dr.HomeLoan80EEA = HomeLoanLegacyDeductions(p.Loans, rules, limits, log)

	if ev := p.Loans.ElectricVehicleLoan.NonNegative(); allowed(domain.Section80EEB, ev.IsPositive()) && ev.IsPositive() {
		dr.EVLoan80EEB = capAt(ev, limits.Section80EEB)
		log.Saving(domain.Section80EEB, "Electric vehicle loan interest", dr.EVLoan80EEB, decimalPtr(limits.Section80EEB),
			fmt.Sprintf("Interest %s, limited to %s", money.FormatRupees(ev), money.FormatRupees(limits.Section80EEB)),
			domain.CategoryExpenseBased)
	}

	dr.Interest80TT = InterestDeduction(p.OtherIncome, age, rules, limits, log)

	// Adjusted total income for 80GG and the donation qualifying limit.
	others := dr.sumBeforeIncomeLinked()
	adjusted := floor0(in.Income.Total.Sub(others))

	if rent := totalRent(p.RentPeriods); allowed(domain.Section80GG, rent.IsPositive() && !in.HRAReceived) {
		dr.Rent80GG = RentDeduction(rent, in.HRAReceived, adjusted, limits.Section80GG, log)
	}

	dr.Donations = CalculateDonations(p.Donations, cfg.Donations, rules, floor0(adjusted.Sub(dr.Rent80GG)), log)

	dr.Total = others.Add(dr.Rent80GG).Add(dr.Donations.Total)
	log.Note(domain.SectionSummary, "Total deductions", dr.Total, fmt.Sprintf("All deductions allowed under the %s", rules.Name))
	return dr
}

func (dr DeductionResult) sumBeforeIncomeLinked() decimal.Decimal {
	return decimal.Sum(dr.Standard, dr.ProfessionalTax, dr.Pool80C.Total, dr.NPS80CCD1B, dr.EmployerNPS,
		dr.HealthInsurance, dr.Disability80DD, dr.Disability80U, dr.Medical80DDB, dr.Education80E,
		dr.HomeLoan80EE, dr.HomeLoan80EEA, dr.EVLoan80EEB, dr.Interest80TT)
}

// StandardDeduction is the flat salary deduction, never more than salary itself
func StandardDeduction(salary, amount decimal.Decimal, log *CalculationLog) decimal.Decimal {
	std := capAt(salary, amount)
	log.Saving(domain.SectionStandardDed, "Standard deduction", std, decimalPtr(amount),
		fmt.Sprintf("Flat deduction of %s from salary income", money.FormatRupees(amount)),
		domain.CategoryNeutral)
	return std
}

// EmployerNPSDeduction allows the employer's NPS contribution up to the regime's
// share of basic salary
func EmployerNPSDeduction(jobs []domain.EmploymentPeriod, rules domain.RegimeRules, log *CalculationLog) decimal.Decimal {
	contribution, basic := decimal.Zero, decimal.Zero
	for _, j := range jobs {
		contribution = contribution.Add(j.EmployerNPSContribution.NonNegative())
		basic = basic.Add(j.BasicPlusDA.NonNegative())
	}
	if contribution.IsZero() {
		return decimal.Zero
	}
	if !rules.Allows(domain.Section80CCD2) {
		log.Note(domain.Section80CCD2, "Employer NPS contribution", decimal.Zero, fmt.Sprintf("Not available under the %s", rules.Name))
		return decimal.Zero
	}
	limit := basic.Mul(rules.EmployerNPSRate)
	allowed := capAt(contribution, limit)
	log.Saving(domain.Section80CCD2, "Employer NPS contribution", allowed, decimalPtr(limit),
		fmt.Sprintf("Contribution %s, limited to %s of basic salary", money.FormatRupees(contribution), pct(rules.EmployerNPSRate)),
		domain.CategoryWealthBuilding)
	return allowed
}

func healthClaimed(h domain.HealthInsurance) bool {
	return money.Sum(h.SelfFamilyPremium, h.ParentsPremium, h.PreventiveCheckup).IsPositive()
}

// HealthInsuranceDeduction applies the 80D caps. Preventive check-ups count
// within the self/family cap and within their own sub-limit.
func HealthInsuranceDeduction(h domain.HealthInsurance, age domain.AgeCategory, limits domain.HealthInsuranceLimits, log *CalculationLog) decimal.Decimal {
	total := decimal.Zero

	selfCap := limits.SelfFamily
	if age.IsSenior() {
		selfCap = limits.SelfFamilySenior
	}
	checkup := capAt(h.PreventiveCheckup.NonNegative(), limits.PreventiveCheckup)
	selfClaim := h.SelfFamilyPremium.NonNegative().Add(checkup)
	if selfClaim.IsPositive() {
		self := capAt(selfClaim, selfCap)
		total = total.Add(self)
		explanation := fmt.Sprintf("Premium %s", money.FormatRupees(h.SelfFamilyPremium.NonNegative()))
		if checkup.IsPositive() {
			explanation += fmt.Sprintf(" plus preventive check-up %s", money.FormatRupees(checkup))
		}
		log.Saving(domain.Section80D, "Health insurance: self and family", self, decimalPtr(selfCap),
			explanation+fmt.Sprintf(", limited to %s", money.FormatRupees(selfCap)), domain.CategoryExpenseBased)
	}

	parentsCap := limits.Parents
	if h.ParentsSenior {
		parentsCap = limits.ParentsSenior
	}
	if premium := h.ParentsPremium.NonNegative(); premium.IsPositive() {
		parents := capAt(premium, parentsCap)
		total = total.Add(parents)
		log.Saving(domain.Section80D, "Health insurance: parents", parents, decimalPtr(parentsCap),
			fmt.Sprintf("Premium %s, limited to %s", money.FormatRupees(premium), money.FormatRupees(parentsCap)),
			domain.CategoryExpenseBased)
	}
	return total
}

func disabilityDeduction(section, item, severity string, limits domain.DisabilityLimits, log *CalculationLog) decimal.Decimal {
	var amount decimal.Decimal
	switch severity {
	case domain.DisabilityNormal:
		amount = limits.Normal
	case domain.DisabilitySevere:
		amount = limits.Severe
	default:
		return decimal.Zero
	}
	log.Saving(section, item, amount, decimalPtr(amount),
		fmt.Sprintf("Flat deduction for %s disability", severity), domain.CategoryExpenseBased)
	return amount
}

// HomeLoanLegacyDeductions handles 80EE and 80EEA, which cannot both be claimed.
// When 80EE is non-zero the 80EEA claim is zeroed.
func HomeLoanLegacyDeductions(loans domain.LoanInterest, rules domain.RegimeRules, limits domain.DeductionLimits, log *CalculationLog) (ee, eea decimal.Decimal) {
	ee, eea = decimal.Zero, decimal.Zero
	eeClaim := loans.HomeLoanInterest80EE.NonNegative()
	eeaClaim := loans.HomeLoanInterest80EEA.NonNegative()

	if eeClaim.IsPositive() {
		if rules.Allows(domain.Section80EE) {
			ee = capAt(eeClaim, limits.Section80EE)
			log.Saving(domain.Section80EE, "First home loan interest", ee, decimalPtr(limits.Section80EE),
				fmt.Sprintf("Interest %s, limited to %s", money.FormatRupees(eeClaim), money.FormatRupees(limits.Section80EE)),
				domain.CategoryExpenseBased)
		} else {
			log.Note(domain.Section80EE, "First home loan interest", decimal.Zero, fmt.Sprintf("Not available under the %s", rules.Name))
		}
	}

	if eeaClaim.IsPositive() {
		switch {
		case !rules.Allows(domain.Section80EEA):
			log.Note(domain.Section80EEA, "Affordable housing loan interest", decimal.Zero, fmt.Sprintf("Not available under the %s", rules.Name))
		case ee.IsPositive():
			log.Note(domain.Section80EEA, "Affordable housing loan interest", decimal.Zero,
				"Cannot be claimed together with 80EE; the 80EE claim is kept")
		default:
			eea = capAt(eeaClaim, limits.Section80EEA)
			log.Saving(domain.Section80EEA, "Affordable housing loan interest", eea, decimalPtr(limits.Section80EEA),
				fmt.Sprintf("Interest %s, limited to %s", money.FormatRupees(eeaClaim), money.FormatRupees(limits.Section80EEA)),
				domain.CategoryExpenseBased)
		}
	}
	return ee, eea
}

// InterestDeduction applies 80TTA (savings interest, below 60) or 80TTB (all
// deposit interest, seniors)
func InterestDeduction(oi domain.OtherIncome, age domain.AgeCategory, rules domain.RegimeRules, limits domain.DeductionLimits, log *CalculationLog) decimal.Decimal {
	savings := oi.SavingsInterest.NonNegative()
	deposits := oi.DepositInterest.NonNegative()

	if age.IsSenior() {
		interest := savings.Add(deposits)
		if interest.IsZero() {
			return decimal.Zero
		}
		if !rules.Allows(domain.Section80TTB) {
			log.Note(domain.Section80TTB, "Interest income (senior citizen)", decimal.Zero, fmt.Sprintf("Not available under the %s", rules.Name))
			return decimal.Zero
		}
		d := capAt(interest, limits.Section80TTB)
		log.Saving(domain.Section80TTB, "Interest income (senior citizen)", d, decimalPtr(limits.Section80TTB),
			fmt.Sprintf("Savings and deposit interest %s, limited to %s", money.FormatRupees(interest), money.FormatRupees(limits.Section80TTB)),
			domain.CategoryWealthBuilding)
		return d
	}

	if savings.IsZero() {
		return decimal.Zero
	}
	if !rules.Allows(domain.Section80TTA) {
		log.Note(domain.Section80TTA, "Savings account interest", decimal.Zero, fmt.Sprintf("Not available under the %s", rules.Name))
		return decimal.Zero
	}
	d := capAt(savings, limits.Section80TTA)
	log.Saving(domain.Section80TTA, "Savings account interest", d, decimalPtr(limits.Section80TTA),
		fmt.Sprintf("Savings interest %s, limited to %s", money.FormatRupees(savings), money.FormatRupees(limits.Section80TTA)),
		domain.CategoryWealthBuilding)
	return d
}

// RentDeduction is 80GG for people who pay rent but receive no HRA:
// least(monthly cap x 12, share of adjusted income, rent less a share of adjusted income)
func RentDeduction(rent decimal.Decimal, hraReceived bool, adjustedIncome decimal.Decimal, limits domain.RentDeductionLimits, log *CalculationLog) decimal.Decimal {
	if rent.IsZero() {
		return decimal.Zero
	}
	if hraReceived {
		log.Note(domain.Section80GG, "Rent paid without HRA", decimal.Zero, "Not available when HRA is received from an employer")
		return decimal.Zero
	}
	annual := limits.Monthly.Mul(twelve)
	incomeLimit := adjustedIncome.Mul(limits.IncomeRate)
	excess := floor0(rent.Sub(adjustedIncome.Mul(limits.RentExcessRate)))
	d := floor0(least(annual, incomeLimit, excess))
	log.Saving(domain.Section80GG, "Rent paid without HRA", d, decimalPtr(annual),
		fmt.Sprintf("Least of %s, %s of adjusted income %s and rent %s less %s of adjusted income",
			money.FormatRupees(annual), pct(limits.IncomeRate), money.FormatRupees(adjustedIncome), money.FormatRupees(rent), pct(limits.RentExcessRate)),
		domain.CategoryExpenseBased)
	return d
}

func totalRent(rents []domain.RentPeriod) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rents {
		total = total.Add(r.Amount.NonNegative())
	}
	return total
}

// ReceivesHRA reports whether any employment period pays HRA
func ReceivesHRA(jobs []domain.EmploymentPeriod) bool {
	for _, j := range jobs {
		if j.HRAReceived.NonNegative().IsPositive() {
			return true
		}
	}
	return false
}
