package calculation

import (
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/pkg/money"
	"github.com/shopspring/decimal"
)

// TaxComputation is the income-tax part of a regime run, before capital gains
type TaxComputation struct {
	SlabTax         decimal.Decimal
	Rebate          decimal.Decimal
	TaxAfterRebate  decimal.Decimal
	MarginalRelief  decimal.Decimal
	TaxAfterRelief  decimal.Decimal
	SurchargeRate   decimal.Decimal
	Surcharge       decimal.Decimal
	SurchargeRelief decimal.Decimal
	Cess            decimal.Decimal
	Total           decimal.Decimal
}

// SlabTax applies progressive bracket rates to taxable income. Each bracket taxes
// the part of income within [Min, min(income, Max)).
func SlabTax(income decimal.Decimal, slabs []domain.Slab) decimal.Decimal {
	tax := decimal.Zero
	for _, s := range slabs {
		portion, ok := slabPortion(income, s)
		if !ok {
			break
		}
		tax = tax.Add(portion.Mul(s.Rate))
	}
	return tax
}

func slabPortion(income decimal.Decimal, s domain.Slab) (decimal.Decimal, bool) {
	if income.LessThanOrEqual(s.Min) {
		return decimal.Zero, false
	}
	upper := income
	if !s.Unbounded() {
		upper = decimal.Min(income, *s.Max)
	}
	return upper.Sub(s.Min), true
}

// slabTaxLogged is SlabTax with one log entry per taxed bracket. Zero-rate
// brackets consume income but are not logged.
func slabTaxLogged(income decimal.Decimal, slabs []domain.Slab, log *CalculationLog) decimal.Decimal {
	tax := decimal.Zero
	for _, s := range slabs {
		portion, ok := slabPortion(income, s)
		if !ok {
			break
		}
		if s.Rate.IsZero() {
			continue
		}
		slabTax := portion.Mul(s.Rate)
		tax = tax.Add(slabTax)

		bracket := money.FormatRupeesWhole(s.Min) + " and above"
		if !s.Unbounded() {
			bracket = fmt.Sprintf("%s to %s", money.FormatRupeesWhole(s.Min), money.FormatRupeesWhole(*s.Max))
		}
		log.Note(domain.SectionSlab, fmt.Sprintf("%s @ %s", bracket, pct(s.Rate)), slabTax,
			fmt.Sprintf("%s of income in this slab taxed at %s", money.FormatRupees(portion), pct(s.Rate)))
	}
	return tax
}

// CalculateRebate is a hard cliff: at or below the threshold the rebate is
// min(tax, cap), one rupee above it the rebate is zero.
func CalculateRebate(taxableIncome, tax decimal.Decimal, rule domain.RebateRule) decimal.Decimal {
	if taxableIncome.GreaterThan(rule.MaxIncome) {
		return decimal.Zero
	}
	return decimal.Min(floor0(tax), rule.MaxRebate)
}

// CalculateMarginalRelief caps tax inside (threshold, ceiling] at the income in
// excess of the rebate threshold
func CalculateMarginalRelief(taxableIncome, taxAfterRebate decimal.Decimal, rebate domain.RebateRule, rule domain.MarginalReliefRule) decimal.Decimal {
	if !rule.Enabled {
		return decimal.Zero
	}
	if taxableIncome.LessThanOrEqual(rebate.MaxIncome) || taxableIncome.GreaterThan(rule.Ceiling) {
		return decimal.Zero
	}
	excess := taxableIncome.Sub(rebate.MaxIncome)
	if taxAfterRebate.GreaterThan(excess) {
		return taxAfterRebate.Sub(excess)
	}
	return decimal.Zero
}

// taxBeforeSurcharge is slab tax less rebate and marginal relief for an income
func taxBeforeSurcharge(income decimal.Decimal, rules domain.RegimeRules, age domain.AgeCategory) decimal.Decimal {
	tax := SlabTax(income, rules.SlabsFor(age))
	tax = tax.Sub(CalculateRebate(income, tax, rules.Rebate))
	tax = tax.Sub(CalculateMarginalRelief(income, tax, rules.Rebate, rules.MarginalRelief))
	return floor0(tax)
}

// surchargeTier finds the highest tier whose threshold income exceeds. It returns
// the tier index (-1 when none applies).
func surchargeTier(income decimal.Decimal, tiers []domain.SurchargeTier) int {
	idx := -1
	for i, t := range tiers {
		if income.GreaterThan(t.Threshold) {
			idx = i
		}
	}
	return idx
}

// CalculateSurcharge applies the tier rate to tax and then grants marginal relief
// so that tax plus surcharge never rises by more than the income above the tier
// threshold. taxAt must return the pre-surcharge tax for any income.
func CalculateSurcharge(income, tax decimal.Decimal, tiers []domain.SurchargeTier, taxAt func(decimal.Decimal) decimal.Decimal) (rate, surcharge, relief decimal.Decimal) {
	idx := surchargeTier(income, tiers)
	if idx < 0 || !tax.IsPositive() {
		return decimal.Zero, decimal.Zero, decimal.Zero
	}
	tier := tiers[idx]
	rate = tier.Rate
	surcharge = tax.Mul(rate)

	prevRate := decimal.Zero
	if idx > 0 {
		prevRate = tiers[idx-1].Rate
	}
	one := decimal.NewFromInt(1)
	atThreshold := taxAt(tier.Threshold).Mul(one.Add(prevRate)).Add(income.Sub(tier.Threshold))
	over := tax.Add(surcharge).Sub(atThreshold)
	if over.IsPositive() {
		relief = decimal.Min(over, surcharge)
	} else {
		relief = decimal.Zero
	}
	return rate, surcharge, relief
}

// CalculateCess is a flat percentage of tax plus surcharge
func CalculateCess(taxPlusSurcharge, rate decimal.Decimal) decimal.Decimal {
	return floor0(taxPlusSurcharge).Mul(rate)
}

// ComputeIncomeTax runs slab tax, rebate, marginal relief, surcharge and cess in
// that order, logging each stage
func ComputeIncomeTax(taxableIncome decimal.Decimal, rules domain.RegimeRules, age domain.AgeCategory, cessRate decimal.Decimal, log *CalculationLog) TaxComputation {
	var tc TaxComputation
	taxableIncome = floor0(taxableIncome)

	tc.SlabTax = slabTaxLogged(taxableIncome, rules.SlabsFor(age), log)
	log.Note(domain.SectionSlab, "Total slab tax", tc.SlabTax,
		fmt.Sprintf("Progressive %s slabs applied to taxable income of %s", rules.Name, money.FormatRupees(taxableIncome)))

	tc.Rebate = CalculateRebate(taxableIncome, tc.SlabTax, rules.Rebate)
	if tc.Rebate.IsPositive() {
		log.Saving(domain.SectionRebate, "Rebate u/s 87A", tc.Rebate, decimalPtr(rules.Rebate.MaxRebate),
			fmt.Sprintf("Taxable income %s is within the %s rebate threshold", money.FormatRupees(taxableIncome), money.FormatRupees(rules.Rebate.MaxIncome)),
			domain.CategoryNeutral)
	} else if tc.SlabTax.IsPositive() {
		log.Note(domain.SectionRebate, "Rebate u/s 87A", decimal.Zero,
			fmt.Sprintf("Not available: taxable income exceeds %s", money.FormatRupees(rules.Rebate.MaxIncome)))
	}
	tc.TaxAfterRebate = floor0(tc.SlabTax.Sub(tc.Rebate))

	tc.MarginalRelief = CalculateMarginalRelief(taxableIncome, tc.TaxAfterRebate, rules.Rebate, rules.MarginalRelief)
	if tc.MarginalRelief.IsPositive() {
		log.Saving(domain.SectionMarginalRelief, "Marginal relief near rebate threshold", tc.MarginalRelief, nil,
			fmt.Sprintf("Tax limited to the %s by which income exceeds %s",
				money.FormatRupees(taxableIncome.Sub(rules.Rebate.MaxIncome)), money.FormatRupees(rules.Rebate.MaxIncome)),
			domain.CategoryNeutral)
	}
	tc.TaxAfterRelief = floor0(tc.TaxAfterRebate.Sub(tc.MarginalRelief))

	taxAt := func(income decimal.Decimal) decimal.Decimal { return taxBeforeSurcharge(income, rules, age) }
	tc.SurchargeRate, tc.Surcharge, tc.SurchargeRelief = CalculateSurcharge(taxableIncome, tc.TaxAfterRelief, rules.Surcharge, taxAt)
	if tc.Surcharge.IsPositive() {
		log.Note(domain.SectionSurcharge, fmt.Sprintf("Surcharge @ %s", pct(tc.SurchargeRate)), tc.Surcharge,
			fmt.Sprintf("Taxable income %s falls in the %s surcharge band", money.FormatRupees(taxableIncome), pct(tc.SurchargeRate)))
	}
	if tc.SurchargeRelief.IsPositive() {
		log.Saving(domain.SectionSurcharge, "Marginal relief on surcharge", tc.SurchargeRelief, decimalPtr(tc.Surcharge),
			"Tax plus surcharge limited to tax at the band threshold plus the income above it",
			domain.CategoryNeutral)
	}
	netSurcharge := tc.Surcharge.Sub(tc.SurchargeRelief)

	tc.Cess = CalculateCess(tc.TaxAfterRelief.Add(netSurcharge), cessRate)
	if tc.Cess.IsPositive() {
		log.Note(domain.SectionCess, fmt.Sprintf("Health & education cess @ %s", pct(cessRate)), tc.Cess,
			fmt.Sprintf("%s of tax plus surcharge", pct(cessRate)))
	}

	tc.Total = floor0(tc.TaxAfterRelief.Add(netSurcharge).Add(tc.Cess))
	return tc
}
