package calculation

import (
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/pkg/money"
	"github.com/shopspring/decimal"
)

// CalculateCapitalGains computes special-rate capital gains tax. The result does
// not depend on the regime, so callers may compute it once and share it.
//
// Losses are set off in a fixed order: short-term loss against short-term gain,
// remaining short-term loss against long-term gain, then long-term loss against
// what is left of long-term gain. Within each step equity gains are absorbed
// before the property gain. Long-term loss never touches short-term gain.
func CalculateCapitalGains(in domain.CapitalGainsInput, rules domain.CapitalGainsRules, log *CalculationLog) domain.CapitalGainsResult {
	var r domain.CapitalGainsResult

	var prop *domain.PropertyGainResult
	propertySTLoss, propertyLTLoss := decimal.Zero, decimal.Zero
	propertySTGain := decimal.Zero
	if in.Property != nil {
		pr, warnings := propertyGain(*in.Property, rules, log)
		prop = &pr
		r.Warnings = append(r.Warnings, warnings...)
		if pr.RawGain.IsNegative() {
			if pr.LongTerm {
				propertyLTLoss = pr.RawGain.Neg()
			} else {
				propertySTLoss = pr.RawGain.Neg()
			}
		}
		propertySTGain = pr.ShortTermGain
	}

	stcg := in.STCGEquity.Decimal
	ltcg := in.LTCGEquity.Decimal
	equityST := floor0(stcg)
	equityLT := floor0(ltcg)
	r.STLossAvailable = in.STCLCarryForward.NonNegative().Add(floor0(stcg.Neg())).Add(propertySTLoss)
	r.LTLossAvailable = in.LTCLCarryForward.NonNegative().Add(floor0(ltcg.Neg())).Add(propertyLTLoss)

	stAgainstEquityST := decimal.Min(r.STLossAvailable, equityST)
	stLeft := r.STLossAvailable.Sub(stAgainstEquityST)
	stAgainstPropertyST := decimal.Min(stLeft, propertySTGain)
	stLeft = stLeft.Sub(stAgainstPropertyST)

	stAgainstEquityLT := decimal.Min(stLeft, equityLT)
	stLeft = stLeft.Sub(stAgainstEquityLT)
	equityLTLeft := equityLT.Sub(stAgainstEquityLT)
	ltAgainstEquityLT := decimal.Min(r.LTLossAvailable, equityLTLeft)
	ltLeft := r.LTLossAvailable.Sub(ltAgainstEquityLT)

	propertyLTGain := decimal.Zero
	stAgainstPropertyLT, ltAgainstPropertyLT := decimal.Zero, decimal.Zero
	if prop != nil {
		if prop.LongTerm {
			stAgainstPropertyLT, ltAgainstPropertyLT = settlePropertyGain(prop, stLeft, ltLeft, rules, log)
			propertyLTGain = prop.TaxableGain.Add(prop.LossSetOff)
		} else {
			prop.LossSetOff = stAgainstPropertyST
		}
		r.Property = prop
	}
	stLeft = stLeft.Sub(stAgainstPropertyLT)
	ltLeft = ltLeft.Sub(ltAgainstPropertyLT)

	r.STGain = equityST.Add(propertySTGain)
	r.LTGain = equityLT.Add(propertyLTGain)
	r.STLossAgainstST = stAgainstEquityST.Add(stAgainstPropertyST)
	r.STLossAgainstLT = stAgainstEquityLT.Add(stAgainstPropertyLT)
	r.LTLossAgainstLT = ltAgainstEquityLT.Add(ltAgainstPropertyLT)
	r.UnabsorbedSTLoss = stLeft
	r.UnabsorbedLTLoss = ltLeft
	r.SlabRatedGain = propertySTGain.Sub(stAgainstPropertyST)

	if r.STLossAgainstST.IsPositive() {
		log.Note(domain.SectionLossSetOff, "Short-term loss against short-term gain", r.STLossAgainstST,
			fmt.Sprintf("%s of %s short-term loss absorbed", money.FormatRupees(r.STLossAgainstST), money.FormatRupees(r.STLossAvailable)))
	}
	if r.STLossAgainstLT.IsPositive() {
		log.Note(domain.SectionLossSetOff, "Short-term loss against long-term gain", r.STLossAgainstLT,
			"Short-term loss left after short-term gains is set off against long-term gains")
	}
	if r.LTLossAgainstLT.IsPositive() {
		log.Note(domain.SectionLossSetOff, "Long-term loss against long-term gain", r.LTLossAgainstLT,
			fmt.Sprintf("%s of %s long-term loss absorbed", money.FormatRupees(r.LTLossAgainstLT), money.FormatRupees(r.LTLossAvailable)))
	}
	if r.UnabsorbedSTLoss.IsPositive() || r.UnabsorbedLTLoss.IsPositive() {
		log.Note(domain.SectionLossSetOff, "Losses carried forward", r.UnabsorbedSTLoss.Add(r.UnabsorbedLTLoss),
			fmt.Sprintf("Short-term %s and long-term %s remain for future years",
				money.FormatRupees(r.UnabsorbedSTLoss), money.FormatRupees(r.UnabsorbedLTLoss)))
	}

	r.TaxableSTCG = equityST.Sub(stAgainstEquityST)
	r.STCGTax = r.TaxableSTCG.Mul(rules.STCGEquityRate)
	if r.TaxableSTCG.IsPositive() {
		log.Note(domain.SectionSTCG, "Short-term equity gains", r.STCGTax,
			fmt.Sprintf("%s taxed at %s", money.FormatRupees(r.TaxableSTCG), pct(rules.STCGEquityRate)))
	}

	r.LTCGAfterSetOff = equityLTLeft.Sub(ltAgainstEquityLT)
	r.LTCGExemptionUsed = decimal.Min(r.LTCGAfterSetOff, rules.LTCGEquityExemption)
	r.TaxableLTCG = r.LTCGAfterSetOff.Sub(r.LTCGExemptionUsed)
	r.LTCGTax = r.TaxableLTCG.Mul(rules.LTCGEquityRate)
	if r.LTCGExemptionUsed.IsPositive() {
		log.Append(domain.LogEntry{
			Section:     domain.SectionLTCG,
			Item:        "Long-term equity gains exemption",
			Amount:      r.LTCGExemptionUsed,
			Cap:         decimalPtr(rules.LTCGEquityExemption),
			Explanation: fmt.Sprintf("First %s of long-term equity gains is exempt", money.FormatRupees(rules.LTCGEquityExemption)),
			TaxSaved:    decimalPtr(r.LTCGExemptionUsed.Mul(rules.LTCGEquityRate)),
			Category:    domain.CategoryWealthBuilding,
		})
	}
	if r.TaxableLTCG.IsPositive() {
		log.Note(domain.SectionLTCG, "Long-term equity gains", r.LTCGTax,
			fmt.Sprintf("%s above the exemption taxed at %s", money.FormatRupees(r.TaxableLTCG), pct(rules.LTCGEquityRate)))
	}

	r.TotalTaxableGains = r.TaxableSTCG.Add(r.TaxableLTCG)
	r.Tax = r.STCGTax.Add(r.LTCGTax)
	if r.Property != nil {
		r.TotalTaxableGains = r.TotalTaxableGains.Add(r.Property.TaxableGain)
		r.Tax = r.Tax.Add(r.Property.Tax)
	}
	return r
}

// PropertyGain works out the gain on a real estate sale. A long-term sale is taxed
// at the flat rate without indexation; when the property was acquired before the
// grandfathering cutoff the indexed computation is also run and the lower tax wins
// (the flat method on a tie). A short-term gain is returned in ShortTermGain for
// taxation at slab rates.
func PropertyGain(sale domain.PropertySale, rules domain.CapitalGainsRules, log *CalculationLog) (domain.PropertyGainResult, []string) {
	pr, warnings := propertyGain(sale, rules, log)
	if pr.LongTerm {
		settlePropertyGain(&pr, decimal.Zero, decimal.Zero, rules, log)
	}
	return pr, warnings
}

// propertyGain computes the gains of both methods before any loss set-off
func propertyGain(sale domain.PropertySale, rules domain.CapitalGainsRules, log *CalculationLog) (domain.PropertyGainResult, []string) {
	var pr domain.PropertyGainResult
	var warnings []string

	price := sale.SalePrice.NonNegative()
	cost := sale.PurchasePrice.NonNegative()
	improvement := sale.ImprovementCost.NonNegative()
	expenses := sale.TransferExpenses.NonNegative()

	datesKnown := !sale.AcquisitionDate.IsZero() && !sale.SaleDate.IsZero()
	if datesKnown {
		pr.HoldingMonths = domain.MonthsBetween(sale.AcquisitionDate.Time, sale.SaleDate.Time)
		pr.LongTerm = pr.HoldingMonths >= rules.LongTermHoldingMonths
	} else {
		pr.LongTerm = true
		warnings = append(warnings, "Property acquisition or sale date missing; treated as long-term without indexation")
	}

	pr.RawGain = price.Sub(cost).Sub(improvement).Sub(expenses)
	log.Note(domain.SectionPropertyLTCG, "Gain on property sale", pr.RawGain,
		fmt.Sprintf("Sale %s less cost %s, improvement %s and transfer expenses %s",
			money.FormatRupees(price), money.FormatRupees(cost), money.FormatRupees(improvement), money.FormatRupees(expenses)))

	if !pr.LongTerm {
		pr.ShortTermGain = floor0(pr.RawGain)
		if pr.ShortTermGain.IsPositive() {
			warnings = append(warnings, fmt.Sprintf("Property held %d months is short-term; gain of %s is taxed at slab rates",
				pr.HoldingMonths, money.FormatRupees(pr.ShortTermGain)))
		}
		return pr, warnings
	}

	ec := sale.Exemption54EC.NonNegative()
	if ec.GreaterThan(rules.Section54ECLimit) {
		warnings = append(warnings, fmt.Sprintf("Section 54EC investment limited to %s", money.FormatRupees(rules.Section54ECLimit)))
		ec = rules.Section54ECLimit
	}
	pr.Exemptions = sale.Exemption54.NonNegative().Add(ec).Add(sale.Exemption54F.NonNegative())
	if pr.Exemptions.IsPositive() && pr.RawGain.IsPositive() {
		log.Saving(domain.SectionReinvestment, "Reinvestment exemptions", decimal.Min(pr.Exemptions, pr.RawGain), nil,
			"Gain reinvested in a house or specified bonds", domain.CategoryWealthBuilding)
	}

	pr.FlatGain = floor0(pr.RawGain.Sub(pr.Exemptions))

	cutoff := rules.GrandfatheringCutoff
	pr.Grandfathered = datesKnown && !cutoff.IsZero() && sale.AcquisitionDate.Before(cutoff.Time)
	if !pr.Grandfathered {
		return pr, warnings
	}

	saleIndex, ok := rules.IndexFor(domain.FiscalYearLabel(sale.SaleDate.Time))
	if !ok {
		warnings = append(warnings, fmt.Sprintf("No cost inflation index for %s; using the earliest index", domain.FiscalYearLabel(sale.SaleDate.Time)))
	}
	acqIndex, ok := rules.IndexFor(domain.FiscalYearLabel(sale.AcquisitionDate.Time))
	if !ok {
		warnings = append(warnings, fmt.Sprintf("No cost inflation index for %s; using the earliest index", domain.FiscalYearLabel(sale.AcquisitionDate.Time)))
	}
	pr.SaleIndex, pr.AcquisitionIndex = saleIndex, acqIndex

	improvementDate := sale.ImprovementDate
	if improvementDate.IsZero() {
		improvementDate = sale.AcquisitionDate
	}
	impIndex, _ := rules.IndexFor(domain.FiscalYearLabel(improvementDate.Time))

	pr.IndexedCost = indexCost(cost, saleIndex, acqIndex).Add(indexCost(improvement, saleIndex, impIndex))
	pr.IndexedGain = floor0(price.Sub(pr.IndexedCost).Sub(expenses).Sub(pr.Exemptions))
	return pr, warnings
}

// settlePropertyGain sets the leftover short-term and long-term losses off against
// a long-term property gain, then picks the method with the lower tax. It returns
// the short-term and long-term loss absorbed, short-term first.
func settlePropertyGain(pr *domain.PropertyGainResult, stLoss, ltLoss decimal.Decimal, rules domain.CapitalGainsRules, log *CalculationLog) (decimal.Decimal, decimal.Decimal) {
	pool := stLoss.Add(ltLoss)

	flatSetOff := decimal.Min(pool, pr.FlatGain)
	flatTaxable := pr.FlatGain.Sub(flatSetOff)
	pr.FlatTax = flatTaxable.Mul(rules.PropertyFlatRate)
	pr.Method = domain.MethodFlat
	pr.LossSetOff = flatSetOff
	pr.TaxableGain = flatTaxable
	pr.Tax = pr.FlatTax

	setOffNote := ""
	if pool.IsPositive() {
		setOffNote = fmt.Sprintf(" after %s of losses", money.FormatRupees(flatSetOff))
	}

	if !pr.Grandfathered {
		log.Note(domain.SectionPropertyLTCG, "Long-term property gain (flat rate)", pr.FlatTax,
			fmt.Sprintf("%s%s taxed at %s without indexation", money.FormatRupees(flatTaxable), setOffNote, pct(rules.PropertyFlatRate)))
	} else {
		indexedSetOff := decimal.Min(pool, pr.IndexedGain)
		indexedTaxable := pr.IndexedGain.Sub(indexedSetOff)
		pr.IndexedTax = indexedTaxable.Mul(rules.PropertyIndexedRate)

		if pr.IndexedTax.LessThan(pr.FlatTax) {
			pr.Method = domain.MethodIndexed
			pr.LossSetOff = indexedSetOff
			pr.TaxableGain = indexedTaxable
			pr.Tax = pr.IndexedTax
		}
		log.Append(domain.LogEntry{
			Section: domain.SectionPropertyLTCG,
			Item:    "Long-term property gain (grandfathered)",
			Amount:  pr.Tax,
			Explanation: fmt.Sprintf("Flat %s on %s = %s; indexed %s on %s (CII %d/%d) = %s; lower tax chosen",
				pct(rules.PropertyFlatRate), money.FormatRupees(flatTaxable), money.FormatRupees(pr.FlatTax),
				pct(rules.PropertyIndexedRate), money.FormatRupees(indexedTaxable), pr.SaleIndex, pr.AcquisitionIndex, money.FormatRupees(pr.IndexedTax)),
			TaxSaved: decimalPtr(pr.FlatTax.Sub(pr.Tax)),
			Category: domain.CategoryNeutral,
		})
	}

	stUsed := decimal.Min(stLoss, pr.LossSetOff)
	return stUsed, pr.LossSetOff.Sub(stUsed)
}

func indexCost(cost decimal.Decimal, saleIndex, acqIndex int) decimal.Decimal {
	if cost.IsZero() || acqIndex <= 0 {
		return cost
	}
	return cost.Mul(decimal.NewFromInt(int64(saleIndex))).Div(decimal.NewFromInt(int64(acqIndex)))
}
