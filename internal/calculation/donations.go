package calculation

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/pkg/money"
	"github.com/shopspring/decimal"
)

// DonationOutcome is how one donation was treated
type DonationOutcome struct {
	ID        string
	Category  string
	Section   string
	Amount    decimal.Decimal
	Eligible  decimal.Decimal
	Deduction decimal.Decimal
	Excluded  bool
	Reason    string
}

// DonationResult is the 80G/80GGA/80GGC outcome
type DonationResult struct {
	Outcomes        []DonationOutcome
	Unlimited       decimal.Decimal
	QualifyingLimit decimal.Decimal
	Limited         decimal.Decimal
	Total           decimal.Decimal
}

// CalculateDonations deducts donations category by category. No-limit categories
// are deducted at their rate directly. Limited categories are pooled and the pool
// is held to the qualifying share of adjusted income before the rates apply;
// 100% categories absorb the limit before 50% ones. Cash donations above the cash
// limit, and any cash donation to a category that forbids cash, are excluded
// entirely.
func CalculateDonations(donations []domain.Donation, rules domain.DonationRules, regime domain.RegimeRules, adjustedIncome decimal.Decimal, log *CalculationLog) DonationResult {
	res := DonationResult{QualifyingLimit: floor0(adjustedIncome).Mul(rules.QualifyingLimitRate)}

	type pending struct {
		idx  int
		cat  domain.DonationCategory
		name string
	}
	var limited []pending

	for _, d := range donations {
		out := DonationOutcome{ID: d.ID, Category: d.Category, Amount: d.Amount.NonNegative()}
		if out.Amount.IsZero() {
			continue
		}
		label := donationLabel(d)
		cat, ok := rules.Categories[d.Category]
		switch {
		case !ok:
			out.Excluded, out.Reason = true, fmt.Sprintf("Unknown donation category %q", d.Category)
		case !regime.Allows(cat.Section):
			out.Section = cat.Section
			out.Excluded, out.Reason = true, fmt.Sprintf("Section %s is not available under the %s", cat.Section, regime.Name)
		case d.IsCash() && cat.CashDisallowed:
			out.Section = cat.Section
			out.Excluded, out.Reason = true, "Cash contributions to this category are not deductible"
		case d.IsCash() && out.Amount.GreaterThan(rules.CashLimit):
			out.Section = cat.Section
			out.Excluded, out.Reason = true, fmt.Sprintf("Cash donation of %s exceeds the %s cash limit and is disallowed entirely",
				money.FormatRupees(out.Amount), money.FormatRupees(rules.CashLimit))
		}
		if out.Excluded {
			section := out.Section
			if section == "" {
				section = domain.Section80G
			}
			log.Append(domain.LogEntry{
				Section:     section,
				Item:        label,
				Amount:      decimal.Zero,
				Explanation: out.Reason,
				Category:    domain.CategoryDonation,
			})
			res.Outcomes = append(res.Outcomes, out)
			continue
		}

		out.Section = cat.Section
		res.Outcomes = append(res.Outcomes, out)
		if cat.QualifyingLimit {
			limited = append(limited, pending{idx: len(res.Outcomes) - 1, cat: cat, name: label})
			continue
		}

		o := &res.Outcomes[len(res.Outcomes)-1]
		o.Eligible = o.Amount
		o.Deduction = o.Amount.Mul(cat.Rate)
		res.Unlimited = res.Unlimited.Add(o.Deduction)
		log.Saving(cat.Section, label, o.Deduction, nil,
			fmt.Sprintf("%s of %s deductible without qualifying limit", pct(cat.Rate), money.FormatRupees(o.Amount)),
			domain.CategoryDonation)
	}

	if len(limited) > 0 {
		sort.SliceStable(limited, func(i, j int) bool { return limited[i].cat.Rate.GreaterThan(limited[j].cat.Rate) })
		remaining := res.QualifyingLimit
		pooled := decimal.Zero
		for _, l := range limited {
			o := &res.Outcomes[l.idx]
			pooled = pooled.Add(o.Amount)
			o.Eligible = decimal.Min(o.Amount, remaining)
			remaining = remaining.Sub(o.Eligible)
			o.Deduction = o.Eligible.Mul(l.cat.Rate)
			res.Limited = res.Limited.Add(o.Deduction)

			explanation := fmt.Sprintf("%s of %s eligible within the qualifying limit", pct(l.cat.Rate), money.FormatRupees(o.Eligible))
			if o.Eligible.LessThan(o.Amount) {
				explanation += fmt.Sprintf("; %s exceeds the limit", money.FormatRupees(o.Amount.Sub(o.Eligible)))
			}
			log.Saving(o.Section, l.name, o.Deduction, decimalPtr(res.QualifyingLimit), explanation, domain.CategoryDonation)
		}
		log.Note(domain.Section80G, "Qualifying limit for donations", res.QualifyingLimit,
			fmt.Sprintf("%s of adjusted total income %s; pooled donations %s", pct(rules.QualifyingLimitRate),
				money.FormatRupees(adjustedIncome), money.FormatRupees(pooled)))
	}

	res.Total = res.Unlimited.Add(res.Limited)
	return res
}

func donationLabel(d domain.Donation) string {
	label := "Donation: " + d.Category
	if d.Recipient != "" {
		label = "Donation: " + d.Recipient
	}
	if d.IsCash() {
		label += " (cash)"
	}
	return label
}

// KnownDonationCategory reports whether the configuration defines category
func KnownDonationCategory(rules domain.DonationRules, category string) bool {
	_, ok := rules.Categories[category]
	return ok
}
