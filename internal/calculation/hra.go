package calculation

import (
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/pkg/money"
	"github.com/shopspring/decimal"
)

// HRAResult is the annual HRA exemption with its month-by-month working
type HRAResult struct {
	Exemption decimal.Decimal
	Months    []domain.HRAMonth
}

// CalculateHRA matches salary and rent month by month across the fiscal year.
// For every month with at least one active job and an active tenancy, the exempt
// amount is the least of HRA received, the metro/non-metro share of basic, and rent
// less a share of basic. Period totals are spread evenly over each period's own
// length; simultaneous jobs are summed and the first active tenancy supplies rent.
func CalculateHRA(fy domain.FiscalYear, jobs []domain.EmploymentPeriod, rents []domain.RentPeriod, rule domain.HRARule, log *CalculationLog) HRAResult {
	result := HRAResult{Exemption: decimal.Zero}

	totalRent, totalHRA := decimal.Zero, decimal.Zero
	for _, r := range rents {
		totalRent = totalRent.Add(r.Amount.NonNegative())
	}
	for _, j := range jobs {
		totalHRA = totalHRA.Add(j.HRAReceived.NonNegative())
	}
	if totalRent.IsZero() {
		log.Note(domain.SectionHRA, "HRA exemption", decimal.Zero, "No rent paid during the year, so no HRA exemption")
		return result
	}
	if totalHRA.IsZero() {
		log.Note(domain.SectionHRA, "HRA exemption", decimal.Zero, "No HRA received from any employer, so no HRA exemption")
		return result
	}

	for _, month := range fy.Months() {
		var active []domain.EmploymentPeriod
		for _, j := range jobs {
			if j.Contains(fy, month) {
				active = append(active, j)
			}
		}
		rent, ok := activeRent(fy, rents, month)
		if len(active) == 0 || !ok {
			continue
		}

		m := domain.HRAMonth{Month: month, RentPeriodID: rent.ID, Metro: rent.IsMetro}
		for _, j := range active {
			months := decimal.NewFromInt(int64(j.DurationMonths(fy)))
			m.Basic = m.Basic.Add(j.BasicPlusDA.NonNegative().Div(months))
			m.HRAReceived = m.HRAReceived.Add(j.HRAReceived.NonNegative().Div(months))
			m.EmployerIDs = append(m.EmployerIDs, j.ID)
		}
		m.RentPaid = rent.Amount.NonNegative().Div(decimal.NewFromInt(int64(rent.DurationMonths(fy))))

		rate := rule.NonMetroRate
		if rent.IsMetro {
			rate = rule.MetroRate
		}
		m.SalaryLimit = m.Basic.Mul(rate)
		m.RentLimit = floor0(m.RentPaid.Sub(m.Basic.Mul(rule.RentExcessRate)))
		m.Exempt = floor0(least(m.HRAReceived, m.SalaryLimit, m.RentLimit))

		result.Exemption = result.Exemption.Add(m.Exempt)
		result.Months = append(result.Months, m)
	}

	months := len(result.Months)
	log.Saving(domain.SectionHRA, "HRA exemption", result.Exemption, nil,
		fmt.Sprintf("Least of HRA received, %s/%s of basic and rent over %s of basic, summed over %d month(s) with both salary and rent",
			pct(rule.MetroRate), pct(rule.NonMetroRate), pct(rule.RentExcessRate), months),
		domain.CategoryExpenseBased)
	return result
}

// activeRent returns the first tenancy covering month
func activeRent(fy domain.FiscalYear, rents []domain.RentPeriod, month domain.YearMonth) (domain.RentPeriod, bool) {
	for _, r := range rents {
		if r.Contains(fy, month) {
			return r, true
		}
	}
	return domain.RentPeriod{}, false
}

// describeHRAMonth renders one month of the breakdown for reports
func describeHRAMonth(m domain.HRAMonth) string {
	return fmt.Sprintf("%s: basic %s, HRA %s, rent %s -> exempt %s",
		m.Month, money.FormatRupees(m.Basic), money.FormatRupees(m.HRAReceived), money.FormatRupees(m.RentPaid), money.FormatRupees(m.Exempt))
}
