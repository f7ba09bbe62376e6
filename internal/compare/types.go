package compare

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/pkg/money"
	"github.com/shopspring/decimal"
)

// ComparisonResult holds the headline figures of one regime run
type ComparisonResult struct {
	Regime     domain.Regime        `json:"regime"`
	RegimeName string               `json:"regimeName"`
	Result     *domain.RegimeResult `json:"-"`

	// Key Metrics
	GrossIncome     decimal.Decimal `json:"grossIncome"`
	Exemptions      decimal.Decimal `json:"exemptions"`
	Deductions      decimal.Decimal `json:"deductions"`
	TaxableIncome   decimal.Decimal `json:"taxableIncome"`
	CapitalGainsTax decimal.Decimal `json:"capitalGainsTax"`
	FinalTax        decimal.Decimal `json:"finalTax"`
	EffectiveRate   decimal.Decimal `json:"effectiveRate"`
	BalanceDue      decimal.Decimal `json:"balanceDue"`
	TaxSaved        decimal.Decimal `json:"taxSaved"`

	SavingsByCategory map[domain.LogCategory]decimal.Decimal `json:"savingsByCategory"`

	// Comparison to the other regime (positive means this regime costs more)
	TaxDiffFromOther decimal.Decimal `json:"taxDiffFromOther"`
}

// ComparisonSet is the side-by-side outcome of both regimes for one profile
type ComparisonSet struct {
	ProfileName     string            `json:"profileName"`
	FiscalYear      string            `json:"fiscalYear"`
	Old             *ComparisonResult `json:"old"`
	New             *ComparisonResult `json:"new"`
	Recommended     domain.Regime     `json:"recommended"`
	Savings         decimal.Decimal   `json:"savings"`
	TopSavings      []domain.LogEntry `json:"topSavings"`
	Warnings        []string          `json:"warnings"`
	HardBlocks      []string          `json:"hardBlocks"`
	Recommendations []string          `json:"recommendations"`
	ConfigPath      string            `json:"configPath,omitempty"`
}

// Results returns both comparison results in display order
func (cs *ComparisonSet) Results() []*ComparisonResult {
	return []*ComparisonResult{cs.Old, cs.New}
}

// ResultFor returns the comparison result of a regime, or nil
func (cs *ComparisonSet) ResultFor(r domain.Regime) *ComparisonResult {
	switch r {
	case domain.RegimeOld:
		return cs.Old
	case domain.RegimeNew:
		return cs.New
	}
	return nil
}

// MetricsCalculator extracts comparison metrics from regime results
type MetricsCalculator struct {
	// TopN limits how many log entries are reported as top savings
	TopN int
}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{TopN: 5}
}

// CalculateMetrics computes the comparison metrics of one regime result
func (mc *MetricsCalculator) CalculateMetrics(r *domain.RegimeResult) ComparisonResult {
	result := ComparisonResult{
		Regime:            r.Regime,
		RegimeName:        r.Regime.Title(),
		Result:            r,
		GrossIncome:       r.GrossIncome,
		Exemptions:        r.Exemptions,
		Deductions:        r.Deductions,
		TaxableIncome:     r.TaxableIncome,
		CapitalGainsTax:   r.CapitalGainsTax,
		FinalTax:          r.FinalTax,
		EffectiveRate:     r.EffectiveRate,
		BalanceDue:        r.BalanceDue,
		TaxSaved:          r.TotalTaxSaved(),
		SavingsByCategory: make(map[domain.LogCategory]decimal.Decimal),
	}

	for _, e := range r.Log {
		if e.TaxSaved == nil || !e.TaxSaved.IsPositive() {
			continue
		}
		result.SavingsByCategory[e.Category] = result.SavingsByCategory[e.Category].Add(*e.TaxSaved)
	}

	return result
}

// CalculateComparison fills in the difference of a result against the other regime
func (mc *MetricsCalculator) CalculateComparison(result, other ComparisonResult) ComparisonResult {
	result.TaxDiffFromOther = result.FinalTax.Sub(other.FinalTax)
	return result
}

// TopSavings returns the log entries with the largest positive tax-saved estimates.
// Ties keep log order.
func (mc *MetricsCalculator) TopSavings(r *domain.RegimeResult) []domain.LogEntry {
	var entries []domain.LogEntry
	for _, e := range r.Log {
		if e.TaxSaved != nil && e.TaxSaved.IsPositive() {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TaxSaved.GreaterThan(*entries[j].TaxSaved)
	})
	if mc.TopN > 0 && len(entries) > mc.TopN {
		entries = entries[:mc.TopN]
	}
	return entries
}

// GenerateRecommendations produces plain-language guidance from a comparison
func GenerateRecommendations(compSet *ComparisonSet) []string {
	var recommendations []string
	if compSet.Old == nil || compSet.New == nil {
		return recommendations
	}

	chosen := compSet.ResultFor(compSet.Recommended)
	other := compSet.New
	if compSet.Recommended == domain.RegimeNew {
		other = compSet.Old
	}

	if compSet.Savings.IsZero() {
		recommendations = append(recommendations, fmt.Sprintf(
			"Both regimes produce the same tax of %s; the %s applies by default",
			money.FormatRupees(chosen.FinalTax), domain.RegimeNew.Title()))
	} else {
		recommendations = append(recommendations, fmt.Sprintf(
			"Choose the %s: it costs %s less than the %s",
			chosen.RegimeName, money.FormatRupees(compSet.Savings), other.RegimeName))
	}

	claimed := compSet.Old.Exemptions.Add(compSet.Old.Deductions)
	if claimed.IsPositive() {
		if compSet.Recommended == domain.RegimeOld {
			recommendations = append(recommendations, fmt.Sprintf(
				"Exemptions and deductions of %s make the %s cheaper",
				money.FormatRupees(claimed), domain.RegimeOld.Title()))
		} else if !compSet.Savings.IsZero() {
			recommendations = append(recommendations, fmt.Sprintf(
				"Exemptions and deductions of %s under the %s do not offset the lower %s slab rates",
				money.FormatRupees(claimed), domain.RegimeOld.Title(), domain.RegimeNew.Title()))
		}
	}

	if len(compSet.TopSavings) > 0 {
		top := compSet.TopSavings[0]
		recommendations = append(recommendations, fmt.Sprintf(
			"Largest saving under the %s: %s (%s), about %s",
			chosen.RegimeName, top.Item, top.Section, money.FormatRupees(*top.TaxSaved)))
	}

	switch {
	case chosen.BalanceDue.IsPositive():
		recommendations = append(recommendations, fmt.Sprintf(
			"%s remains payable after taxes already paid", money.FormatRupees(chosen.BalanceDue)))
	case chosen.BalanceDue.IsNegative():
		recommendations = append(recommendations, fmt.Sprintf(
			"Taxes already paid exceed the liability; %s is refundable", money.FormatRupees(chosen.BalanceDue.Neg())))
	}

	if n := len(compSet.HardBlocks); n > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"Resolve %d input problem(s) before relying on these figures", n))
	}

	return recommendations
}
