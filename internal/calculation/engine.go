package calculation

import (
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine runs the tax pipeline for one regime at a time. It holds only
// read-only configuration, so a single engine may serve concurrent runs.
type CalculationEngine struct {
	Config *domain.TaxConfiguration
	Logger Logger
}

// NewCalculationEngine creates an engine for a validated tax configuration
func NewCalculationEngine(cfg *domain.TaxConfiguration) *CalculationEngine {
	return &CalculationEngine{Config: cfg, Logger: NopLogger{}}
}

// SetLogger sets the diagnostic logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Calculate computes the tax liability of a profile under one regime. The only
// error is a regime absent from the configuration; inconsistent input is reported
// through the result's warnings and hard blocks and the run still completes.
//
// Pipeline: validation, capital gains, gross income, exemptions, deductions,
// taxable income, then slab tax through cess. Special-rate capital gains tax is
// added after cess.
func (ce *CalculationEngine) Calculate(profile *domain.UserTaxProfile, regime domain.Regime) (*domain.RegimeResult, error) {
	cfg := ce.Config
	if cfg == nil {
		return nil, fmt.Errorf("calculation engine has no tax configuration")
	}
	rules, ok := cfg.Regimes[regime]
	if !ok {
		return nil, fmt.Errorf("regime %q is not defined for fiscal year %s", regime, cfg.FiscalYear.Label)
	}
	if profile == nil {
		profile = &domain.UserTaxProfile{}
	}
	age := profile.AgeCategory.Normalize()
	log := NewCalculationLog(cfg.Display.TaxSavedRate)

	result := &domain.RegimeResult{
		Regime:      regime,
		FiscalYear:  cfg.FiscalYear.Label,
		AgeCategory: age,
	}
	ce.Logger.Debugf("calculating %s for fiscal year %s (age %s)", rules.Name, cfg.FiscalYear.Label, age)

	result.Warnings, result.HardBlocks = ValidateProfile(profile, cfg)
	for _, w := range result.Warnings {
		ce.Logger.Warnf("%s: %s", regime, w)
	}
	for _, b := range result.HardBlocks {
		ce.Logger.Warnf("%s: input inconsistency: %s", regime, b)
	}

	result.CapitalGains = CalculateCapitalGains(profile.CapitalGains, cfg.CapitalGains, log)
	result.Warnings = append(result.Warnings, result.CapitalGains.Warnings...)

	result.Income = AggregateIncome(profile, cfg, rules, result.CapitalGains.SlabRatedGain, log)
	result.GrossIncome = result.Income.Total

	exemptions := CalculateExemptions(profile, cfg, rules, log)
	result.Exemptions = exemptions.Total
	result.HRA = exemptions.HRA.Months
	for _, m := range result.HRA {
		ce.Logger.Debugf("HRA %s", describeHRAMonth(m))
	}

	// Deductions work from income net of exemptions.
	net := result.Income
	net.Total = floor0(result.GrossIncome.Sub(result.Exemptions))
	deductions := CalculateDeductions(profile, cfg, rules, DeductionInput{
		Income:      net,
		HRAReceived: ReceivesHRA(profile.EmploymentPeriods),
	}, log)
	result.Deductions = deductions.Total

	result.TaxableIncome = floor0(result.GrossIncome.Sub(result.Exemptions).Sub(result.Deductions))
	log.Note(domain.SectionSummary, "Taxable income", result.TaxableIncome,
		"Gross total income less exemptions and deductions, floored at zero")

	tc := ComputeIncomeTax(result.TaxableIncome, rules, age, cfg.CessRate, log)
	result.SlabTax = tc.SlabTax
	result.Rebate = tc.Rebate
	result.MarginalRelief = tc.MarginalRelief
	result.TaxAfterRelief = tc.TaxAfterRelief
	result.Surcharge = tc.Surcharge
	result.SurchargeRelief = tc.SurchargeRelief
	result.Cess = tc.Cess

	result.CapitalGainsTax = result.CapitalGains.Tax
	result.FinalTax = floor0(tc.Total.Add(result.CapitalGainsTax))
	log.Note(domain.SectionSummary, "Final tax", result.FinalTax, "Income tax after rebate, relief, surcharge and cess plus capital gains tax")

	denominator := result.GrossIncome.Add(result.CapitalGains.TotalTaxableGains)
	if denominator.IsPositive() {
		result.EffectiveRate = result.FinalTax.Div(denominator)
	}

	result.TaxesPaid = profile.TaxesPaid.Total().NonNegative()
	result.BalanceDue = result.FinalTax.Sub(result.TaxesPaid)
	if !result.TaxesPaid.IsZero() {
		log.Note(domain.SectionSummary, "Balance due", result.BalanceDue, "Final tax less TDS, advance and self-assessment tax; negative means refund")
	}

	result.Log = log.Entries()
	if result.Warnings == nil {
		result.Warnings = []string{}
	}
	if result.HardBlocks == nil {
		result.HardBlocks = []string{}
	}
	ce.Logger.Infof("%s: taxable income %s, final tax %s", rules.Name, result.TaxableIncome.StringFixed(2), result.FinalTax.StringFixed(2))
	return result, nil
}

// CalculateAll runs every regime defined in the configuration, in display order
func (ce *CalculationEngine) CalculateAll(profile *domain.UserTaxProfile) (map[domain.Regime]*domain.RegimeResult, error) {
	out := make(map[domain.Regime]*domain.RegimeResult, len(domain.Regimes))
	for _, r := range domain.Regimes {
		res, err := ce.Calculate(profile, r)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate %s: %w", r, err)
		}
		out[r] = res
	}
	return out, nil
}

// Cheaper returns the regime with the lower final tax; a tie goes to the new regime
func Cheaper(oldTax, newTax decimal.Decimal) domain.Regime {
	if oldTax.LessThan(newTax) {
		return domain.RegimeOld
	}
	return domain.RegimeNew
}
