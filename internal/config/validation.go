package config

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// configValidate is the validator instance for tax tables.
// Initialized in init() so decimal fields can use numeric tags (gte, lte, gt).
var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	configValidate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
}

// decimalValue exposes a decimal to validator as a float64
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// ValidateTaxConfiguration runs the struct-tag rules and then the checks tags
// cannot express: slab ordering, the unbounded top bracket and ascending surcharge tiers.
func ValidateTaxConfiguration(cfg *domain.TaxConfiguration) error {
	if err := configValidate.Struct(cfg); err != nil {
		return err
	}
	for _, regime := range domain.Regimes {
		rules, ok := cfg.Regimes[regime]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownRegime, regime)
		}
		if err := validateRegime(rules); err != nil {
			return fmt.Errorf("regime %s: %w", regime, err)
		}
	}
	if cfg.CapitalGains.GrandfatheringCutoff.IsZero() {
		return fmt.Errorf("capital_gains.grandfathering_cutoff is required")
	}
	for key, cat := range cfg.Donations.Categories {
		if cat.QualifyingLimit && cat.Section != domain.Section80G {
			return fmt.Errorf("donation category %s: qualifying limit only applies to 80G", key)
		}
	}
	return nil
}

func validateRegime(rules domain.RegimeRules) error {
	if _, ok := rules.Slabs[domain.AgeBelow60]; !ok {
		return fmt.Errorf("slabs for %s are required", domain.AgeBelow60)
	}
	for age, slabs := range rules.Slabs {
		if err := validateSlabs(slabs); err != nil {
			return fmt.Errorf("slabs %s: %w", age, err)
		}
	}

	prev := decimal.Zero
	for i, tier := range rules.Surcharge {
		if i > 0 && !tier.Threshold.GreaterThan(prev) {
			return fmt.Errorf("surcharge tier %d threshold %s must exceed %s", i, tier.Threshold, prev)
		}
		prev = tier.Threshold
	}

	if rules.MarginalRelief.Enabled && !rules.MarginalRelief.Ceiling.GreaterThan(rules.Rebate.MaxIncome) {
		return fmt.Errorf("marginal relief ceiling %s must exceed rebate threshold %s",
			rules.MarginalRelief.Ceiling, rules.Rebate.MaxIncome)
	}
	return nil
}

// validateSlabs checks that brackets start at zero, are contiguous and strictly
// increasing, and that only the last one is unbounded
func validateSlabs(slabs []domain.Slab) error {
	if len(slabs) == 0 {
		return fmt.Errorf("at least one slab is required")
	}
	if !slabs[0].Min.IsZero() {
		return fmt.Errorf("first slab must start at 0, got %s", slabs[0].Min)
	}
	for i, s := range slabs {
		if s.Rate.IsNegative() || s.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("slab %d rate %s out of range", i, s.Rate)
		}
		last := i == len(slabs)-1
		if s.Unbounded() != last {
			if last {
				return fmt.Errorf("last slab must be unbounded")
			}
			return fmt.Errorf("slab %d is unbounded but not last", i)
		}
		if last {
			continue
		}
		if !s.Max.GreaterThan(s.Min) {
			return fmt.Errorf("slab %d max %s must exceed min %s", i, s.Max, s.Min)
		}
		if !slabs[i+1].Min.Equal(*s.Max) {
			return fmt.Errorf("slab %d min %s must equal previous max %s", i+1, slabs[i+1].Min, s.Max)
		}
	}
	return nil
}
