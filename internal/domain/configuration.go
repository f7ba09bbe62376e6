package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TaxConfiguration holds every statutory constant for one fiscal year. It is loaded
// once, validated, and then shared read-only by every calculation run.
type TaxConfiguration struct {
	Metadata     ConfigMetadata         `yaml:"metadata" json:"metadata"`
	FiscalYear   FiscalYear             `yaml:"fiscal_year" json:"fiscal_year"`
	Regimes      map[Regime]RegimeRules `yaml:"regimes" json:"regimes" validate:"required,min=2,dive"`
	Exemptions   ExemptionLimits        `yaml:"exemptions" json:"exemptions"`
	Deductions   DeductionLimits        `yaml:"deductions" json:"deductions"`
	Income       IncomeRules            `yaml:"income" json:"income"`
	CapitalGains CapitalGainsRules      `yaml:"capital_gains" json:"capital_gains"`
	Donations    DonationRules          `yaml:"donations" json:"donations"`
	CessRate     decimal.Decimal        `yaml:"cess_rate" json:"cess_rate" validate:"gt=0,lte=1"`
	Display      DisplayRules           `yaml:"display" json:"display"`
}

// ConfigMetadata describes where the constants came from
type ConfigMetadata struct {
	Version string `yaml:"version" json:"version"`
	Source  string `yaml:"source" json:"source"`
	Notes   string `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// Slab is one progressive bracket. A nil Max marks the unbounded top bracket.
type Slab struct {
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Unbounded reports whether the slab has no upper limit
func (s Slab) Unbounded() bool { return s.Max == nil }

// RegimeRules carries everything that differs between the old and new regimes
type RegimeRules struct {
	Name                      string                 `yaml:"name" json:"name" validate:"required"`
	Slabs                     map[AgeCategory][]Slab `yaml:"slabs" json:"slabs" validate:"required"`
	StandardDeduction         decimal.Decimal        `yaml:"standard_deduction" json:"standard_deduction" validate:"gte=0"`
	Rebate                    RebateRule             `yaml:"rebate" json:"rebate"`
	MarginalRelief            MarginalReliefRule     `yaml:"marginal_relief" json:"marginal_relief"`
	Surcharge                 []SurchargeTier        `yaml:"surcharge" json:"surcharge" validate:"dive"`
	AllowExemptions           bool                   `yaml:"allow_exemptions" json:"allow_exemptions"`
	AllowRetirementExemptions bool                   `yaml:"allow_retirement_exemptions" json:"allow_retirement_exemptions"`
	AllowHousePropertyLoss    bool                   `yaml:"allow_house_property_loss" json:"allow_house_property_loss"`
	AllowedDeductions         []string               `yaml:"allowed_deductions" json:"allowed_deductions"`
	EmployerNPSRate           decimal.Decimal        `yaml:"employer_nps_rate" json:"employer_nps_rate" validate:"gte=0,lte=1"`
}

// Allows reports whether a deduction section may be claimed under this regime
func (r RegimeRules) Allows(section string) bool {
	for _, s := range r.AllowedDeductions {
		if s == section {
			return true
		}
	}
	return false
}

// SlabsFor returns the slab table for an age category, falling back to below-60
func (r RegimeRules) SlabsFor(age AgeCategory) []Slab {
	if slabs, ok := r.Slabs[age.Normalize()]; ok && len(slabs) > 0 {
		return slabs
	}
	return r.Slabs[AgeBelow60]
}

// RebateRule is the zero-tax rebate: at or below MaxIncome, rebate = min(tax, MaxRebate)
type RebateRule struct {
	MaxIncome decimal.Decimal `yaml:"max_income" json:"max_income" validate:"gte=0"`
	MaxRebate decimal.Decimal `yaml:"max_rebate" json:"max_rebate" validate:"gte=0"`
}

// MarginalReliefRule bounds the band above the rebate threshold where relief applies
type MarginalReliefRule struct {
	Enabled bool            `yaml:"enabled" json:"enabled"`
	Ceiling decimal.Decimal `yaml:"ceiling" json:"ceiling" validate:"gte=0"`
}

// SurchargeTier applies Rate to tax once taxable income exceeds Threshold
type SurchargeTier struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold" validate:"gt=0"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate" validate:"gt=0,lte=1"`
}

// ExemptionLimits covers the Section 10 exemptions
type ExemptionLimits struct {
	HRA               HRARule         `yaml:"hra" json:"hra"`
	Gratuity          GratuityRule    `yaml:"gratuity" json:"gratuity"`
	LeaveEncashment   LeaveEncashRule `yaml:"leave_encashment" json:"leave_encashment"`
	VRSLimit          decimal.Decimal `yaml:"vrs_limit" json:"vrs_limit" validate:"gte=0"`
	ChildrenEducation ChildAllowance  `yaml:"children_education" json:"children_education"`
	Hostel            ChildAllowance  `yaml:"hostel" json:"hostel"`
	DisabledTransport decimal.Decimal `yaml:"disabled_transport_monthly" json:"disabled_transport_monthly" validate:"gte=0"`
}

// HRARule carries the three percentages of the HRA least-of test
type HRARule struct {
	MetroRate      decimal.Decimal `yaml:"metro_rate" json:"metro_rate" validate:"gt=0,lte=1"`
	NonMetroRate   decimal.Decimal `yaml:"non_metro_rate" json:"non_metro_rate" validate:"gt=0,lte=1"`
	RentExcessRate decimal.Decimal `yaml:"rent_excess_rate" json:"rent_excess_rate" validate:"gte=0,lte=1"`
}

// GratuityRule: least(actual, Limit, DaysNumerator/DaysDivisor x last salary x years)
type GratuityRule struct {
	Limit         decimal.Decimal `yaml:"limit" json:"limit" validate:"gt=0"`
	DaysNumerator decimal.Decimal `yaml:"days_numerator" json:"days_numerator" validate:"gt=0"`
	DaysDivisor   decimal.Decimal `yaml:"days_divisor" json:"days_divisor" validate:"gt=0"`
}

// LeaveEncashRule: least(actual, Limit, SalaryMonths x last monthly salary)
type LeaveEncashRule struct {
	Limit        decimal.Decimal `yaml:"limit" json:"limit" validate:"gt=0"`
	SalaryMonths decimal.Decimal `yaml:"salary_months" json:"salary_months" validate:"gt=0"`
}

// ChildAllowance is a per-child monthly exemption limited to MaxChildren
type ChildAllowance struct {
	MonthlyPerChild decimal.Decimal `yaml:"monthly_per_child" json:"monthly_per_child" validate:"gte=0"`
	MaxChildren     int             `yaml:"max_children" json:"max_children" validate:"gte=0"`
}

// DeductionLimits covers the Chapter VI-A caps shared by both regimes
type DeductionLimits struct {
	Section80CLimit       decimal.Decimal       `yaml:"section_80c_limit" json:"section_80c_limit" validate:"gt=0"`
	EmployeeNPSSalaryRate decimal.Decimal       `yaml:"employee_nps_salary_rate" json:"employee_nps_salary_rate" validate:"gt=0,lte=1"`
	Section80CCD1B        decimal.Decimal       `yaml:"section_80ccd_1b" json:"section_80ccd_1b" validate:"gte=0"`
	ProfessionalTax       decimal.Decimal       `yaml:"professional_tax" json:"professional_tax" validate:"gte=0"`
	Section80D            HealthInsuranceLimits `yaml:"section_80d" json:"section_80d"`
	Section80DD           DisabilityLimits      `yaml:"section_80dd" json:"section_80dd"`
	Section80U            DisabilityLimits      `yaml:"section_80u" json:"section_80u"`
	Section80DDB          MedicalLimits         `yaml:"section_80ddb" json:"section_80ddb"`
	Section80EE           decimal.Decimal       `yaml:"section_80ee" json:"section_80ee" validate:"gte=0"`
	Section80EEA          decimal.Decimal       `yaml:"section_80eea" json:"section_80eea" validate:"gte=0"`
	Section80EEB          decimal.Decimal       `yaml:"section_80eeb" json:"section_80eeb" validate:"gte=0"`
	Section80TTA          decimal.Decimal       `yaml:"section_80tta" json:"section_80tta" validate:"gte=0"`
	Section80TTB          decimal.Decimal       `yaml:"section_80ttb" json:"section_80ttb" validate:"gte=0"`
	Section80GG           RentDeductionLimits   `yaml:"section_80gg" json:"section_80gg"`
	HomeLoanInterest      decimal.Decimal       `yaml:"home_loan_interest_self_occupied" json:"home_loan_interest_self_occupied" validate:"gte=0"`
	HousePropertyLossCap  decimal.Decimal       `yaml:"house_property_loss_set_off" json:"house_property_loss_set_off" validate:"gte=0"`
}

// HealthInsuranceLimits are the Section 80D caps
type HealthInsuranceLimits struct {
	SelfFamily        decimal.Decimal `yaml:"self_family" json:"self_family" validate:"gte=0"`
	SelfFamilySenior  decimal.Decimal `yaml:"self_family_senior" json:"self_family_senior" validate:"gte=0"`
	Parents           decimal.Decimal `yaml:"parents" json:"parents" validate:"gte=0"`
	ParentsSenior     decimal.Decimal `yaml:"parents_senior" json:"parents_senior" validate:"gte=0"`
	PreventiveCheckup decimal.Decimal `yaml:"preventive_checkup" json:"preventive_checkup" validate:"gte=0"`
}

// DisabilityLimits are flat deductions by severity
type DisabilityLimits struct {
	Normal decimal.Decimal `yaml:"normal" json:"normal" validate:"gte=0"`
	Severe decimal.Decimal `yaml:"severe" json:"severe" validate:"gte=0"`
}

// MedicalLimits are the Section 80DDB caps
type MedicalLimits struct {
	Normal decimal.Decimal `yaml:"normal" json:"normal" validate:"gte=0"`
	Senior decimal.Decimal `yaml:"senior" json:"senior" validate:"gte=0"`
}

// RentDeductionLimits: least(Monthly x 12, IncomeRate x ATI, rent - RentExcessRate x ATI)
type RentDeductionLimits struct {
	Monthly        decimal.Decimal `yaml:"monthly" json:"monthly" validate:"gte=0"`
	IncomeRate     decimal.Decimal `yaml:"income_rate" json:"income_rate" validate:"gte=0,lte=1"`
	RentExcessRate decimal.Decimal `yaml:"rent_excess_rate" json:"rent_excess_rate" validate:"gte=0,lte=1"`
}

// IncomeRules are source-level adjustments made while aggregating income
type IncomeRules struct {
	HousePropertyStandardRate decimal.Decimal `yaml:"house_property_standard_rate" json:"house_property_standard_rate" validate:"gte=0,lte=1"`
	GiftExemptionLimit        decimal.Decimal `yaml:"gift_exemption_limit" json:"gift_exemption_limit" validate:"gte=0"`
}

// CapitalGainsRules are regime-invariant capital gains constants
type CapitalGainsRules struct {
	STCGEquityRate        decimal.Decimal `yaml:"stcg_equity_rate" json:"stcg_equity_rate" validate:"gte=0,lte=1"`
	LTCGEquityRate        decimal.Decimal `yaml:"ltcg_equity_rate" json:"ltcg_equity_rate" validate:"gte=0,lte=1"`
	LTCGEquityExemption   decimal.Decimal `yaml:"ltcg_equity_exemption" json:"ltcg_equity_exemption" validate:"gte=0"`
	PropertyFlatRate      decimal.Decimal `yaml:"property_flat_rate" json:"property_flat_rate" validate:"gte=0,lte=1"`
	PropertyIndexedRate   decimal.Decimal `yaml:"property_indexed_rate" json:"property_indexed_rate" validate:"gte=0,lte=1"`
	GrandfatheringCutoff  Date            `yaml:"grandfathering_cutoff" json:"grandfathering_cutoff"`
	LongTermHoldingMonths int             `yaml:"long_term_holding_months" json:"long_term_holding_months" validate:"gt=0"`
	Section54ECLimit      decimal.Decimal `yaml:"section_54ec_limit" json:"section_54ec_limit" validate:"gte=0"`
	CostInflationIndex    map[string]int  `yaml:"cost_inflation_index" json:"cost_inflation_index" validate:"required,min=1,dive,gt=0"`
}

// IndexFor returns the cost inflation index for a fiscal year key, defaulting to the
// earliest tabulated index when the year is missing
func (c CapitalGainsRules) IndexFor(fiscalYear string) (int, bool) {
	if v, ok := c.CostInflationIndex[fiscalYear]; ok {
		return v, true
	}
	keys := make([]string, 0, len(c.CostInflationIndex))
	for k := range c.CostInflationIndex {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return 0, false
	}
	sort.Strings(keys)
	return c.CostInflationIndex[keys[0]], false
}

// DonationRules covers Sections 80G, 80GGA and 80GGC
type DonationRules struct {
	CashLimit           decimal.Decimal             `yaml:"cash_limit" json:"cash_limit" validate:"gte=0"`
	QualifyingLimitRate decimal.Decimal             `yaml:"qualifying_limit_rate" json:"qualifying_limit_rate" validate:"gt=0,lte=1"`
	Categories          map[string]DonationCategory `yaml:"categories" json:"categories" validate:"required,dive"`
}

// DonationCategory describes how a donation to one kind of recipient is deducted
type DonationCategory struct {
	Description     string          `yaml:"description" json:"description"`
	Section         string          `yaml:"section" json:"section" validate:"required,oneof=80G 80GGA 80GGC"`
	Rate            decimal.Decimal `yaml:"rate" json:"rate" validate:"gt=0,lte=1"`
	QualifyingLimit bool            `yaml:"qualifying_limit" json:"qualifying_limit"`
	CashDisallowed  bool            `yaml:"cash_disallowed" json:"cash_disallowed"`
}

// DisplayRules are presentation-only assumptions
type DisplayRules struct {
	TaxSavedRate decimal.Decimal `yaml:"tax_saved_rate" json:"tax_saved_rate" validate:"gte=0,lte=1"`
}
