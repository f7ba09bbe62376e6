package domain

import (
	"github.com/shopspring/decimal"
)

// LogEntry is one rule applied during a calculation run. Entries are appended in
// computation order and never edited.
type LogEntry struct {
	Section     string           `json:"section"`
	Item        string           `json:"item"`
	Amount      decimal.Decimal  `json:"amount"`
	Cap         *decimal.Decimal `json:"cap"`
	Explanation string           `json:"explanation"`
	TaxSaved    *decimal.Decimal `json:"tax_saved"`
	Category    LogCategory      `json:"category"`
}

// IncomeBreakdown is the output of income aggregation
type IncomeBreakdown struct {
	Salary                decimal.Decimal `json:"salary"`
	RetirementBenefits    decimal.Decimal `json:"retirement_benefits"`
	HouseProperty         decimal.Decimal `json:"house_property"`
	Interest              decimal.Decimal `json:"interest"`
	Dividends             decimal.Decimal `json:"dividends"`
	Gifts                 decimal.Decimal `json:"gifts"`
	ShortTermPropertyGain decimal.Decimal `json:"short_term_property_gain"`
	Other                 decimal.Decimal `json:"other"`
	AgriculturalExcluded  decimal.Decimal `json:"agricultural_excluded"`
	Total                 decimal.Decimal `json:"total"`
}

// HRAMonth is the per-month working of the HRA exemption
type HRAMonth struct {
	Month        YearMonth       `json:"month"`
	Basic        decimal.Decimal `json:"basic"`
	HRAReceived  decimal.Decimal `json:"hra_received"`
	RentPaid     decimal.Decimal `json:"rent_paid"`
	Metro        bool            `json:"metro"`
	SalaryLimit  decimal.Decimal `json:"salary_limit"`
	RentLimit    decimal.Decimal `json:"rent_limit"`
	Exempt       decimal.Decimal `json:"exempt"`
	EmployerIDs  []string        `json:"employer_ids"`
	RentPeriodID string          `json:"rent_period_id"`
}

// PropertyGainResult is the working for a real estate transfer
type PropertyGainResult struct {
	HoldingMonths    int             `json:"holding_months"`
	LongTerm         bool            `json:"long_term"`
	Grandfathered    bool            `json:"grandfathered"`
	RawGain          decimal.Decimal `json:"raw_gain"`
	Exemptions       decimal.Decimal `json:"exemptions"`
	FlatGain         decimal.Decimal `json:"flat_gain"`
	FlatTax          decimal.Decimal `json:"flat_tax"`
	IndexedCost      decimal.Decimal `json:"indexed_cost"`
	IndexedGain      decimal.Decimal `json:"indexed_gain"`
	IndexedTax       decimal.Decimal `json:"indexed_tax"`
	Method           string          `json:"method"`
	LossSetOff       decimal.Decimal `json:"loss_set_off"`
	TaxableGain      decimal.Decimal `json:"taxable_gain"`
	Tax              decimal.Decimal `json:"tax"`
	ShortTermGain    decimal.Decimal `json:"short_term_gain"`
	AcquisitionIndex int             `json:"acquisition_index"`
	SaleIndex        int             `json:"sale_index"`
}

// Property tax methods
const (
	MethodFlat    = "flat_no_indexation"
	MethodIndexed = "indexed"
)

// CapitalGainsResult is the regime-invariant capital gains working
type CapitalGainsResult struct {
	STGain            decimal.Decimal     `json:"st_gain"`
	LTGain            decimal.Decimal     `json:"lt_gain"`
	STLossAvailable   decimal.Decimal     `json:"st_loss_available"`
	LTLossAvailable   decimal.Decimal     `json:"lt_loss_available"`
	STLossAgainstST   decimal.Decimal     `json:"st_loss_against_st"`
	STLossAgainstLT   decimal.Decimal     `json:"st_loss_against_lt"`
	LTLossAgainstLT   decimal.Decimal     `json:"lt_loss_against_lt"`
	TaxableSTCG       decimal.Decimal     `json:"taxable_stcg"`
	STCGTax           decimal.Decimal     `json:"stcg_tax"`
	LTCGAfterSetOff   decimal.Decimal     `json:"ltcg_after_set_off"`
	LTCGExemptionUsed decimal.Decimal     `json:"ltcg_exemption_used"`
	TaxableLTCG       decimal.Decimal     `json:"taxable_ltcg"`
	LTCGTax           decimal.Decimal     `json:"ltcg_tax"`
	Property          *PropertyGainResult `json:"property,omitempty"`
	UnabsorbedSTLoss  decimal.Decimal     `json:"unabsorbed_st_loss"`
	UnabsorbedLTLoss  decimal.Decimal     `json:"unabsorbed_lt_loss"`
	SlabRatedGain     decimal.Decimal     `json:"slab_rated_gain"`
	TotalTaxableGains decimal.Decimal     `json:"total_taxable_gains"`
	Tax               decimal.Decimal     `json:"tax"`
	Warnings          []string            `json:"warnings,omitempty"`
}

// RegimeResult is the complete outcome of one regime run
type RegimeResult struct {
	Regime      Regime      `json:"regime"`
	FiscalYear  string      `json:"fiscal_year"`
	AgeCategory AgeCategory `json:"age_category"`

	Income          IncomeBreakdown    `json:"income"`
	GrossIncome     decimal.Decimal    `json:"gross_income"`
	Exemptions      decimal.Decimal    `json:"exemptions"`
	Deductions      decimal.Decimal    `json:"deductions"`
	TaxableIncome   decimal.Decimal    `json:"taxable_income"`
	SlabTax         decimal.Decimal    `json:"slab_tax"`
	Rebate          decimal.Decimal    `json:"rebate"`
	MarginalRelief  decimal.Decimal    `json:"marginal_relief"`
	TaxAfterRelief  decimal.Decimal    `json:"tax_after_relief"`
	Surcharge       decimal.Decimal    `json:"surcharge"`
	SurchargeRelief decimal.Decimal    `json:"surcharge_relief"`
	Cess            decimal.Decimal    `json:"cess"`
	CapitalGainsTax decimal.Decimal    `json:"capital_gains_tax"`
	FinalTax        decimal.Decimal    `json:"final_tax"`
	EffectiveRate   decimal.Decimal    `json:"effective_rate"`
	TaxesPaid       decimal.Decimal    `json:"taxes_paid"`
	BalanceDue      decimal.Decimal    `json:"balance_due"`
	HRA             []HRAMonth         `json:"hra_breakdown,omitempty"`
	CapitalGains    CapitalGainsResult `json:"capital_gains"`

	Warnings   []string   `json:"warnings"`
	HardBlocks []string   `json:"hard_blocks"`
	Log        []LogEntry `json:"log"`
}

// EntriesByCategory returns the log entries of one display category, in order
func (r *RegimeResult) EntriesByCategory(c LogCategory) []LogEntry {
	var out []LogEntry
	for _, e := range r.Log {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out
}

// TotalTaxSaved sums the tax-saved estimates carried on the log
func (r *RegimeResult) TotalTaxSaved() decimal.Decimal {
	total := decimal.Zero
	for _, e := range r.Log {
		if e.TaxSaved != nil {
			total = total.Add(*e.TaxSaved)
		}
	}
	return total
}
