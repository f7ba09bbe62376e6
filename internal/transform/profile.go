package transform

import (
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/pkg/money"
	"github.com/shopspring/decimal"
)

func requirePositive(name string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return NewTransformError(name, "validate", fmt.Sprintf("amount must be positive, got %s", amount), nil)
	}
	return nil
}

func requireBase(name string, base *domain.UserTaxProfile) error {
	if base == nil {
		return NewTransformError(name, "validate", "base profile cannot be nil", nil)
	}
	return nil
}

// AddInvestment80C adds one contribution to the 80C pool
type AddInvestment80C struct {
	Type   string
	Amount decimal.Decimal
}

func (t *AddInvestment80C) Name() string { return "add_80c" }

func (t *AddInvestment80C) Description() string {
	return fmt.Sprintf("Invest %s more in %s (80C)", money.FormatRupeesWhole(t.Amount), t.Type)
}

func (t *AddInvestment80C) Validate(base *domain.UserTaxProfile) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Type == "" {
		return NewTransformError(t.Name(), "validate", "investment type cannot be empty", nil)
	}
	return requirePositive(t.Name(), t.Amount)
}

func (t *AddInvestment80C) Apply(base *domain.UserTaxProfile) (*domain.UserTaxProfile, error) {
	modified := base.DeepCopy()
	modified.Investments80C = append(modified.Investments80C, domain.Investment80C{
		Type:        t.Type,
		Description: "what-if",
		Amount:      money.New(t.Amount),
	})
	return modified, nil
}

// AddNPSContribution raises the additional 80CCD(1B) NPS contribution
type AddNPSContribution struct {
	Amount decimal.Decimal
}

func (t *AddNPSContribution) Name() string { return "add_nps" }

func (t *AddNPSContribution) Description() string {
	return fmt.Sprintf("Contribute %s more to NPS under 80CCD(1B)", money.FormatRupeesWhole(t.Amount))
}

func (t *AddNPSContribution) Validate(base *domain.UserTaxProfile) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	return requirePositive(t.Name(), t.Amount)
}

func (t *AddNPSContribution) Apply(base *domain.UserTaxProfile) (*domain.UserTaxProfile, error) {
	modified := base.DeepCopy()
	p := &modified.Pension.AdditionalNPS80CCD1B
	*p = money.New(p.Decimal.Add(t.Amount))
	return modified, nil
}

// SetEmployerNPS sets the employer NPS contribution of one employment period
type SetEmployerNPS struct {
	Period int // 1-based index into the employment periods
	Amount decimal.Decimal
}

func (t *SetEmployerNPS) Name() string { return "set_employer_nps" }

func (t *SetEmployerNPS) Description() string {
	return fmt.Sprintf("Set employer NPS contribution of employment period %d to %s", t.Period, money.FormatRupeesWhole(t.Amount))
}

func (t *SetEmployerNPS) Validate(base *domain.UserTaxProfile) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Period < 1 || t.Period > len(base.EmploymentPeriods) {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("employment period %d not found (profile has %d)", t.Period, len(base.EmploymentPeriods)), nil)
	}
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", "amount cannot be negative", nil)
	}
	return nil
}

func (t *SetEmployerNPS) Apply(base *domain.UserTaxProfile) (*domain.UserTaxProfile, error) {
	modified := base.DeepCopy()
	modified.EmploymentPeriods[t.Period-1].EmployerNPSContribution = money.New(t.Amount)
	return modified, nil
}

// AddHealthInsurance adds 80D premiums for self/family and parents
type AddHealthInsurance struct {
	Self          decimal.Decimal
	Parents       decimal.Decimal
	ParentsSenior bool
}

func (t *AddHealthInsurance) Name() string { return "add_health_insurance" }

func (t *AddHealthInsurance) Description() string {
	return fmt.Sprintf("Pay %s more in health insurance premiums (self %s, parents %s)",
		money.FormatRupeesWhole(t.Self.Add(t.Parents)), money.FormatRupeesWhole(t.Self), money.FormatRupeesWhole(t.Parents))
}

func (t *AddHealthInsurance) Validate(base *domain.UserTaxProfile) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Self.IsNegative() || t.Parents.IsNegative() {
		return NewTransformError(t.Name(), "validate", "premiums cannot be negative", nil)
	}
	return requirePositive(t.Name(), t.Self.Add(t.Parents))
}

func (t *AddHealthInsurance) Apply(base *domain.UserTaxProfile) (*domain.UserTaxProfile, error) {
	modified := base.DeepCopy()
	hi := &modified.HealthInsurance
	hi.SelfFamilyPremium = money.New(hi.SelfFamilyPremium.Decimal.Add(t.Self))
	hi.ParentsPremium = money.New(hi.ParentsPremium.Decimal.Add(t.Parents))
	if t.ParentsSenior {
		hi.ParentsSenior = true
	}
	return modified, nil
}

// SetRent replaces all rent periods with one tenancy covering the fiscal year
type SetRent struct {
	Annual decimal.Decimal
	Metro  bool
}

func (t *SetRent) Name() string { return "set_rent" }

func (t *SetRent) Description() string {
	city := "non-metro"
	if t.Metro {
		city = "metro"
	}
	return fmt.Sprintf("Pay %s rent for the whole year (%s)", money.FormatRupeesWhole(t.Annual), city)
}

func (t *SetRent) Validate(base *domain.UserTaxProfile) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Annual.IsNegative() {
		return NewTransformError(t.Name(), "validate", "rent cannot be negative", nil)
	}
	return nil
}

func (t *SetRent) Apply(base *domain.UserTaxProfile) (*domain.UserTaxProfile, error) {
	modified := base.DeepCopy()
	modified.RentPeriods = nil
	if t.Annual.IsPositive() {
		modified.RentPeriods = []domain.RentPeriod{{Amount: money.New(t.Annual), IsMetro: t.Metro}}
	}
	return modified, nil
}

// AddDonation adds one donation
type AddDonation struct {
	Category    string
	Amount      decimal.Decimal
	PaymentMode string
}

func (t *AddDonation) Name() string { return "add_donation" }

func (t *AddDonation) Description() string {
	return fmt.Sprintf("Donate %s to %s by %s", money.FormatRupeesWhole(t.Amount), t.Category, t.PaymentMode)
}

func (t *AddDonation) Validate(base *domain.UserTaxProfile) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Category == "" {
		return NewTransformError(t.Name(), "validate", "donation category cannot be empty", nil)
	}
	return requirePositive(t.Name(), t.Amount)
}

func (t *AddDonation) Apply(base *domain.UserTaxProfile) (*domain.UserTaxProfile, error) {
	modified := base.DeepCopy()
	modified.Donations = append(modified.Donations, domain.Donation{
		Category:    t.Category,
		Recipient:   "what-if",
		Amount:      money.New(t.Amount),
		PaymentMode: t.PaymentMode,
	})
	return modified, nil
}

// AddHomeLoanInterest adds interest on a self-occupied home loan
type AddHomeLoanInterest struct {
	Amount decimal.Decimal
}

func (t *AddHomeLoanInterest) Name() string { return "add_home_loan_interest" }

func (t *AddHomeLoanInterest) Description() string {
	return fmt.Sprintf("Pay %s more self-occupied home loan interest", money.FormatRupeesWhole(t.Amount))
}

func (t *AddHomeLoanInterest) Validate(base *domain.UserTaxProfile) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	return requirePositive(t.Name(), t.Amount)
}

func (t *AddHomeLoanInterest) Apply(base *domain.UserTaxProfile) (*domain.UserTaxProfile, error) {
	modified := base.DeepCopy()
	hp := &modified.HouseProperty
	hp.SelfOccupiedLoanInterest = money.New(hp.SelfOccupiedLoanInterest.Decimal.Add(t.Amount))
	return modified, nil
}

// SetAgeCategory changes the slab table used for the profile
type SetAgeCategory struct {
	Category domain.AgeCategory
}

func (t *SetAgeCategory) Name() string { return "set_age" }

func (t *SetAgeCategory) Description() string {
	return fmt.Sprintf("Use the %s age category", t.Category)
}

func (t *SetAgeCategory) Validate(base *domain.UserTaxProfile) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Category.Normalize() != t.Category {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("unknown age category %q", t.Category), nil)
	}
	return nil
}

func (t *SetAgeCategory) Apply(base *domain.UserTaxProfile) (*domain.UserTaxProfile, error) {
	modified := base.DeepCopy()
	modified.AgeCategory = t.Category
	return modified, nil
}
