package domain

import (
	"github.com/rgehrsitz/taxgo/pkg/money"
)

// UserTaxProfile is the complete set of facts for one calculation run. It is built
// fresh by the caller for each invocation and never persisted by the engine.
type UserTaxProfile struct {
	Name                 string      `yaml:"name,omitempty" json:"name,omitempty"`
	AgeCategory          AgeCategory `yaml:"age_category" json:"age_category"`
	IsGovernmentEmployee bool        `yaml:"is_government_employee" json:"is_government_employee"`

	EmploymentPeriods []EmploymentPeriod `yaml:"employment_periods" json:"employment_periods"`
	RentPeriods       []RentPeriod       `yaml:"rent_periods" json:"rent_periods"`
	Investments80C    []Investment80C    `yaml:"investments_80c" json:"investments_80c"`
	Donations         []Donation         `yaml:"donations" json:"donations"`

	OtherIncome        OtherIncome        `yaml:"other_income" json:"other_income"`
	HouseProperty      HouseProperty      `yaml:"house_property" json:"house_property"`
	RetirementBenefits RetirementBenefits `yaml:"retirement_benefits" json:"retirement_benefits"`
	Allowances         AllowanceClaims    `yaml:"allowances" json:"allowances"`
	HealthInsurance    HealthInsurance    `yaml:"health_insurance" json:"health_insurance"`
	Loans              LoanInterest       `yaml:"loans" json:"loans"`
	Disability         DisabilityClaims   `yaml:"disability" json:"disability"`
	Pension            PensionSavings     `yaml:"pension" json:"pension"`
	CapitalGains       CapitalGainsInput  `yaml:"capital_gains" json:"capital_gains"`
	TaxesPaid          TaxesPaid          `yaml:"taxes_paid" json:"taxes_paid"`
}

// DeepCopy returns a copy that shares no slices or pointers with p
func (p *UserTaxProfile) DeepCopy() *UserTaxProfile {
	if p == nil {
		return nil
	}
	c := *p
	c.EmploymentPeriods = append([]EmploymentPeriod(nil), p.EmploymentPeriods...)
	c.RentPeriods = append([]RentPeriod(nil), p.RentPeriods...)
	c.Investments80C = append([]Investment80C(nil), p.Investments80C...)
	c.Donations = append([]Donation(nil), p.Donations...)
	if p.CapitalGains.Property != nil {
		sale := *p.CapitalGains.Property
		c.CapitalGains.Property = &sale
	}
	return &c
}

// Period is an inclusive month range. Zero start or end fields fall back to the
// first or last month of the fiscal year.
type Period struct {
	StartMonth int `yaml:"start_month" json:"start_month"`
	StartYear  int `yaml:"start_year" json:"start_year"`
	EndMonth   int `yaml:"end_month" json:"end_month"`
	EndYear    int `yaml:"end_year" json:"end_year"`
}

// Bounds resolves the period against a fiscal year
func (p Period) Bounds(fy FiscalYear) (YearMonth, YearMonth) {
	start := YearMonth{Year: p.StartYear, Month: p.StartMonth}
	if p.StartYear == 0 || p.StartMonth == 0 {
		start = fy.First()
	}
	end := YearMonth{Year: p.EndYear, Month: p.EndMonth}
	if p.EndYear == 0 || p.EndMonth == 0 {
		end = fy.Last()
	}
	return start, end
}

// Contains reports whether month falls within the period, bounds inclusive
func (p Period) Contains(fy FiscalYear, month YearMonth) bool {
	start, end := p.Bounds(fy)
	return month.Index() >= start.Index() && month.Index() <= end.Index()
}

// DurationMonths is the number of months the period spans, never less than one
func (p Period) DurationMonths(fy FiscalYear) int {
	start, end := p.Bounds(fy)
	if d := end.Index() - start.Index() + 1; d > 1 {
		return d
	}
	return 1
}

// Overlaps reports whether two periods share at least one month
func (p Period) Overlaps(fy FiscalYear, other Period) bool {
	s1, e1 := p.Bounds(fy)
	s2, e2 := other.Bounds(fy)
	return s1.Index() <= e2.Index() && s2.Index() <= e1.Index()
}

// EmploymentPeriod is one job held during the fiscal year. Amounts are totals for the period.
type EmploymentPeriod struct {
	Period `yaml:",inline"`

	ID       string `yaml:"id" json:"id"`
	Employer string `yaml:"employer,omitempty" json:"employer,omitempty"`

	GrossSalary             money.Amount `yaml:"gross_salary" json:"gross_salary"`
	BasicPlusDA             money.Amount `yaml:"basic_plus_da" json:"basic_plus_da"`
	HRAReceived             money.Amount `yaml:"hra_received" json:"hra_received"`
	Bonus                   money.Amount `yaml:"bonus" json:"bonus"`
	EPFContribution         money.Amount `yaml:"epf_contribution" json:"epf_contribution"`
	EmployeeNPSContribution money.Amount `yaml:"employee_nps_contribution" json:"employee_nps_contribution"`
	EmployerNPSContribution money.Amount `yaml:"employer_nps_contribution" json:"employer_nps_contribution"`
	ProfessionalTax         money.Amount `yaml:"professional_tax" json:"professional_tax"`
	LTAReceived             money.Amount `yaml:"lta_received" json:"lta_received"`
	ChildrenEducation       money.Amount `yaml:"children_education_allowance" json:"children_education_allowance"`
	HostelAllowance         money.Amount `yaml:"hostel_allowance" json:"hostel_allowance"`
	TransportAllowance      money.Amount `yaml:"transport_allowance" json:"transport_allowance"`
	OtherAllowances         money.Amount `yaml:"other_allowances" json:"other_allowances"`
}

// RentPeriod is one tenancy. Amount is the total rent paid over the period.
type RentPeriod struct {
	Period `yaml:",inline"`

	ID       string       `yaml:"id" json:"id"`
	Amount   money.Amount `yaml:"amount" json:"amount"`
	IsMetro  bool         `yaml:"is_metro" json:"is_metro"`
	Landlord string       `yaml:"landlord,omitempty" json:"landlord,omitempty"`
}

// Investment types accepted in the 80C pool
const (
	InvestmentPPF               = "ppf"
	InvestmentELSS              = "elss"
	InvestmentLifeInsurance     = "life_insurance"
	InvestmentNSC               = "nsc"
	InvestmentTaxSaverFD        = "tax_saver_fd"
	InvestmentHomeLoanPrincipal = "home_loan_principal"
	InvestmentTuitionFees       = "tuition_fees"
	InvestmentSukanyaSamriddhi  = "sukanya_samriddhi"
	InvestmentSCSS              = "scss"
	InvestmentULIP              = "ulip"
	InvestmentStampDuty         = "stamp_duty"
	InvestmentOther             = "other"
)

// Investment80C is one contribution to the shared 80C pool
type Investment80C struct {
	ID          string       `yaml:"id" json:"id"`
	Type        string       `yaml:"type" json:"type"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Amount      money.Amount `yaml:"amount" json:"amount"`
	PaymentMode string       `yaml:"payment_mode,omitempty" json:"payment_mode,omitempty"`
}

// PaymentCash marks a payment made in cash; every other mode is treated as banked
const PaymentCash = "cash"

// Donation is one contribution deductible under 80G, 80GGA or 80GGC
type Donation struct {
	ID          string       `yaml:"id" json:"id"`
	Category    string       `yaml:"category" json:"category"`
	Recipient   string       `yaml:"recipient,omitempty" json:"recipient,omitempty"`
	Amount      money.Amount `yaml:"amount" json:"amount"`
	PaymentMode string       `yaml:"payment_mode" json:"payment_mode"`
}

// IsCash reports whether the donation was paid in cash
func (d Donation) IsCash() bool { return d.PaymentMode == PaymentCash }

// OtherIncome covers non-salary sources other than house property and capital gains
type OtherIncome struct {
	SavingsInterest       money.Amount `yaml:"savings_interest" json:"savings_interest"`
	DepositInterest       money.Amount `yaml:"deposit_interest" json:"deposit_interest"`
	Dividends             money.Amount `yaml:"dividends" json:"dividends"`
	GiftsFromNonRelatives money.Amount `yaml:"gifts_from_non_relatives" json:"gifts_from_non_relatives"`
	AgriculturalIncome    money.Amount `yaml:"agricultural_income" json:"agricultural_income"`
	Other                 money.Amount `yaml:"other" json:"other"`
}

// HouseProperty describes one let-out and one self-occupied property
type HouseProperty struct {
	RentReceived             money.Amount `yaml:"rent_received" json:"rent_received"`
	MunicipalTaxes           money.Amount `yaml:"municipal_taxes" json:"municipal_taxes"`
	LetOutLoanInterest       money.Amount `yaml:"let_out_loan_interest" json:"let_out_loan_interest"`
	SelfOccupiedLoanInterest money.Amount `yaml:"self_occupied_loan_interest" json:"self_occupied_loan_interest"`
}

// RetirementBenefits are lump sums received on leaving employment
type RetirementBenefits struct {
	GratuityReceived        money.Amount `yaml:"gratuity_received" json:"gratuity_received"`
	YearsOfService          int          `yaml:"years_of_service" json:"years_of_service"`
	LastDrawnMonthlySalary  money.Amount `yaml:"last_drawn_monthly_salary" json:"last_drawn_monthly_salary"`
	LeaveEncashmentReceived money.Amount `yaml:"leave_encashment_received" json:"leave_encashment_received"`
	VRSCompensation         money.Amount `yaml:"vrs_compensation" json:"vrs_compensation"`
}

// Total is the sum of every lump sum received
func (r RetirementBenefits) Total() money.Amount {
	return money.New(money.Sum(r.GratuityReceived, r.LeaveEncashmentReceived, r.VRSCompensation))
}

// AllowanceClaims carries the facts needed to exempt allowances paid with salary
type AllowanceClaims struct {
	LTATravelCost    money.Amount `yaml:"lta_travel_cost" json:"lta_travel_cost"`
	ChildrenInSchool int          `yaml:"children_in_school" json:"children_in_school"`
	ChildrenInHostel int          `yaml:"children_in_hostel" json:"children_in_hostel"`
	DisabledEmployee bool         `yaml:"disabled_employee" json:"disabled_employee"`
}

// HealthInsurance is the Section 80D input
type HealthInsurance struct {
	SelfFamilyPremium money.Amount `yaml:"self_family_premium" json:"self_family_premium"`
	ParentsPremium    money.Amount `yaml:"parents_premium" json:"parents_premium"`
	PreventiveCheckup money.Amount `yaml:"preventive_checkup" json:"preventive_checkup"`
	ParentsSenior     bool         `yaml:"parents_senior" json:"parents_senior"`
}

// LoanInterest holds interest paid on loans with their own deduction sections
type LoanInterest struct {
	EducationLoanInterest money.Amount `yaml:"education_loan_interest" json:"education_loan_interest"`
	HomeLoanInterest80EE  money.Amount `yaml:"home_loan_interest_80ee" json:"home_loan_interest_80ee"`
	HomeLoanInterest80EEA money.Amount `yaml:"home_loan_interest_80eea" json:"home_loan_interest_80eea"`
	ElectricVehicleLoan   money.Amount `yaml:"electric_vehicle_loan_interest" json:"electric_vehicle_loan_interest"`
}

// Disability severities
const (
	DisabilityNone   = ""
	DisabilityNormal = "normal"
	DisabilitySevere = "severe"
)

// DisabilityClaims holds the disability and specified-disease inputs
type DisabilityClaims struct {
	Self                 string       `yaml:"self" json:"self"`
	Dependent            string       `yaml:"dependent" json:"dependent"`
	MedicalTreatment     money.Amount `yaml:"medical_treatment" json:"medical_treatment"`
	MedicalPatientSenior bool         `yaml:"medical_patient_senior" json:"medical_patient_senior"`
}

// PensionSavings are pension contributions made outside salary
type PensionSavings struct {
	PensionPlan80CCC     money.Amount `yaml:"pension_plan_80ccc" json:"pension_plan_80ccc"`
	AdditionalNPS80CCD1B money.Amount `yaml:"additional_nps_80ccd_1b" json:"additional_nps_80ccd_1b"`
}

// CapitalGainsInput is the regime-invariant capital gains input. Negative gains are
// current-year losses of the same term.
type CapitalGainsInput struct {
	STCGEquity       money.Amount  `yaml:"stcg_equity" json:"stcg_equity"`
	LTCGEquity       money.Amount  `yaml:"ltcg_equity" json:"ltcg_equity"`
	STCLCarryForward money.Amount  `yaml:"stcl_carry_forward" json:"stcl_carry_forward"`
	LTCLCarryForward money.Amount  `yaml:"ltcl_carry_forward" json:"ltcl_carry_forward"`
	Property         *PropertySale `yaml:"property,omitempty" json:"property,omitempty"`
}

// PropertySale describes the transfer of one piece of real estate
type PropertySale struct {
	SalePrice        money.Amount `yaml:"sale_price" json:"sale_price"`
	PurchasePrice    money.Amount `yaml:"purchase_price" json:"purchase_price"`
	ImprovementCost  money.Amount `yaml:"improvement_cost" json:"improvement_cost"`
	ImprovementDate  Date         `yaml:"improvement_date" json:"improvement_date"`
	TransferExpenses money.Amount `yaml:"transfer_expenses" json:"transfer_expenses"`
	AcquisitionDate  Date         `yaml:"acquisition_date" json:"acquisition_date"`
	SaleDate         Date         `yaml:"sale_date" json:"sale_date"`
	Exemption54      money.Amount `yaml:"exemption_54" json:"exemption_54"`
	Exemption54EC    money.Amount `yaml:"exemption_54ec" json:"exemption_54ec"`
	Exemption54F     money.Amount `yaml:"exemption_54f" json:"exemption_54f"`
}

// TaxesPaid is tax already deposited for the year
type TaxesPaid struct {
	TDS               money.Amount `yaml:"tds" json:"tds"`
	AdvanceTax        money.Amount `yaml:"advance_tax" json:"advance_tax"`
	SelfAssessmentTax money.Amount `yaml:"self_assessment_tax" json:"self_assessment_tax"`
}

// Total is the sum of all tax already paid
func (t TaxesPaid) Total() money.Amount {
	return money.New(money.Sum(t.TDS, t.AdvanceTax, t.SelfAssessmentTax))
}
