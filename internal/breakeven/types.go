package breakeven

import (
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/internal/transform"
	"github.com/shopspring/decimal"
)

// Lever is an Old Regime deduction the solver can raise
type Lever string

const (
	Lever80C      Lever = "80c"
	LeverNPS      Lever = "nps"
	LeverHealth   Lever = "health"
	LeverHomeLoan Lever = "home_loan"
	LeverDonation Lever = "donation"
)

// LeverSpec describes how a lever changes the profile and how far it may go
type LeverSpec struct {
	Lever       Lever
	Description string
	Max         decimal.Decimal
	Build       func(amount decimal.Decimal) transform.ProfileTransform
}

var leverSpecs = []LeverSpec{
	{
		Lever:       Lever80C,
		Description: "80C investment (PPF)",
		Max:         decimal.NewFromInt(150000),
		Build: func(a decimal.Decimal) transform.ProfileTransform {
			return &transform.AddInvestment80C{Type: domain.InvestmentPPF, Amount: a}
		},
	},
	{
		Lever:       LeverNPS,
		Description: "NPS contribution under 80CCD(1B)",
		Max:         decimal.NewFromInt(50000),
		Build: func(a decimal.Decimal) transform.ProfileTransform {
			return &transform.AddNPSContribution{Amount: a}
		},
	},
	{
		Lever:       LeverHealth,
		Description: "health insurance premium under 80D",
		Max:         decimal.NewFromInt(50000),
		Build: func(a decimal.Decimal) transform.ProfileTransform {
			return &transform.AddHealthInsurance{Self: a}
		},
	},
	{
		Lever:       LeverHomeLoan,
		Description: "self-occupied home loan interest",
		Max:         decimal.NewFromInt(200000),
		Build: func(a decimal.Decimal) transform.ProfileTransform {
			return &transform.AddHomeLoanInterest{Amount: a}
		},
	},
	{
		Lever:       LeverDonation,
		Description: "donation to PM CARES (100% deductible)",
		Max:         decimal.NewFromInt(1000000),
		Build: func(a decimal.Decimal) transform.ProfileTransform {
			return &transform.AddDonation{Category: "pm_cares", Amount: a, PaymentMode: "bank"}
		},
	},
}

// Levers returns every lever in display order
func Levers() []LeverSpec {
	return append([]LeverSpec(nil), leverSpecs...)
}

// LookupLever finds a lever by name
func LookupLever(l Lever) (LeverSpec, bool) {
	for _, s := range leverSpecs {
		if s.Lever == l {
			return s, true
		}
	}
	return LeverSpec{}, false
}

// Constraints bound the search
type Constraints struct {
	// MaxAmount overrides the lever's own upper bound
	MaxAmount *decimal.Decimal `json:"max_amount,omitempty"`
}

// Validate checks the constraints are usable
func (c *Constraints) Validate() error {
	if c.MaxAmount != nil && !c.MaxAmount.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   fmt.Sprintf("max_amount must be positive, got %s", c.MaxAmount),
		}
	}
	return nil
}

// Request is one break-even search
type Request struct {
	Profile       *domain.UserTaxProfile
	Lever         Lever
	Constraints   Constraints
	MaxIterations int
	Tolerance     decimal.Decimal
}

// Result is the outcome of a break-even search. Amount is the smallest extra spend
// on the lever, to within the tolerance, at which the Old Regime costs no more than
// the New Regime.
type Result struct {
	Lever           Lever  `json:"lever"`
	Description     string `json:"description"`
	Success         bool   `json:"success"`
	AlreadyCheaper  bool   `json:"already_cheaper"`
	Iterations      int    `json:"iterations"`
	ConvergenceInfo string `json:"convergence_info,omitempty"`

	Amount     decimal.Decimal `json:"amount"`
	SearchedTo decimal.Decimal `json:"searched_to"`

	BaseOldTax decimal.Decimal `json:"base_old_tax"`
	BaseNewTax decimal.Decimal `json:"base_new_tax"`
	OldTax     decimal.Decimal `json:"old_tax_at_amount"`
	NewTax     decimal.Decimal `json:"new_tax_at_amount"`
}

// MultiResult compares every lever for one profile
type MultiResult struct {
	Results         []Result `json:"results"`
	Cheapest        *Result  `json:"cheapest,omitempty"`
	Recommendations []string `json:"recommendations"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	Tolerance     decimal.Decimal // stop when the bracket is this narrow, in rupees
	MaxIterations int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(100),
		MaxIterations: 50,
	}
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
