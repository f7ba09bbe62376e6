package breakeven

import (
	"context"
	"fmt"
	"sort"

	"github.com/rgehrsitz/taxgo/internal/calculation"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/internal/transform"
	"github.com/rgehrsitz/taxgo/pkg/money"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Solver finds how much extra Old Regime deduction makes the Old Regime break even
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

type evaluation struct {
	oldTax decimal.Decimal
	newTax decimal.Decimal
}

func (e evaluation) oldWins() bool { return e.oldTax.LessThanOrEqual(e.newTax) }

// evaluate runs both regimes with amount added on the lever
func (s *Solver) evaluate(profile *domain.UserTaxProfile, spec LeverSpec, amount decimal.Decimal) (evaluation, error) {
	p := profile
	if amount.IsPositive() {
		var err error
		p, err = transform.ApplyTransforms(profile, []transform.ProfileTransform{spec.Build(amount)})
		if err != nil {
			return evaluation{}, err
		}
	}
	oldResult, err := s.CalcEngine.Calculate(p, domain.RegimeOld)
	if err != nil {
		return evaluation{}, err
	}
	newResult, err := s.CalcEngine.Calculate(p, domain.RegimeNew)
	if err != nil {
		return evaluation{}, err
	}
	return evaluation{oldTax: oldResult.FinalTax, newTax: newResult.FinalTax}, nil
}

// Solve bisects the lever amount. Old Regime tax never rises as a deduction grows,
// so the smallest winning amount is bracketed between a losing and a winning point.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if req.Profile == nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "profile is required"}
	}
	spec, ok := LookupLever(req.Lever)
	if !ok {
		return nil, &BreakEvenError{Operation: "solve", Message: fmt.Sprintf("unknown lever %q", req.Lever)}
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	upper := spec.Max
	if req.Constraints.MaxAmount != nil {
		upper = *req.Constraints.MaxAmount
	}

	wrap := func(err error) error {
		return &BreakEvenError{Operation: "solve", Message: fmt.Sprintf("evaluating %s", spec.Lever), Cause: err}
	}

	base, err := s.evaluate(req.Profile, spec, decimal.Zero)
	if err != nil {
		return nil, wrap(err)
	}
	result := &Result{
		Lever:       spec.Lever,
		Description: spec.Description,
		SearchedTo:  upper,
		BaseOldTax:  base.oldTax,
		BaseNewTax:  base.newTax,
		OldTax:      base.oldTax,
		NewTax:      base.newTax,
	}
	if base.oldWins() {
		result.Success = true
		result.AlreadyCheaper = true
		result.ConvergenceInfo = "Old Regime already costs no more than the New Regime"
		return result, nil
	}

	top, err := s.evaluate(req.Profile, spec, upper)
	if err != nil {
		return nil, wrap(err)
	}
	if !top.oldWins() {
		result.Amount = upper
		result.OldTax = top.oldTax
		result.NewTax = top.newTax
		result.ConvergenceInfo = fmt.Sprintf("Old Regime still costs %s more at %s",
			money.FormatRupeesWhole(top.oldTax.Sub(top.newTax)), money.FormatRupeesWhole(upper))
		return result, nil
	}

	lo, hi, atHi := decimal.Zero, upper, top
	two := decimal.NewFromInt(2)
	for hi.Sub(lo).GreaterThan(req.Tolerance) && result.Iterations < req.MaxIterations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Iterations++

		mid := lo.Add(hi).Div(two).Round(0)
		if !mid.GreaterThan(lo) || !mid.LessThan(hi) {
			break
		}
		e, err := s.evaluate(req.Profile, spec, mid)
		if err != nil {
			return nil, wrap(err)
		}
		if e.oldWins() {
			hi, atHi = mid, e
		} else {
			lo = mid
		}
	}

	result.Success = true
	result.Amount = hi
	result.OldTax = atHi.oldTax
	result.NewTax = atHi.newTax
	result.ConvergenceInfo = fmt.Sprintf("converged to within %s after %d iterations",
		money.FormatRupeesWhole(hi.Sub(lo)), result.Iterations)
	return result, nil
}

// SolveAll searches every lever concurrently and picks the one needing the least spend
func (s *Solver) SolveAll(ctx context.Context, profile *domain.UserTaxProfile) (*MultiResult, error) {
	specs := Levers()
	results := make([]Result, len(specs))

	g, gctx := errgroup.WithContext(ctx)
	for i, spec := range specs {
		g.Go(func() error {
			r, err := s.Solve(gctx, Request{Profile: profile, Lever: spec.Lever})
			if err != nil {
				return err
			}
			results[i] = *r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	mr := &MultiResult{Results: results}
	var reachable []*Result
	for i := range results {
		if results[i].Success {
			reachable = append(reachable, &results[i])
		}
	}
	sort.SliceStable(reachable, func(a, b int) bool { return reachable[a].Amount.LessThan(reachable[b].Amount) })
	if len(reachable) > 0 {
		mr.Cheapest = reachable[0]
	}
	mr.Recommendations = recommendations(mr)
	return mr, nil
}

func recommendations(mr *MultiResult) []string {
	if len(mr.Results) == 0 {
		return nil
	}
	first := mr.Results[0]
	if first.AlreadyCheaper {
		return []string{"The Old Regime already costs no more than the New Regime; no extra deductions are needed"}
	}
	if mr.Cheapest == nil {
		return []string{fmt.Sprintf("No single deduction makes the Old Regime cheaper; the New Regime saves %s",
			money.FormatRupeesWhole(first.BaseOldTax.Sub(first.BaseNewTax)))}
	}

	var recs []string
	c := mr.Cheapest
	recs = append(recs, fmt.Sprintf("Cheapest route: about %s more in %s makes the Old Regime break even",
		money.FormatRupeesWhole(c.Amount), c.Description))
	for _, r := range mr.Results {
		if r.Lever == c.Lever {
			continue
		}
		if r.Success {
			recs = append(recs, fmt.Sprintf("Alternatively, about %s more in %s", money.FormatRupeesWhole(r.Amount), r.Description))
		}
	}
	return recs
}
