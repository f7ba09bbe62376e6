package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/calculation"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"golang.org/x/sync/errgroup"
)

// CompareEngine runs a profile through both regimes and compares the outcomes
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// Compare calculates the profile under every regime concurrently. The engine keeps no
// mutable state, so the runs share it safely.
func (ce *CompareEngine) Compare(ctx context.Context, profile *domain.UserTaxProfile) (*ComparisonSet, error) {
	results, err := ce.calculateAll(ctx, profile)
	if err != nil {
		return nil, err
	}
	return ce.Build(profile, results[domain.RegimeOld], results[domain.RegimeNew]), nil
}

func (ce *CompareEngine) calculateAll(ctx context.Context, profile *domain.UserTaxProfile) (map[domain.Regime]*domain.RegimeResult, error) {
	out := make([]*domain.RegimeResult, len(domain.Regimes))
	g, gctx := errgroup.WithContext(ctx)

	for i, regime := range domain.Regimes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := ce.CalcEngine.Calculate(profile, regime)
			if err != nil {
				return fmt.Errorf("failed to calculate %s: %w", regime.Title(), err)
			}
			out[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make(map[domain.Regime]*domain.RegimeResult, len(out))
	for i, regime := range domain.Regimes {
		results[regime] = out[i]
	}
	return results, nil
}

// Build assembles a comparison set from already computed regime results
func (ce *CompareEngine) Build(profile *domain.UserTaxProfile, oldResult, newResult *domain.RegimeResult) *ComparisonSet {
	oldMetrics := ce.MetricsCalculator.CalculateMetrics(oldResult)
	newMetrics := ce.MetricsCalculator.CalculateMetrics(newResult)
	oldMetrics, newMetrics =
		ce.MetricsCalculator.CalculateComparison(oldMetrics, newMetrics),
		ce.MetricsCalculator.CalculateComparison(newMetrics, oldMetrics)

	recommended := calculation.Cheaper(oldResult.FinalTax, newResult.FinalTax)
	chosen := newResult
	if recommended == domain.RegimeOld {
		chosen = oldResult
	}

	compSet := &ComparisonSet{
		FiscalYear:  oldResult.FiscalYear,
		Old:         &oldMetrics,
		New:         &newMetrics,
		Recommended: recommended,
		Savings:     oldResult.FinalTax.Sub(newResult.FinalTax).Abs(),
		TopSavings:  ce.MetricsCalculator.TopSavings(chosen),
		Warnings:    oldResult.Warnings,
		HardBlocks:  oldResult.HardBlocks,
	}
	if profile != nil {
		compSet.ProfileName = profile.Name
	}

	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet
}
