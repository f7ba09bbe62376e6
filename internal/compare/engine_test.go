package compare

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/taxgo/internal/calculation"
	"github.com/rgehrsitz/taxgo/internal/config"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *CompareEngine {
	t.Helper()
	cfg, err := config.NewInputParser().DefaultTaxConfiguration(config.DefaultFiscalYear)
	require.NoError(t, err)
	return NewCompareEngine(calculation.NewCalculationEngine(cfg))
}

func salaryProfile(name string, gross int64) *domain.UserTaxProfile {
	return &domain.UserTaxProfile{
		Name: name,
		EmploymentPeriods: []domain.EmploymentPeriod{
			{ID: "job-1", Employer: "Acme", GrossSalary: money.FromInt(gross)},
		},
	}
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestCompareEngine_Compare_NewRegimeCheaper(t *testing.T) {
	engine := newTestEngine(t)

	compSet, err := engine.Compare(context.Background(), salaryProfile("Asha", 800000))
	require.NoError(t, err)

	assert.Equal(t, "Asha", compSet.ProfileName)
	assert.Equal(t, config.DefaultFiscalYear, compSet.FiscalYear)
	assert.True(t, compSet.Old.FinalTax.Equal(d(65000)), "old tax %s", compSet.Old.FinalTax)
	assert.True(t, compSet.New.FinalTax.IsZero(), "new tax %s", compSet.New.FinalTax)
	assert.Equal(t, domain.RegimeNew, compSet.Recommended)
	assert.True(t, compSet.Savings.Equal(d(65000)))
	assert.True(t, compSet.Old.TaxDiffFromOther.Equal(d(65000)))
	assert.True(t, compSet.New.TaxDiffFromOther.Equal(d(-65000)))
	require.NotEmpty(t, compSet.Recommendations)
	assert.Contains(t, compSet.Recommendations[0], "Choose the New Regime")
	assert.NotNil(t, compSet.Old.Result)
	assert.NotNil(t, compSet.New.Result)
}

func TestCompareEngine_Compare_TieRecommendsNew(t *testing.T) {
	engine := newTestEngine(t)

	compSet, err := engine.Compare(context.Background(), salaryProfile("", 300000))
	require.NoError(t, err)

	assert.True(t, compSet.Old.FinalTax.IsZero())
	assert.True(t, compSet.New.FinalTax.IsZero())
	assert.Equal(t, domain.RegimeNew, compSet.Recommended)
	assert.True(t, compSet.Savings.IsZero())
	assert.Contains(t, compSet.Recommendations[0], "same tax")
}

func TestCompareEngine_Compare_MatchesSingleRuns(t *testing.T) {
	engine := newTestEngine(t)
	profile := salaryProfile("", 2400000)

	compSet, err := engine.Compare(context.Background(), profile)
	require.NoError(t, err)

	for _, regime := range domain.Regimes {
		single, err := engine.CalcEngine.Calculate(profile, regime)
		require.NoError(t, err)
		assert.True(t, single.FinalTax.Equal(compSet.ResultFor(regime).FinalTax), "regime %s", regime)
	}
}

func TestCompareEngine_Compare_Cancelled(t *testing.T) {
	engine := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Compare(ctx, salaryProfile("", 800000))

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCompareEngine_Compare_MissingRegime(t *testing.T) {
	cfg, err := config.NewInputParser().DefaultTaxConfiguration(config.DefaultFiscalYear)
	require.NoError(t, err)
	delete(cfg.Regimes, domain.RegimeOld)
	engine := NewCompareEngine(calculation.NewCalculationEngine(cfg))

	_, err = engine.Compare(context.Background(), salaryProfile("", 800000))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Old Regime")
}

func TestCompareEngine_Build_OldRegimeCheaper(t *testing.T) {
	engine := NewCompareEngine(nil)
	saved := d(45000)
	oldResult := &domain.RegimeResult{
		Regime:     domain.RegimeOld,
		FiscalYear: "2025-26",
		Exemptions: d(200000),
		Deductions: d(150000),
		FinalTax:   d(90000),
		BalanceDue: d(-10000),
		HardBlocks: []string{"employment period 1: salary components exceed gross salary"},
		Log: []domain.LogEntry{
			{Section: domain.Section80C, Item: "PPF", TaxSaved: &saved, Category: domain.CategoryWealthBuilding},
		},
	}
	newResult := &domain.RegimeResult{Regime: domain.RegimeNew, FiscalYear: "2025-26", FinalTax: d(120000)}

	compSet := engine.Build(nil, oldResult, newResult)

	assert.Equal(t, domain.RegimeOld, compSet.Recommended)
	assert.True(t, compSet.Savings.Equal(d(30000)))
	require.Len(t, compSet.TopSavings, 1)
	assert.Equal(t, "PPF", compSet.TopSavings[0].Item)
	assert.Len(t, compSet.Recommendations, 5)
	assert.Contains(t, compSet.Recommendations[0], "Choose the Old Regime")
	assert.Contains(t, compSet.Recommendations[1], "₹3,50,000.00")
	assert.Contains(t, compSet.Recommendations[2], "PPF")
	assert.Contains(t, compSet.Recommendations[3], "refundable")
	assert.Contains(t, compSet.Recommendations[4], "1 input problem")
}
