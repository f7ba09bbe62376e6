package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rgehrsitz/taxgo/internal/calculation"
	"github.com/rgehrsitz/taxgo/internal/compare"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestEnvironment keeps log output quiet during integration runs
func setupTestEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("TAXGO_TAX_CONFIG", "")
}

// TestIntegrationRegression checks that repeated and concurrent runs agree
func TestIntegrationRegression(t *testing.T) {
	setupTestEnvironment(t)

	t.Run("calculation_consistency", func(t *testing.T) {
		profile, cfg := loadFixture(t, "full_profile.yaml")
		engine := calculation.NewCalculationEngine(cfg)

		for _, regime := range domain.Regimes {
			first, err := engine.Calculate(profile, regime)
			require.NoError(t, err)
			second, err := engine.Calculate(profile, regime)
			require.NoError(t, err)

			assert.True(t, first.FinalTax.Equal(second.FinalTax), "final tax should match")
			assert.True(t, first.TaxableIncome.Equal(second.TaxableIncome), "taxable income should match")
			assert.Equal(t, len(first.Log), len(second.Log), "log length should match")
		}
	})

	t.Run("concurrent_comparisons", func(t *testing.T) {
		profile, cfg := loadFixture(t, "full_profile.yaml")
		engine := compare.NewCompareEngine(calculation.NewCalculationEngine(cfg))

		baseline, err := engine.Compare(context.Background(), profile)
		require.NoError(t, err)

		var wg sync.WaitGroup
		sets := make([]*compare.ComparisonSet, 8)
		errs := make([]error, len(sets))
		for i := range sets {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				sets[i], errs[i] = engine.Compare(context.Background(), profile)
			}(i)
		}
		wg.Wait()

		for i, set := range sets {
			require.NoError(t, errs[i])
			assert.Equal(t, baseline.Recommended, set.Recommended)
			assert.True(t, baseline.Savings.Equal(set.Savings))
		}
	})
}

// TestIntegrationBenchmarks runs timing checks
func TestIntegrationBenchmarks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping benchmarks in short mode")
	}
	setupTestEnvironment(t)

	profile, cfg := loadFixture(t, "full_profile.yaml")
	engine := compare.NewCompareEngine(calculation.NewCalculationEngine(cfg))

	start := time.Now()
	for i := 0; i < 100; i++ {
		_, err := engine.Compare(context.Background(), profile)
		require.NoError(t, err)
	}
	duration := time.Since(start)

	assert.Less(t, duration, 10*time.Second, "100 comparisons should complete within 10 seconds")
	t.Logf("100 comparisons completed in %v", duration)
}
