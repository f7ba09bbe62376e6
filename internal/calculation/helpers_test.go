package calculation

import (
	"testing"

	"github.com/rgehrsitz/taxgo/internal/config"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig(t *testing.T) *domain.TaxConfiguration {
	t.Helper()
	cfg, err := config.NewInputParser().DefaultTaxConfiguration(config.DefaultFiscalYear)
	require.NoError(t, err)
	return cfg
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func rupees(v int64) money.Amount {
	return money.FromInt(v)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "expected %s, got %s %v", want, got.String(), msgAndArgs)
}

func salaryProfile(gross int64) *domain.UserTaxProfile {
	return &domain.UserTaxProfile{
		AgeCategory: domain.AgeBelow60,
		EmploymentPeriods: []domain.EmploymentPeriod{
			{ID: "job-1", Employer: "Acme", GrossSalary: rupees(gross)},
		},
	}
}

func testLog() *CalculationLog {
	return NewCalculationLog(dec("0.30"))
}

func findEntry(entries []domain.LogEntry, section, item string) (domain.LogEntry, bool) {
	for _, e := range entries {
		if e.Section == section && e.Item == item {
			return e, true
		}
	}
	return domain.LogEntry{}, false
}
