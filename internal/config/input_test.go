package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
}

func TestInputParser_DefaultTaxConfiguration(t *testing.T) {
	parser := NewInputParser()

	cfg, err := parser.DefaultTaxConfiguration("")
	require.NoError(t, err)

	assert.Equal(t, "2025-26", cfg.FiscalYear.Label)
	assert.Equal(t, 2025, cfg.FiscalYear.StartYear)
	assert.Equal(t, "0.04", cfg.CessRate.String())
	assert.Equal(t, "0.3", cfg.Display.TaxSavedRate.String())

	oldRules := cfg.Regimes[domain.RegimeOld]
	newRules := cfg.Regimes[domain.RegimeNew]
	assert.Equal(t, "50000", oldRules.StandardDeduction.String())
	assert.Equal(t, "75000", newRules.StandardDeduction.String())
	assert.Equal(t, "1200000", newRules.Rebate.MaxIncome.String())
	assert.True(t, newRules.MarginalRelief.Enabled)
	assert.False(t, oldRules.MarginalRelief.Enabled)
	assert.True(t, oldRules.Allows(domain.Section80C))
	assert.False(t, newRules.Allows(domain.Section80C))
	assert.True(t, newRules.Allows(domain.Section80CCD2))

	require.Len(t, newRules.SlabsFor(domain.AgeSuperSenior), 7, "new regime slabs are shared by every age band")
	assert.True(t, newRules.SlabsFor(domain.AgeBelow60)[6].Unbounded())
	require.Len(t, oldRules.SlabsFor(domain.AgeSuperSenior), 3)
	assert.Equal(t, "500000", oldRules.SlabsFor(domain.AgeSuperSenior)[0].Max.String())

	assert.Equal(t, 376, cfg.CapitalGains.CostInflationIndex["2025-26"])
	assert.Equal(t, "2024-07-23", cfg.CapitalGains.GrandfatheringCutoff.String())
	assert.True(t, cfg.Donations.Categories["political_party"].CashDisallowed)
	assert.Equal(t, "0.5", cfg.Donations.Categories["charitable_trust"].Rate.String())
}

func TestInputParser_DefaultTaxConfiguration_UnknownYear(t *testing.T) {
	parser := NewInputParser()

	cfg, err := parser.DefaultTaxConfiguration("1999-00")

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrUnknownFiscalYear)
}

func TestAvailableFiscalYears(t *testing.T) {
	assert.Contains(t, AvailableFiscalYears(), DefaultFiscalYear)
}

func TestInputParser_LoadTaxConfiguration_FileNotFound(t *testing.T) {
	parser := NewInputParser()

	cfg, err := parser.LoadTaxConfiguration("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, cfg, "Should return nil config")
	assert.Contains(t, err.Error(), "failed to read tax configuration", "Should have specific error message")
}

func TestInputParser_LoadTaxConfiguration_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	invalidFile := filepath.Join(tmpDir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalidFile, []byte("regimes: [unclosed"), 0644))

	parser := NewInputParser()
	cfg, err := parser.LoadTaxConfiguration(invalidFile)

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse tax configuration")
}

func TestInputParser_LoadTaxConfiguration_MissingFieldsFailFast(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "partial.yaml")
	require.NoError(t, os.WriteFile(file, []byte("fiscal_year:\n  label: \"2025-26\"\n  start_year: 2025\ncess_rate: 0.04\n"), 0644))

	parser := NewInputParser()
	cfg, err := parser.LoadTaxConfiguration(file)

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "tax configuration validation failed")
}

const sampleProfileYAML = `
name: "Asha"
age_category: below_60
employment_periods:
  - employer: "Acme"
    start_month: 4
    start_year: 2025
    end_month: 3
    end_year: 2026
    gross_salary: "12,00,000"
    basic_plus_da: 600000
    hra_received: 240000
    epf_contribution: 72000
rent_periods:
  - id: rent-1
    amount: 300000
    is_metro: true
investments_80c:
  - type: ppf
    amount: 50000
donations:
  - category: charitable_trust
    amount: abc
    payment_mode: cash
capital_gains:
  property:
    sale_price: 9000000
    purchase_price: 3000000
    acquisition_date: 2015-06-01
    sale_date: 2025-09-15
`

func TestInputParser_ParseProfile_YAML(t *testing.T) {
	parser := NewInputParser()

	profile, err := parser.ParseProfile([]byte(sampleProfileYAML), "yaml")
	require.NoError(t, err)

	require.Len(t, profile.EmploymentPeriods, 1)
	job := profile.EmploymentPeriods[0]
	assert.Equal(t, "1200000", job.GrossSalary.String())
	assert.Equal(t, 4, job.StartMonth)
	assert.Equal(t, 2026, job.EndYear)
	assert.NotEmpty(t, job.ID, "missing IDs are assigned by the loader")

	require.Len(t, profile.RentPeriods, 1)
	assert.Equal(t, "rent-1", profile.RentPeriods[0].ID, "caller IDs are kept")
	assert.True(t, profile.RentPeriods[0].IsMetro)

	require.Len(t, profile.Donations, 1)
	assert.True(t, profile.Donations[0].Amount.IsZero(), "non-numeric amounts coerce to zero")
	assert.True(t, profile.Donations[0].IsCash())

	require.NotNil(t, profile.CapitalGains.Property)
	assert.Equal(t, 2015, profile.CapitalGains.Property.AcquisitionDate.Year())
}

func TestInputParser_LoadProfile_JSON(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "profile.json")
	body := `{
  "age_category": "senior_60_79",
  "employment_periods": [{"id": "job-1", "gross_salary": 800000, "basic_plus_da": "400000", "hra_received": null}],
  "other_income": {"savings_interest": "12,500", "dividends": ""}
}`
	require.NoError(t, os.WriteFile(file, []byte(body), 0644))

	parser := NewInputParser()
	profile, err := parser.LoadProfile(file)
	require.NoError(t, err)

	assert.Equal(t, domain.AgeSenior, profile.AgeCategory)
	assert.Equal(t, "job-1", profile.EmploymentPeriods[0].ID)
	assert.Equal(t, "400000", profile.EmploymentPeriods[0].BasicPlusDA.String())
	assert.True(t, profile.EmploymentPeriods[0].HRAReceived.IsZero())
	assert.Equal(t, "12500", profile.OtherIncome.SavingsInterest.String())
	assert.True(t, profile.OtherIncome.Dividends.IsZero())
}

func TestInputParser_LoadProfile_FileNotFound(t *testing.T) {
	parser := NewInputParser()

	profile, err := parser.LoadProfile("missing.yaml")

	assert.Nil(t, profile)
	assert.Contains(t, err.Error(), "failed to read profile")
}
