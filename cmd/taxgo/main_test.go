package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const salaryProfileYAML = `name: Test Employee
age_category: below_60
employment_periods:
  - employer: Acme
    gross_salary: 800000
`

const blockedProfileYAML = `employment_periods:
  - gross_salary: 500000
    basic_plus_da: 400000
    hra_received: 200000
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(taxConfigEnv, "")
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()

	assert.Equal(t, "taxgo", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("tax-config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"calculate", "compare", "validate", "config", "whatif", "breakeven", "serve", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	_, err := run(t, "invalid-command")
	assert.Error(t, err)
}

func TestCalculate_Console(t *testing.T) {
	profile := writeFile(t, "profile.yaml", salaryProfileYAML)

	out, err := run(t, "calculate", profile, "--regime", "old")

	require.NoError(t, err)
	assert.Contains(t, out, "INCOME TAX COMPUTATION: OLD REGIME")
	assert.Contains(t, out, "₹65,000.00")
}

func TestCalculate_JSON(t *testing.T) {
	profile := writeFile(t, "profile.yaml", salaryProfileYAML)

	out, err := run(t, "calculate", profile, "--regime", "new", "--format", "json", "--debug")

	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "new", decoded["regime"])
	assert.Equal(t, "0", decoded["final_tax"])
}

func TestCalculate_Errors(t *testing.T) {
	profile := writeFile(t, "profile.yaml", salaryProfileYAML)

	_, err := run(t, "calculate", profile, "--regime", "flat")
	assert.ErrorContains(t, err, "unknown regime")

	_, err = run(t, "calculate", profile, "--format", "pdf")
	assert.ErrorContains(t, err, "unsupported format")

	_, err = run(t, "calculate", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read profile")
}

func TestCalculate_Save(t *testing.T) {
	profile := writeFile(t, "profile.yaml", salaryProfileYAML)
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := run(t, "calculate", profile, "--format", "csv", "--save")

	require.NoError(t, err)
	assert.Contains(t, out, "Report written to tax_report_new_")
	matches, err := filepath.Glob(filepath.Join(dir, "tax_report_new_*.csv"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestCalculate_TaxConfigFromEnvironment(t *testing.T) {
	profile := writeFile(t, "profile.yaml", salaryProfileYAML)
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"calculate", profile})
	t.Setenv(taxConfigEnv, filepath.Join(t.TempDir(), "missing.yaml"))

	err := cmd.Execute()

	assert.ErrorContains(t, err, "failed to read tax configuration")
}

func TestCompare_Formats(t *testing.T) {
	profile := writeFile(t, "profile.yaml", salaryProfileYAML)

	out, err := run(t, "compare", profile)
	require.NoError(t, err)
	assert.Contains(t, out, "REGIME COMPARISON")
	assert.Contains(t, out, "Profile: Test Employee")
	assert.Contains(t, out, "Recommended: New Regime (saves ₹65,000.00)")
	assert.Contains(t, out, "Tax Configuration: built-in 2025-26")

	out, err = run(t, "compare", profile, "--format", "csv")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)

	out, err = run(t, "compare", profile, "--format", "json", "--detailed")
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "new", decoded["recommended"])
	assert.Contains(t, decoded, "results")

	_, err = run(t, "compare", profile, "--format", "xml")
	assert.ErrorContains(t, err, "unsupported format")
}

func TestValidate(t *testing.T) {
	good := writeFile(t, "good.yaml", salaryProfileYAML)
	out, err := run(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (0 warning(s))")

	bad := writeFile(t, "bad.yaml", blockedProfileYAML)
	out, err = run(t, "validate", bad)
	assert.ErrorContains(t, err, "1 hard block(s)")
	assert.Contains(t, out, "ERROR:")
	assert.Contains(t, out, "exceed gross salary")
}

func TestConfigCommands(t *testing.T) {
	out, err := run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "fiscal_year:")

	out, err = run(t, "config", "show", "--format", "json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))

	out, err = run(t, "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-26")

	bad := writeFile(t, "tax.yaml", "fiscal_year:\n  label: 2030-31\n")
	_, err = run(t, "config", "validate", bad)
	assert.ErrorContains(t, err, "tax configuration validation failed")

	_, err = run(t, "--fiscal-year", "1999-00", "config", "show")
	assert.ErrorContains(t, err, "no built-in tax table")
}

func TestWhatIf(t *testing.T) {
	profile := writeFile(t, "profile.yaml", salaryProfileYAML)

	out, err := run(t, "whatif", profile, "--template", "max_80c")
	require.NoError(t, err)
	assert.Contains(t, out, "WHAT-IF ANALYSIS")
	assert.Contains(t, out, "Invest ₹1,50,000 more in ppf (80C)")
	assert.Contains(t, out, "₹65,000")
	assert.Contains(t, out, "₹33,800")
	assert.Contains(t, out, "Recommended after:  New Regime")

	out, err = run(t, "whatif", profile, "--transform", "add_donation:category=pm_cares,amount=250000", "--format", "json")
	require.NoError(t, err)
	var decoded struct {
		Changes []string `json:"changes"`
		After   struct {
			Old struct {
				FinalTax string `json:"finalTax"`
			} `json:"old"`
		} `json:"after"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Len(t, decoded.Changes, 1)
	assert.Equal(t, "0", decoded.After.Old.FinalTax)
}

func TestWhatIf_Errors(t *testing.T) {
	profile := writeFile(t, "profile.yaml", salaryProfileYAML)

	_, err := run(t, "whatif", profile)
	assert.ErrorContains(t, err, "no changes given")

	_, err = run(t, "whatif", profile, "--template", "retire_early")
	assert.ErrorContains(t, err, "unknown template")

	_, err = run(t, "whatif", profile, "--transform", "add_nps:amount=-5")
	assert.ErrorContains(t, err, "validation failed")

	_, err = run(t, "whatif")
	assert.ErrorContains(t, err, "profile file is required")
}

func TestWhatIf_List(t *testing.T) {
	out, err := run(t, "whatif", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "add_80c")
	assert.Contains(t, out, "full_planning")
}

func TestBreakEven(t *testing.T) {
	profile := writeFile(t, "profile.yaml", salaryProfileYAML)

	out, err := run(t, "breakeven", profile)
	require.NoError(t, err)
	assert.Contains(t, out, "REGIME BREAK-EVEN BY DEDUCTION")
	assert.Contains(t, out, "Cheapest route")

	out, err = run(t, "breakeven", profile, "--lever", "nps", "--format", "json")
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "nps", decoded["lever"])
	assert.Equal(t, false, decoded["success"])

	_, err = run(t, "breakeven", profile, "--lever", "gold")
	assert.ErrorContains(t, err, "unknown lever")

	_, err = run(t, "breakeven", profile, "--lever", "nps", "--max", "lots")
	assert.ErrorContains(t, err, "invalid --max")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "taxgo dev (commit none, built unknown)")
}
