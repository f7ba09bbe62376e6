package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var fy2025 = FiscalYear{Label: "2025-26", StartYear: 2025}

func TestParseRegime(t *testing.T) {
	r, err := ParseRegime(" NEW ")
	require.NoError(t, err)
	assert.Equal(t, RegimeNew, r)

	r, err = ParseRegime("old")
	require.NoError(t, err)
	assert.Equal(t, RegimeOld, r)

	_, err = ParseRegime("flat")
	assert.Error(t, err)
}

func TestAgeCategory_Normalize(t *testing.T) {
	assert.Equal(t, AgeBelow60, AgeCategory("").Normalize())
	assert.Equal(t, AgeBelow60, AgeCategory("teen").Normalize())
	assert.Equal(t, AgeSenior, AgeSenior.Normalize())
	assert.True(t, AgeSuperSenior.IsSenior())
	assert.False(t, AgeBelow60.IsSenior())
}

func TestFiscalYear_Months(t *testing.T) {
	months := fy2025.Months()
	require.Len(t, months, 12)
	assert.Equal(t, YearMonth{Year: 2025, Month: 4}, months[0])
	assert.Equal(t, YearMonth{Year: 2025, Month: 12}, months[8])
	assert.Equal(t, YearMonth{Year: 2026, Month: 1}, months[9])
	assert.Equal(t, YearMonth{Year: 2026, Month: 3}, months[11])
	assert.Equal(t, "Apr 2025", months[0].String())
}

func TestPeriod_Bounds(t *testing.T) {
	p := Period{StartMonth: 10, StartYear: 2025, EndMonth: 3, EndYear: 2026}
	assert.True(t, p.Contains(fy2025, YearMonth{Year: 2025, Month: 10}))
	assert.True(t, p.Contains(fy2025, YearMonth{Year: 2026, Month: 3}))
	assert.False(t, p.Contains(fy2025, YearMonth{Year: 2025, Month: 9}))
	assert.Equal(t, 6, p.DurationMonths(fy2025))

	open := Period{}
	assert.Equal(t, 12, open.DurationMonths(fy2025), "zero bounds default to the whole fiscal year")

	single := Period{StartMonth: 5, StartYear: 2025, EndMonth: 5, EndYear: 2025}
	assert.Equal(t, 1, single.DurationMonths(fy2025))

	backwards := Period{StartMonth: 8, StartYear: 2025, EndMonth: 5, EndYear: 2025}
	assert.Equal(t, 1, backwards.DurationMonths(fy2025), "divisor never drops below one month")
}

func TestPeriod_Overlaps(t *testing.T) {
	a := Period{StartMonth: 4, StartYear: 2025, EndMonth: 9, EndYear: 2025}
	b := Period{StartMonth: 9, StartYear: 2025, EndMonth: 3, EndYear: 2026}
	c := Period{StartMonth: 10, StartYear: 2025, EndMonth: 3, EndYear: 2026}
	assert.True(t, a.Overlaps(fy2025, b))
	assert.False(t, a.Overlaps(fy2025, c))
}

func TestFiscalYearLabel(t *testing.T) {
	assert.Equal(t, "2024-25", FiscalYearLabel(time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-26", FiscalYearLabel(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "1999-00", FiscalYearLabel(time.Date(1999, time.May, 1, 0, 0, 0, 0, time.UTC)))
}

func TestMonthsBetween(t *testing.T) {
	a := time.Date(2020, time.June, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 24, MonthsBetween(a, time.Date(2022, time.June, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 23, MonthsBetween(a, time.Date(2022, time.June, 14, 0, 0, 0, 0, time.UTC)))
}

func TestDate_Decoding(t *testing.T) {
	var v struct {
		A Date `yaml:"a" json:"a"`
		B Date `yaml:"b" json:"b"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: 2019-06-01\nb: \"\"\n"), &v))
	assert.Equal(t, "2019-06-01", v.A.String())
	assert.True(t, v.B.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`{"a":"2024-07-22","b":null}`), &v))
	assert.Equal(t, 2024, v.A.Year())
	assert.True(t, v.B.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"a":"22/07/2024"}`), &v))
}

func TestRegimeRules_Helpers(t *testing.T) {
	limit := decimal.NewFromInt(400000)
	rules := RegimeRules{
		AllowedDeductions: []string{SectionStandardDed, Section80CCD2},
		Slabs: map[AgeCategory][]Slab{
			AgeBelow60: {{Min: decimal.Zero, Max: &limit, Rate: decimal.Zero}, {Min: limit, Rate: decimal.NewFromFloat(0.05)}},
		},
	}
	assert.True(t, rules.Allows(Section80CCD2))
	assert.False(t, rules.Allows(Section80C))
	assert.Len(t, rules.SlabsFor(AgeSuperSenior), 2, "missing age table falls back to below-60")
	assert.True(t, rules.SlabsFor(AgeBelow60)[1].Unbounded())
}

func TestCapitalGainsRules_IndexFor(t *testing.T) {
	rules := CapitalGainsRules{CostInflationIndex: map[string]int{"2001-02": 100, "2024-25": 363, "2025-26": 376}}

	v, ok := rules.IndexFor("2024-25")
	assert.True(t, ok)
	assert.Equal(t, 363, v)

	v, ok = rules.IndexFor("1995-96")
	assert.False(t, ok)
	assert.Equal(t, 100, v, "missing years fall back to the earliest index")
}

func TestRegimeResult_Aggregates(t *testing.T) {
	saved := decimal.NewFromInt(45000)
	r := RegimeResult{Log: []LogEntry{
		{Section: Section80C, Category: CategoryWealthBuilding, TaxSaved: &saved},
		{Section: SectionSlab, Category: CategoryNeutral},
		{Section: Section80G, Category: CategoryDonation, TaxSaved: &saved},
	}}
	assert.Len(t, r.EntriesByCategory(CategoryDonation), 1)
	assert.Equal(t, "90000", r.TotalTaxSaved().String())
}
