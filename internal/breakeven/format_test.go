package breakeven

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMulti() *MultiResult {
	donation := Result{
		Lever: LeverDonation, Description: "donation to PM CARES (100% deductible)", Success: true,
		Amount: decimal.NewFromInt(250000), BaseOldTax: decimal.NewFromInt(65000),
	}
	mr := &MultiResult{
		Results: []Result{
			{Lever: Lever80C, Description: "80C investment (PPF)", Amount: decimal.NewFromInt(150000),
				OldTax: decimal.NewFromInt(33800), BaseOldTax: decimal.NewFromInt(65000)},
			donation,
		},
		Recommendations: []string{"Cheapest route: about ₹2,50,000 more in donation"},
	}
	mr.Cheapest = &mr.Results[1]
	return mr
}

func TestTableFormatter_Format(t *testing.T) {
	out := (&TableFormatter{}).Format(&sampleMulti().Results[1])

	assert.Contains(t, out, "REGIME BREAK-EVEN")
	assert.Contains(t, out, "Status:          reachable")
	assert.Contains(t, out, "Extra spend needed:    ₹2,50,000")
}

func TestTableFormatter_FormatAlreadyCheaper(t *testing.T) {
	out := (&TableFormatter{}).Format(&Result{Lever: LeverNPS, AlreadyCheaper: true, Success: true})
	assert.Contains(t, out, "not needed")
	assert.NotContains(t, out, "Extra spend needed")
}

func TestTableFormatter_FormatMulti(t *testing.T) {
	out := (&TableFormatter{}).FormatMulti(sampleMulti())

	assert.Contains(t, out, "REGIME BREAK-EVEN BY DEDUCTION")
	assert.Contains(t, out, "unreachable")
	assert.Contains(t, out, "> ₹1,50,000")
	assert.Contains(t, out, "1. Cheapest route")
}

func TestJSONFormatter(t *testing.T) {
	out, err := (&JSONFormatter{Pretty: true}).Format(sampleMulti())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Len(t, decoded["results"], 2)
	assert.Contains(t, decoded, "cheapest")
}
