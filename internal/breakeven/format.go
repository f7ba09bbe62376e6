package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxgo/pkg/money"
)

// TableFormatter formats break-even results as a console table
type TableFormatter struct{}

// Format renders a single lever search
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("REGIME BREAK-EVEN\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Lever:           %s (%s)\n", result.Lever, result.Description))
	sb.WriteString(fmt.Sprintf("Status:          %s\n", tf.formatStatus(result)))
	sb.WriteString(fmt.Sprintf("Iterations:      %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:     %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Old Regime tax today:  %s\n", money.FormatRupeesWhole(result.BaseOldTax)))
	sb.WriteString(fmt.Sprintf("New Regime tax today:  %s\n", money.FormatRupeesWhole(result.BaseNewTax)))
	if !result.AlreadyCheaper {
		sb.WriteString(fmt.Sprintf("Extra spend needed:    %s\n", money.FormatRupeesWhole(result.Amount)))
		sb.WriteString(fmt.Sprintf("Old Regime tax then:   %s\n", money.FormatRupeesWhole(result.OldTax)))
		sb.WriteString(fmt.Sprintf("New Regime tax then:   %s\n", money.FormatRupeesWhole(result.NewTax)))
	}
	return sb.String()
}

// FormatMulti renders every lever side by side
func (tf *TableFormatter) FormatMulti(mr *MultiResult) string {
	var sb strings.Builder

	sb.WriteString("REGIME BREAK-EVEN BY DEDUCTION\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-40s %-12s %14s %10s\n", "Deduction", "Status", "Extra Spend", "Old Tax"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for i := range mr.Results {
		r := &mr.Results[i]
		amount := "-"
		if !r.AlreadyCheaper {
			amount = money.FormatRupeesWhole(r.Amount)
			if !r.Success {
				amount = "> " + amount
			}
		}
		sb.WriteString(fmt.Sprintf("%-40s %-12s %14s %10s\n",
			r.Description, tf.formatStatus(r), amount, money.FormatRupeesWhole(r.OldTax)))
	}

	if len(mr.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i, rec := range mr.Recommendations {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
	}
	return sb.String()
}

func (tf *TableFormatter) formatStatus(r *Result) string {
	switch {
	case r.AlreadyCheaper:
		return "not needed"
	case r.Success:
		return "reachable"
	default:
		return "unreachable"
	}
}

// JSONFormatter formats break-even results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format marshals any break-even result
func (jf *JSONFormatter) Format(v any) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
