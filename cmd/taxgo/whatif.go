package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/taxgo/internal/compare"
	"github.com/rgehrsitz/taxgo/internal/config"
	"github.com/rgehrsitz/taxgo/internal/transform"
	"github.com/rgehrsitz/taxgo/pkg/money"
	"github.com/spf13/cobra"
)

// whatIfReport is the JSON shape of a what-if run
type whatIfReport struct {
	Changes []string               `json:"changes"`
	Before  *compare.ComparisonSet `json:"before"`
	After   *compare.ComparisonSet `json:"after"`
}

func whatIfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whatif [profile-file]",
		Short: "Recompare both regimes after hypothetical changes to a profile",
		Long: `Apply transforms or templates to a profile and show how the tax under each
regime and the recommendation change. The profile file is not modified.

Examples:
  taxgo whatif profile.yaml --template max_80c,max_nps
  taxgo whatif profile.yaml --transform add_nps:amount=50000 --transform set_rent:monthly=25000,metro=true
  taxgo whatif --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			registry := transform.NewTransformRegistry()
			templates := transform.CreateBuiltInTemplates()

			if list, _ := cmd.Flags().GetBool("list"); list {
				fmt.Fprintln(out, "Available Transforms:")
				for _, name := range registry.List() {
					fmt.Fprintf(out, "  %s\n", name)
				}
				fmt.Fprintln(out)
				fmt.Fprint(out, transform.GetTemplateHelp(templates))
				return nil
			}
			if len(args) != 1 {
				return fmt.Errorf("a profile file is required (or use --list)")
			}

			specs, _ := cmd.Flags().GetStringArray("transform")
			transforms, err := registry.ParseTransformSpecs(specs)
			if err != nil {
				return err
			}
			templateList, _ := cmd.Flags().GetString("template")
			for _, name := range transform.ParseTemplateList(templateList) {
				tpl, ok := templates.Get(name)
				if !ok {
					return fmt.Errorf("unknown template %q (available: %s)", name, strings.Join(templates.List(), ", "))
				}
				transforms = append(transforms, tpl.Transforms...)
			}
			if len(transforms) == 0 {
				return fmt.Errorf("no changes given: use --transform or --template")
			}

			cfg, source, err := loadTaxConfig(cmd)
			if err != nil {
				return err
			}
			profile, err := config.NewInputParser().LoadProfile(args[0])
			if err != nil {
				return err
			}
			modified, err := transform.ApplyTransforms(profile, transforms)
			if err != nil {
				return err
			}

			engine := compare.NewCompareEngine(newEngine(cmd, cfg))
			before, err := engine.Compare(cmd.Context(), profile)
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			after, err := engine.Compare(cmd.Context(), modified)
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			before.ConfigPath, after.ConfigPath = source, source

			report := whatIfReport{Changes: transform.Describe(transforms), Before: before, After: after}
			format, _ := cmd.Flags().GetString("format")
			switch format {
			case "table":
				writeWhatIf(out, report)
			case "json":
				return writeJSON(out, report)
			default:
				return fmt.Errorf("unsupported format %q (available: table, json)", format)
			}
			return nil
		},
	}
	cmd.Flags().StringArray("transform", nil, "Transform spec name:key=value,... (repeatable)")
	cmd.Flags().String("template", "", "Comma-separated template names")
	cmd.Flags().Bool("list", false, "List available transforms and templates")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}

func writeWhatIf(w io.Writer, r whatIfReport) {
	fmt.Fprintln(w, "WHAT-IF ANALYSIS")
	fmt.Fprintln(w, strings.Repeat("=", 72))
	fmt.Fprintln(w, "Changes:")
	for _, c := range r.Changes {
		fmt.Fprintf(w, "  - %s\n", c)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-22s %16s %16s %14s\n", "", "Before", "After", "Change")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	row := func(label string, b, a *compare.ComparisonResult) {
		fmt.Fprintf(w, "%-22s %16s %16s %14s\n", label,
			money.FormatRupeesWhole(b.FinalTax), money.FormatRupeesWhole(a.FinalTax),
			money.FormatRupeesWhole(a.FinalTax.Sub(b.FinalTax)))
	}
	row("Old Regime tax", r.Before.Old, r.After.Old)
	row("New Regime tax", r.Before.New, r.After.New)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Recommended before: %s (saves %s)\n", r.Before.Recommended.Title(), money.FormatRupeesWhole(r.Before.Savings))
	fmt.Fprintf(w, "Recommended after:  %s (saves %s)\n", r.After.Recommended.Title(), money.FormatRupeesWhole(r.After.Savings))
}
