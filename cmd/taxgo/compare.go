package main

import (
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/compare"
	"github.com/rgehrsitz/taxgo/internal/config"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [profile-file]",
		Short: "Compare the Old and New regimes for a profile",
		Long: `Calculate a profile under both regimes and recommend the one with the lower
final tax. When both regimes produce the same tax the New regime is recommended.

Examples:
  taxgo compare profile.yaml
  taxgo compare profile.yaml --format json --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, source, err := loadTaxConfig(cmd)
			if err != nil {
				return err
			}
			profile, err := config.NewInputParser().LoadProfile(args[0])
			if err != nil {
				return err
			}

			engine := compare.NewCompareEngine(newEngine(cmd, cfg))
			compSet, err := engine.Compare(cmd.Context(), profile)
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			compSet.ConfigPath = source

			format, _ := cmd.Flags().GetString("format")
			out := cmd.OutOrStdout()
			switch format {
			case "table":
				fmt.Fprint(out, (&compare.TableFormatter{}).Format(compSet))
			case "compact":
				fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(compSet))
			case "csv":
				data, err := (&compare.CSVFormatter{}).Format(compSet)
				if err != nil {
					return err
				}
				fmt.Fprint(out, data)
			case "json":
				detailed, _ := cmd.Flags().GetBool("detailed")
				data, err := (&compare.JSONFormatter{Pretty: true, Detailed: detailed}).Format(compSet)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, data)
			default:
				return fmt.Errorf("unsupported format %q (available: table, compact, csv, json)", format)
			}
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().Bool("detailed", false, "Include full regime results and logs in JSON output")
	return cmd
}
