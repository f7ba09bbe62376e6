package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxgo/internal/config"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/internal/output"
	"github.com/spf13/cobra"
)

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [profile-file]",
		Short: "Calculate tax for a profile under one regime",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			regimeFlag, _ := cmd.Flags().GetString("regime")
			regime, err := domain.ParseRegime(regimeFlag)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unsupported format %q (available: %s)", format,
					strings.Join(output.AvailableFormatterNames(), ", "))
			}

			cfg, _, err := loadTaxConfig(cmd)
			if err != nil {
				return err
			}
			profile, err := config.NewInputParser().LoadProfile(args[0])
			if err != nil {
				return err
			}

			result, err := newEngine(cmd, cfg).Calculate(profile, regime)
			if err != nil {
				return err
			}

			if save, _ := cmd.Flags().GetBool("save"); save {
				filename, err := output.WriteFormatted(formatter, result, extensionFor(formatter.Name()))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}

			data, err := formatter.Format(result)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().StringP("regime", "r", string(domain.RegimeNew), "Tax regime (old, new)")
	cmd.Flags().StringP("format", "f", "console", "Output format (console, console-lite, json, csv, summary-csv)")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func extensionFor(format string) string {
	switch format {
	case "json":
		return "json"
	case "csv", "summary-csv":
		return "csv"
	}
	return "txt"
}
