package main

import (
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/breakeven"
	"github.com/rgehrsitz/taxgo/internal/config"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func breakEvenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breakeven [profile-file]",
		Short: "Find the extra deduction at which the Old regime stops costing more",
		Long: `Search each Old regime deduction (or one chosen with --lever) for the smallest
additional amount that makes the Old regime cost no more than the New regime.

Levers: 80c, nps, health, home_loan, donation

Examples:
  taxgo breakeven profile.yaml
  taxgo breakeven profile.yaml --lever donation --max 500000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadTaxConfig(cmd)
			if err != nil {
				return err
			}
			profile, err := config.NewInputParser().LoadProfile(args[0])
			if err != nil {
				return err
			}

			solver := breakeven.NewDefaultSolver(newEngine(cmd, cfg))
			format, _ := cmd.Flags().GetString("format")
			if format != "table" && format != "json" {
				return fmt.Errorf("unsupported format %q (available: table, json)", format)
			}
			out := cmd.OutOrStdout()
			table := &breakeven.TableFormatter{}

			lever, _ := cmd.Flags().GetString("lever")
			if lever == "" {
				mr, err := solver.SolveAll(cmd.Context(), profile)
				if err != nil {
					return err
				}
				if format == "json" {
					return writeJSON(out, mr)
				}
				fmt.Fprint(out, table.FormatMulti(mr))
				return nil
			}

			req := breakeven.Request{Profile: profile, Lever: breakeven.Lever(lever)}
			if maxStr, _ := cmd.Flags().GetString("max"); maxStr != "" {
				limit, err := decimal.NewFromString(maxStr)
				if err != nil {
					return fmt.Errorf("invalid --max value: %w", err)
				}
				req.Constraints.MaxAmount = &limit
			}
			result, err := solver.Solve(cmd.Context(), req)
			if err != nil {
				return err
			}
			if format == "json" {
				return writeJSON(out, result)
			}
			fmt.Fprint(out, table.Format(result))
			return nil
		},
	}
	cmd.Flags().String("lever", "", "Search only this deduction (80c, nps, health, home_loan, donation)")
	cmd.Flags().String("max", "", "Upper bound for the search, in rupees (with --lever)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}
