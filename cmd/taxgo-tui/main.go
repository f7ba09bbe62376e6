package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/taxgo/internal/config"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/internal/tui"
)

const taxConfigEnv = "TAXGO_TAX_CONFIG"

// runProgram starts the bubbletea program; replaced in tests
var runProgram = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func loadTaxConfig(cmd *cobra.Command) (*domain.TaxConfiguration, error) {
	parser := config.NewInputParser()
	path, _ := cmd.Flags().GetString("tax-config")
	if path == "" {
		path = os.Getenv(taxConfigEnv)
	}
	if path != "" {
		return parser.LoadTaxConfiguration(path)
	}
	fy, _ := cmd.Flags().GetString("fiscal-year")
	return parser.DefaultTaxConfiguration(fy)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taxgo-tui [profile-file]",
		Short: "Interactive Old vs New regime comparison",
		Long: `Opens a terminal view of a tax profile: both regimes side by side,
the full calculation log of each, and any warnings or recommendations.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			profilePath := args[0]
			if _, err := os.Stat(profilePath); os.IsNotExist(err) {
				return fmt.Errorf("profile file not found: %s", profilePath)
			}

			cfg, err := loadTaxConfig(cmd)
			if err != nil {
				return err
			}
			if err := runProgram(tui.NewModel(profilePath, cfg)); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().String("tax-config", "", "Path to a tax configuration file (default: built-in table, or $"+taxConfigEnv+")")
	cmd.Flags().String("fiscal-year", config.DefaultFiscalYear, "Fiscal year of the built-in tax table")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
