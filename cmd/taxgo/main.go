package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/rgehrsitz/taxgo/internal/calculation"
	"github.com/rgehrsitz/taxgo/internal/config"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/pkg/logging"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// taxConfigEnv overrides the built-in tax table when --tax-config is not given
const taxConfigEnv = "TAXGO_TAX_CONFIG"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taxgo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "taxgo",
		Short: "Indian income tax calculator CLI",
		Long: "Computes income tax under the Old and New regimes for one fiscal year,\n" +
			"with a step-by-step calculation log and a regime recommendation.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logging.LevelFromEnv()
			if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
				level = slog.LevelDebug
			}
			logging.SetupWithLevel(level)
		},
	}

	root.PersistentFlags().String("tax-config", "", "Path to a tax configuration file (default: built-in table, or $"+taxConfigEnv+")")
	root.PersistentFlags().String("fiscal-year", config.DefaultFiscalYear, "Fiscal year of the built-in tax table")
	root.PersistentFlags().Bool("debug", false, "Enable debug logging of the calculation pipeline")

	root.AddCommand(calculateCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(configCmd())
	root.AddCommand(whatIfCmd())
	root.AddCommand(breakEvenCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())
	return root
}

// loadTaxConfig resolves the tax table from --tax-config, the environment, or
// the built-in table for --fiscal-year, in that order. It also returns a label
// describing the source.
func loadTaxConfig(cmd *cobra.Command) (*domain.TaxConfiguration, string, error) {
	parser := config.NewInputParser()
	path, _ := cmd.Flags().GetString("tax-config")
	if path == "" {
		path = os.Getenv(taxConfigEnv)
	}
	if path != "" {
		cfg, err := parser.LoadTaxConfiguration(path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}

	fy, _ := cmd.Flags().GetString("fiscal-year")
	cfg, err := parser.DefaultTaxConfiguration(fy)
	if err != nil {
		return nil, "", err
	}
	return cfg, "built-in " + fy, nil
}

// newEngine builds a calculation engine, attaching the slog bridge under --debug
func newEngine(cmd *cobra.Command, cfg *domain.TaxConfiguration) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine(cfg)
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(logging.NewSlogAdapter(slog.Default()))
	}
	return engine
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func loadEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not read .env: %v\n", err)
	}
}

func main() {
	loadEnv()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
