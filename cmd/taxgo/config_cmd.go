package main

import (
	"encoding/json"
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect tax configurations",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective tax configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadTaxConfig(cmd)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			var data []byte
			switch format {
			case "yaml":
				data, err = yaml.Marshal(cfg)
			case "json":
				data, err = json.MarshalIndent(cfg, "", "  ")
				data = append(data, '\n')
			default:
				return fmt.Errorf("unsupported format %q (available: yaml, json)", format)
			}
			if err != nil {
				return fmt.Errorf("failed to encode tax configuration: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	show.Flags().StringP("format", "f", "yaml", "Output format (yaml, json)")

	validate := &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate a tax configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadTaxConfiguration(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tax configuration %s is valid (fiscal year %s)\n", args[0], cfg.FiscalYear.Label)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List fiscal years with a built-in tax table",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, fy := range config.AvailableFiscalYears() {
				fmt.Fprintln(cmd.OutOrStdout(), fy)
			}
		},
	}

	cmd.AddCommand(show, validate, list)
	return cmd
}
