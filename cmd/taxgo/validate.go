package main

import (
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/calculation"
	"github.com/rgehrsitz/taxgo/internal/config"
	"github.com/spf13/cobra"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [profile-file]",
		Short: "Check a profile for warnings and hard blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadTaxConfig(cmd)
			if err != nil {
				return err
			}
			profile, err := config.NewInputParser().LoadProfile(args[0])
			if err != nil {
				return err
			}

			warnings, blocks := calculation.ValidateProfile(profile, cfg)
			out := cmd.OutOrStdout()
			for _, b := range blocks {
				fmt.Fprintf(out, "ERROR: %s\n", b)
			}
			for _, w := range warnings {
				fmt.Fprintf(out, "WARNING: %s\n", w)
			}
			if len(blocks) > 0 {
				return fmt.Errorf("profile %s has %d hard block(s)", args[0], len(blocks))
			}
			fmt.Fprintf(out, "Profile %s is valid (%d warning(s))\n", args[0], len(warnings))
			return nil
		},
	}
}
