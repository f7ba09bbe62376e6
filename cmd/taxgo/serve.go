package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/taxgo/internal/server"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, source, err := loadTaxConfig(cmd)
			if err != nil {
				return err
			}
			addr, _ := cmd.Flags().GetString("addr")
			if env := os.Getenv("TAXGO_ADDR"); env != "" && !cmd.Flags().Changed("addr") {
				addr = env
			}
			debugMode, _ := cmd.Flags().GetBool("debug")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			slog.Info("starting server", "tax_config", source)
			srv := server.New(cfg, server.Options{Logger: slog.Default(), Debug: debugMode})
			return srv.Run(ctx, addr)
		},
	}
	cmd.Flags().String("addr", ":8080", "Listen address (or $TAXGO_ADDR)")
	return cmd
}
