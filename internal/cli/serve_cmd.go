package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nexusai/nexus-crm/internal/server"
)

func newServeCmd(a *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API for the web dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.HTTPAddr
			}
			logger := a.Logger
			if logger == nil {
				logger = slog.New(slog.DiscardHandler)
			}
			handler := server.New(server.Config{
				Service:     a.svc(),
				Metrics:     a.Metrics,
				Logger:      logger,
				CORSOrigins: a.CORSOrigins,
			})

			ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Serve(ctx, addr, handler, logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default NEXUS_HTTP_ADDR or :8787)")
	return cmd
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
