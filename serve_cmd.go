package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/locvowork/employee_directory/internal/bootstrap"
	"github.com/locvowork/employee_directory/internal/logger"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the directory over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := bootstrap.Setup(ctx)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.APP_PORT = port
			}

			app := bootstrap.NewApp()
			if err := app.InitializeWith(ctx, cfg); err != nil {
				logger.ErrorLog(ctx, "Failed to initialize application: %v", err)
				return err
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := app.Shutdown(shutdownCtx); err != nil {
					logger.ErrorLog(shutdownCtx, "Failed to shut down HTTP server: %v", err)
				}
			}()

			return app.Run()
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides APP_PORT)")
	return cmd
}
