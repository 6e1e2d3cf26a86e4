package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/httpapi"
)

const shutdownTimeout = 10 * time.Second

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API, /metrics and /healthz",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.Cfg.HTTPAddr
			}

			// The email proxy is served whenever a sender is configured
			collab, err := app.Collaborators(true)
			if err != nil {
				return err
			}

			handler := httpapi.NewHandler(app.Database, collab, app.Cfg.NotifyOnAssign, app.Logger)
			server := &http.Server{
				Addr:              addr,
				Handler:           httpapi.NewRouter(handler, app.Cfg.AllowedOrigins),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Stop on Ctrl-C or SIGTERM
			ctx, stop := signal.NotifyContext(app.Ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				app.Logger.Info("HTTP server listening", zap.String("addr", addr))
				errCh <- server.ListenAndServe()
			}()

			// Wait for a server error or a signal
			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("http server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			// Drain in-flight requests
			app.Logger.Info("Shutting down HTTP server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to shut down http server: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to httpAddr from config)")

	return cmd
}
