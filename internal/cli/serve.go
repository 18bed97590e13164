package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/raysh454/repopulse/internal/app"
	"github.com/raysh454/repopulse/internal/logging"
	"github.com/raysh454/repopulse/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return WrapExitError(ExitFailure, "loading config", err)
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.ListenAddr = addr
			}

			logger := newLogger(cmd, cfg.LogLevel)
			a, err := app.NewApplication(cfg, logger, nil)
			if err != nil {
				return WrapExitError(ExitFailure, "starting", err)
			}

			srvCfg := cfg.Server
			srvCfg.Logger = logger.With(logging.Field{Key: "component", Value: "server"})
			httpSrv := server.NewServer(srvCfg, a.Controller, a.Metrics).HTTPServer()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("dashboard listening",
					logging.Field{Key: "addr", Value: httpSrv.Addr},
					logging.Field{Key: "analysis_service", Value: cfg.WebClient.BaseURL})
				errCh <- httpSrv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				_ = a.Shutdown(context.Background())
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return WrapExitError(ExitFailure, "serving", err)
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("http shutdown", logging.Field{Key: "error", Value: err.Error()})
			}
			return a.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultConfig().ListenAddr, "listen address for the dashboard API")
	return cmd
}
