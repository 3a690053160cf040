package root

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"waypoint/internal/config"
	"waypoint/internal/exchange"
	"waypoint/internal/ui"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a blueprint exchange server",
		Long:  "Runs the HTTP exchange other Waypoint users point WAYPOINT_EXCHANGE_URL at. The catalog lives in memory for the lifetime of the process.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.ServeAddr
			}
			log, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			srv := &http.Server{
				Addr:              addr,
				Handler:           exchange.NewServer(exchange.NewMemory(), log).Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("exchange listening", zap.String("addr", addr))
				errCh <- srv.ListenAndServe()
			}()

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconGlobe, "Exchange running on "+addr))

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-stop:
			}

			log.Info("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to WAYPOINT_SERVE_ADDR)")

	return cmd
}
