package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/artpar/authorkit/adapters/httpapi"
	"github.com/artpar/authorkit/adapters/metrics"
	"github.com/artpar/authorkit/adapters/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := store.Open(cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer docs.Close()
		if err := docs.Init(cmd.Context()); err != nil {
			return fmt.Errorf("init store: %w", err)
		}

		var (
			collector *metrics.Collector
			gatherer  prometheus.Gatherer
		)
		if cfg.Metrics.Enabled {
			reg := prometheus.NewRegistry()
			collector = metrics.New(reg)
			gatherer = reg
		}

		svc, err := newService(collector, docs)
		if err != nil {
			return err
		}

		handler := httpapi.New(svc, logger, gatherer)
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		srv := &http.Server{
			Addr:         addr,
			Handler:      handler.Router(),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info().Str("addr", addr).Msg("http server listening")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case s := <-sig:
			logger.Info().Str("signal", s.String()).Msg("shutting down")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
