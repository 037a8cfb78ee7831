package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"mannequin/internal/config"
	"mannequin/internal/infrastructure/httpserver"
	"mannequin/internal/infrastructure/logging"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web app",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}

func runServe(parent context.Context, cfg *config.Config) error {
	logger := logging.NewLogger(cfg.AppEnv)

	app, err := newApplication(cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	handler, err := app.router()
	if err != nil {
		return err
	}
	srv := httpserver.New(cfg, handler)

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().
			Str("addr", srv.Addr()).
			Str("backend", cfg.GenAIBackend).
			Str("model", cfg.GenAIModel).
			Str("default_language", cfg.DefaultLanguage.String()).
			Msg("starting server")
		return srv.Start()
	})

	g.Go(func() error {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				app.flow.SweepIdle(ctx, cfg.SessionTTL)
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
