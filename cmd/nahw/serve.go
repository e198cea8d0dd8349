package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cours-d-arabe/nahw"
	"github.com/cours-d-arabe/nahw/internal/metrics"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the classification API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			m := metrics.New()
			analyzer, closeAnalyzer, err := buildAnalyzer(ctx, cfg, m, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeAnalyzer(); err != nil {
					logger.Warn("closing analyzer", zap.Error(err))
				}
			}()
			classifier, err := nahw.New(analyzer)
			if err != nil {
				return err
			}

			rc := routerConfig{
				classifier:     classifier,
				metrics:        m,
				logger:         logger,
				maxBody:        cfg.Server.MaxBodySize,
				allowedOrigins: cfg.CORS.AllowedOrigins,
			}
			if cfg.Metrics.Enabled {
				rc.metricsPath = cfg.Metrics.Path
			}
			srv := &http.Server{
				Addr:         cfg.Server.Addr,
				Handler:      newRouter(rc),
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			}

			errc := make(chan error, 1)
			go func() {
				logger.Info("listening", zap.String("addr", cfg.Server.Addr), zap.String("backend", cfg.Analyzer.Backend))
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")
	return cmd
}
