package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"contrib.go.opencensus.io/exporter/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/go-sod/knn/internal/config"
	"github.com/go-sod/knn/internal/crossval"
	"github.com/go-sod/knn/internal/logging"
	"github.com/go-sod/knn/internal/report"
	"github.com/go-sod/knn/internal/server"
	"github.com/go-sod/knn/internal/setup"
)

var errNoStore = errors.New("serving reports requires KNN_DB_FILENAME")

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve stored reports, health and metrics over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	var cfg config.Config
	env, err := setup.Setup(ctx, &cfg)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}
	defer func() {
		if err := env.Close(context.Background()); err != nil {
			logger.Errorf("closing env: %v", err)
		}
	}()
	if env.Reports() == nil {
		return errNoStore
	}

	if err := crossval.RegisterViews(); err != nil {
		return err
	}
	exporter, err := prometheus.NewExporter(prometheus.Options{Namespace: "knn"})
	if err != nil {
		return fmt.Errorf("prometheus.NewExporter: %w", err)
	}

	reportHandler, err := report.NewHandler(cfg.ReportConfig(), env.Reports())
	if err != nil {
		return fmt.Errorf("report.NewHandler: %w", err)
	}

	srv, err := server.New(cfg.SrvAddr)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/reports", reportHandler)
	mux.Handle("/health", server.HandleHealth(ctx))
	mux.Handle("/metrics", exporter)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("listening on %s", srv.Addr())
		return srv.ServeHTTPHandler(gctx, mux)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Infof("shutting down")
		return nil
	})

	return g.Wait()
}
