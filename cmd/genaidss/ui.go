package main

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

	"github.com/genaidss/genaidss/internal/api"
	"github.com/genaidss/genaidss/internal/export"
	"github.com/genaidss/genaidss/internal/session"
	"github.com/genaidss/genaidss/pkg/config"
)

func newUICmd() *cobra.Command {
	var (
		catalogPath string
		port        string
	)

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Start a local API server for the genaidss web UI",
		Long: `Starts an HTTP server on localhost that holds one wizard session and
serves the wizard API. Point the browser UI at this server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd.Context(), catalogPath, port)
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Path to a catalog YAML/JSON file (default: built-in catalog)")
	cmd.Flags().StringVar(&port, "port", "8700", "Port to serve on")

	return cmd
}

func runUI(ctx context.Context, catalogPath, port string) error {
	cfg := loadConfig()
	cfg.CatalogPath = firstNonEmpty(catalogPath, cfg.CatalogPath)
	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	cat, err := config.LoadCatalog(cfg)
	if err != nil {
		return err
	}
	sess := session.New(cat, session.Options{
		RequireValidWeights: cfg.Wizard.RequireValidWeights,
		RequireFullRatings:  cfg.Wizard.RequireFullRatings,
	}, logger)

	var exporter *export.Service
	if sink, err := export.NewSink(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: export disabled: %v\n", err)
	} else {
		exporter = export.NewService(sink, cfg.Export.Prefix, logger)
	}

	h := api.NewHandler(sess, api.HandlerOptions{
		Exporter:          exporter,
		DefaultDepartment: cfg.Wizard.DefaultDepartment,
		Logger:            logger,
	})
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           api.NewRouter(h, cfg.Server.AllowedOrigin, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Fprintf(os.Stderr, "genaidss API server\n")
	fmt.Fprintf(os.Stderr, "  Catalog:    %s\n", firstNonEmpty(cfg.CatalogPath, "built-in"))
	fmt.Fprintf(os.Stderr, "  Session:    %s\n", sess.ID())
	fmt.Fprintf(os.Stderr, "  Listening:  http://localhost:%s\n", port)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown error", zap.Error(err))
	}
	return nil
}
