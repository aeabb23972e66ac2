// Command genaidssd is the genaidss wizard service.
// It serves the wizard API for the browser UI, Prometheus metrics, and
// health checks.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/genaidss/genaidss/internal/api"
	"github.com/genaidss/genaidss/internal/export"
	"github.com/genaidss/genaidss/internal/session"
	"github.com/genaidss/genaidss/pkg/config"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: search for .genaidss/config.yaml)")
	flag.Parse()

	_ = godotenv.Load(".env")

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("service exited with error", zap.Error(err))
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = config.FindConfigFile(wd)
		}
	}
	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	config.ApplyEnv(cfg)
	return cfg, nil
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat, err := config.LoadCatalog(cfg)
	if err != nil {
		return err
	}

	sink, err := export.NewSink(ctx, cfg)
	if err != nil {
		return err
	}
	exporter := export.NewService(sink, cfg.Export.Prefix, logger.Named("export"))

	sess := session.New(cat, session.Options{
		RequireValidWeights: cfg.Wizard.RequireValidWeights,
		RequireFullRatings:  cfg.Wizard.RequireFullRatings,
	}, logger.Named("session"))

	h := api.NewHandler(sess, api.HandlerOptions{
		Exporter:          exporter,
		DefaultDepartment: cfg.Wizard.DefaultDepartment,
		Logger:            logger.Named("api"),
	})

	apiSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewRouter(h, cfg.Server.AllowedOrigin, logger.Named("http")),
		ReadHeaderTimeout: 10 * time.Second,
	}
	metricsSrv := &http.Server{
		Addr:              cfg.Server.MetricsAddr,
		Handler:           api.NewMetricsRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	serve := func(name string, srv *http.Server) {
		logger.Info("listening", zap.String("server", name), zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}
	go serve("api", apiSrv)
	go serve("metrics", metricsSrv)

	logger.Info("genaidssd started",
		zap.String("session", sess.ID()),
		zap.String("catalog", firstNonEmpty(cfg.CatalogPath, "built-in")),
		zap.String("export_sink", cfg.Export.Sink),
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, srv := range []*http.Server{apiSrv, metricsSrv} {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown error", zap.String("addr", srv.Addr), zap.Error(err))
		}
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
