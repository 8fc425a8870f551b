package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agri-market/internal/api"
	"agri-market/internal/config"
	"agri-market/internal/data"
	"agri-market/internal/demographics"
	"agri-market/internal/logging"
	"agri-market/internal/metrics"
	"agri-market/internal/notify"

	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", os.Getenv("AGRI_CONFIG"), "path to YAML config (optional)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "agri-api: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Logging, os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, cache := buildSource(cfg, logger)
	store := data.NewStore(source, logger)
	m := metrics.New()

	ds, err := store.Reload(ctx)
	m.ObserveReload(recordCount(ds), err)
	if err != nil {
		// keep serving; /health reports loading until a refresh succeeds
		logger.Error("initial load failed", slog.String("error", err.Error()))
	}

	page := demographics.NewPage(cfg.Demographics.LoadingDelay, logger)
	defer page.Close()

	hub := notify.NewHub(logger, cfg.CORS.AllowedOrigins)
	notifier := notify.Multi{notify.NewLogNotifier(logger), hub}

	router := api.NewRouter(cfg, api.Deps{
		Store:    store,
		Page:     page,
		Notifier: notifier,
		Hub:      hub,
		Metrics:  m,
		Logger:   logger,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	if cache != nil {
		g.Go(func() error {
			pruneCache(gctx, cache, cfg.Data.CacheTTL, logger)
			return nil
		})
	}
	g.Go(func() error {
		logger.Info("starting API server",
			slog.String("addr", srv.Addr),
			slog.String("source", store.SourceName()),
			slog.String("env", cfg.Server.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func buildSource(cfg *config.Config, logger *slog.Logger) (data.Source, *data.ResponseCache) {
	switch cfg.Data.Source {
	case config.SourceFile:
		return data.NewFileSource(cfg.Data.FilePath), nil
	case config.SourceRemote:
		cache := data.NewResponseCache(cfg.Data.CacheTTL)
		return data.NewRemoteSource(cfg.Data.RemoteURL, cfg.Data.APIKey, cache, logger), cache
	default:
		return data.NewStaticSource(), nil
	}
}

func pruneCache(ctx context.Context, cache *data.ResponseCache, ttl time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := cache.Prune(); n > 0 {
				logger.Debug("pruned cache entries", slog.Int("removed", n))
			}
		}
	}
}

func recordCount(ds *data.Dataset) int {
	if ds == nil {
		return 0
	}
	return len(ds.Records)
}
