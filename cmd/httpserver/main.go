package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"

	"moviesearch/httpserver"
	"moviesearch/movie"
	"moviesearch/pkg/config"
	"moviesearch/pkg/logger"
	"moviesearch/pkg/metrics"
	"moviesearch/pkg/sentry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	slog.SetDefault(log)

	if err := sentry.Init(cfg.SentryDSN, cfg.AppEnv); err != nil {
		log.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The catalog is loaded once, before the listener accepts traffic.
	// Load failures are logged by the sources and leave an empty catalog.
	source, closeSource := newCatalogSource(ctx, cfg, os.Stdout, log)
	catalog, err := source.LoadCatalog(ctx)
	closeSource()
	if err != nil {
		log.Warn("serving empty catalog", "source", cfg.CatalogSource, "error", err)
		sentry.WithTags(map[string]string{"source": cfg.CatalogSource}).Warningf("catalog load failed: %v", err)
	}

	usecase, err := movie.NewUsecase(movie.NewSnapshot(catalog), cfg.SearchCacheSize)
	if err != nil {
		log.Error("Cannot create movie usecase", "error", err)
		os.Exit(1)
	}

	server := httpserver.Default(cfg)
	server.Logger = log
	server.MovieService = usecase

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started!", "addr", server.Addr, "movies", usecase.CatalogSize())
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped with error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	}
}
