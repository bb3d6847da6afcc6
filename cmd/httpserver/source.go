package main

import (
	"context"
	"io"
	"log/slog"
	"strconv"

	"moviesearch/catalog"
	"moviesearch/movie"
	"moviesearch/pkg/config"
	"moviesearch/postgres"
	"moviesearch/s3"
)

// sourceFunc adapts a failure into a CatalogSource that yields an empty
// catalog, so startup never aborts on storage problems.
type sourceFunc func(ctx context.Context) (movie.Catalog, error)

func (f sourceFunc) LoadCatalog(ctx context.Context) (movie.Catalog, error) {
	return f(ctx)
}

func failedSource(err error) movie.CatalogSource {
	return sourceFunc(func(context.Context) (movie.Catalog, error) {
		return movie.Catalog{}, err
	})
}

// newCatalogSource picks the catalog backend from CATALOG_SOURCE. The returned
// close func releases whatever the source opened.
func newCatalogSource(ctx context.Context, cfg *config.Config, out io.Writer, log *slog.Logger) (movie.CatalogSource, func()) {
	noop := func() {}

	if cfg.CatalogSource == "postgres" {
		db, err := postgres.NewConnection(postgres.Options{
			DBName:   cfg.DB.Name,
			DBUser:   cfg.DB.User,
			Password: cfg.DB.Pass,
			Host:     cfg.DB.Host,
			Port:     strconv.Itoa(cfg.DB.Port),
			SSLMode:  cfg.DB.EnableSSL,
		})
		if err != nil {
			log.Error("Cannot open postgres connection", "error", err)
			return failedSource(err), noop
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return postgres.NewCatalogRepository(db, log), closeDB
	}

	storage := config.ResolveStorage(cfg.Storage, out)
	client, err := s3.NewClient(ctx, s3.Options{
		Endpoint:     storage.Endpoint,
		UsePathStyle: storage.UsePathStyle,
	})
	if err != nil {
		log.Error("Cannot create s3 client", "error", err)
		return failedSource(err), noop
	}

	return catalog.NewLoader(s3.NewBucket(client, storage.Bucket), out, log), noop
}
