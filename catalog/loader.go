// Package catalog loads the movie catalog from an object store.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"moviesearch/errs"
	"moviesearch/movie"
	"moviesearch/pkg/logger"
	"moviesearch/pkg/metrics"
)

var (
	ErrNoCatalog = errs.Errorf(errs.ENOTFOUND, "no readable catalog object")
	ErrNotUTF8   = errs.Errorf(errs.EINVALID, "catalog is not valid utf-8")
)

// Decode parses a catalog document: a UTF-8 JSON array of movies.
// A JSON null is rejected; an empty array is a valid, empty catalog.
func Decode(data []byte) (movie.Catalog, error) {
	if !utf8.Valid(data) {
		return nil, ErrNotUTF8
	}

	var catalog movie.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, errs.Errorf(errs.EINVALID, "catalog is not a movie list: %v", err)
	}
	if catalog == nil {
		return nil, errs.Errorf(errs.EINVALID, "catalog is null")
	}

	return catalog, nil
}

// ObjectStore lists and opens the objects of one bucket.
type ObjectStore interface {
	Keys(ctx context.Context) ([]string, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// Loader reads the first object of the store that decodes as a movie list.
// Every failure is recovered: the next key is tried, and when none works
// an empty catalog is returned together with the cause.
type Loader struct {
	store  ObjectStore
	out    io.Writer
	logger *slog.Logger
}

// NewLoader creates a Loader. Operational lines are written verbatim to out.
func NewLoader(store ObjectStore, out io.Writer, l *slog.Logger) *Loader {
	if out == nil {
		out = io.Discard
	}
	if l == nil {
		l = logger.NOOP
	}
	return &Loader{
		store:  store,
		out:    out,
		logger: l,
	}
}

func (l *Loader) LoadCatalog(ctx context.Context) (movie.Catalog, error) {
	keys, err := l.store.Keys(ctx)
	if err != nil {
		fmt.Fprintln(l.out, "Bucket not found")
		metrics.CatalogLoadFailures.WithLabelValues("list").Inc()
		l.logger.ErrorContext(ctx, "cannot list catalog objects", "error", err)
		return movie.Catalog{}, err
	}

	for _, key := range keys {
		fmt.Fprintln(l.out, key)

		catalog, err := l.readObject(ctx, key)
		if err != nil {
			continue
		}

		fmt.Fprintln(l.out, "Loaded")
		metrics.CatalogMovies.Set(float64(len(catalog)))
		l.logger.InfoContext(ctx, "catalog loaded", "key", key, "movies", len(catalog))
		return catalog, nil
	}

	l.logger.WarnContext(ctx, "no catalog object could be loaded", "objects", len(keys))
	return movie.Catalog{}, ErrNoCatalog
}

func (l *Loader) readObject(ctx context.Context, key string) (movie.Catalog, error) {
	body, err := l.store.Get(ctx, key)
	if err != nil {
		return nil, l.fail(ctx, "get", "Error reading data", key, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, l.fail(ctx, "read", "Error reading contents", key, err)
	}

	catalog, err := Decode(data)
	if errors.Is(err, ErrNotUTF8) {
		return nil, l.fail(ctx, "decode", "Error decoding data", key, fmt.Errorf("object %q: %w", key, err))
	}
	if err != nil {
		return nil, l.fail(ctx, "parse", "Error parsing data", key, fmt.Errorf("object %q: %w", key, err))
	}

	return catalog, nil
}

func (l *Loader) fail(ctx context.Context, stage, line, key string, err error) error {
	fmt.Fprintln(l.out, line)
	metrics.CatalogLoadFailures.WithLabelValues(stage).Inc()
	l.logger.WarnContext(ctx, "skipping catalog object", "key", key, "stage", stage, "error", err)
	return err
}
