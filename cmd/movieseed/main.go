package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"moviesearch/catalog"
	"moviesearch/movie"
	"moviesearch/pkg/config"
	"moviesearch/postgres"
	"moviesearch/s3"
)

func main() {
	var (
		filePath string
		fileURL  string
		key      string
		target   string
		region   string
	)

	flag.StringVar(&filePath, "file", "", "Path to the catalog JSON file")
	flag.StringVar(&fileURL, "url", "", "Download the catalog JSON from this URL instead of -file")
	flag.StringVar(&key, "key", "db.json", "Object key for -target s3")
	flag.StringVar(&target, "target", "s3", "Where to seed the catalog: s3 or postgres")
	flag.StringVar(&region, "region", s3.DefaultRegion, "Region used when the bucket has to be created")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	data, err := readSource(ctx, filePath, fileURL)
	if err != nil {
		slog.Error("cannot read catalog", "error", err)
		os.Exit(1)
	}

	movies, err := catalog.Decode(data)
	if err != nil {
		slog.Error("catalog is not valid", "error", err)
		os.Exit(1)
	}

	switch target {
	case "s3":
		err = seedBucket(ctx, cfg, key, region, data)
	case "postgres":
		err = seedDatabase(ctx, cfg, movies)
	default:
		err = fmt.Errorf("unknown target %q", target)
	}
	if err != nil {
		slog.Error("seed failed", "target", target, "error", err)
		os.Exit(1)
	}

	slog.Info("seed completed", "target", target, "movies", len(movies))
}

func readSource(ctx context.Context, filePath, fileURL string) ([]byte, error) {
	switch {
	case fileURL != "":
		return downloadFile(ctx, fileURL)
	case filePath != "":
		return os.ReadFile(filePath)
	default:
		return nil, errors.New("one of -file or -url is required")
	}
}

func downloadFile(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// seedBucket uploads the raw document unchanged, so the server reads back
// exactly what was validated.
func seedBucket(ctx context.Context, cfg *config.Config, key, region string, data []byte) error {
	storage := config.ResolveStorage(cfg.Storage, os.Stdout)
	if storage.Bucket == "" {
		return errors.New("AWS_STORAGE_BUCKET_NAME is empty")
	}

	client, err := s3.NewClient(ctx, s3.Options{
		Region:       region,
		Endpoint:     storage.Endpoint,
		UsePathStyle: storage.UsePathStyle,
	})
	if err != nil {
		return err
	}

	bucket := s3.NewBucket(client, storage.Bucket)
	if err := bucket.EnsureBucket(ctx, region); err != nil {
		return err
	}

	return bucket.Put(ctx, key, bytes.NewReader(data), "application/json")
}

func seedDatabase(ctx context.Context, cfg *config.Config, movies movie.Catalog) error {
	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		return fmt.Errorf("cannot open postgres connection: %w", err)
	}

	return postgres.NewCatalogRepository(db, slog.Default()).ImportCatalog(ctx, movies)
}
