package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"moviesearch/movie"
	"moviesearch/pkg/logger"
	"moviesearch/pkg/metrics"
)

// MovieModel represents the database model for movies.
// Rows are read back in id order, which becomes catalog order.
type MovieModel struct {
	ID     uint           `gorm:"primaryKey"`
	Title  string         `gorm:"not null"`
	Year   int32          `gorm:"not null"`
	Cast   pq.StringArray `gorm:"column:cast;type:text[];not null"`
	Genres pq.StringArray `gorm:"type:text[];not null"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// CatalogRepository implements movie.CatalogSource on top of the movies table.
type CatalogRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB, l *slog.Logger) *CatalogRepository {
	if l == nil {
		l = logger.NOOP
	}
	return &CatalogRepository{db: db, logger: l}
}

func (r *CatalogRepository) LoadCatalog(ctx context.Context) (movie.Catalog, error) {
	var models []MovieModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		metrics.CatalogLoadFailures.WithLabelValues("query").Inc()
		r.logger.ErrorContext(ctx, "cannot query movies", "error", err)
		return movie.Catalog{}, fmt.Errorf("postgres: load catalog: %w", err)
	}

	catalog := make(movie.Catalog, len(models))
	for i, model := range models {
		catalog[i] = movie.Movie{
			Title:  model.Title,
			Year:   model.Year,
			Cast:   movie.NewSet(model.Cast...),
			Genres: movie.NewSet(model.Genres...),
		}
	}

	metrics.CatalogMovies.Set(float64(len(catalog)))
	r.logger.InfoContext(ctx, "catalog loaded", "movies", len(catalog))
	return catalog, nil
}

// ImportCatalog replaces the movies table with catalog in one transaction.
// Catalog order is kept through the id sequence.
func (r *CatalogRepository) ImportCatalog(ctx context.Context, catalog movie.Catalog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("TRUNCATE TABLE movies RESTART IDENTITY").Error; err != nil {
			return fmt.Errorf("postgres: truncate movies: %w", err)
		}
		if len(catalog) == 0 {
			return nil
		}

		models := make([]MovieModel, len(catalog))
		for i, m := range catalog {
			models[i] = MovieModel{
				Title:  m.Title,
				Year:   m.Year,
				Cast:   pq.StringArray(m.Cast.Slice()),
				Genres: pq.StringArray(m.Genres.Slice()),
			}
		}

		if err := tx.CreateInBatches(models, 500).Error; err != nil {
			return fmt.Errorf("postgres: insert movies: %w", err)
		}
		return nil
	})
}
