package movie

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"moviesearch/pkg/metrics"
)

type Service interface {
	Search(ctx context.Context, q Query) (SearchResponse, error)
	CatalogSize() int
}

// CatalogSource produces the catalog once at startup. A source that fails
// still returns a usable (possibly empty) catalog along with the error.
type CatalogSource interface {
	LoadCatalog(ctx context.Context) (Catalog, error)
}

// Usecase answers searches against a snapshot. Results are cached by query;
// the snapshot never changes so cached pages stay valid for the process
// lifetime. Cached responses are shared and must be treated as read-only.
type Usecase struct {
	snapshot *Snapshot
	cache    *lru.Cache[Query, SearchResponse]
	sf       singleflight.Group
}

// NewUsecase creates a search usecase. A cacheSize of zero or less disables caching.
func NewUsecase(s *Snapshot, cacheSize int) (*Usecase, error) {
	uc := &Usecase{snapshot: s}
	if cacheSize > 0 {
		c, err := lru.New[Query, SearchResponse](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("movie: create search cache: %w", err)
		}
		uc.cache = c
	}
	return uc, nil
}

func (uc *Usecase) Search(ctx context.Context, q Query) (SearchResponse, error) {
	if err := ctx.Err(); err != nil {
		return SearchResponse{}, err
	}

	q = q.normalize()
	if uc.cache == nil {
		return Search(uc.snapshot.Catalog(), q), nil
	}

	if resp, ok := uc.cache.Get(q); ok {
		metrics.CacheOperations.WithLabelValues("hit").Inc()
		return resp, nil
	}
	metrics.CacheOperations.WithLabelValues("miss").Inc()

	v, _, _ := uc.sf.Do(cacheKey(q), func() (interface{}, error) {
		resp := Search(uc.snapshot.Catalog(), q)
		uc.cache.Add(q, resp)
		return resp, nil
	})

	return v.(SearchResponse), nil
}

func (uc *Usecase) CatalogSize() int {
	return uc.snapshot.Len()
}

func cacheKey(q Query) string {
	return fmt.Sprintf("%q|%d|%q|%q|%d|%d", q.TitleContains, q.Year, q.Cast, q.Genre, q.Page, q.PageSize)
}
