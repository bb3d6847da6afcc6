package movie

import (
	"math"
	"strings"
)

const (
	DefaultPage     = 0
	DefaultPageSize = 10
)

// Query holds the conjunctive filters and pagination of a search.
// Empty text filters and a zero Year do not filter.
type Query struct {
	TitleContains string
	Year          int32
	Cast          string
	Genre         string
	Page          int
	PageSize      int
}

// SearchResponse is one page of search hits.
type SearchResponse struct {
	Items    []Movie `json:"items"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
	HasMore  bool    `json:"has_more"`
}

// Matches reports whether m satisfies every filter set in q.
func (q Query) Matches(m *Movie) bool {
	if q.TitleContains != "" && !strings.Contains(m.Title, q.TitleContains) {
		return false
	}
	if q.Year != 0 && m.Year != q.Year {
		return false
	}
	if q.Cast != "" && !m.Cast.Contains(q.Cast) {
		return false
	}
	if q.Genre != "" && !m.Genres.Contains(q.Genre) {
		return false
	}
	return true
}

// normalize replaces out of range pagination with the defaults.
func (q Query) normalize() Query {
	if q.Page < 0 {
		q.Page = DefaultPage
	}
	if q.PageSize < 0 {
		q.PageSize = DefaultPageSize
	}
	return q
}

// offset returns the number of matches to skip, or false when it
// overflows and the page cannot contain anything.
func (q Query) offset() (int, bool) {
	if q.PageSize == 0 || q.Page == 0 {
		return 0, true
	}
	if q.Page > math.MaxInt/q.PageSize {
		return 0, false
	}
	return q.Page * q.PageSize, true
}

// Search scans catalog in order and returns the requested page of
// projected matches. HasMore is set when at least one further match
// exists after the page.
func Search(catalog Catalog, q Query) SearchResponse {
	q = q.normalize()
	resp := SearchResponse{
		Items:    make([]Movie, 0, min(q.PageSize, len(catalog))),
		Page:     q.Page,
		PageSize: q.PageSize,
	}

	skip, ok := q.offset()
	if !ok {
		return resp
	}

	for i := range catalog {
		m := &catalog[i]
		if !q.Matches(m) {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		if len(resp.Items) == q.PageSize {
			resp.HasMore = true
			break
		}
		resp.Items = append(resp.Items, m.Projection())
	}

	return resp
}
