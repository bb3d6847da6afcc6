package movie

import (
	"encoding/json"
	"sort"
)

// Movie is one catalog entry. Cast and Genres only carry membership.
type Movie struct {
	Title  string `json:"title"`
	Year   int32  `json:"year"`
	Cast   Set    `json:"cast"`
	Genres Set    `json:"genres"`
}

// Projection is the form returned by search listings: title and year only,
// with empty cast and genres.
func (m Movie) Projection() Movie {
	return Movie{
		Title:  m.Title,
		Year:   m.Year,
		Cast:   Set{},
		Genres: Set{},
	}
}

// Catalog is the ordered list of movies. Order comes from the source and
// drives pagination.
type Catalog []Movie

// Set is a collection of unique strings. It is encoded as a JSON array;
// duplicates in the input collapse.
type Set map[string]struct{}

func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

func (s Set) Contains(item string) bool {
	_, ok := s[item]
	return ok
}

// Slice returns the members in lexical order. Never nil.
func (s Set) Slice() []string {
	items := make([]string, 0, len(s))
	for item := range s {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

func (s *Set) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = NewSet(items...)
	return nil
}
