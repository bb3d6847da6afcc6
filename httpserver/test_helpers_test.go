package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"moviesearch/httpserver"
	"moviesearch/movie"
	"moviesearch/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:         8080,
		AllowOrigins: "*",
	}
}

func testCatalog() movie.Catalog {
	return movie.Catalog{
		{Title: "The Matrix", Year: 1999, Cast: movie.NewSet("Keanu"), Genres: movie.NewSet("Sci-Fi", "Action")},
		{Title: "Matrix Reloaded", Year: 2003, Cast: movie.NewSet("Keanu"), Genres: movie.NewSet("Sci-Fi", "Action")},
		{Title: "Amélie", Year: 2001, Cast: movie.NewSet("Audrey"), Genres: movie.NewSet("Romance")},
		{Title: "Interstellar", Year: 2014, Cast: movie.NewSet("Matthew"), Genres: movie.NewSet("Sci-Fi", "Drama")},
		{Title: "The Godfather", Year: 1972, Cast: movie.NewSet("Al", "Marlon"), Genres: movie.NewSet("Crime", "Drama")},
	}
}

// MustCreateServer wires a real usecase over catalog into the default server.
func MustCreateServer(t testing.TB, catalog movie.Catalog) *httpserver.Server {
	t.Helper()

	uc, err := movie.NewUsecase(movie.NewSnapshot(catalog), 64)
	require.NoError(t, err)

	server := httpserver.Default(testConfig())
	server.MovieService = uc
	return server
}

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) Search(ctx context.Context, q movie.Query) (movie.SearchResponse, error) {
	args := m.Called(ctx, q)
	resp, _ := args.Get(0).(movie.SearchResponse)
	return resp, args.Error(1)
}

func (m *MockMovieService) CatalogSize() int {
	return m.Called().Int(0)
}

// searchBody mirrors the wire format of the search route.
type searchBody struct {
	Items []struct {
		Title  string   `json:"title"`
		Year   int32    `json:"year"`
		Cast   []string `json:"cast"`
		Genres []string `json:"genres"`
	} `json:"items"`
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	HasMore  bool `json:"has_more"`
}

func (b searchBody) titles() []string {
	out := make([]string, 0, len(b.Items))
	for _, item := range b.Items {
		out = append(out, item.Title)
	}
	return out
}

func decodeSearch(t testing.TB, rec *httptest.ResponseRecorder) searchBody {
	t.Helper()
	var body searchBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func decodeAPIResponse(t testing.TB, rec *httptest.ResponseRecorder) httpserver.APIResponse {
	t.Helper()
	var resp httpserver.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}
