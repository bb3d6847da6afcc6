package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"moviesearch/errs"
)

func (s *Server) RegisterMovieRoutes() {
	s.Router.GET("/", s.handleSearchMovies)
}

// handleSearchMovies godoc
// @Summary Search Movies
// @Description Filter the catalog by title substring, year, cast member and genre
// @Tags movies
// @Produce json
// @Param title_contains query string false "Case-sensitive title substring"
// @Param year query int false "Exact year, 0 = any"
// @Param cast query string false "Exact cast member"
// @Param genre query string false "Exact genre"
// @Param page query int false "0-based page, default 0"
// @Param page_size query int false "Page size, default 10"
// @Success 200 {object} movie.SearchResponse
// @Router / [get]
func (s *Server) handleSearchMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	resp, err := s.MovieService.Search(c.Request().Context(), searchQuery(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}
