package httpserver

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"moviesearch/movie"
)

// searchQuery reads the search parameters. Malformed numbers never fail the
// request; they fall back to the defaults.
func searchQuery(c echo.Context) movie.Query {
	return movie.Query{
		TitleContains: c.QueryParam("title_contains"),
		Year:          parseYear(c.QueryParam("year")),
		Cast:          c.QueryParam("cast"),
		Genre:         c.QueryParam("genre"),
		Page:          parseCount(c.QueryParam("page"), movie.DefaultPage),
		PageSize:      parseCount(c.QueryParam("page_size"), movie.DefaultPageSize),
	}
}

// parseYear returns 0, meaning no year filter, unless raw is a 32-bit integer.
func parseYear(raw string) int32 {
	year, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0
	}
	return int32(year)
}

// parseCount accepts non-negative integers only.
func parseCount(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
