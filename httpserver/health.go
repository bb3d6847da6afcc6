package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type healthResult struct {
	Status string `json:"status"`
	Movies int    `json:"movies"`
}

func (s *Server) RegisterHealthRoutes() {
	s.Router.GET("/healthcheck", s.healthCheck)
}

// healthCheck godoc
// @Summary Health Check
// @Description Check if server is alive and report the catalog size
// @Tags health
// @Success 200 {object} APIResponse
// @Router /healthcheck [get]
func (s *Server) healthCheck(c echo.Context) error {
	result := healthResult{Status: "OK"}
	if s.MovieService != nil {
		result.Movies = s.MovieService.CatalogSize()
	}
	return writeSuccess(c, http.StatusOK, result)
}
