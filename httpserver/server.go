package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"moviesearch/errs"
	"moviesearch/movie"
	"moviesearch/pkg/config"
	"moviesearch/pkg/logger"
	"moviesearch/pkg/metrics"
	"moviesearch/pkg/sentry"
)

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS. Empty disables CORS.
	AllowOrigins []string

	// RateLimit is the per-client request rate. Zero disables limiting.
	RateLimit float64

	MovieService movie.Service

	Logger *slog.Logger
}

func Default(cfg *config.Config) *Server {
	s := Server{
		Router:       echo.New(),
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		AllowOrigins: cfg.AllowedOrigins(),
		RateLimit:    cfg.RateLimit,
		Logger:       logger.NOOP,
	}

	s.Router.HideBanner = true
	s.Router.HTTPErrorHandler = s.handleError
	s.RegisterGlobalMiddlewares()

	s.RegisterMovieRoutes()
	s.RegisterHealthRoutes()
	s.RegisterMetricsRoutes()
	return &s
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(requestTiming())

	if s.RateLimit > 0 {
		s.Router.Use(middleware.RateLimiter(
			middleware.NewRateLimiterMemoryStore(rate.Limit(s.RateLimit)),
		))
	}

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

func (s *Server) RegisterMetricsRoutes() {
	metrics.Init()
	s.Router.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

// handleError maps application errors to HTTP status codes. Only 5xx errors
// are reported to Sentry.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	// client went away; nothing to answer
	if errors.Is(err, context.Canceled) {
		s.Logger.Debug("request cancelled", "request_id", requestID(c))
		return
	}

	status, message := statusOf(err)

	s.Logger.Error(err.Error(),
		"request_id", requestID(c),
		"status", status,
		"path", c.Path(),
	)
	if status >= http.StatusInternalServerError {
		sentry.WithContext(c).Error(err)
	}

	if werr := writeError(c, status, message, err); werr != nil {
		s.Logger.Error("cannot write error response", "error", werr)
	}
}

func statusOf(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			return he.Code, msg
		}
		return he.Code, http.StatusText(he.Code)
	}

	switch errs.ErrorCode(err) {
	case errs.EINVALID:
		return http.StatusBadRequest, errs.ErrorMessage(err)
	case errs.ENOTFOUND:
		return http.StatusNotFound, errs.ErrorMessage(err)
	case errs.ECONFLICT:
		return http.StatusConflict, errs.ErrorMessage(err)
	case errs.EUNAUTHORIZED:
		return http.StatusUnauthorized, errs.ErrorMessage(err)
	case errs.ENOTIMPLEMENTED:
		return http.StatusNotImplemented, errs.ErrorMessage(err)
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
