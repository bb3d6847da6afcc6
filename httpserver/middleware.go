package httpserver

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"moviesearch/pkg/metrics"
)

// requestTiming records request latency by route pattern, so query strings
// do not explode label cardinality.
func requestTiming() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status, _ = statusOf(err)
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}

			metrics.RequestDuration.
				WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}
