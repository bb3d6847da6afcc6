package sentry

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	sentrygo "github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func disable(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "local")
	t.Setenv("SENTRY_DSN", "")
}

func enable(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "production")
	t.Setenv("SENTRY_DSN", "https://public@sentry.example.com/1")
	assert.NoError(t, Init("https://public@sentry.example.com/1", "test"))
	t.Cleanup(func() { sentrygo.Flush(0) })
}

func TestSentry_Builder(t *testing.T) {
	c := echo.New().NewContext(nil, nil)
	err := errors.New("bucket movies not found")
	extras := map[string]interface{}{"key": "db.json"}
	tags := map[string]string{"stage": "list"}
	values := map[string]sentrygo.Context{"catalog": {"movies": 0}}

	s := new(Sentry)
	result := s.WithContext(c).
		WithError(err).
		WithMessage("catalog load failed").
		WithLevel(sentrygo.LevelWarning).
		WithExtras(extras).
		WithTags(tags).
		WithContextValues(values)

	assert.Same(t, s, result)
	assert.Equal(t, c, s.context)
	assert.Equal(t, err, s.error)
	assert.Equal(t, "catalog load failed", s.message)
	assert.Equal(t, sentrygo.LevelWarning, s.level)
	assert.Equal(t, extras, s.extras)
	assert.Equal(t, tags, s.tags)
	assert.Equal(t, values, s.contextValues)
}

func TestSentry_Disabled(t *testing.T) {
	tests := []struct {
		name string
		env  string
		dsn  string
	}{
		{name: "local environment", env: "local", dsn: "https://public@sentry.example.com/1"},
		{name: "empty dsn", env: "production", dsn: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", tt.env)
			t.Setenv("SENTRY_DSN", tt.dsn)

			assert.False(t, enabled())
			assert.NotPanics(t, func() {
				new(Sentry).WithMessage("ignored").WithLevel(sentrygo.LevelInfo).sendMessage()
				new(Sentry).WithError(errors.New("ignored")).WithLevel(sentrygo.LevelError).sendError()
			})
		})
	}
}

func TestSentry_Send(t *testing.T) {
	enable(t)
	assert.True(t, enabled())

	req := httptest.NewRequest(http.MethodGet, "/?title=matrix", nil)
	rec := httptest.NewRecorder()
	rec.Header().Set(echo.HeaderXRequestID, "req-1")
	c := echo.New().NewContext(req, rec)

	assert.NotPanics(t, func() {
		WithContext(c).WithTags(map[string]string{"route": "/"}).Error(errors.New("search failed"))
		WithExtras(map[string]interface{}{"movies": 3}).Info("catalog loaded")
	})
}

func TestSentry_LevelHelpers(t *testing.T) {
	disable(t)
	orig := FlushTime
	FlushTime = 0
	t.Cleanup(func() { FlushTime = orig })

	assert.NotPanics(t, func() {
		Debug("debug")
		Debugf("debug %d", 1)
		Info("info")
		Infof("info %s", "x")
		Warning("warning")
		Warningf("warning %s", "x")
		Error(errors.New("error"))
		Errorf("error %s", "x")
		Fatal(errors.New("fatal"))
		Fatalf("fatal %s", "x")
	})
}

func TestSentry_GetHub(t *testing.T) {
	t.Run("falls back to the current hub", func(t *testing.T) {
		assert.Equal(t, sentrygo.CurrentHub(), new(Sentry).getHub())
	})

	t.Run("prefers the hub stored by the echo middleware", func(t *testing.T) {
		c := echo.New().NewContext(nil, nil)
		hub := sentrygo.CurrentHub().Clone()
		c.Set("sentry", hub)

		assert.Same(t, hub, WithContext(c).getHub())
	})
}

func TestSentry_ConfigScope(t *testing.T) {
	s := WithTags(map[string]string{"stage": "parse"}).
		WithExtras(map[string]interface{}{"key": "db.json"}).
		WithContextValues(map[string]sentrygo.Context{"catalog": {"movies": 0}}).
		WithLevel(sentrygo.LevelError)

	scope := sentrygo.NewScope()
	assert.NotPanics(t, func() { s.configScope(scope) })
}

func TestInit_EmptyDSN(t *testing.T) {
	assert.NoError(t, Init("", "local"))
}
