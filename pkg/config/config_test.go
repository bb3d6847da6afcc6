// nolint: funlen
package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviesearch/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("loads config from environment variables", func(t *testing.T) {
		envVars := map[string]string{
			"APP_ENV":                 "test",
			"PORT":                    "8080",
			"SENTRY_DSN":              "https://test@sentry.io/123",
			"ALLOW_ORIGINS":           "*",
			"RATE_LIMIT":              "50",
			"SEARCH_CACHE_SIZE":       "128",
			"CATALOG_SOURCE":          "postgres",
			"LOG_LEVEL":               "debug",
			"LOG_FORMAT":              "text",
			"DB_NAME":                 "movies",
			"DB_HOST":                 "localhost",
			"DB_PORT":                 "5433",
			"DB_USER":                 "reader",
			"DB_PASS":                 "secret",
			"ENABLE_SSL":              "true",
			"LOCALSTACK_SERVICE_HOST": "localstack",
			"LOCALSTACK_SERVICE_PORT": "4566",
			"AWS_ENDPOINT_URL":        "http://minio:9000",
			"AWS_STORAGE_BUCKET_NAME": "movies",
			"AWS_S3_FORCE_PATH_STYLE": "true",
		}
		for key, value := range envVars {
			t.Setenv(key, value)
		}

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "https://test@sentry.io/123", cfg.SentryDSN)
		assert.Equal(t, "*", cfg.AllowOrigins)
		assert.Equal(t, 50.0, cfg.RateLimit)
		assert.Equal(t, 128, cfg.SearchCacheSize)
		assert.Equal(t, "postgres", cfg.CatalogSource)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "text", cfg.Log.Format)
		assert.Equal(t, "movies", cfg.DB.Name)
		assert.Equal(t, "localhost", cfg.DB.Host)
		assert.Equal(t, 5433, cfg.DB.Port)
		assert.Equal(t, "reader", cfg.DB.User)
		assert.Equal(t, "secret", cfg.DB.Pass)
		assert.True(t, cfg.DB.EnableSSL)
		assert.Equal(t, "localstack", cfg.Storage.LocalstackHost)
		assert.Equal(t, "4566", cfg.Storage.LocalstackPort)
		assert.Equal(t, "http://minio:9000", cfg.Storage.EndpointURL)
		assert.Equal(t, "movies", cfg.Storage.Bucket)
		assert.True(t, cfg.Storage.ForcePathStyle)
	})

	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 8000, cfg.Port)
		assert.Equal(t, 16384, cfg.SearchCacheSize)
		assert.Equal(t, "s3", cfg.CatalogSource)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Zero(t, cfg.RateLimit)
	})

	t.Run("handles invalid port number", func(t *testing.T) {
		t.Setenv("PORT", "invalid")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("rejects out of range port", func(t *testing.T) {
		t.Setenv("PORT", "70000")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("rejects unknown catalog source", func(t *testing.T) {
		t.Setenv("CATALOG_SOURCE", "dynamodb")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("handles invalid boolean value", func(t *testing.T) {
		t.Setenv("ENABLE_SSL", "not-a-boolean")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})
}

func TestConfig_AllowedOrigins(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{name: "empty disables cors", raw: "", expected: nil},
		{name: "wildcard", raw: "*", expected: []string{"*"}},
		{name: "list is trimmed", raw: " https://a.example , https://b.example,, ", expected: []string{"https://a.example", "https://b.example"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{AllowOrigins: tt.raw}
			assert.Equal(t, tt.expected, cfg.AllowedOrigins())
		})
	}
}
