package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

type Config struct {
	AppEnv          string  `envconfig:"APP_ENV"`
	Port            int     `envconfig:"PORT" default:"8000" validate:"min=1,max=65535"`
	SentryDSN       string  `envconfig:"SENTRY_DSN"`
	AllowOrigins    string  `envconfig:"ALLOW_ORIGINS"`
	RateLimit       float64 `envconfig:"RATE_LIMIT" default:"0" validate:"min=0"`
	SearchCacheSize int     `envconfig:"SEARCH_CACHE_SIZE" default:"16384" validate:"min=0"`
	CatalogSource   string  `envconfig:"CATALOG_SOURCE" default:"s3" validate:"oneof=s3 postgres"`

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
		Format string `envconfig:"LOG_FORMAT" default:"json" validate:"oneof=json text"`
	}
	DB struct {
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT" default:"5432"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	Storage StorageEnv
}

// StorageEnv is the raw object store environment. Unset and empty values
// are equivalent; see ResolveStorage for how they combine.
type StorageEnv struct {
	LocalstackHost string `envconfig:"LOCALSTACK_SERVICE_HOST"`
	LocalstackPort string `envconfig:"LOCALSTACK_SERVICE_PORT"`
	EndpointURL    string `envconfig:"AWS_ENDPOINT_URL"`
	Bucket         string `envconfig:"AWS_STORAGE_BUCKET_NAME"`
	ForcePathStyle bool   `envconfig:"AWS_S3_FORCE_PATH_STYLE"`
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}

// AllowedOrigins splits ALLOW_ORIGINS on commas. Blank entries are dropped.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
