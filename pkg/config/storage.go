package config

import (
	"fmt"
	"io"
)

// Storage is the resolved object store location.
type Storage struct {
	// Endpoint overrides the client's default endpoint when non-empty.
	Endpoint     string
	Bucket       string
	UsePathStyle bool
}

// ResolveStorage combines the storage environment into a Storage and prints
// one "<VAR>: <value>" line per recognized variable to out. A local
// emulator host takes precedence over AWS_ENDPOINT_URL; the emulator port
// is used as is, so an empty port leaves a trailing colon. It never fails.
func ResolveStorage(env StorageEnv, out io.Writer) Storage {
	if env.LocalstackHost != "" {
		fmt.Fprintf(out, "LOCALSTACK_SERVICE_HOST: %s\n", env.LocalstackHost)
	}
	if env.LocalstackPort != "" {
		fmt.Fprintf(out, "LOCALSTACK_SERVICE_PORT: %s\n", env.LocalstackPort)
	}

	endpoint := env.EndpointURL
	if env.LocalstackHost != "" {
		endpoint = fmt.Sprintf("http://%s:%s", env.LocalstackHost, env.LocalstackPort)
	}
	if endpoint != "" {
		fmt.Fprintf(out, "AWS_ENDPOINT_URL: %s\n", endpoint)
	}

	if env.Bucket != "" {
		fmt.Fprintf(out, "AWS_STORAGE_BUCKET_NAME: %s\n", env.Bucket)
	}

	return Storage{
		Endpoint:     endpoint,
		Bucket:       env.Bucket,
		UsePathStyle: env.ForcePathStyle || endpoint != "",
	}
}
