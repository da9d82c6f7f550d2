package storage

import (
	"errors"
	"fmt"

	convCtx "github.com/sofmon/backoffice/lib/ctx"
)

// ErrObjectNotFound is returned by Load when nothing is stored at the path.
var ErrObjectNotFound = errors.New("storage object not found")

// Provider is a read-only storage backend.
type Provider interface {
	// Load retrieves bytes from the specified path.
	Load(ctx convCtx.Context, path string) (data []byte, err error)

	// Exists checks if an object exists at the specified path.
	Exists(ctx convCtx.Context, path string) (exists bool, err error)

	// Name returns the provider identifier (e.g., "gcs", "file").
	Name() string
}

// ProviderFactory creates a provider from a bucket and credentials.
// For the file provider the bucket is the root folder and credentials are ignored.
type ProviderFactory func(bucket string, credentials []byte) (Provider, error)

var registry = map[string]ProviderFactory{}

// RegisterProvider registers a provider factory by name.
// Called during init() of each provider implementation.
func RegisterProvider(name string, factory ProviderFactory) {
	registry[name] = factory
}

func NewProvider(name string, bucket string, credentials []byte) (Provider, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown storage provider: %s", name)
	}
	return factory(bucket, credentials)
}
