package storage

import (
	"errors"
	"strings"

	convCfg "github.com/sofmon/backoffice/lib/cfg"
	convCtx "github.com/sofmon/backoffice/lib/ctx"
)

const configKeyCredentials convCfg.ConfigKey = "storage_credentials"

// joinPath combines root and path, handling edge cases with slashes.
// Returns path unchanged if root is empty.
func joinPath(root, path string) string {
	root = strings.Trim(root, "/")
	path = strings.TrimLeft(path, "/")
	if root == "" {
		return path
	}
	return root + "/" + path
}

// Storage reads objects from a Provider beneath an optional root path.
type Storage struct {
	provider Provider
	rootPath string
}

// New creates a Storage for bucket on the named provider. Credentials come
// from the "storage_credentials" config key when it is present.
func New(ctx convCtx.Context, providerName, bucket string) (s *Storage, err error) {
	ctx = ctx.WithScope("storage.New", "provider", providerName, "bucket", bucket)
	defer ctx.Exit(&err)

	credentials, err := convCfg.Bytes(configKeyCredentials)
	if errors.Is(err, convCfg.ErrKeyNotFound) {
		credentials, err = nil, nil
	}
	if err != nil {
		return
	}

	return NewWithCredentials(ctx, providerName, bucket, credentials)
}

func NewWithCredentials(ctx convCtx.Context, providerName, bucket string, credentials []byte) (s *Storage, err error) {
	ctx = ctx.WithScope("storage.NewWithCredentials", "provider", providerName, "bucket", bucket)
	defer ctx.Exit(&err)

	provider, err := NewProvider(providerName, bucket, credentials)
	if err != nil {
		return
	}

	s = &Storage{provider: provider}
	return
}

// NewWithProvider creates a Storage instance with a custom provider.
func NewWithProvider(provider Provider) *Storage {
	return &Storage{provider: provider}
}

// WithRootPath returns a new Storage whose paths are relative to rootPath.
func (s *Storage) WithRootPath(rootPath string) *Storage {
	return &Storage{
		provider: s.provider,
		rootPath: strings.Trim(joinPath(s.rootPath, rootPath), "/"),
	}
}

func (s *Storage) RootPath() string {
	return s.rootPath
}

func (s *Storage) Load(ctx convCtx.Context, path string) (data []byte, err error) {
	fullPath := joinPath(s.rootPath, path)
	ctx = ctx.WithScope("storage.Load", "path", fullPath)
	defer ctx.Exit(&err)

	data, err = s.provider.Load(ctx, fullPath)
	return
}

func (s *Storage) Exists(ctx convCtx.Context, path string) (exists bool, err error) {
	fullPath := joinPath(s.rootPath, path)
	ctx = ctx.WithScope("storage.Exists", "path", fullPath)
	defer ctx.Exit(&err)

	exists, err = s.provider.Exists(ctx, fullPath)
	return
}

func (s *Storage) Provider() Provider {
	return s.provider
}
