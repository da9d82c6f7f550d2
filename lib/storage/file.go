package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	convCtx "github.com/sofmon/backoffice/lib/ctx"
)

func init() {
	RegisterProvider("file", newFileProvider)
}

type fileProvider struct {
	root string
}

func newFileProvider(root string, _ []byte) (Provider, error) {
	if root == "" {
		root = "."
	}
	return &fileProvider{root: filepath.Clean(root)}, nil
}

func (p *fileProvider) Name() string {
	return "file"
}

func (p *fileProvider) file(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(p.root, filepath.FromSlash(path))
}

func (p *fileProvider) Load(ctx convCtx.Context, path string) (data []byte, err error) {
	file := p.file(path)
	ctx = ctx.WithScope("fileProvider.Load", "file", file)
	defer ctx.Exit(&err)

	data, err = os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		err = fmt.Errorf("%w: %s", ErrObjectNotFound, file)
	}
	return
}

func (p *fileProvider) Exists(ctx convCtx.Context, path string) (exists bool, err error) {
	file := p.file(path)
	ctx = ctx.WithScope("fileProvider.Exists", "file", file)
	defer ctx.Exit(&err)

	fi, err := os.Stat(file)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return
	}
	return !fi.IsDir(), nil
}
