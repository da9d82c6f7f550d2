package hr

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	convAPI "github.com/sofmon/backoffice/lib/api"
	convCtx "github.com/sofmon/backoffice/lib/ctx"
	"github.com/sofmon/backoffice/lib/storage"
)

const maxDefinitionSize = 4 << 20

// loadDefinition reads the service definition from an http(s) URL through
// transport, from a gs://bucket/object location or from a local file.
func loadDefinition(ctx convCtx.Context, location string, transport convAPI.Transport) (raw []byte, err error) {
	ctx = ctx.WithScope("hr.loadDefinition", "location", location)
	defer ctx.Exit(&err)

	u, err := url.Parse(location)
	if err != nil {
		err = fmt.Errorf("invalid definition location: %w", err)
		return
	}

	switch strings.ToLower(u.Scheme) {

	case "http", "https":
		return fetchDefinition(ctx, u, transport)

	case "gs":
		var s *storage.Storage
		s, err = storage.New(ctx, "gcs", u.Host)
		if err != nil {
			return
		}
		return s.Load(ctx, strings.TrimPrefix(u.Path, "/"))

	case "file":
		return loadFile(ctx, u.Path)

	case "":
		return loadFile(ctx, location)

	default:
		err = fmt.Errorf("unsupported definition location scheme '%s'", u.Scheme)
		return
	}
}

func fetchDefinition(ctx convCtx.Context, u *url.URL, transport convAPI.Transport) (raw []byte, err error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return
	}

	ctx.SetHttpHeaders(req)

	res, err := convAPI.Send(transport, req)
	if err != nil {
		return
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		err = fmt.Errorf("unexpected status code %d fetching service definition", res.StatusCode)
		return
	}

	return io.ReadAll(io.LimitReader(res.Body, maxDefinitionSize))
}

func loadFile(ctx convCtx.Context, path string) (raw []byte, err error) {

	s, err := storage.NewWithCredentials(ctx, "file", filepath.Dir(path), nil)
	if err != nil {
		return
	}

	return s.Load(ctx, filepath.Base(path))
}
