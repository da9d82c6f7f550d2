package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	convCtx "github.com/sofmon/backoffice/lib/ctx"
)

var (
	ErrInvalidHost      = errors.New("binding host must not be empty")
	ErrInvalidPort      = errors.New("binding port must be between 1 and 65535")
	ErrMissingTransport = errors.New("binding transport must not be nil")
)

// Binding holds the address of a remote HTTP API and the transport used to
// reach it. It is immutable; the With* methods return modified copies.
type Binding struct {
	host      string
	port      int
	basePath  string
	transport Transport
	logCalls  bool
}

func NewBinding(host string, port int, transport Transport) (b Binding, err error) {

	if strings.TrimSpace(host) == "" {
		err = ErrInvalidHost
		return
	}

	if port < 1 || port > 65535 {
		err = fmt.Errorf("%w: %d", ErrInvalidPort, port)
		return
	}

	if transport == nil {
		err = ErrMissingTransport
		return
	}

	b = Binding{
		host:      host,
		port:      port,
		transport: transport,
	}

	return
}

func (b Binding) WithBasePath(basePath string) Binding {
	basePath = strings.Trim(basePath, "/")
	if basePath != "" {
		basePath = "/" + basePath
	}
	b.basePath = basePath
	return b
}

func (b Binding) WithCallsLogging() Binding {
	b.logCalls = true
	return b
}

func (b Binding) Host() string {
	return b.host
}

func (b Binding) Port() int {
	return b.port
}

func (b Binding) BasePath() string {
	return b.basePath
}

// ResolveTarget roots relativePath at http://{host}:{port}{basePath}.
// Repeated query values keep their order.
func (b Binding) ResolveTarget(relativePath string, query url.Values) *url.URL {

	if relativePath != "" && !strings.HasPrefix(relativePath, "/") {
		relativePath = "/" + relativePath
	}

	target := &url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(b.host, strconv.Itoa(b.port)),
		Path:   b.basePath + relativePath,
	}

	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	return target
}

// NewRequest builds the request for route, JSON-encoding body unless it is nil.
func (b Binding) NewRequest(ctx convCtx.Context, route Route, params []string, query url.Values, body any) (req *http.Request, err error) {

	path, err := route.Path(params...)
	if err != nil {
		return
	}

	var reader io.Reader
	if body != nil {
		var raw []byte
		raw, err = json.Marshal(body)
		if err != nil {
			err = fmt.Errorf("marshal body: %w", err)
			return
		}
		reader = bytes.NewReader(raw)
	}

	req, err = http.NewRequestWithContext(ctx, route.Method(), b.ResolveTarget(path, query).String(), reader)
	if err != nil {
		return
	}

	ctx.SetHttpHeaders(req)

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return
}

// Do performs one exchange through the binding transport.
func (b Binding) Do(ctx convCtx.Context, req *http.Request) (*http.Response, error) {
	if b.logCalls {
		return logCall(ctx, b.transport, req)
	}
	return Send(b.transport, req)
}
