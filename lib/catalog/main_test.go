package catalog_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	convAPI "github.com/sofmon/backoffice/lib/api"
	"github.com/sofmon/backoffice/lib/catalog"
	convCtx "github.com/sofmon/backoffice/lib/ctx"
)

func newCtx() convCtx.Context {
	return convCtx.New("catalog_test")
}

// newClient binds a catalog client to an httptest server running handler.
func newClient(t *testing.T, handler http.Handler) *catalog.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("url.Parse failed: %v", err)
	}

	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("invalid test server port: %v", err)
	}

	binding, err := convAPI.NewBinding(u.Hostname(), port, srv.Client())
	if err != nil {
		t.Fatalf("NewBinding failed: %v", err)
	}

	return catalog.New(binding)
}

// recorder keeps the last request seen by a test handler.
type recorder struct {
	mu  sync.Mutex
	req *http.Request
}

func (rec *recorder) set(r *http.Request) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.req = r
}

func (rec *recorder) last() *http.Request {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.req
}

// respond answers every request with status and body.
func respond(status int, body string, rec *recorder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rec != nil {
			rec.set(r)
		}
		if body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		if body != "" {
			w.Write([]byte(body))
		}
	})
}
