package ctx_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	convCtx "github.com/sofmon/backoffice/lib/ctx"
)

var errTest = errors.New("boom")

func TestScopeExit(t *testing.T) {

	ctx := convCtx.New("ctx_test")

	fn := func(ctx convCtx.Context) (err error) {
		ctx = ctx.WithScope("fn", "id", 7, "name", "two words")
		defer ctx.Exit(&err)

		err = errTest
		return
	}

	err := fn(ctx)
	if !errors.Is(err, errTest) {
		t.Fatalf("expected errTest in chain, got %v", err)
	}

	expected := `✘ ctx_test → fn {id=7 name="two words"}: boom`
	if err.Error() != expected {
		t.Fatalf("expected %q, got %q", expected, err.Error())
	}
}

func TestScopeExitNested(t *testing.T) {

	ctx := convCtx.New("ctx_test")

	inner := func(ctx convCtx.Context) (err error) {
		ctx = ctx.WithScope("inner")
		defer ctx.Exit(&err)
		return errTest
	}

	outer := func(ctx convCtx.Context) (err error) {
		defer ctx.Exit(&err)
		return inner(ctx)
	}

	err := outer(ctx)
	if strings.Count(err.Error(), "✘") != 1 {
		t.Fatalf("expected single scope prefix, got %q", err.Error())
	}
}

func TestScopeExitExcept(t *testing.T) {

	ctx := convCtx.New("ctx_test").WithScope("except")

	err := errTest
	ctx.Exit(&err, errTest)

	if err != errTest {
		t.Fatalf("expected unwrapped error, got %v", err)
	}
}

func TestWorkflowHeaders(t *testing.T) {

	ctx := convCtx.New("ctx_test")
	if ctx.Workflow() == "" {
		t.Fatal("expected generated workflow")
	}

	req, err := http.NewRequest(http.MethodGet, "http://localhost/products", nil)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	ctx.SetHttpHeaders(req)

	if req.Header.Get(convCtx.HttpHeaderWorkflow) != string(ctx.Workflow()) {
		t.Fatalf("workflow header not propagated")
	}
	if req.Header.Get(convCtx.HttpHeaderAgent) != "ctx_test" {
		t.Fatalf("agent header not propagated")
	}

	remote := convCtx.New("server").WithRequest(req)
	if remote.Workflow() != ctx.Workflow() {
		t.Fatalf("expected workflow %q, got %q", ctx.Workflow(), remote.Workflow())
	}
	if remote.Request() != req {
		t.Fatal("expected request in context")
	}
}

func TestWithLogWriter(t *testing.T) {

	var buf bytes.Buffer

	ctx := convCtx.New("ctx_test").WithLogWriter(&buf, slog.LevelDebug)
	ctx.Logger().Info("hello")

	if !strings.Contains(buf.String(), `"agent":"ctx_test"`) {
		t.Fatalf("expected agent attribute in %s", buf.String())
	}
}

func TestWithRequestStartsWorkflow(t *testing.T) {

	ctx := convCtx.New("server")

	cases := map[string]string{
		"missing":     "",
		"blank":       "   ",
		"control":     "wf\x00id",
		"oversized":   strings.Repeat("w", 200),
		"with spaces": "two words",
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, "http://localhost/products", nil)
			if err != nil {
				t.Fatalf("NewRequest failed: %v", err)
			}
			if header != "" {
				req.Header.Set(convCtx.HttpHeaderWorkflow, header)
			}

			remote := ctx.WithRequest(req)

			if remote.Workflow() == "" || remote.Workflow() == ctx.Workflow() {
				t.Fatalf("expected a new workflow, got %q", remote.Workflow())
			}
			if string(remote.Workflow()) == strings.TrimSpace(header) {
				t.Fatalf("expected header %q to be rejected", header)
			}
		})
	}
}

func TestParseWorkflow(t *testing.T) {

	wf, ok := convCtx.ParseWorkflow(" 3f1c2a9e-order-17 ")
	if !ok || wf != "3f1c2a9e-order-17" {
		t.Fatalf("expected workflow to be accepted, got %q %v", wf, ok)
	}

	if _, ok := convCtx.ParseWorkflow(""); ok {
		t.Fatal("expected empty workflow to be rejected")
	}

	if convCtx.NewWorkflow() == convCtx.NewWorkflow() {
		t.Fatal("expected distinct workflows")
	}
}
