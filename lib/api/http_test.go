package api

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

func response(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestDecodeJSON(t *testing.T) {

	out, err := DecodeJSON[map[string]int](response(`{"id":42}`))
	if err != nil {
		t.Fatalf("DecodeJSON failed: %v", err)
	}
	if out["id"] != 42 {
		t.Fatalf("unexpected value %v", out)
	}
}

func TestDecodeJSONBodyLimit(t *testing.T) {

	body := `"` + strings.Repeat("a", maxBodySize) + `"`

	_, err := DecodeJSON[string](response(body))
	if err == nil {
		t.Fatal("expected body over the limit to fail")
	}

	fits := `"` + strings.Repeat("a", maxBodySize-2) + `"`

	s, err := DecodeJSON[string](response(fits))
	if err != nil {
		t.Fatalf("expected body at the limit to decode: %v", err)
	}
	if len(s) != maxBodySize-2 {
		t.Fatalf("unexpected length %d", len(s))
	}
}
