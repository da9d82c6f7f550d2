package api

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"strings"

	convCtx "github.com/sofmon/backoffice/lib/ctx"
)

func isTextContent(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	switch strings.TrimSpace(mediaType) {
	case "application/json",
		"application/xml",
		"application/yaml",
		"text/xml",
		"text/plain",
		"text/html":
		return true
	default:
		return false
	}
}

// logCall performs req through transport and logs both sides of the
// exchange. Bodies are dumped only for text content types.
func logCall(ctx convCtx.Context, transport Transport, req *http.Request) (res *http.Response, err error) {

	logger := ctx.Logger()

	reqDump, dumpErr := httputil.DumpRequestOut(req, isTextContent(req.Header.Get("Content-Type")))
	if dumpErr != nil {
		logger.Warn("error dumping request for logging", "error", dumpErr)
	}

	res, err = Send(transport, req)
	if err != nil {
		logger.
			With(
				"request", string(reqDump),
				"error", err.Error(),
			).
			Info("API call failed")
		return
	}

	resDump, dumpErr := httputil.DumpResponse(res, isTextContent(res.Header.Get("Content-Type")))
	if dumpErr != nil {
		logger.Warn("error dumping response for logging", "error", dumpErr)
	}

	logger.
		With(
			"request", string(reqDump),
			"response", string(resDump),
			slog.Group("headers",
				slog.Group("request", headersToAttrs(req.Header)...),
				slog.Group("response", headersToAttrs(res.Header)...),
			),
		).
		Info("API call")

	return
}

func headersToAttrs(headers http.Header) []any {
	var attrs []any
	for name, values := range headers {
		attrs = append(attrs, name, strings.Join(values, ", "))
	}
	return attrs
}
