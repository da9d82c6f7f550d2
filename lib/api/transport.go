package api

import (
	"errors"
	"net/http"
)

// ErrNoResponse is returned when a transport reports neither a response
// nor an error.
var ErrNoResponse = errors.New("transport returned no response")

// Transport sends one request and returns its response.
// *http.Client satisfies it.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

type TransportFunc func(req *http.Request) (*http.Response, error)

func (fn TransportFunc) Do(req *http.Request) (*http.Response, error) {
	return fn(req)
}

var DefaultTransport Transport = http.DefaultClient

// Send performs req through transport. A successful result always has a
// response with a non nil body.
func Send(transport Transport, req *http.Request) (res *http.Response, err error) {

	res, err = transport.Do(req)
	if err != nil {
		return
	}

	if res == nil {
		err = ErrNoResponse
		return
	}

	if res.Body == nil {
		res.Body = http.NoBody
	}

	return
}
