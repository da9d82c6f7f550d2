package api

import (
	"encoding/json"
	"io"
	"net/http"
)

// maxBodySize caps every response body read by this package.
const maxBodySize = 10 << 20

func ServeJSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

func ReceiveJSON[T any](r *http.Request) (res T, err error) {
	err = json.NewDecoder(r.Body).Decode(&res)
	return
}

// DecodeJSON reads a JSON response body of at most maxBodySize bytes into
// T and closes it.
func DecodeJSON[T any](res *http.Response) (out T, err error) {
	defer res.Body.Close()
	err = json.NewDecoder(io.LimitReader(res.Body, maxBodySize)).Decode(&out)
	return
}

// Discard drains and closes a response body so the connection can be reused.
func Discard(res *http.Response) {
	if res == nil || res.Body == nil {
		return
	}
	io.Copy(io.Discard, res.Body)
	res.Body.Close()
}
