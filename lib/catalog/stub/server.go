// Package stub is an in-process stand-in for the catalog HTTP API, backed
// by an in-memory sqlite database. It answers with the same status codes
// as the real server and is meant for tests of code built on
// catalog.Client.
package stub

import (
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"

	convAPI "github.com/sofmon/backoffice/lib/api"
	"github.com/sofmon/backoffice/lib/catalog"
	convCtx "github.com/sofmon/backoffice/lib/ctx"
)

var (
	routeListProducts  = convAPI.NewRoute("GET /products")
	routeGetProduct    = convAPI.NewRoute("GET /products/{id}")
	routeCreateProduct = convAPI.NewRoute("POST /products")
	routeUpdateProduct = convAPI.NewRoute("PUT /products/{id}")
	routeDeleteProduct = convAPI.NewRoute("DELETE /products/{id}")
)

type Server struct {
	ctx   convCtx.Context
	store *store
	calls atomic.Int64
}

func New() (srv *Server, err error) {

	st, err := openStore()
	if err != nil {
		return
	}

	srv = &Server{
		ctx:   convCtx.New("catalog-stub"),
		store: st,
	}
	return
}

func (srv *Server) Close() error {
	return srv.store.close()
}

// Calls returns the number of requests served so far.
func (srv *Server) Calls() int64 {
	return srv.calls.Load()
}

// Seed stores products directly, bypassing HTTP, and returns their ids.
func (srv *Server) Seed(products ...catalog.Product) (ids []int, err error) {
	for _, p := range products {
		var id int
		id, err = srv.store.insert(p)
		if err != nil {
			return
		}
		ids = append(ids, id)
	}
	return
}

func (srv *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	srv.calls.Add(1)

	ctx := srv.ctx.WithRequest(r)

	if _, ok := routeListProducts.Match(r); ok {
		srv.list(ctx, w, r)
		return
	}

	if _, ok := routeCreateProduct.Match(r); ok {
		srv.create(ctx, w, r)
		return
	}

	for _, route := range []convAPI.Route{routeGetProduct, routeUpdateProduct, routeDeleteProduct} {

		params, ok := route.Match(r)
		if !ok {
			continue
		}

		id, err := strconv.Atoi(params[0])
		if err != nil {
			convAPI.ServeError(ctx, w, http.StatusNotFound, convAPI.ErrorCodeNotFound, "invalid product id", err)
			return
		}

		switch route.Method() {
		case http.MethodGet:
			srv.get(ctx, w, id)
		case http.MethodPut:
			srv.update(ctx, w, r, id)
		case http.MethodDelete:
			srv.delete(ctx, w, id)
		}
		return
	}

	convAPI.ServeError(ctx, w, http.StatusNotFound, convAPI.ErrorCodeNotFound, "Endpoint not found", nil)
}

func (srv *Server) list(ctx convCtx.Context, w http.ResponseWriter, r *http.Request) {

	products, err := srv.store.selectByTypes(r.URL.Query()["type"])
	if err != nil {
		convAPI.ServeError(ctx, w, http.StatusInternalServerError, convAPI.ErrorCodeInternalError, "failed to list products", err)
		return
	}

	convAPI.ServeJSON(w, http.StatusOK, products)
}

func (srv *Server) get(ctx convCtx.Context, w http.ResponseWriter, id int) {

	p, err := srv.store.selectByID(id)
	if errors.Is(err, errNoProduct) {
		convAPI.ServeError(ctx, w, http.StatusNotFound, convAPI.ErrorCodeNotFound, "product not found", nil)
		return
	}
	if err != nil {
		convAPI.ServeError(ctx, w, http.StatusInternalServerError, convAPI.ErrorCodeInternalError, "failed to load product", err)
		return
	}

	convAPI.ServeJSON(w, http.StatusOK, p)
}

func (srv *Server) create(ctx convCtx.Context, w http.ResponseWriter, r *http.Request) {

	p, err := convAPI.ReceiveJSON[catalog.Product](r)
	if err != nil {
		convAPI.ServeError(ctx, w, http.StatusBadRequest, convAPI.ErrorCodeBadRequest, "unable to decode http payload", err)
		return
	}

	if p.ID != nil {
		convAPI.ServeError(ctx, w, http.StatusBadRequest, convAPI.ErrorCodeBadRequest, "product to create must not have an id", nil)
		return
	}

	id, err := srv.store.insert(p)
	if err != nil {
		convAPI.ServeError(ctx, w, http.StatusInternalServerError, convAPI.ErrorCodeInternalError, "failed to store product", err)
		return
	}

	convAPI.ServeJSON(w, http.StatusCreated, p.WithID(id))
}

func (srv *Server) update(ctx convCtx.Context, w http.ResponseWriter, r *http.Request, id int) {

	p, err := convAPI.ReceiveJSON[catalog.Product](r)
	if err != nil {
		convAPI.ServeError(ctx, w, http.StatusBadRequest, convAPI.ErrorCodeBadRequest, "unable to decode http payload", err)
		return
	}

	err = srv.store.update(id, p)
	if errors.Is(err, errNoProduct) {
		convAPI.ServeError(ctx, w, http.StatusNotFound, convAPI.ErrorCodeNotFound, "product not found", nil)
		return
	}
	if err != nil {
		convAPI.ServeError(ctx, w, http.StatusInternalServerError, convAPI.ErrorCodeInternalError, "failed to update product", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (srv *Server) delete(ctx convCtx.Context, w http.ResponseWriter, id int) {

	err := srv.store.delete(id)
	if errors.Is(err, errNoProduct) {
		convAPI.ServeError(ctx, w, http.StatusNotFound, convAPI.ErrorCodeNotFound, "product not found", nil)
		return
	}
	if err != nil {
		convAPI.ServeError(ctx, w, http.StatusInternalServerError, convAPI.ErrorCodeInternalError, "failed to delete product", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
