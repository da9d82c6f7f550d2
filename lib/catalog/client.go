package catalog

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	convAPI "github.com/sofmon/backoffice/lib/api"
	convCtx "github.com/sofmon/backoffice/lib/ctx"
)

var (
	routeListProducts  = convAPI.NewRoute("GET /products")
	routeGetProduct    = convAPI.NewRoute("GET /products/{id}")
	routeCreateProduct = convAPI.NewRoute("POST /products")
	routeUpdateProduct = convAPI.NewRoute("PUT /products/{id}")
	routeDeleteProduct = convAPI.NewRoute("DELETE /products/{id}")
)

const queryKeyType = "type"

var (
	// ErrNotFound is returned by Get, Update and Delete when the server
	// does not know the product. The *convAPI.Error with the status seen
	// is in the chain too.
	ErrNotFound = errors.New("product not found")

	// ErrRequestFailed is returned by the list operations and Create when
	// the server answers with a status the call does not accept.
	ErrRequestFailed = errors.New("catalog request failed")

	ErrProductHasID       = errors.New("product to create must not have an id")
	ErrProductWithoutID   = errors.New("product must have an id")
	ErrInvalidProductType = errors.New("invalid product type")
)

// Client is the typed facade over the remote "products" collection.
//
// Every operation is one synchronous HTTP exchange. Success is decided by a
// single status code per operation, not by the 2xx range:
//
//	ListByTypes, ListAll  200, anything else is ErrRequestFailed
//	Get                   200, anything else is ErrNotFound
//	Create                201, anything else is ErrRequestFailed
//	Update                204, anything else is ErrNotFound
//	Delete                anything but 404 succeeds, 404 is ErrNotFound
//
// The asymmetry matches the catalog server contract and must not be
// widened to status ranges.
type Client struct {
	binding convAPI.Binding
}

func New(binding convAPI.Binding) *Client {
	return &Client{binding: binding}
}

func (c *Client) Binding() convAPI.Binding {
	return c.binding
}

// ListByTypes returns the products whose type is one of types, sending one
// "type" query value per distinct type in argument order. Without types it
// behaves like ListAll. The result is never nil.
func (c *Client) ListByTypes(ctx convCtx.Context, types ...ProductType) (products []Product, err error) {
	ctx = ctx.WithScope("catalog.ListByTypes", "types", types)
	defer ctx.Exit(&err)

	query := url.Values{}
	seen := make(map[ProductType]bool, len(types))

	for _, t := range types {
		if !t.Valid() {
			err = fmt.Errorf("%w: '%s'", ErrInvalidProductType, t)
			return
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		query.Add(queryKeyType, string(t))
	}

	return c.list(ctx, query)
}

// ListAll returns every product known to the server. The result is never nil.
// Only 200 is accepted: any other status, 2xx included, is ErrRequestFailed.
func (c *Client) ListAll(ctx convCtx.Context) (products []Product, err error) {
	ctx = ctx.WithScope("catalog.ListAll")
	defer ctx.Exit(&err)

	return c.list(ctx, nil)
}

func (c *Client) list(ctx convCtx.Context, query url.Values) (products []Product, err error) {

	req, err := c.binding.NewRequest(ctx, routeListProducts, nil, query, nil)
	if err != nil {
		return
	}

	res, err := c.binding.Do(ctx, req)
	if err != nil {
		return
	}

	if res.StatusCode != http.StatusOK {
		err = statusError(ctx, ErrRequestFailed, convAPI.ErrorCodeRequestFailed, req, res)
		return
	}

	products, err = convAPI.DecodeJSON[[]Product](res)
	if err != nil {
		err = fmt.Errorf("decode products: %w", err)
		return
	}

	if products == nil {
		products = []Product{}
	}

	return
}

func (c *Client) Get(ctx convCtx.Context, id int) (product Product, err error) {
	ctx = ctx.WithScope("catalog.Get", "id", id)
	defer ctx.Exit(&err)

	req, err := c.binding.NewRequest(ctx, routeGetProduct, []string{strconv.Itoa(id)}, nil, nil)
	if err != nil {
		return
	}

	res, err := c.binding.Do(ctx, req)
	if err != nil {
		return
	}

	if res.StatusCode != http.StatusOK {
		err = statusError(ctx, ErrNotFound, convAPI.ErrorCodeNotFound, req, res)
		return
	}

	product, err = convAPI.DecodeJSON[Product](res)
	if err != nil {
		err = fmt.Errorf("decode product: %w", err)
		return
	}

	return
}

// Create stores a new product and returns the id assigned by the server.
// product.ID must be nil.
func (c *Client) Create(ctx convCtx.Context, product Product) (id int, err error) {
	ctx = ctx.WithScope("catalog.Create", "name", product.Name, "type", product.Type)
	defer ctx.Exit(&err)

	if product.ID != nil {
		err = ErrProductHasID
		return
	}

	req, err := c.binding.NewRequest(ctx, routeCreateProduct, nil, nil, product)
	if err != nil {
		return
	}

	res, err := c.binding.Do(ctx, req)
	if err != nil {
		return
	}

	if res.StatusCode != http.StatusCreated {
		err = statusError(ctx, ErrRequestFailed, convAPI.ErrorCodeRequestFailed, req, res)
		return
	}

	created, err := convAPI.DecodeJSON[Product](res)
	if err != nil {
		err = fmt.Errorf("decode created product: %w", err)
		return
	}

	if created.ID == nil {
		err = fmt.Errorf("%w: %w", ErrRequestFailed, &convAPI.Error{
			URL:     req.URL.Path,
			Method:  req.Method,
			Status:  res.StatusCode,
			Code:    convAPI.ErrorCodeRequestFailed,
			Scope:   ctx.Scope(),
			Message: "created product has no id",
		})
		return
	}

	id = *created.ID
	return
}

// Update replaces the product identified by product.ID with product.
func (c *Client) Update(ctx convCtx.Context, product Product) (err error) {
	ctx = ctx.WithScope("catalog.Update", "product", product)
	defer ctx.Exit(&err)

	if product.ID == nil {
		err = ErrProductWithoutID
		return
	}

	req, err := c.binding.NewRequest(ctx, routeUpdateProduct, []string{strconv.Itoa(*product.ID)}, nil, product)
	if err != nil {
		return
	}

	res, err := c.binding.Do(ctx, req)
	if err != nil {
		return
	}

	if res.StatusCode != http.StatusNoContent {
		err = statusError(ctx, ErrNotFound, convAPI.ErrorCodeNotFound, req, res)
		return
	}

	convAPI.Discard(res)
	return
}

func (c *Client) Delete(ctx convCtx.Context, product Product) (err error) {
	ctx = ctx.WithScope("catalog.Delete", "product", product)
	defer ctx.Exit(&err)

	if product.ID == nil {
		err = ErrProductWithoutID
		return
	}

	req, err := c.binding.NewRequest(ctx, routeDeleteProduct, []string{strconv.Itoa(*product.ID)}, nil, nil)
	if err != nil {
		return
	}

	res, err := c.binding.Do(ctx, req)
	if err != nil {
		return
	}

	// only 404 is a failure here, every other status counts as deleted
	if res.StatusCode == http.StatusNotFound {
		err = statusError(ctx, ErrNotFound, convAPI.ErrorCodeNotFound, req, res)
		return
	}

	convAPI.Discard(res)
	return
}

// statusError joins outcome with the *convAPI.Error describing the rejected status.
func statusError(ctx convCtx.Context, outcome error, code convAPI.ErrorCode, req *http.Request, res *http.Response) error {
	defer res.Body.Close()
	return fmt.Errorf("%w: %w", outcome, convAPI.NewStatusError(ctx, code, req, res))
}
