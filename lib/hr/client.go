package hr

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	convAPI "github.com/sofmon/backoffice/lib/api"
	convCfg "github.com/sofmon/backoffice/lib/cfg"
	convCtx "github.com/sofmon/backoffice/lib/ctx"
)

const (
	configKeyDefinition convCfg.ConfigKey = "holiday_service_definition"

	maxResponseSize = 1 << 20
)

// ErrProcessingFailed is the only error BookHoliday returns. The underlying
// cause is logged, never returned.
var ErrProcessingFailed = errors.New("holiday request processing failed")

// Client books holidays through the human resource SOAP service.
type Client struct {
	sb        serviceBinding
	transport convAPI.Transport
}

// NewClient loads and parses the service definition at location and binds
// to its Holiday operation. The transport is used both for fetching an
// http(s) definition and for every call.
func NewClient(ctx convCtx.Context, location string, transport convAPI.Transport) (c *Client, err error) {
	ctx = ctx.WithScope("hr.NewClient", "location", location)
	defer ctx.Exit(&err)

	if transport == nil {
		err = convAPI.ErrMissingTransport
		return
	}

	raw, err := loadDefinition(ctx, location, transport)
	if err != nil {
		return
	}

	sb, err := parseDefinition(raw)
	if err != nil {
		return
	}

	ctx.Logger().Debug("holiday service bound",
		"endpoint", sb.endpoint,
		"namespace", sb.namespace,
		"soapAction", sb.soapAction,
	)

	c = &Client{sb: sb, transport: transport}
	return
}

// NewClientOrPanic is NewClient for wiring code where an unreachable or
// invalid service definition is not recoverable.
func NewClientOrPanic(ctx convCtx.Context, location string, transport convAPI.Transport) *Client {
	c, err := NewClient(ctx, location, transport)
	if err != nil {
		panic(err)
	}
	return c
}

// NewClientFromConfig reads the definition location from the
// "holiday_service_definition" config key and uses the default transport.
func NewClientFromConfig(ctx convCtx.Context) (c *Client, err error) {

	location, err := convCfg.String(configKeyDefinition)
	if err != nil {
		return
	}

	return NewClient(ctx, location, convAPI.DefaultTransport)
}

func (c *Client) Endpoint() string {
	return c.sb.endpoint
}

func (c *Client) Namespace() string {
	return c.sb.namespace
}

// BookHoliday submits a holiday request and returns the request id assigned
// by the service. Any failure is reported as ErrProcessingFailed.
func (c *Client) BookHoliday(ctx convCtx.Context, employeeID int, firstName, lastName string, start, end time.Time) (requestID int, err error) {
	ctx = ctx.WithScope("hr.BookHoliday", "employee", employeeID)

	requestID, cause := c.holiday(ctx, HolidayRequest{
		XMLName: xml.Name{Space: c.sb.namespace, Local: "HolidayRequest"},
		Employee: Employee{
			Number:    employeeID,
			FirstName: firstName,
			LastName:  lastName,
		},
		Holiday: HolidayPeriod{
			StartDate: NewDate(start),
			EndDate:   NewDate(end),
		},
	})
	if cause != nil {
		ctx.Logger().Debug("holiday request failed", "error", cause.Error())
		return 0, ErrProcessingFailed
	}

	return
}

func (c *Client) holiday(ctx convCtx.Context, request HolidayRequest) (requestID int, err error) {

	body, err := marshalEnvelope(request)
	if err != nil {
		err = fmt.Errorf("encode holiday request: %w", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sb.endpoint, bytes.NewReader(body))
	if err != nil {
		return
	}

	ctx.SetHttpHeaders(req)
	req.Header.Set("Content-Type", contentTypeSOAP)
	req.Header.Set(headerSOAPAction, `"`+c.sb.soapAction+`"`)

	res, err := convAPI.Send(c.transport, req)
	if err != nil {
		return
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize))
	if err != nil {
		return
	}

	var env responseEnvelope
	decodeErr := xml.Unmarshal(raw, &env)

	if decodeErr == nil && env.Body.Fault != nil {
		err = fmt.Errorf("status %d: %w", res.StatusCode, *env.Body.Fault)
		return
	}

	if res.StatusCode != http.StatusOK {
		err = fmt.Errorf("unexpected status code %d", res.StatusCode)
		return
	}

	if decodeErr != nil {
		err = fmt.Errorf("decode holiday response: %w", decodeErr)
		return
	}

	if env.Body.HolidayResponse == nil || env.Body.HolidayResponse.RequestID == nil {
		err = errors.New("holiday response has no request id")
		return
	}

	requestID = *env.Body.HolidayResponse.RequestID
	return
}
