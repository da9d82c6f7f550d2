package catalog

import (
	convAPI "github.com/sofmon/backoffice/lib/api"
	convCfg "github.com/sofmon/backoffice/lib/cfg"
)

const configKeyEndpoint convCfg.ConfigKey = "catalog_endpoint"

// Endpoint is the catalog server address as stored in configuration.
type Endpoint struct {
	Host     string `json:"host" yaml:"host" toml:"host"`
	Port     int    `json:"port" yaml:"port" toml:"port"`
	BasePath string `json:"base_path" yaml:"base_path" toml:"base_path"`
	LogCalls bool   `json:"log_calls" yaml:"log_calls" toml:"log_calls"`
}

func (ep Endpoint) Binding(transport convAPI.Transport) (b convAPI.Binding, err error) {

	b, err = convAPI.NewBinding(ep.Host, ep.Port, transport)
	if err != nil {
		return
	}

	b = b.WithBasePath(ep.BasePath)
	if ep.LogCalls {
		b = b.WithCallsLogging()
	}

	return
}

// NewFromConfig builds a client from the "catalog_endpoint" config object
// (JSON, YAML or TOML) using the default transport.
func NewFromConfig() (c *Client, err error) {

	ep, err := convCfg.ObjectAny[Endpoint](configKeyEndpoint)
	if err != nil {
		return
	}

	b, err := ep.Binding(convAPI.DefaultTransport)
	if err != nil {
		return
	}

	c = New(b)
	return
}
