package hr

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

const operationHoliday = "Holiday"

var (
	ErrNoEndpoint  = errors.New("service definition has no endpoint address")
	ErrNoOperation = errors.New("service definition has no Holiday operation")
)

type wsdlDefinitions struct {
	XMLName         xml.Name      `xml:"http://schemas.xmlsoap.org/wsdl/ definitions"`
	TargetNamespace string        `xml:"targetNamespace,attr"`
	Bindings        []wsdlBinding `xml:"http://schemas.xmlsoap.org/wsdl/ binding"`
	Services        []wsdlService `xml:"http://schemas.xmlsoap.org/wsdl/ service"`
}

type wsdlBinding struct {
	Name       string          `xml:"name,attr"`
	Operations []wsdlOperation `xml:"http://schemas.xmlsoap.org/wsdl/ operation"`
}

type wsdlOperation struct {
	Name   string         `xml:"name,attr"`
	SOAP   *soapOperation `xml:"http://schemas.xmlsoap.org/wsdl/soap/ operation"`
	SOAP12 *soapOperation `xml:"http://schemas.xmlsoap.org/wsdl/soap12/ operation"`
}

type soapOperation struct {
	SOAPAction string `xml:"soapAction,attr"`
}

type wsdlService struct {
	Name  string     `xml:"name,attr"`
	Ports []wsdlPort `xml:"http://schemas.xmlsoap.org/wsdl/ port"`
}

type wsdlPort struct {
	Name    string       `xml:"name,attr"`
	Binding string       `xml:"binding,attr"`
	Address *wsdlAddress `xml:"address"`
}

type wsdlAddress struct {
	Location string `xml:"location,attr"`
}

// serviceBinding is what the client needs from a service definition.
type serviceBinding struct {
	namespace  string
	endpoint   string
	soapAction string
}

func parseDefinition(raw []byte) (sb serviceBinding, err error) {

	var defs wsdlDefinitions
	err = xml.Unmarshal(raw, &defs)
	if err != nil {
		err = fmt.Errorf("parse service definition: %w", err)
		return
	}

	sb.namespace = defs.TargetNamespace

	bindings := make(map[string]wsdlBinding, len(defs.Bindings))
	for _, b := range defs.Bindings {
		bindings[b.Name] = b
	}

	for _, svc := range defs.Services {
		for _, port := range svc.Ports {

			if port.Address == nil || strings.TrimSpace(port.Address.Location) == "" {
				continue
			}

			if sb.endpoint == "" {
				sb.endpoint = strings.TrimSpace(port.Address.Location)
			}

			b, ok := bindings[localName(port.Binding)]
			if !ok {
				continue
			}

			action, found := findOperation(b, operationHoliday)
			if !found {
				continue
			}

			sb.endpoint = strings.TrimSpace(port.Address.Location)
			sb.soapAction = action
			return
		}
	}

	if sb.endpoint == "" {
		err = ErrNoEndpoint
		return
	}

	// the port binding is unresolved, fall back to any binding with the operation
	for _, b := range defs.Bindings {
		if action, found := findOperation(b, operationHoliday); found {
			sb.soapAction = action
			return
		}
	}

	err = ErrNoOperation
	return
}

func findOperation(b wsdlBinding, name string) (soapAction string, found bool) {
	for _, op := range b.Operations {
		if !strings.EqualFold(op.Name, name) {
			continue
		}
		switch {
		case op.SOAP != nil:
			soapAction = op.SOAP.SOAPAction
		case op.SOAP12 != nil:
			soapAction = op.SOAP12.SOAPAction
		}
		return soapAction, true
	}
	return "", false
}

// localName strips the namespace prefix of a QName attribute value.
func localName(qname string) string {
	if i := strings.IndexByte(qname, ':'); i >= 0 {
		return qname[i+1:]
	}
	return qname
}
