package hr

import (
	"encoding/xml"
	"strings"
)

const (
	contentTypeSOAP  = "text/xml; charset=utf-8"
	headerSOAPAction = "SOAPAction"
)

type requestEnvelope struct {
	XMLName xml.Name    `xml:"http://schemas.xmlsoap.org/soap/envelope/ Envelope"`
	Body    requestBody `xml:"http://schemas.xmlsoap.org/soap/envelope/ Body"`
}

type requestBody struct {
	Content any
}

// responseEnvelope matches by local name so SOAP 1.1 and 1.2 replies both decode.
type responseEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Fault           *fault           `xml:"Fault"`
		HolidayResponse *HolidayResponse `xml:"HolidayResponse"`
	} `xml:"Body"`
}

type fault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
	// SOAP 1.2
	Reason string `xml:"Reason>Text"`
}

func (f fault) Error() string {
	msg := strings.TrimSpace(f.String + " " + f.Reason)
	if f.Code == "" {
		return "soap fault: " + msg
	}
	return "soap fault " + f.Code + ": " + msg
}

func marshalEnvelope(content any) ([]byte, error) {
	raw, err := xml.Marshal(requestEnvelope{Body: requestBody{Content: content}})
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), raw...), nil
}
