package hr_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	convCtx "github.com/sofmon/backoffice/lib/ctx"
)

const testNamespace = "http://ws.hr.exercise3.wdsr/"

const definitionTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<wsdl:definitions xmlns:wsdl="http://schemas.xmlsoap.org/wsdl/"
	xmlns:soap="http://schemas.xmlsoap.org/wsdl/soap/"
	xmlns:tns="http://ws.hr.exercise3.wdsr/"
	name="HumanResourceService"
	targetNamespace="http://ws.hr.exercise3.wdsr/">
	<wsdl:portType name="HumanResource">
		<wsdl:operation name="Holiday">
			<wsdl:input message="tns:HolidayRequest"/>
			<wsdl:output message="tns:HolidayResponse"/>
		</wsdl:operation>
	</wsdl:portType>
	<wsdl:binding name="HumanResourceServiceSoapBinding" type="tns:HumanResource">
		<soap:binding style="document" transport="http://schemas.xmlsoap.org/soap/http"/>
		<wsdl:operation name="Holiday">
			<soap:operation soapAction="http://ws.hr.exercise3.wdsr/Holiday" style="document"/>
			<wsdl:input><soap:body use="literal"/></wsdl:input>
			<wsdl:output><soap:body use="literal"/></wsdl:output>
		</wsdl:operation>
	</wsdl:binding>
	<wsdl:service name="HumanResourceService">
		<wsdl:port name="HumanResourcePort" binding="tns:HumanResourceServiceSoapBinding">
			<soap:address location="%s"/>
		</wsdl:port>
	</wsdl:service>
</wsdl:definitions>`

func newCtx() convCtx.Context {
	return convCtx.New("hr_test")
}

func definition(endpoint string) string {
	return fmt.Sprintf(definitionTemplate, endpoint)
}

func responseEnvelope(requestID int) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
	<soap:Body>
		<ns2:HolidayResponse xmlns:ns2="%s">
			<ns2:requestId>%d</ns2:requestId>
		</ns2:HolidayResponse>
	</soap:Body>
</soap:Envelope>`, testNamespace, requestID)
}

const faultEnvelope = `<?xml version="1.0" encoding="UTF-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
	<soap:Body>
		<soap:Fault>
			<faultcode>soap:Server</faultcode>
			<faultstring>Employee not found</faultstring>
		</soap:Fault>
	</soap:Body>
</soap:Envelope>`

// call is one SOAP request received by the test service.
type call struct {
	soapAction  string
	contentType string
	body        []byte
}

// service serves the definition at GET /hr and answers POST /hr with status and body.
type service struct {
	mu     sync.Mutex
	status int
	body   string
	calls  []call
}

func (s *service) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	if r.URL.Path != "/hr" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if r.Method == http.MethodGet {
		w.Header().Set("Content-Type", "text/xml")
		w.Write([]byte(definition("http://" + r.Host + "/hr")))
		return
	}

	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, call{
		soapAction:  r.Header.Get("SOAPAction"),
		contentType: r.Header.Get("Content-Type"),
		body:        body,
	})

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(s.status)
	w.Write([]byte(s.body))
}

func (s *service) lastCall() (c call, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.calls) == 0 {
		return
	}
	return s.calls[len(s.calls)-1], true
}

func startService(t *testing.T, status int, body string) (*service, *httptest.Server) {
	t.Helper()

	svc := &service{status: status, body: body}
	srv := httptest.NewServer(svc)
	t.Cleanup(srv.Close)

	return svc, srv
}

func writeDefinition(t *testing.T, endpoint string) string {
	t.Helper()

	file := filepath.Join(t.TempDir(), "holiday.wsdl")
	if err := os.WriteFile(file, []byte(definition(endpoint)), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return file
}
