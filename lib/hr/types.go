package hr

import (
	"encoding/xml"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day, written as xsd:date.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.Format(dateLayout)), nil
}

func (d *Date) UnmarshalText(text []byte) (err error) {
	// xsd:date may carry a zone suffix
	s := string(text)
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date '%s': %w", text, err)
	}
	d.Time = t
	return
}

type Employee struct {
	Number    int    `xml:"number"`
	FirstName string `xml:"firstName"`
	LastName  string `xml:"lastName"`
}

type HolidayPeriod struct {
	StartDate Date `xml:"startDate"`
	EndDate   Date `xml:"endDate"`
}

// HolidayRequest is the payload of the Holiday operation. XMLName carries
// the service target namespace and is set by the client.
type HolidayRequest struct {
	XMLName  xml.Name
	Employee Employee      `xml:"employee"`
	Holiday  HolidayPeriod `xml:"holiday"`
}

type HolidayResponse struct {
	RequestID *int `xml:"requestId"`
}
