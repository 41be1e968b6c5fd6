package models

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// MalformedTripError rejects trips whose dates cannot produce a valid
// duration. It is the only input the decision core refuses outright.
type MalformedTripError struct {
	Reason string
}

func (e *MalformedTripError) Error() string {
	return fmt.Sprintf("malformed trip: %s", e.Reason)
}

// TripAttributes describes the trip being insured. Dates are "YYYY-MM-DD"
// strings as supplied by the document-extraction collaborator.
type TripAttributes struct {
	Destination   string   `json:"destination"`
	DepartureDate string   `json:"departureDate"`
	ReturnDate    string   `json:"returnDate"`
	TravelerCount int      `json:"travelerCount"`
	Ages          []int    `json:"ages,omitempty"`
	TripCost      float64  `json:"tripCost,omitempty"`
	Activities    []string `json:"activities,omitempty"`
}

// Validate checks the trip shape: parseable dates and a non-negative
// duration. Missing dates are allowed (duration is simply unknown).
func (t *TripAttributes) Validate() error {
	if t.DepartureDate == "" || t.ReturnDate == "" {
		return nil
	}
	dep, err := time.Parse(dateLayout, t.DepartureDate)
	if err != nil {
		return &MalformedTripError{Reason: fmt.Sprintf("departure date %q is not parseable", t.DepartureDate)}
	}
	ret, err := time.Parse(dateLayout, t.ReturnDate)
	if err != nil {
		return &MalformedTripError{Reason: fmt.Sprintf("return date %q is not parseable", t.ReturnDate)}
	}
	if ret.Before(dep) {
		return &MalformedTripError{Reason: "return date is before departure date"}
	}
	return nil
}

// DurationDays derives the trip length from the dates. It is recomputed on
// every call so it can never go stale. Unknown or unparseable dates yield 0.
func (t *TripAttributes) DurationDays() int {
	if t.DepartureDate == "" || t.ReturnDate == "" {
		return 0
	}
	dep, err := time.Parse(dateLayout, t.DepartureDate)
	if err != nil {
		return 0
	}
	ret, err := time.Parse(dateLayout, t.ReturnDate)
	if err != nil {
		return 0
	}
	days := int(ret.Sub(dep).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// DepartureMonth returns the calendar month of departure, or 0 when unknown.
func (t *TripAttributes) DepartureMonth() int {
	dep, err := time.Parse(dateLayout, t.DepartureDate)
	if err != nil {
		return 0
	}
	return int(dep.Month())
}
