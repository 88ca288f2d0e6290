package entity

import (
	"strings"
	"time"
)

type CabinClass string

const (
	CabinEconomy        CabinClass = "ECONOMY"
	CabinPremiumEconomy CabinClass = "PREMIUM_ECONOMY"
	CabinBusiness       CabinClass = "BUSINESS"
	CabinFirst          CabinClass = "FIRST"
)

func ParseCabinClass(value string) (CabinClass, bool) {
	c := CabinClass(strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(value, "-", "_"))))
	return c, c.IsValid()
}

func (c CabinClass) IsValid() bool {
	switch c {
	case CabinEconomy, CabinPremiumEconomy, CabinBusiness, CabinFirst:
		return true
	default:
		return false
	}
}

func (c CabinClass) Label() string {
	switch c {
	case CabinEconomy:
		return "Economy"
	case CabinPremiumEconomy:
		return "Premium Economy"
	case CabinBusiness:
		return "Business"
	case CabinFirst:
		return "First Class"
	default:
		return string(c)
	}
}

// LowSeatsThreshold is the seat count at or below which an offer is flagged
// as nearly sold out.
const LowSeatsThreshold = 5

type Airport struct {
	IATACode    string
	Name        string
	CityName    string
	CityCode    string
	CountryName string
	CountryCode string
}

type Endpoint struct {
	IATACode string
	Terminal string
	At       time.Time
}

type Segment struct {
	ID            string
	Departure     Endpoint
	Arrival       Endpoint
	CarrierCode   string
	CarrierName   string
	FlightNumber  string
	Aircraft      string
	Duration      int
	NumberOfStops int
}

type Itinerary struct {
	Duration      int
	Segments      []Segment
	DepartureTime time.Time
	ArrivalTime   time.Time
	TotalStops    int
}

type Price struct {
	Currency string
	Total    float64
	Base     float64
	Fees     float64
	PerAdult float64
}

type Flight struct {
	ID                       string
	Itineraries              []Itinerary
	Price                    Price
	ValidatingAirlineCodes   []string
	NumberOfBookableSeats    int
	InstantTicketingRequired bool
	CabinClass               CabinClass
	DepartureDate            time.Time
	ArrivalDate              time.Time
	TotalDuration            int
	TotalStops               int
	Airlines                 []string
}

func (f Flight) LowSeats() bool {
	return f.NumberOfBookableSeats > 0 && f.NumberOfBookableSeats <= LowSeatsThreshold
}

// IsRoundTrip reports whether the offer carries a return itinerary.
func (f Flight) IsRoundTrip() bool {
	return len(f.Itineraries) > 1
}

// Clone copies f deeply enough that mutating the copy's slices leaves f intact.
func (f Flight) Clone() Flight {
	clone := f
	clone.ValidatingAirlineCodes = append([]string(nil), f.ValidatingAirlineCodes...)
	clone.Airlines = append([]string(nil), f.Airlines...)
	clone.Itineraries = make([]Itinerary, len(f.Itineraries))
	for i, it := range f.Itineraries {
		it.Segments = append([]Segment(nil), it.Segments...)
		clone.Itineraries[i] = it
	}
	return clone
}
