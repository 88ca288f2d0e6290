package entity

import "time"

type TripType string

const (
	TripOneWay    TripType = "one-way"
	TripRoundTrip TripType = "round-trip"
)

// SearchHistory is a previously submitted search, replayable from the UI.
type SearchHistory struct {
	ID            string
	Origin        string
	Destination   string
	DepartureDate time.Time
	ReturnDate    *time.Time
	TripType      TripType
	Adults        int
	Children      int
	Infants       int
	CabinClass    CabinClass
	SearchedAt    time.Time
}

