package entity

import "time"

// ExchangeRates quotes currencies against Base, so Rates[Base] == 1.
type ExchangeRates struct {
	Base      string
	Rates     map[string]float64
	UpdatedAt time.Time
}
