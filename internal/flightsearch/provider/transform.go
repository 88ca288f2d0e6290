package provider

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"
	"github.com/shopspring/decimal"
)

var errNoItinerary = errors.New("offer has no itinerary")

func transformOffers(resp amadeusOffersResponse) ([]entity.Flight, []error) {
	flights := make([]entity.Flight, 0, len(resp.Data))
	var errs []error
	for _, offer := range resp.Data {
		f, err := transformOffer(offer, resp.Dictionaries)
		if err != nil {
			errs = append(errs, fmt.Errorf("offer %s: %w", offer.ID, err))
			continue
		}
		flights = append(flights, f)
	}
	return flights, errs
}

func transformOffer(offer amadeusOffer, dict amadeusDictionaries) (entity.Flight, error) {
	itineraries := make([]entity.Itinerary, 0, len(offer.Itineraries))
	for _, it := range offer.Itineraries {
		itinerary, err := transformItinerary(it, dict)
		if err != nil {
			return entity.Flight{}, err
		}
		itineraries = append(itineraries, itinerary)
	}
	if len(itineraries) == 0 {
		return entity.Flight{}, errNoItinerary
	}

	total, err := parseAmount(offer.Price.Total)
	if err != nil {
		return entity.Flight{}, err
	}
	base, err := parseAmount(offer.Price.Base)
	if err != nil {
		return entity.Flight{}, err
	}
	fees := decimal.Zero
	for _, fee := range offer.Price.Fees {
		amount, err := parseAmount(fee.Amount)
		if err != nil {
			return entity.Flight{}, err
		}
		fees = fees.Add(amount)
	}

	adults := 0
	for _, tp := range offer.TravelerPricings {
		if tp.TravelerType == "ADULT" {
			adults++
		}
	}
	perAdult := total
	if adults > 0 {
		perAdult = total.Div(decimal.NewFromInt(int64(adults)))
	}

	cabin := entity.CabinEconomy
	if len(offer.TravelerPricings) > 0 && len(offer.TravelerPricings[0].FareDetailsBySegment) > 0 {
		if c, ok := entity.ParseCabinClass(offer.TravelerPricings[0].FareDetailsBySegment[0].Cabin); ok {
			cabin = c
		}
	}

	totalDuration, totalStops := 0, 0
	seen := make(map[string]struct{})
	airlines := make([]string, 0)
	for _, it := range itineraries {
		totalDuration += it.Duration
		totalStops += it.TotalStops
		for _, s := range it.Segments {
			if _, ok := seen[s.CarrierName]; ok {
				continue
			}
			seen[s.CarrierName] = struct{}{}
			airlines = append(airlines, s.CarrierName)
		}
	}

	return entity.Flight{
		ID:          offer.ID,
		Itineraries: itineraries,
		Price: entity.Price{
			Currency: offer.Price.Currency,
			Total:    total.InexactFloat64(),
			Base:     base.InexactFloat64(),
			Fees:     fees.InexactFloat64(),
			PerAdult: perAdult.Round(2).InexactFloat64(),
		},
		ValidatingAirlineCodes:   append([]string(nil), offer.ValidatingAirlineCodes...),
		NumberOfBookableSeats:    offer.NumberOfBookableSeats,
		InstantTicketingRequired: offer.InstantTicketingRequired,
		CabinClass:               cabin,
		DepartureDate:            itineraries[0].DepartureTime,
		ArrivalDate:              itineraries[len(itineraries)-1].ArrivalTime,
		TotalDuration:            totalDuration,
		TotalStops:               totalStops,
		Airlines:                 airlines,
	}, nil
}

func transformItinerary(it amadeusItinerary, dict amadeusDictionaries) (entity.Itinerary, error) {
	if len(it.Segments) == 0 {
		return entity.Itinerary{}, errNoItinerary
	}
	segments := make([]entity.Segment, 0, len(it.Segments))
	for _, s := range it.Segments {
		segment, err := transformSegment(s, dict)
		if err != nil {
			return entity.Itinerary{}, err
		}
		segments = append(segments, segment)
	}

	departure := segments[0].Departure.At
	arrival := segments[len(segments)-1].Arrival.At
	return entity.Itinerary{
		Duration:      durationMinutes(it.Duration, departure, arrival),
		Segments:      segments,
		DepartureTime: departure,
		ArrivalTime:   arrival,
		TotalStops:    len(segments) - 1,
	}, nil
}

func transformSegment(s amadeusSegment, dict amadeusDictionaries) (entity.Segment, error) {
	departAt, err := parseLocalTime(s.Departure.At)
	if err != nil {
		return entity.Segment{}, fmt.Errorf("segment %s departure: %w", s.ID, err)
	}
	arriveAt, err := parseLocalTime(s.Arrival.At)
	if err != nil {
		return entity.Segment{}, fmt.Errorf("segment %s arrival: %w", s.ID, err)
	}

	return entity.Segment{
		ID:            s.ID,
		Departure:     entity.Endpoint{IATACode: s.Departure.IATACode, Terminal: s.Departure.Terminal, At: departAt},
		Arrival:       entity.Endpoint{IATACode: s.Arrival.IATACode, Terminal: s.Arrival.Terminal, At: arriveAt},
		CarrierCode:   s.CarrierCode,
		CarrierName:   lookup(dict.Carriers, s.CarrierCode),
		FlightNumber:  s.Number,
		Aircraft:      lookup(dict.Aircraft, s.Aircraft.Code),
		Duration:      durationMinutes(s.Duration, departAt, arriveAt),
		NumberOfStops: s.NumberOfStops,
	}, nil
}

func transformLocation(l amadeusLocation) entity.Airport {
	return entity.Airport{
		IATACode:    strings.ToUpper(l.IATACode),
		Name:        l.Name,
		CityName:    l.Address.CityName,
		CityCode:    l.Address.CityCode,
		CountryName: l.Address.CountryName,
		CountryCode: l.Address.CountryCode,
	}
}

// lookup resolves a code through an Amadeus dictionary, defaulting to the code.
func lookup(dict map[string]string, code string) string {
	if name, ok := dict[code]; ok && name != "" {
		return name
	}
	return code
}
