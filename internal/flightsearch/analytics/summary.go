package analytics

import "github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"

type Summary struct {
	Average         float64
	Median          float64
	Lowest          float64
	Highest         float64
	P25             float64
	P75             float64
	AverageDuration float64
	Buckets         map[string]int
	BestDeals       []entity.Flight
	PriceData       []entity.PricePoint
	Trend           *entity.PriceTrend
}

// Summarize computes every chart and trend figure for a filtered list.
func Summarize(flights []entity.Flight) Summary {
	s := Summary{
		Average:   AveragePrice(flights),
		Median:    MedianPrice(flights),
		BestDeals: BestDeals(flights, DefaultDealThreshold),
		PriceData: PriceData(flights),
		P25:       PricePercentile(flights, 25),
		P75:       PricePercentile(flights, 75),
		Buckets:   PriceBuckets(flights, DefaultBucketSize),
	}
	if len(flights) > 0 {
		prices := sortedPrices(flights)
		s.Lowest, s.Highest = prices[0], prices[len(prices)-1]

		var minutes int
		for _, f := range flights {
			minutes += f.TotalDuration
		}
		s.AverageDuration = round(float64(minutes) / float64(len(flights)))
	}
	s.Trend = PriceTrend(s.PriceData)
	if s.Trend != nil {
		s.Trend.GoodDeals = len(s.BestDeals)
	}
	return s
}

// DurationEfficiency compares the first segment's duration with the whole
// trip, as a percentage. 100 means no connection overhead.
func DurationEfficiency(f entity.Flight) float64 {
	if f.TotalDuration == 0 || len(f.Itineraries) == 0 || len(f.Itineraries[0].Segments) == 0 {
		return 0
	}
	direct := float64(f.Itineraries[0].Segments[0].Duration)
	return round(direct / float64(f.TotalDuration) * 100)
}

// RelativeValueScore rates a flight 0..100 against the averages of its result
// set rather than fixed references.
func RelativeValueScore(f entity.Flight, averagePrice, averageDuration float64) float64 {
	var priceScore, durationScore float64
	if averagePrice > 0 {
		priceScore = (1 - f.Price.Total/(averagePrice*2)) * 50
	}
	if averageDuration > 0 {
		durationScore = (1 - float64(f.TotalDuration)/(averageDuration*2)) * 30
	}
	var stopsScore float64
	switch f.TotalStops {
	case 0:
		stopsScore = 20
	case 1:
		stopsScore = 10
	}
	return min(max(round(priceScore+durationScore+stopsScore), 0), 100)
}
