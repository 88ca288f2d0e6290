// Package analytics derives price statistics, best deals and a per-day price
// trend from a flight list.
package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"
)

const (
	DefaultDealThreshold     = 0.8
	DefaultGoodDealThreshold = 0.9
	DefaultBucketSize        = 100
)

// AveragePrice is the mean total price rounded to a whole amount, 0 when empty.
func AveragePrice(flights []entity.Flight) float64 {
	if len(flights) == 0 {
		return 0
	}
	var total float64
	for _, f := range flights {
		total += f.Price.Total
	}
	return round(total / float64(len(flights)))
}

// MedianPrice is the middle total price, or the mean of the two middle prices
// for an even count. 0 when empty.
func MedianPrice(flights []entity.Flight) float64 {
	if len(flights) == 0 {
		return 0
	}
	prices := sortedPrices(flights)
	mid := len(prices) / 2
	if len(prices)%2 == 0 {
		return (prices[mid-1] + prices[mid]) / 2
	}
	return prices[mid]
}

// PricePercentile returns the nearest-rank percentile of total prices.
func PricePercentile(flights []entity.Flight, percentile float64) float64 {
	if len(flights) == 0 {
		return 0
	}
	prices := sortedPrices(flights)
	index := int(math.Ceil(percentile/100*float64(len(prices)))) - 1
	index = min(max(index, 0), len(prices)-1)
	return prices[index]
}

// BestDeals returns flights priced at or below average*threshold.
func BestDeals(flights []entity.Flight, threshold float64) []entity.Flight {
	limit := AveragePrice(flights) * threshold
	deals := make([]entity.Flight, 0)
	for _, f := range flights {
		if f.Price.Total <= limit {
			deals = append(deals, f)
		}
	}
	return deals
}

func Savings(price, average float64) float64 {
	return round(average - price)
}

func SavingsPercentage(price, average float64) float64 {
	if average == 0 {
		return 0
	}
	return round((average - price) / average * 100)
}

func IsGoodDeal(price, average, threshold float64) bool {
	return price <= average*threshold
}

// PriceCategory places price in the lower, middle or upper part of
// [lowest, highest] using 33% and 67% cut points. When lowest equals highest
// every price is low.
func PriceCategory(price, lowest, highest float64) entity.PriceCategory {
	span := highest - lowest
	switch {
	case price <= lowest+span*0.33:
		return entity.PriceLow
	case price <= lowest+span*0.67:
		return entity.PriceMedium
	default:
		return entity.PriceHigh
	}
}

// PriceBuckets counts flights per price band of size, keyed "300-400".
func PriceBuckets(flights []entity.Flight, size float64) map[string]int {
	if size <= 0 {
		size = DefaultBucketSize
	}
	buckets := make(map[string]int)
	for _, f := range flights {
		start := math.Floor(f.Price.Total/size) * size
		buckets[fmt.Sprintf("%g-%g", start, start+size)]++
	}
	return buckets
}

func sortedPrices(flights []entity.Flight) []float64 {
	prices := make([]float64, len(flights))
	for i, f := range flights {
		prices[i] = f.Price.Total
	}
	sort.Float64s(prices)
	return prices
}

// round rounds halves towards positive infinity (2.5 -> 3, -2.5 -> -2).
func round(v float64) float64 {
	return math.Floor(v + 0.5)
}
