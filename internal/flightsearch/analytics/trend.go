package analytics

import (
	"math"
	"sort"

	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgtime"
)

// TrendThreshold is the percentage change beyond which a series counts as
// moving up or down.
const TrendThreshold = 5.0

// PriceData groups flights by departure day (in the departure's own
// location) into points holding the rounded mean price and flight count,
// ordered by date.
func PriceData(flights []entity.Flight) []entity.PricePoint {
	type acc struct {
		total float64
		count int
	}
	days := make(map[string]*acc)
	for _, f := range flights {
		key := pkgtime.DateKey(f.DepartureDate)
		a, ok := days[key]
		if !ok {
			a = &acc{}
			days[key] = a
		}
		a.total += f.Price.Total
		a.count++
	}

	points := make([]entity.PricePoint, 0, len(days))
	for date, a := range days {
		points = append(points, entity.PricePoint{
			Date:  date,
			Price: round(a.total / float64(a.count)),
			Count: a.count,
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// PriceTrend summarises an ordered price series. It returns nil for fewer than
// two points. The percentage change only compares the first and last points,
// so a series that dips and recovers reads as stable.
func PriceTrend(points []entity.PricePoint) *entity.PriceTrend {
	if len(points) < 2 {
		return nil
	}

	var sum float64
	lowest, highest := points[0].Price, points[0].Price
	for _, p := range points {
		sum += p.Price
		lowest = math.Min(lowest, p.Price)
		highest = math.Max(highest, p.Price)
	}

	first, last := points[0].Price, points[len(points)-1].Price
	var change float64
	if first != 0 {
		change = (last - first) / first * 100
	}

	trend := entity.TrendStable
	switch {
	case change > TrendThreshold:
		trend = entity.TrendUp
	case change < -TrendThreshold:
		trend = entity.TrendDown
	}

	return &entity.PriceTrend{
		Average:          round(sum / float64(len(points))),
		Lowest:           lowest,
		Highest:          highest,
		Trend:            trend,
		PercentageChange: round(change*10) / 10,
	}
}
