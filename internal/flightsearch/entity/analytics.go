package entity

type PricePoint struct {
	Date  string
	Price float64
	Count int
}

type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

type PriceTrend struct {
	Average          float64
	Lowest           float64
	Highest          float64
	Trend            TrendDirection
	PercentageChange float64
	GoodDeals        int
}

type PriceCategory string

const (
	PriceLow    PriceCategory = "low"
	PriceMedium PriceCategory = "medium"
	PriceHigh   PriceCategory = "high"
)
