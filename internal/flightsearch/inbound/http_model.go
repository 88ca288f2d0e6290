package inbound

type SearchResponse struct {
	SearchCriteria SearchCriteriaResponse `json:"search_criteria"`
	Metadata       MetadataResponse       `json:"metadata"`
	Flights        []FlightResponse       `json:"flights"`
	FilterOptions  FilterOptionsResponse  `json:"filter_options"`
	ActiveFilters  []ActiveFilterResponse `json:"active_filters"`
	HasActive      bool                   `json:"has_active_filters"`
	Analytics      AnalyticsResponse      `json:"analytics"`
	Highlights     HighlightsResponse     `json:"highlights"`
}

type SearchCriteriaResponse struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureDate string  `json:"departure_date"`
	ReturnDate    *string `json:"return_date,omitempty"`
	TripType      string  `json:"trip_type"`
	Adults        int     `json:"adults"`
	Children      int     `json:"children"`
	Infants       int     `json:"infants"`
	CabinClass    string  `json:"cabin_class,omitempty"`
	Sort          string  `json:"sort"`
}

type MetadataResponse struct {
	TotalResults       int      `json:"total_results"`
	FilteredResults    int      `json:"filtered_results"`
	ProvidersQueried   int      `json:"providers_queried"`
	ProvidersSucceeded int      `json:"providers_succeeded"`
	ProvidersFailed    int      `json:"providers_failed"`
	FailedProviders    []string `json:"failed_providers,omitempty"`
	SearchTimeMs       int64    `json:"search_time_ms"`
	CacheHit           bool     `json:"cache_hit"`
	Currency           string   `json:"currency"`
}

type FlightResponse struct {
	ID                     string              `json:"id"`
	Itineraries            []ItineraryResponse `json:"itineraries"`
	Price                  PriceResponse       `json:"price"`
	ValidatingAirlineCodes []string            `json:"validating_airline_codes"`
	Airlines               []string            `json:"airlines"`
	AvailableSeats         int                 `json:"available_seats"`
	LowSeats               bool                `json:"low_seats"`
	CabinClass             string              `json:"cabin_class"`
	CabinLabel             string              `json:"cabin_label"`
	Departure              string              `json:"departure"`
	Arrival                string              `json:"arrival"`
	DepartureTimeOfDay     string              `json:"departure_time_of_day"`
	Duration               DurationResponse    `json:"duration"`
	Stops                  int                 `json:"stops"`
	ValueScore             float64             `json:"value_score"`
	RelativeScore          float64             `json:"relative_score"`
	PriceCategory          string              `json:"price_category"`
	GoodDeal               bool                `json:"good_deal"`
	Savings                float64             `json:"savings"`
	SavingsPercentage      float64             `json:"savings_percentage"`
	DurationEfficiency     float64             `json:"duration_efficiency"`
}

type ItineraryResponse struct {
	Duration DurationResponse  `json:"duration"`
	Stops    int               `json:"stops"`
	Segments []SegmentResponse `json:"segments"`
}

type SegmentResponse struct {
	ID           string           `json:"id"`
	Carrier      AirlineResponse  `json:"carrier"`
	FlightNumber string           `json:"flight_number"`
	Aircraft     string           `json:"aircraft,omitempty"`
	Departure    FlightPoint      `json:"departure"`
	Arrival      FlightPoint      `json:"arrival"`
	Duration     DurationResponse `json:"duration"`
	Layover      *LayoverResponse `json:"layover_after,omitempty"`
}

type LayoverResponse struct {
	Minutes   int    `json:"minutes"`
	Formatted string `json:"formatted"`
	Short     bool   `json:"short"`
	Long      bool   `json:"long"`
}

type AirlineResponse struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type FlightPoint struct {
	Airport  string `json:"airport"`
	Terminal string `json:"terminal,omitempty"`
	Datetime string `json:"datetime"`
}

type DurationResponse struct {
	TotalMinutes int    `json:"total_minutes"`
	Formatted    string `json:"formatted"`
	Long         string `json:"long"`
	Compact      string `json:"compact"`
	Category     string `json:"category,omitempty"`
}

type PriceResponse struct {
	Amount    float64 `json:"amount"`
	Base      float64 `json:"base"`
	Fees      float64 `json:"fees"`
	PerAdult  float64 `json:"per_adult"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted"`
}

type FilterOptionsResponse struct {
	PriceRange        PriceRangeResponse   `json:"price_range"`
	Airlines          []AirlineOptionEntry `json:"airlines"`
	MaxDuration       int                  `json:"max_duration"`
	StopsDistribution map[string]int       `json:"stops_distribution"`
	DepartureTimes    []TimeRangeResponse  `json:"departure_times"`
	ArrivalTimes      []TimeRangeResponse  `json:"arrival_times"`
}

type PriceRangeResponse struct {
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	CurrentMin float64 `json:"current_min"`
	CurrentMax float64 `json:"current_max"`
}

type AirlineOptionEntry struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
}

type TimeRangeResponse struct {
	Part     string `json:"part"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type ActiveFilterResponse struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type AnalyticsResponse struct {
	AveragePrice float64              `json:"average_price"`
	MedianPrice  float64              `json:"median_price"`
	LowestPrice  float64              `json:"lowest_price"`
	HighestPrice float64              `json:"highest_price"`
	P25Price     float64              `json:"p25_price"`
	P75Price     float64              `json:"p75_price"`
	Distribution map[string]int       `json:"price_distribution"`
	BestDeals    []string             `json:"best_deals"`
	PriceData    []PricePointResponse `json:"price_data"`
	Trend        *TrendResponse       `json:"trend"`
}

type PricePointResponse struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
	Count int     `json:"count"`
}

type TrendResponse struct {
	Average          float64 `json:"average"`
	Lowest           float64 `json:"lowest"`
	Highest          float64 `json:"highest"`
	Trend            string  `json:"trend"`
	PercentageChange float64 `json:"percentage_change"`
	GoodDeals        int     `json:"good_deals"`
}

type HighlightsResponse struct {
	Recommended   string         `json:"recommended,omitempty"`
	Cheapest      string         `json:"cheapest,omitempty"`
	Fastest       string         `json:"fastest,omitempty"`
	DirectFlights int            `json:"direct_flights"`
	ByAirline     map[string]int `json:"by_airline"`
	ByStops       map[string]int `json:"by_stops"`
}

type AirportsResponse struct {
	Airports []AirportResponse `json:"airports"`
}

type AirportResponse struct {
	IATACode    string `json:"iata_code"`
	Name        string `json:"name"`
	CityName    string `json:"city_name,omitempty"`
	CityCode    string `json:"city_code,omitempty"`
	CountryName string `json:"country_name,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
}

type RatesResponse struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	UpdatedAt int64              `json:"updated_at"`
}

type HistoryListResponse struct {
	History []HistoryResponse `json:"history"`
}

type HistoryResponse struct {
	ID            string  `json:"id"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureDate string  `json:"departure_date"`
	ReturnDate    *string `json:"return_date,omitempty"`
	TripType      string  `json:"trip_type"`
	Adults        int     `json:"adults"`
	Children      int     `json:"children"`
	Infants       int     `json:"infants"`
	CabinClass    string  `json:"cabin_class,omitempty"`
	SearchedAt    string  `json:"searched_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
