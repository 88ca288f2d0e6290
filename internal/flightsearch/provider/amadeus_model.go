package provider

type amadeusAuthResponse struct {
	TokenType   string `json:"token_type"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	State       string `json:"state"`
}

type amadeusErrorResponse struct {
	Errors []struct {
		Status int    `json:"status"`
		Code   int    `json:"code"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

type amadeusEndpoint struct {
	IATACode string `json:"iataCode"`
	Terminal string `json:"terminal"`
	At       string `json:"at"`
}

type amadeusSegment struct {
	ID          string          `json:"id"`
	Departure   amadeusEndpoint `json:"departure"`
	Arrival     amadeusEndpoint `json:"arrival"`
	CarrierCode string          `json:"carrierCode"`
	Number      string          `json:"number"`
	Aircraft    struct {
		Code string `json:"code"`
	} `json:"aircraft"`
	Duration      string `json:"duration"`
	NumberOfStops int    `json:"numberOfStops"`
}

type amadeusItinerary struct {
	Duration string           `json:"duration"`
	Segments []amadeusSegment `json:"segments"`
}

type amadeusTravelerPricing struct {
	TravelerID           string `json:"travelerId"`
	TravelerType         string `json:"travelerType"`
	FareDetailsBySegment []struct {
		SegmentID string `json:"segmentId"`
		Cabin     string `json:"cabin"`
	} `json:"fareDetailsBySegment"`
}

type amadeusOffer struct {
	ID                       string             `json:"id"`
	InstantTicketingRequired bool               `json:"instantTicketingRequired"`
	NumberOfBookableSeats    int                `json:"numberOfBookableSeats"`
	Itineraries              []amadeusItinerary `json:"itineraries"`
	Price                    struct {
		Currency string `json:"currency"`
		Total    string `json:"total"`
		Base     string `json:"base"`
		Fees     []struct {
			Amount string `json:"amount"`
			Type   string `json:"type"`
		} `json:"fees"`
		GrandTotal string `json:"grandTotal"`
	} `json:"price"`
	ValidatingAirlineCodes []string                 `json:"validatingAirlineCodes"`
	TravelerPricings       []amadeusTravelerPricing `json:"travelerPricings"`
}

type amadeusDictionaries struct {
	Carriers  map[string]string `json:"carriers"`
	Aircraft  map[string]string `json:"aircraft"`
	Locations map[string]struct {
		CityCode    string `json:"cityCode"`
		CountryCode string `json:"countryCode"`
	} `json:"locations"`
}

type amadeusOffersResponse struct {
	Data         []amadeusOffer      `json:"data"`
	Dictionaries amadeusDictionaries `json:"dictionaries"`
}

type amadeusLocation struct {
	IATACode string `json:"iataCode"`
	Name     string `json:"name"`
	SubType  string `json:"subType"`
	Address  struct {
		CityName    string `json:"cityName"`
		CityCode    string `json:"cityCode"`
		CountryName string `json:"countryName"`
		CountryCode string `json:"countryCode"`
	} `json:"address"`
}

type amadeusLocationResponse struct {
	Data []amadeusLocation `json:"data"`
}
