package domain

// FlightSearchParams is the full parameter tuple of one priced search.
// It doubles as the cache/dedupe key for result caching.
type FlightSearchParams struct {
	Origin        string
	Destination   string
	DepartureDate string // YYYY-MM-DD
	ReturnDate    string // empty for one-way
	Adults        int
	NonStop       bool
	Max           int
}

// CheapestCitiesParams drives the multi-city comparison.
type CheapestCitiesParams struct {
	Origin        string
	DepartureDate string
	ReturnDate    string
	Adults        int
	MaxPerCity    int
}

// FlightSegment is one flattened leg of an itinerary.
type FlightSegment struct {
	DepartureAirport  string  `json:"departure_airport"`
	DepartureAt       string  `json:"departure_at"`
	DepartureTerminal *string `json:"departure_terminal,omitempty"`
	ArrivalAirport    string  `json:"arrival_airport"`
	ArrivalAt         string  `json:"arrival_at"`
	ArrivalTerminal   *string `json:"arrival_terminal,omitempty"`
	CarrierCode       string  `json:"carrier_code"`
	CarrierName       string  `json:"carrier_name,omitempty"`
	FlightNumber      string  `json:"flight_number"`
	Duration          string  `json:"duration"`
	NumberOfStops     int     `json:"number_of_stops"`
}

// FlightItinerary is one direction of an offer.
type FlightItinerary struct {
	Duration string          `json:"duration"`
	Segments []FlightSegment `json:"segments"`
}

// FlightOffer is a display-ready priced offer.
type FlightOffer struct {
	Currency    string            `json:"currency"`
	TotalPrice  float64           `json:"total_price"`
	Itineraries []FlightItinerary `json:"itineraries"`
	Airlines    []string          `json:"airlines"`
	Deeplink    string            `json:"deeplink"`
}

// CityFlights groups the retained offers of one city.
// CheapestPrice is nil when no search for the city succeeded.
type CityFlights struct {
	CityNameEn    string        `json:"city_name_en"`
	CityNameKo    string        `json:"city_name_ko"`
	IataCodes     []string      `json:"iata_codes"`
	Offers        []FlightOffer `json:"offers"`
	CheapestPrice *float64      `json:"cheapest_price,omitempty"`
}

// CheapestCitiesResult ranks cities ascending by headline price.
type CheapestCitiesResult struct {
	Cities        []CityFlights `json:"cities"`
	Origin        string        `json:"origin"`
	DepartureDate string        `json:"departure_date"`
	ReturnDate    string        `json:"return_date,omitempty"`
}
