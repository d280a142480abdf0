package domain

// Amadeus Flight Offers Search v2 wire types (subset the service consumes).

type AmadeusFlightOffersResponse struct {
	Meta         AmadeusMeta          `json:"meta"`
	Data         []AmadeusFlightOffer `json:"data"`
	Dictionaries *AmadeusDictionaries `json:"dictionaries,omitempty"`
}

type AmadeusMeta struct {
	Count int `json:"count"`
}

type AmadeusFlightOffer struct {
	Type                   string             `json:"type"`
	ID                     string             `json:"id"`
	Source                 string             `json:"source"`
	OneWay                 bool               `json:"oneWay"`
	LastTicketingDate      string             `json:"lastTicketingDate"`
	NumberOfBookableSeats  int                `json:"numberOfBookableSeats"`
	Itineraries            []AmadeusItinerary `json:"itineraries"`
	Price                  AmadeusPrice       `json:"price"`
	ValidatingAirlineCodes []string           `json:"validatingAirlineCodes"`
}

type AmadeusItinerary struct {
	Duration string           `json:"duration"`
	Segments []AmadeusSegment `json:"segments"`
}

type AmadeusSegment struct {
	Departure     AmadeusEndpoint `json:"departure"`
	Arrival       AmadeusEndpoint `json:"arrival"`
	CarrierCode   string          `json:"carrierCode"`
	Number        string          `json:"number"`
	Duration      string          `json:"duration"`
	ID            string          `json:"id"`
	NumberOfStops int             `json:"numberOfStops"`
}

type AmadeusEndpoint struct {
	IataCode string  `json:"iataCode"`
	Terminal *string `json:"terminal,omitempty"`
	At       string  `json:"at"`
}

type AmadeusPrice struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	Base       string `json:"base"`
	GrandTotal string `json:"grandTotal"`
}

type AmadeusDictionaries struct {
	Carriers   map[string]string `json:"carriers,omitempty"`
	Aircraft   map[string]string `json:"aircraft,omitempty"`
	Currencies map[string]string `json:"currencies,omitempty"`
}
