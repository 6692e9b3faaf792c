package domain

import "time"

// FareOption is a priced fare bundle for one leg, as returned by the external
// flight-search provider. Net prices are USD-denominated; conversion to VND
// happens once, in pricing.
type FareOption struct {
	Airline          string    `json:"airline"`
	AirlineCode      string    `json:"airline_code,omitempty"`
	FlightNumber     string    `json:"flight_number"`
	DepartureAirport string    `json:"departure_airport"`
	ArrivalAirport   string    `json:"arrival_airport"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	CabinClass       string    `json:"cabin_class,omitempty"`
	BaggageAllowance string    `json:"baggage_allowance,omitempty"`
	PriceNetUSD      float64   `json:"price_net"`
}

// AncillaryOption is a purchasable extra-baggage add-on, one per passenger per
// leg.
type AncillaryOption struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PriceVND    int64  `json:"price"`
	Description string `json:"description,omitempty"`
}
