package pricing

import (
	"strings"

	"github.com/dmtran91/flybooking/internal/domain"
)

// Vietnam domestic airports. A route with either endpoint outside this set is
// international for fee purposes.
var domesticAirports = map[string]struct{}{
	"HAN": {}, "SGN": {}, "DAD": {}, "CXR": {}, "PQC": {},
	"HPH": {}, "VII": {}, "HUI": {}, "DLI": {}, "VCA": {},
	"UIH": {}, "THD": {}, "VDO": {}, "BMV": {}, "PXU": {},
	"VCL": {}, "TBB": {}, "VKG": {}, "CAH": {}, "VCS": {},
	"DIN": {}, "VDH": {},
}

func IsDomesticAirport(code string) bool {
	_, ok := domesticAirports[strings.ToUpper(code)]
	return ok
}

func IsInternationalRoute(departure, arrival string) bool {
	return !IsDomesticAirport(departure) || !IsDomesticAirport(arrival)
}

// AirlineCode maps a display name to a two-letter carrier code by substring
// match. Unknown names map to "default".
func AirlineCode(airlineName string) string {
	name := strings.ToLower(airlineName)
	switch {
	case strings.Contains(name, "vietnam airlines"):
		return "VN"
	case strings.Contains(name, "vietjet"):
		return "VJ"
	case strings.Contains(name, "bamboo"):
		return "QH"
	default:
		return "default"
	}
}

// ResolveFee picks the fee rule for a fare: airline override first, then
// international, then domestic, then the default entry. Always returns a rule.
func ResolveFee(cfg domain.AdminFeeConfig, airlineName, departureID, arrivalID string) domain.FeeConfig {
	if code := AirlineCode(airlineName); code != "default" {
		if fee, ok := cfg.Airlines[code]; ok {
			return fee
		}
	}
	if IsInternationalRoute(departureID, arrivalID) {
		if cfg.International != nil {
			return *cfg.International
		}
		return cfg.Default
	}
	if cfg.Domestic != nil {
		return *cfg.Domestic
	}
	return cfg.Default
}
