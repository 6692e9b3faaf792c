package pricing

import (
	"math"

	"github.com/dmtran91/flybooking/internal/domain"
)

// FXRateVNDPerUSD is the static conversion rate applied once per fare unit.
// Not a live rate.
const FXRateVNDPerUSD = 25400

// Placeholder tax rate used while no fee rule is available. Quotes computed
// this way are estimates and must never be charged.
const estimatedTaxPercent = 10

// Quote is the payable breakdown for a fare selection. All amounts are VND.
type Quote struct {
	BaseTotal        int64 `json:"base_total"`
	Tax              int64 `json:"tax"`
	ServiceFee       int64 `json:"service_fee"`
	AncillaryCost    int64 `json:"ancillary_cost"`
	FinalTotal       int64 `json:"final_total"`
	PricedPassengers int   `json:"priced_passengers"`
	Estimated        bool  `json:"estimated,omitempty"`
}

// Calculate prices a selection: adults and children pay the base fare, infants
// do not. Pass a nil fee to get a degraded estimate (flat 10% tax, no service
// fee) instead of blocking on fee-config availability.
func Calculate(outbound, inbound *domain.FareOption, counts domain.PassengerCounts, fee *domain.FeeConfig, ancillaries []domain.AncillarySelection) Quote {
	priced := counts.Priced()
	if outbound == nil || priced <= 0 {
		return Quote{}
	}

	fareUSD := outbound.PriceNetUSD
	if inbound != nil {
		fareUSD += inbound.PriceNetUSD
	}
	baseTotal := round(fareUSD * FXRateVNDPerUSD * float64(priced))

	q := Quote{BaseTotal: baseTotal, PricedPassengers: priced}
	if fee == nil {
		q.Estimated = true
		q.Tax = round(float64(baseTotal) * estimatedTaxPercent / 100)
	} else {
		q.Tax = applyRule(fee.TaxType, fee.TaxValue, baseTotal, priced)
		q.ServiceFee = applyRule(fee.ServiceType, fee.ServiceValue, baseTotal, priced)
	}

	for _, a := range ancillaries {
		q.AncillaryCost += a.PriceVND
	}

	q.FinalTotal = q.BaseTotal + q.Tax + q.ServiceFee + q.AncillaryCost
	return q
}

func applyRule(t domain.AmountType, value float64, baseTotal int64, priced int) int64 {
	if t == domain.AmountPercent {
		return round(float64(baseTotal) * value / 100)
	}
	return round(value * float64(priced))
}

func round(v float64) int64 {
	return int64(math.Round(v))
}
