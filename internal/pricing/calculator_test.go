package pricing

import (
	"testing"

	"github.com/dmtran91/flybooking/internal/domain"
	"github.com/stretchr/testify/assert"
)

func fareUSD(price float64) *domain.FareOption {
	return &domain.FareOption{
		Airline:          "Vietnam Airlines",
		DepartureAirport: "HAN",
		ArrivalAirport:   "SGN",
		PriceNetUSD:      price,
	}
}

// Round trip, 2 adults + 1 infant, domestic fee rule: the worked example from
// the fare desk. Infant must not contribute to the base fare.
func TestCalculate_RoundTripDomestic(t *testing.T) {
	fee := &domain.FeeConfig{
		ServiceType: domain.AmountFixed, ServiceValue: 90000,
		TaxType: domain.AmountPercent, TaxValue: 8, Currency: "VND",
	}
	counts := domain.PassengerCounts{Adults: 2, Infants: 1}

	q := Calculate(fareUSD(100), fareUSD(100), counts, fee, nil)

	assert.Equal(t, int64(10160000), q.BaseTotal)
	assert.Equal(t, int64(812800), q.Tax)
	assert.Equal(t, int64(180000), q.ServiceFee)
	assert.Equal(t, int64(0), q.AncillaryCost)
	assert.Equal(t, int64(11152800), q.FinalTotal)
	assert.Equal(t, 2, q.PricedPassengers)
	assert.False(t, q.Estimated)
}

func TestCalculate_FixedTaxPerPassenger(t *testing.T) {
	fee := &domain.FeeConfig{
		ServiceType: domain.AmountPercent, ServiceValue: 5,
		TaxType: domain.AmountFixed, TaxValue: 50000, Currency: "VND",
	}
	counts := domain.PassengerCounts{Adults: 2, Children: 1}

	q := Calculate(fareUSD(50), nil, counts, fee, nil)

	// 50 * 25400 * 3
	assert.Equal(t, int64(3810000), q.BaseTotal)
	// fixed tax multiplies by priced passengers
	assert.Equal(t, int64(150000), q.Tax)
	// percent service fee applies to the base total
	assert.Equal(t, int64(190500), q.ServiceFee)
	assert.Equal(t, q.BaseTotal+q.Tax+q.ServiceFee, q.FinalTotal)
}

func TestCalculate_AncillariesSummed(t *testing.T) {
	fee := &domain.FeeConfig{
		ServiceType: domain.AmountFixed, ServiceValue: 90000,
		TaxType: domain.AmountPercent, TaxValue: 8, Currency: "VND",
	}
	counts := domain.PassengerCounts{Adults: 2}
	ancillaries := []domain.AncillarySelection{
		{PassengerIndex: 0, Leg: domain.LegOutbound, OptionID: "BAG20", PriceVND: 216000},
		{PassengerIndex: 0, Leg: domain.LegInbound, OptionID: "BAG20", PriceVND: 216000},
		{PassengerIndex: 1, Leg: domain.LegOutbound, OptionID: "BAG30", PriceVND: 324000},
	}

	q := Calculate(fareUSD(100), fareUSD(100), counts, fee, ancillaries)

	assert.Equal(t, int64(756000), q.AncillaryCost)
	assert.Equal(t, q.BaseTotal+q.Tax+q.ServiceFee+q.AncillaryCost, q.FinalTotal)
}

func TestCalculate_TotalsAlwaysAddUp(t *testing.T) {
	fee := &domain.FeeConfig{
		ServiceType: domain.AmountPercent, ServiceValue: 3,
		TaxType: domain.AmountPercent, TaxValue: 8, Currency: "VND",
	}

	testCases := []struct {
		name     string
		outbound *domain.FareOption
		inbound  *domain.FareOption
		counts   domain.PassengerCounts
	}{
		{"one way single adult", fareUSD(42.5), nil, domain.PassengerCounts{Adults: 1}},
		{"round trip family", fareUSD(120), fareUSD(95.75), domain.PassengerCounts{Adults: 2, Children: 2, Infants: 1}},
		{"max seated passengers", fareUSD(33.33), nil, domain.PassengerCounts{Adults: 5, Children: 4}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := Calculate(tc.outbound, tc.inbound, tc.counts, fee, nil)
			assert.Equal(t, q.BaseTotal+q.Tax+q.ServiceFee+q.AncillaryCost, q.FinalTotal)
		})
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	fee := &domain.FeeConfig{
		ServiceType: domain.AmountFixed, ServiceValue: 90000,
		TaxType: domain.AmountPercent, TaxValue: 8, Currency: "VND",
	}
	counts := domain.PassengerCounts{Adults: 3, Children: 1}

	first := Calculate(fareUSD(88.8), fareUSD(91.2), counts, fee, nil)
	second := Calculate(fareUSD(88.8), fareUSD(91.2), counts, fee, nil)
	assert.Equal(t, first, second)
}

func TestCalculate_ZeroQuote(t *testing.T) {
	fee := &domain.FeeConfig{
		ServiceType: domain.AmountFixed, ServiceValue: 90000,
		TaxType: domain.AmountPercent, TaxValue: 8, Currency: "VND",
	}

	// No outbound selection.
	q := Calculate(nil, nil, domain.PassengerCounts{Adults: 2}, fee, nil)
	assert.Equal(t, Quote{}, q)

	// No priced passengers.
	q = Calculate(fareUSD(100), nil, domain.PassengerCounts{}, fee, nil)
	assert.Equal(t, Quote{}, q)
}

func TestCalculate_EstimatedWithoutFeeConfig(t *testing.T) {
	counts := domain.PassengerCounts{Adults: 1}

	q := Calculate(fareUSD(100), nil, counts, nil, nil)

	assert.True(t, q.Estimated)
	assert.Equal(t, int64(2540000), q.BaseTotal)
	assert.Equal(t, int64(254000), q.Tax) // flat 10% placeholder
	assert.Equal(t, int64(0), q.ServiceFee)
	assert.Equal(t, int64(2794000), q.FinalTotal)
}
