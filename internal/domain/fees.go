package domain

import "fmt"

type AmountType string

const (
	AmountFixed   AmountType = "fixed"
	AmountPercent AmountType = "percent"
)

// FeeConfig is one service-fee/tax rule. Fixed values are VND per priced
// passenger, percent values apply to the base fare total.
type FeeConfig struct {
	ServiceType  AmountType `json:"service_type"`
	ServiceValue float64    `json:"service_value"`
	TaxType      AmountType `json:"tax_type"`
	TaxValue     float64    `json:"tax_value"`
	Currency     string     `json:"currency"`
}

func (f FeeConfig) Validate() error {
	for _, t := range []AmountType{f.ServiceType, f.TaxType} {
		if t != AmountFixed && t != AmountPercent {
			return fmt.Errorf("unknown amount type %q", t)
		}
	}
	if f.ServiceValue < 0 || f.TaxValue < 0 {
		return fmt.Errorf("fee values cannot be negative")
	}
	return nil
}

// AdminFeeConfig is the admin-edited fee table. Default is always present;
// airline keys are two-letter carrier codes and win over the
// domestic/international/default fallback chain.
type AdminFeeConfig struct {
	Default       FeeConfig            `json:"default"`
	Domestic      *FeeConfig           `json:"domestic,omitempty"`
	International *FeeConfig           `json:"international,omitempty"`
	Airlines      map[string]FeeConfig `json:"airlines,omitempty"`
}

// DefaultAdminFeeConfig is the built-in fallback used when the stored config
// cannot be loaded.
func DefaultAdminFeeConfig() AdminFeeConfig {
	return AdminFeeConfig{
		Default: FeeConfig{
			ServiceType: AmountFixed, ServiceValue: 100000,
			TaxType: AmountPercent, TaxValue: 8,
			Currency: "VND",
		},
		Domestic: &FeeConfig{
			ServiceType: AmountFixed, ServiceValue: 90000,
			TaxType: AmountPercent, TaxValue: 8,
			Currency: "VND",
		},
		International: &FeeConfig{
			ServiceType: AmountFixed, ServiceValue: 250000,
			TaxType: AmountPercent, TaxValue: 0,
			Currency: "VND",
		},
	}
}
