package folio

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// AnchorCurrency is the fixed intermediate currency in which all
// cross-entity sums are accumulated before conversion to the base
// currency.
const AnchorCurrency = "HKD"

// BaseCurrencies lists the currencies the portfolio can be displayed in.
var BaseCurrencies = []string{"HKD", "TWD"}

// FallbackAnchorRate is the anchor to TWD rate used when the rate
// lookup fails.
const FallbackAnchorRate = 4.15

// Settings holds the user-level knobs of the tracker.
type Settings struct {
	BaseCurrency        string  // one of BaseCurrencies
	AnchorToBaseRate    float64 // anchor to base rate, refreshed periodically
	MonthlyContribution float64 // planned contribution, in base currency
}

// DefaultSettings returns the settings used before the user changed
// anything: anchor currency display, fallback rate, no contribution.
func DefaultSettings() Settings {
	return Settings{
		BaseCurrency:     AnchorCurrency,
		AnchorToBaseRate: FallbackAnchorRate,
	}
}

// ValidateBaseCurrency checks that cur is a supported display currency.
func ValidateBaseCurrency(cur string) error {
	if !slices.Contains(BaseCurrencies, cur) {
		return fmt.Errorf("unsupported base currency %q (supported: %s)", cur, strings.Join(BaseCurrencies, ", "))
	}
	return nil
}

// Converter returns the currency converter for these settings.
func (s Settings) Converter() Converter {
	return Converter{Base: s.BaseCurrency, Rate: s.AnchorToBaseRate}
}

// MarshalJSON persists the settings with a stable field order.
func (s Settings) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("baseCurrency", s.BaseCurrency)
	w.Append("anchorToBaseRate", s.AnchorToBaseRate)
	w.Append("monthlyContribution", s.MonthlyContribution)
	return w.MarshalJSON()
}

// UnmarshalJSON reads persisted settings, falling back to defaults for
// anything missing or malformed.
func (s *Settings) UnmarshalJSON(data []byte) error {
	type jsettings struct {
		BaseCurrency        string          `json:"baseCurrency"`
		AnchorToBaseRate    json.RawMessage `json:"anchorToBaseRate"`
		MonthlyContribution json.RawMessage `json:"monthlyContribution"`
	}
	var js jsettings
	if err := json.Unmarshal(data, &js); err != nil {
		return fmt.Errorf("invalid settings record: %w", err)
	}
	*s = DefaultSettings()
	if ValidateBaseCurrency(js.BaseCurrency) == nil {
		s.BaseCurrency = js.BaseCurrency
	}
	s.AnchorToBaseRate = coerceNumber(js.AnchorToBaseRate, FallbackAnchorRate)
	s.MonthlyContribution = coerceNumber(js.MonthlyContribution, 0)
	return nil
}
