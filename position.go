package folio

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Position is a single investment holding: a quantity of shares of one
// security, priced in its quote currency, with a per-record exchange
// rate to the anchor currency.
//
// The rate is a denormalized snapshot owned by the record, not a
// reference into a shared rate table. A refresh updates CurrentPrice,
// DisplayName and QuoteCurrency but never FxToAnchor.
type Position struct {
	ID                  string    // unique, immutable once created
	Symbol              string    // ticker, uppercased on entry
	DisplayName         string    // may be refreshed by the price lookup
	QuoteCurrency       string    // currency the market price is denominated in
	CurrentPrice        float64   // latest known price in QuoteCurrency, 0 until first fetched
	FxToAnchor          float64   // QuoteCurrency to anchor rate, 1 when same currency
	ShareCount          float64   // held quantity, may be fractional
	CostBasisPrice      float64   // average purchase price in QuoteCurrency
	TargetAllocationPct float64   // target share of total invested value, 0-100
	LastUpdatedAt       time.Time // last successful price fetch, zero if never
	PriceSourceLabel    string    // free-text provenance note
}

// PositionPatch is a whitelisted set of optional field overrides.
// A nil field leaves the existing value untouched. Unknown fields can
// never pass through: there is no way to express them.
type PositionPatch struct {
	Symbol              *string
	DisplayName         *string
	QuoteCurrency       *string
	CurrentPrice        *float64
	FxToAnchor          *float64
	ShareCount          *float64
	CostBasisPrice      *float64
	TargetAllocationPct *float64
	PriceSourceLabel    *string
}

// NewPosition creates a fresh position from a patch. It gets a new
// unique id and an exchange rate defaulting to 1.
func NewPosition(patch PositionPatch) Position {
	p := Position{ID: uuid.NewString(), FxToAnchor: 1}
	return patch.Apply(p)
}

// Apply returns a copy of p with the patch's non-nil overrides applied.
// Numeric fields are coerced to finite values, the symbol is trimmed
// and uppercased, and the target allocation is kept within 0-100.
func (patch PositionPatch) Apply(p Position) Position {
	if patch.Symbol != nil {
		p.Symbol = strings.ToUpper(strings.TrimSpace(*patch.Symbol))
	}
	if patch.DisplayName != nil {
		p.DisplayName = strings.TrimSpace(*patch.DisplayName)
	}
	if patch.QuoteCurrency != nil {
		p.QuoteCurrency = strings.ToUpper(strings.TrimSpace(*patch.QuoteCurrency))
	}
	if patch.CurrentPrice != nil {
		p.CurrentPrice = finiteOr(*patch.CurrentPrice, 0)
	}
	if patch.FxToAnchor != nil {
		p.FxToAnchor = finiteOr(*patch.FxToAnchor, 1)
	}
	if patch.ShareCount != nil {
		p.ShareCount = finiteOr(*patch.ShareCount, 0)
	}
	if patch.CostBasisPrice != nil {
		p.CostBasisPrice = finiteOr(*patch.CostBasisPrice, 0)
	}
	if patch.TargetAllocationPct != nil {
		pct := finiteOr(*patch.TargetAllocationPct, 0)
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		p.TargetAllocationPct = pct
	}
	if patch.PriceSourceLabel != nil {
		p.PriceSourceLabel = strings.TrimSpace(*patch.PriceSourceLabel)
	}
	return p
}

// MarshalJSON persists the position with a stable field order.
func (p Position) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", p.ID)
	w.Append("symbol", p.Symbol)
	w.Optional("displayName", p.DisplayName)
	w.Optional("quoteCurrency", p.QuoteCurrency)
	w.Append("currentPrice", p.CurrentPrice)
	w.Append("fxToAnchor", p.FxToAnchor)
	w.Append("shareCount", p.ShareCount)
	w.Append("costBasisPrice", p.CostBasisPrice)
	w.Append("targetAllocationPct", p.TargetAllocationPct)
	if !p.LastUpdatedAt.IsZero() {
		w.Append("lastUpdatedAt", p.LastUpdatedAt.Format(time.RFC3339))
	}
	w.Optional("priceSourceLabel", p.PriceSourceLabel)
	return w.MarshalJSON()
}

// UnmarshalJSON reads a persisted position, coercing every numeric
// field: anything missing or malformed becomes 0, except the exchange
// rate which defaults to 1.
func (p *Position) UnmarshalJSON(data []byte) error {
	// to parse a json, we use a dedicated local struct with tag annotation.
	type jposition struct {
		ID                  string          `json:"id"`
		Symbol              string          `json:"symbol"`
		DisplayName         string          `json:"displayName"`
		QuoteCurrency       string          `json:"quoteCurrency"`
		CurrentPrice        json.RawMessage `json:"currentPrice"`
		FxToAnchor          json.RawMessage `json:"fxToAnchor"`
		ShareCount          json.RawMessage `json:"shareCount"`
		CostBasisPrice      json.RawMessage `json:"costBasisPrice"`
		TargetAllocationPct json.RawMessage `json:"targetAllocationPct"`
		LastUpdatedAt       string          `json:"lastUpdatedAt"`
		PriceSourceLabel    string          `json:"priceSourceLabel"`
	}
	var jp jposition
	if err := json.Unmarshal(data, &jp); err != nil {
		return fmt.Errorf("invalid position record: %w", err)
	}
	p.ID = jp.ID
	p.Symbol = strings.ToUpper(strings.TrimSpace(jp.Symbol))
	p.DisplayName = jp.DisplayName
	p.QuoteCurrency = jp.QuoteCurrency
	p.CurrentPrice = coerceNumber(jp.CurrentPrice, 0)
	p.FxToAnchor = coerceNumber(jp.FxToAnchor, 1)
	p.ShareCount = coerceNumber(jp.ShareCount, 0)
	p.CostBasisPrice = coerceNumber(jp.CostBasisPrice, 0)
	p.TargetAllocationPct = coerceNumber(jp.TargetAllocationPct, 0)
	p.PriceSourceLabel = jp.PriceSourceLabel
	if jp.LastUpdatedAt != "" {
		// an unreadable timestamp is treated as "never fetched"
		if ts, err := time.Parse(time.RFC3339, jp.LastUpdatedAt); err == nil {
			p.LastUpdatedAt = ts
		}
	}
	return nil
}
