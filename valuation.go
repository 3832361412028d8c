package folio

// This file is the valuation pipeline: raw records plus exchange rates
// in, displayed figures out. Everything here is a pure derivation,
// recomputed from scratch on every call. There is no cached
// intermediate state, so there is no cache to go stale.
//
// All sums are accumulated in the anchor currency and converted to the
// base currency only at the edge. Missing numeric inputs were already
// coerced at the JSON boundary; the remaining hazards are divisions,
// each guarded with a zero-result fallback so that no NaN or Inf can
// reach a report.

// Converter converts amounts denominated in the anchor currency into
// the selected base currency.
type Converter struct {
	Base string  // selected base currency
	Rate float64 // anchor to base rate, ignored when Base == AnchorCurrency
}

// ToBase converts an anchor-denominated amount into the base currency.
// It is total: a zero or negative rate is applied as-is.
func (c Converter) ToBase(amountInAnchor float64) float64 {
	if c.Base == AnchorCurrency {
		return amountInAnchor
	}
	return amountInAnchor * c.Rate
}

// PositionValue is a position together with its derived figures.
type PositionValue struct {
	Position Position

	ValueInAnchor  float64
	CostInAnchor   float64
	ProfitInAnchor float64

	ValueBase  float64
	CostBase   float64
	ProfitBase float64

	// ProfitPct is computed from the anchor figures. The ratio is
	// currency-invariant, so base figures would give the same value.
	ProfitPct Percent
}

// valuePosition derives value, cost and profit for one position.
func valuePosition(p Position, c Converter) PositionValue {
	pv := PositionValue{Position: p}
	pv.ValueInAnchor = p.ShareCount * p.CurrentPrice * p.FxToAnchor
	pv.CostInAnchor = p.ShareCount * p.CostBasisPrice * p.FxToAnchor
	pv.ProfitInAnchor = pv.ValueInAnchor - pv.CostInAnchor
	if pv.CostInAnchor > 0 {
		pv.ProfitPct = Percent(pv.ProfitInAnchor / pv.CostInAnchor * 100)
	}
	pv.ValueBase = c.ToBase(pv.ValueInAnchor)
	pv.CostBase = c.ToBase(pv.CostInAnchor)
	pv.ProfitBase = c.ToBase(pv.ProfitInAnchor)
	return pv
}

// AccountValue is an account together with its resolved amounts.
type AccountValue struct {
	Account Account

	AmountInAccountCurrency float64
	AmountInAnchor          float64
	AmountBase              float64
}

// valueAccount resolves the displayed amount of one account. An
// auto-derived account mirrors the full total invested value converted
// into its own currency.
func valueAccount(a Account, totalInvestedAnchor float64, c Converter) AccountValue {
	av := AccountValue{Account: a}
	if a.AutoDerived {
		if a.FxToAnchor != 0 {
			av.AmountInAccountCurrency = totalInvestedAnchor / a.FxToAnchor
		}
	} else {
		av.AmountInAccountCurrency = a.ManualBalance()
	}
	av.AmountInAnchor = av.AmountInAccountCurrency * a.FxToAnchor
	av.AmountBase = c.ToBase(av.AmountInAnchor)
	return av
}

// Snapshot is the full derived view of the portfolio: every position
// valued, every account resolved, totals and rebalancing advice. It is
// a stateless calculation over the records passed to Compute.
type Snapshot struct {
	BaseCurrency string

	Positions []PositionValue
	Accounts  []AccountValue
	Advice    []Advice

	TotalInvestedAnchor float64
	TotalInvestedBase   float64
	TotalAssetsBase     float64
	LiquidCashBase      float64 // may be negative, deliberately unclamped
}

// Compute derives the complete portfolio view from the given records
// and settings.
func Compute(positions []Position, accounts []Account, settings Settings) *Snapshot {
	c := settings.Converter()
	s := &Snapshot{BaseCurrency: settings.BaseCurrency}

	for _, p := range positions {
		pv := valuePosition(p, c)
		s.Positions = append(s.Positions, pv)
		s.TotalInvestedAnchor += pv.ValueInAnchor
		s.TotalInvestedBase += pv.ValueBase
	}

	for _, a := range accounts {
		av := valueAccount(a, s.TotalInvestedAnchor, c)
		s.Accounts = append(s.Accounts, av)
		s.TotalAssetsBase += av.AmountBase
	}

	s.LiquidCashBase = s.TotalAssetsBase - s.TotalInvestedBase

	s.Advice = advise(s.Positions, c, s.TotalInvestedBase, settings.MonthlyContribution)
	return s
}
