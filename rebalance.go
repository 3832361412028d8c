package folio

// Action classifies a rebalancing suggestion for display.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
	ActionHold Action = "hold"
)

// holdDeadZone is the suggested-share magnitude under which a
// suggestion is classified as "hold". The numeric value itself is not
// clamped, only the classification.
const holdDeadZone = 0.001

// Advice is the rebalancing suggestion for one position: the gap
// between its target monetary allocation and its current value, under a
// projected total that includes one planned contribution, converted
// into a share quantity.
//
// Targets across positions are not required to sum to 100%; each gap is
// computed independently.
type Advice struct {
	PositionID string
	Symbol     string

	TargetPct  Percent // user-set target allocation
	CurrentPct Percent // current share of total invested value

	TargetValueBase float64
	GapBase         float64 // positive: underweight, negative: overweight
	UnitPriceBase   float64 // price of one share in base currency

	SuggestedShares float64
	Action          Action
}

// advise computes one Advice per position against the projected total
// (current invested value plus one monthly contribution).
func advise(positions []PositionValue, c Converter, totalInvestedBase, monthlyContribution float64) []Advice {
	projectedTotalBase := totalInvestedBase + monthlyContribution

	advice := make([]Advice, 0, len(positions))
	for _, pv := range positions {
		p := pv.Position
		a := Advice{
			PositionID: p.ID,
			Symbol:     p.Symbol,
			TargetPct:  Percent(p.TargetAllocationPct),
		}

		a.TargetValueBase = p.TargetAllocationPct / 100 * projectedTotalBase
		a.GapBase = a.TargetValueBase - pv.ValueBase
		a.UnitPriceBase = c.ToBase(p.CurrentPrice * p.FxToAnchor)

		if a.UnitPriceBase > 0 {
			a.SuggestedShares = a.GapBase / a.UnitPriceBase
		}
		if totalInvestedBase > 0 {
			a.CurrentPct = Percent(pv.ValueBase / totalInvestedBase * 100)
		}

		a.Action = classify(a.SuggestedShares)
		advice = append(advice, a)
	}
	return advice
}

// classify maps a suggested share quantity to a display action.
func classify(shares float64) Action {
	switch {
	case shares > holdDeadZone:
		return ActionBuy
	case shares < -holdDeadZone:
		return ActionSell
	default:
		return ActionHold
	}
}
