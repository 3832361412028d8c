package folio

// Seed dataset used when no saved state exists yet, so a first run has
// something meaningful to display.

func seedPosition(symbol, name, currency string, fx, shares, cost, target float64) Position {
	return NewPosition(PositionPatch{
		Symbol:              &symbol,
		DisplayName:         &name,
		QuoteCurrency:       &currency,
		FxToAnchor:          &fx,
		ShareCount:          &shares,
		CostBasisPrice:      &cost,
		TargetAllocationPct: &target,
	})
}

// SeedPositions returns two sample positions: a local HKD tracker fund
// and a USD index fund with its own exchange-rate snapshot.
func SeedPositions() []Position {
	return []Position{
		seedPosition("2800", "Tracker Fund of Hong Kong", "HKD", 1, 500, 18.5, 40),
		seedPosition("VOO", "Vanguard S&P 500 ETF", "USD", 7.8, 10, 480, 60),
	}
}

// SeedAccounts returns two sample accounts: an auto-derived brokerage
// account mirroring the invested total, and a manual TWD bank balance.
func SeedAccounts() []Account {
	autoDerived := true
	brokerage := "Brokerage"
	hkd := "HKD"
	one := 1.0

	bank := "Bank"
	twd := "TWD"
	twdToAnchor := 0.241
	balance := 100000.0

	return []Account{
		NewAccount(AccountPatch{
			DisplayName: &brokerage,
			Currency:    &hkd,
			FxToAnchor:  &one,
			AutoDerived: &autoDerived,
		}),
		NewAccount(AccountPatch{
			DisplayName: &bank,
			Currency:    &twd,
			FxToAnchor:  &twdToAnchor,
			Balance:     &balance,
		}),
	}
}
