package folio

import (
	"math"
	"testing"
)

// almost compares floats with the tolerance the reports care about.
func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func testPosition(symbol string, shares, price, fx, cost, target float64) Position {
	return Position{
		ID:                  symbol,
		Symbol:              symbol,
		QuoteCurrency:       "USD",
		ShareCount:          shares,
		CurrentPrice:        price,
		FxToAnchor:          fx,
		CostBasisPrice:      cost,
		TargetAllocationPct: target,
	}
}

func TestToBase(t *testing.T) {
	testCases := []struct {
		name   string
		c      Converter
		amount float64
		want   float64
	}{
		{"identity for anchor base, positive", Converter{Base: AnchorCurrency, Rate: 4.15}, 100, 100},
		{"identity for anchor base, negative", Converter{Base: AnchorCurrency, Rate: 4.15}, -2.5, -2.5},
		{"identity for anchor base, zero", Converter{Base: AnchorCurrency, Rate: 4.15}, 0, 0},
		{"converts with the rate", Converter{Base: "TWD", Rate: 4.15}, 100, 415},
		{"zero rate accepted as-is", Converter{Base: "TWD", Rate: 0}, 100, 0},
		{"negative rate accepted as-is", Converter{Base: "TWD", Rate: -1}, 100, -100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.ToBase(tc.amount); !almost(got, tc.want) {
				t.Errorf("ToBase(%v) = %v, want %v", tc.amount, got, tc.want)
			}
		})
	}
}

func TestValuePositionEndToEnd(t *testing.T) {
	// 10 shares at 512 USD, 7.82 USD->HKD, bought at 480.
	p := testPosition("VOO", 10, 512, 7.82, 480, 0)
	pv := valuePosition(p, Converter{Base: AnchorCurrency})

	if !almost(pv.ValueInAnchor, 40038.4) {
		t.Errorf("ValueInAnchor = %v, want 40038.4", pv.ValueInAnchor)
	}
	if !almost(pv.CostInAnchor, 37536) {
		t.Errorf("CostInAnchor = %v, want 37536", pv.CostInAnchor)
	}
	if !almost(pv.ProfitInAnchor, 2502.4) {
		t.Errorf("ProfitInAnchor = %v, want 2502.4", pv.ProfitInAnchor)
	}
	// anchor is base here, so the base figures are the same
	if !almost(pv.ValueBase, 40038.4) || !almost(pv.CostBase, 37536) || !almost(pv.ProfitBase, 2502.4) {
		t.Errorf("base figures = %v/%v/%v, want 40038.4/37536/2502.4", pv.ValueBase, pv.CostBase, pv.ProfitBase)
	}
	if !pv.ProfitPct.Equal(Percent(6.6667)) {
		t.Errorf("ProfitPct = %v, want ~6.67%%", pv.ProfitPct)
	}
}

func TestProfitPctCurrencyInvariance(t *testing.T) {
	// The profit ratio must not depend on the display currency.
	p := testPosition("VOO", 10, 512, 7.82, 480, 0)

	for _, rate := range []float64{0.25, 1, 4.15, 10} {
		pv := valuePosition(p, Converter{Base: "TWD", Rate: rate})
		fromBase := Percent(pv.ProfitBase / pv.CostBase * 100)
		if !pv.ProfitPct.Equal(fromBase) {
			t.Errorf("rate %v: ProfitPct %v != from base figures %v", rate, pv.ProfitPct, fromBase)
		}
	}
}

func TestProfitPctGuards(t *testing.T) {
	testCases := []struct {
		name string
		p    Position
	}{
		{"no cost basis entered", testPosition("A", 10, 512, 7.82, 0, 0)},
		{"no shares held", testPosition("B", 0, 512, 7.82, 480, 0)},
		{"everything zero", testPosition("C", 0, 0, 1, 0, 0)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pv := valuePosition(tc.p, Converter{Base: AnchorCurrency})
			if pv.ProfitPct != 0 {
				t.Errorf("ProfitPct = %v, want exactly 0", pv.ProfitPct)
			}
			if math.IsNaN(float64(pv.ProfitPct)) || math.IsInf(float64(pv.ProfitPct), 0) {
				t.Errorf("ProfitPct = %v, must be finite", pv.ProfitPct)
			}
		})
	}
}

func TestAutoDerivedAccount(t *testing.T) {
	// The account mirrors the full invested total, converted into its
	// own currency.
	positions := []Position{testPosition("VOO", 10, 512, 7.82, 480, 0)}
	accounts := []Account{{ID: "b", DisplayName: "Brokerage", Currency: "USD", FxToAnchor: 7.82, AutoDerived: true}}

	s := Compute(positions, accounts, Settings{BaseCurrency: AnchorCurrency})

	av := s.Accounts[0]
	if !almost(av.AmountInAccountCurrency, 5120) {
		t.Errorf("AmountInAccountCurrency = %v, want 5120", av.AmountInAccountCurrency)
	}
	if !almost(av.AmountInAnchor, 40038.4) {
		t.Errorf("AmountInAnchor = %v, want 40038.4", av.AmountInAnchor)
	}
}

func TestMultipleAutoDerivedAccounts(t *testing.T) {
	// Known modeling quirk: every auto-derived account receives the
	// full invested total, it is not split between them. With two such
	// accounts the assets double and the liquid cash goes negative.
	positions := []Position{testPosition("VOO", 10, 100, 1, 100, 0)} // invested 1000
	accounts := []Account{
		{ID: "a", Currency: "HKD", FxToAnchor: 1, AutoDerived: true},
		{ID: "b", Currency: "HKD", FxToAnchor: 1, AutoDerived: true},
	}

	s := Compute(positions, accounts, Settings{BaseCurrency: AnchorCurrency})

	if !almost(s.Accounts[0].AmountBase, 1000) || !almost(s.Accounts[1].AmountBase, 1000) {
		t.Errorf("each auto-derived account must mirror the full total, got %v and %v",
			s.Accounts[0].AmountBase, s.Accounts[1].AmountBase)
	}
	if !almost(s.TotalAssetsBase, 2000) {
		t.Errorf("TotalAssetsBase = %v, want 2000", s.TotalAssetsBase)
	}
	// deliberately unclamped
	if !almost(s.LiquidCashBase, 1000) {
		t.Errorf("LiquidCashBase = %v, want 1000", s.LiquidCashBase)
	}
}

func TestLiquidCashMayGoNegative(t *testing.T) {
	// A misreported manual balance below the invested total must not
	// be clamped away.
	positions := []Position{testPosition("VOO", 10, 100, 1, 100, 0)} // invested 1000
	balance := 200.0
	accounts := []Account{{ID: "a", Currency: "HKD", FxToAnchor: 1, Balance: &balance}}

	s := Compute(positions, accounts, Settings{BaseCurrency: AnchorCurrency})
	if !almost(s.LiquidCashBase, -800) {
		t.Errorf("LiquidCashBase = %v, want -800", s.LiquidCashBase)
	}
}

func TestEmptyPortfolio(t *testing.T) {
	balance := 500.0
	accounts := []Account{{ID: "a", Currency: "HKD", FxToAnchor: 1, Balance: &balance}}

	s := Compute(nil, accounts, Settings{BaseCurrency: AnchorCurrency})

	if s.TotalInvestedBase != 0 {
		t.Errorf("TotalInvestedBase = %v, want 0", s.TotalInvestedBase)
	}
	if !almost(s.LiquidCashBase, s.TotalAssetsBase) {
		t.Errorf("LiquidCashBase = %v, want TotalAssetsBase %v", s.LiquidCashBase, s.TotalAssetsBase)
	}
}

func TestAutoDerivedZeroRateGuard(t *testing.T) {
	// A zero exchange rate on an auto-derived account resolves to a
	// zero amount instead of propagating Inf.
	positions := []Position{testPosition("VOO", 10, 100, 1, 100, 0)}
	accounts := []Account{{ID: "a", Currency: "XXX", FxToAnchor: 0, AutoDerived: true}}

	s := Compute(positions, accounts, Settings{BaseCurrency: AnchorCurrency})
	av := s.Accounts[0]
	if av.AmountInAccountCurrency != 0 || av.AmountInAnchor != 0 || av.AmountBase != 0 {
		t.Errorf("amounts = %v/%v/%v, want all 0", av.AmountInAccountCurrency, av.AmountInAnchor, av.AmountBase)
	}
	if math.IsNaN(s.TotalAssetsBase) || math.IsInf(s.TotalAssetsBase, 0) {
		t.Errorf("TotalAssetsBase = %v, must be finite", s.TotalAssetsBase)
	}
}

func TestComputeInTWD(t *testing.T) {
	// Sums accumulate in anchor currency and convert at the edge;
	// the output must match converting each figure individually.
	positions := []Position{
		testPosition("VOO", 10, 512, 7.82, 480, 60),
		testPosition("2800", 500, 18.5, 1, 17, 40),
	}
	settings := Settings{BaseCurrency: "TWD", AnchorToBaseRate: 4.15}

	s := Compute(positions, nil, settings)

	wantInvestedAnchor := 10*512*7.82 + 500*18.5*1
	if !almost(s.TotalInvestedAnchor, wantInvestedAnchor) {
		t.Errorf("TotalInvestedAnchor = %v, want %v", s.TotalInvestedAnchor, wantInvestedAnchor)
	}
	if !almost(s.TotalInvestedBase, wantInvestedAnchor*4.15) {
		t.Errorf("TotalInvestedBase = %v, want %v", s.TotalInvestedBase, wantInvestedAnchor*4.15)
	}
}
