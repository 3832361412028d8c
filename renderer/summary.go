package renderer

import (
	"github.com/hcpang/folio"
)

const summaryTemplate = `# Portfolio Summary ({{.BaseCurrency}})

- Net worth: **{{.TotalAssets}}**
- Invested: {{.TotalInvested}}
- Liquid cash: {{.LiquidCash}}

## Positions

| Symbol | Name | Shares | Price | Value | Profit | Profit % | Allocation |
|---|---|---:|---:|---:|---:|---:|---:|
{{range .Positions -}}
| {{.Symbol}} | {{.Name}} | {{.Shares}} | {{.Price}} | {{.Value}} | {{.Profit}} | {{.ProfitPct}} | {{.Allocation}} |
{{end}}
## Accounts

| Account | Currency | Balance | Value |
|---|---|---:|---:|
{{range .Accounts -}}
| {{.Name}} | {{.Currency}} | {{.Balance}} | {{.Value}} |
{{end}}`

type summaryPositionRow struct {
	Symbol     string
	Name       string
	Shares     string
	Price      string
	Value      string
	Profit     string
	ProfitPct  string
	Allocation string
}

type summaryAccountRow struct {
	Name     string
	Currency string
	Balance  string
	Value    string
}

type summaryView struct {
	BaseCurrency  string
	TotalAssets   string
	TotalInvested string
	LiquidCash    string
	Positions     []summaryPositionRow
	Accounts      []summaryAccountRow
}

// Summary renders the portfolio totals, holdings and accounts to a
// markdown string.
func Summary(s *folio.Snapshot) string {
	view := summaryView{
		BaseCurrency:  s.BaseCurrency,
		TotalAssets:   money(s.TotalAssetsBase, s.BaseCurrency),
		TotalInvested: money(s.TotalInvestedBase, s.BaseCurrency),
		LiquidCash:    money(s.LiquidCashBase, s.BaseCurrency),
	}

	// Advice is computed in position order; use it for the current
	// allocation column.
	for i, pv := range s.Positions {
		p := pv.Position
		row := summaryPositionRow{
			Symbol:    p.Symbol,
			Name:      p.DisplayName,
			Shares:    shares(p.ShareCount),
			Price:     money(p.CurrentPrice, p.QuoteCurrency),
			Value:     money(pv.ValueBase, s.BaseCurrency),
			Profit:    signedMoney(pv.ProfitBase, s.BaseCurrency),
			ProfitPct: pv.ProfitPct.SignedString(),
		}
		if i < len(s.Advice) {
			row.Allocation = s.Advice[i].CurrentPct.String()
		}
		view.Positions = append(view.Positions, row)
	}

	for _, av := range s.Accounts {
		a := av.Account
		balance := money(av.AmountInAccountCurrency, a.Currency)
		if a.AutoDerived {
			balance += " (auto)"
		}
		view.Accounts = append(view.Accounts, summaryAccountRow{
			Name:     a.DisplayName,
			Currency: a.Currency,
			Balance:  balance,
			Value:    money(av.AmountBase, s.BaseCurrency),
		})
	}

	return renderTemplate("summary", summaryTemplate, view)
}
