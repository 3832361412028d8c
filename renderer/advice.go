package renderer

import (
	"github.com/hcpang/folio"
)

const adviceTemplate = `# Rebalancing Advice ({{.BaseCurrency}})

Projected total: **{{.ProjectedTotal}}** (invested {{.TotalInvested}} + contribution {{.Contribution}})

| Symbol | Target % | Current % | Target Value | Gap | Unit Price | Shares | Action |
|---|---:|---:|---:|---:|---:|---:|---|
{{range .Rows -}}
| {{.Symbol}} | {{.TargetPct}} | {{.CurrentPct}} | {{.TargetValue}} | {{.Gap}} | {{.UnitPrice}} | {{.Shares}} | {{.Action}} |
{{end}}`

type adviceRow struct {
	Symbol      string
	TargetPct   string
	CurrentPct  string
	TargetValue string
	Gap         string
	UnitPrice   string
	Shares      string
	Action      string
}

type adviceView struct {
	BaseCurrency   string
	ProjectedTotal string
	TotalInvested  string
	Contribution   string
	Rows           []adviceRow
}

// AdviceTable renders the rebalancing suggestions to a markdown string.
func AdviceTable(s *folio.Snapshot, contribution float64) string {
	view := adviceView{
		BaseCurrency:   s.BaseCurrency,
		ProjectedTotal: money(s.TotalInvestedBase+contribution, s.BaseCurrency),
		TotalInvested:  money(s.TotalInvestedBase, s.BaseCurrency),
		Contribution:   money(contribution, s.BaseCurrency),
	}

	for _, a := range s.Advice {
		view.Rows = append(view.Rows, adviceRow{
			Symbol:      a.Symbol,
			TargetPct:   a.TargetPct.String(),
			CurrentPct:  a.CurrentPct.String(),
			TargetValue: money(a.TargetValueBase, s.BaseCurrency),
			Gap:         signedMoney(a.GapBase, s.BaseCurrency),
			UnitPrice:   money(a.UnitPriceBase, s.BaseCurrency),
			Shares:      signedShares(a.SuggestedShares),
			Action:      string(a.Action),
		})
	}

	return renderTemplate("advice", adviceTemplate, view)
}
