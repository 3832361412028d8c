package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/hcpang/folio/renderer"
)

type summaryCmd struct {
	plain bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display totals, holdings and accounts" }
func (*summaryCmd) Usage() string {
	return `folio summary [-plain]

  Displays the portfolio totals, every position with its profit, and
  every account with its resolved balance, all in the base currency.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "Print raw markdown without terminal styling.")
}

func (c *summaryCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tracker := openTracker()
	fmt.Print(render(renderer.Summary(tracker.Snapshot()), c.plain))
	return subcommands.ExitSuccess
}

type adviseCmd struct {
	plain bool
}

func (*adviseCmd) Name() string     { return "advise" }
func (*adviseCmd) Synopsis() string { return "display rebalancing suggestions per position" }
func (*adviseCmd) Usage() string {
	return `folio advise [-plain]

  For each position, compares its target allocation against a projected
  total (current invested value plus one monthly contribution) and
  suggests a share quantity to buy or sell.
`
}

func (c *adviseCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "Print raw markdown without terminal styling.")
}

func (c *adviseCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tracker := openTracker()
	contribution := tracker.Settings().MonthlyContribution
	fmt.Print(render(renderer.AdviceTable(tracker.Snapshot(), contribution), c.plain))
	return subcommands.ExitSuccess
}
