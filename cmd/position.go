package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/hcpang/folio"
)

// positionFlags holds the flags shared by the add-position and
// update-position commands. Only flags the user actually set end up in
// the patch, so an update touches nothing else.
type positionFlags struct {
	symbol   string
	name     string
	currency string
	price    float64
	fx       float64
	shares   float64
	cost     float64
	target   float64
	source   string
}

func (p *positionFlags) register(f *flag.FlagSet) {
	f.StringVar(&p.symbol, "symbol", "", "Ticker symbol (uppercased on entry).")
	f.StringVar(&p.name, "name", "", "Human-readable display name.")
	f.StringVar(&p.currency, "currency", "", "Currency the market price is denominated in.")
	f.Float64Var(&p.price, "price", 0, "Latest known price in the quote currency.")
	f.Float64Var(&p.fx, "fx", 1, "Exchange rate from the quote currency to "+folio.AnchorCurrency+".")
	f.Float64Var(&p.shares, "shares", 0, "Held quantity, may be fractional.")
	f.Float64Var(&p.cost, "cost", 0, "Average purchase price in the quote currency.")
	f.Float64Var(&p.target, "target", 0, "Target allocation in percent of total invested value (0-100).")
	f.StringVar(&p.source, "source", "", "Free-text note about where the price comes from.")
}

// patch builds a PositionPatch from the flags the user explicitly set.
func (p *positionFlags) patch(f *flag.FlagSet) folio.PositionPatch {
	var patch folio.PositionPatch
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "symbol":
			patch.Symbol = &p.symbol
		case "name":
			patch.DisplayName = &p.name
		case "currency":
			patch.QuoteCurrency = &p.currency
		case "price":
			patch.CurrentPrice = &p.price
		case "fx":
			patch.FxToAnchor = &p.fx
		case "shares":
			patch.ShareCount = &p.shares
		case "cost":
			patch.CostBasisPrice = &p.cost
		case "target":
			patch.TargetAllocationPct = &p.target
		case "source":
			patch.PriceSourceLabel = &p.source
		}
	})
	return patch
}

type addPositionCmd struct {
	flags positionFlags
}

func (*addPositionCmd) Name() string     { return "add-position" }
func (*addPositionCmd) Synopsis() string { return "add a new investment position" }
func (*addPositionCmd) Usage() string {
	return `folio add-position -symbol <ticker> [-name <name>] [-currency <cur>] [-price <p>] [-fx <rate>] [-shares <q>] [-cost <p>] [-target <pct>]

  Creates a new position with a fresh id. The price can be left at zero
  and filled in later by 'folio refresh'.

Usage Examples:
$ folio add-position -symbol 2800 -currency HKD -shares 500 -cost 18.5 -target 40
`
}

func (c *addPositionCmd) SetFlags(f *flag.FlagSet) { c.flags.register(f) }

func (c *addPositionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tracker := openTracker()
	p, err := tracker.AddPosition(c.flags.patch(f))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not add position: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added position %s (%s)\n", p.Symbol, p.ID)
	return subcommands.ExitSuccess
}

type updatePositionCmd struct {
	id    string
	flags positionFlags
}

func (*updatePositionCmd) Name() string     { return "update-position" }
func (*updatePositionCmd) Synopsis() string { return "edit an existing position by id" }
func (*updatePositionCmd) Usage() string {
	return `folio update-position -id <id> [field flags...]

  Applies the given field overrides to the position with that id.
  Fields not passed on the command line keep their current value.
`
}

func (c *updatePositionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the position to update.")
	c.flags.register(f)
}

func (c *updatePositionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required")
		return subcommands.ExitUsageError
	}
	tracker := openTracker()
	p, err := tracker.UpdatePosition(c.id, c.flags.patch(f))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not update position: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated position %s (%s)\n", p.Symbol, p.ID)
	return subcommands.ExitSuccess
}

type deletePositionCmd struct {
	id string
}

func (*deletePositionCmd) Name() string     { return "delete-position" }
func (*deletePositionCmd) Synopsis() string { return "remove a position by id" }
func (*deletePositionCmd) Usage() string {
	return `folio delete-position -id <id>

  Removes the position with that id from the portfolio.
`
}

func (c *deletePositionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the position to delete.")
}

func (c *deletePositionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required")
		return subcommands.ExitUsageError
	}
	tracker := openTracker()
	if err := tracker.DeletePosition(c.id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not delete position: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted position %s\n", c.id)
	return subcommands.ExitSuccess
}
