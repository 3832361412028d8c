package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"

	"github.com/hcpang/folio"
)

type currencyCmd struct{}

func (*currencyCmd) Name() string     { return "currency" }
func (*currencyCmd) Synopsis() string { return "change the base currency totals are displayed in" }
func (*currencyCmd) Usage() string {
	return `folio currency <` + strings.Join(folio.BaseCurrencies, "|") + `>

  Selects the base currency. All totals and suggestions are converted
  into it; the underlying records are unchanged.
`
}

func (*currencyCmd) SetFlags(_ *flag.FlagSet) {}

func (c *currencyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one currency code")
		return subcommands.ExitUsageError
	}
	cur := strings.ToUpper(f.Arg(0))
	tracker := openTracker()
	if err := tracker.SetBaseCurrency(cur); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Base currency set to %s\n", cur)
	return subcommands.ExitSuccess
}

type contributeCmd struct{}

func (*contributeCmd) Name() string     { return "contribute" }
func (*contributeCmd) Synopsis() string { return "set the planned monthly contribution" }
func (*contributeCmd) Usage() string {
	return `folio contribute <amount>

  Sets the monthly contribution, in the base currency. The rebalancing
  advisor projects it on top of the current invested total.
`
}

func (*contributeCmd) SetFlags(_ *flag.FlagSet) {}

func (c *contributeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one amount")
		return subcommands.ExitUsageError
	}
	amount, err := strconv.ParseFloat(f.Arg(0), 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid amount %q: %v\n", f.Arg(0), err)
		return subcommands.ExitUsageError
	}
	tracker := openTracker()
	if err := tracker.SetMonthlyContribution(amount); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Monthly contribution set to %v\n", amount)
	return subcommands.ExitSuccess
}
