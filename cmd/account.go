package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/hcpang/folio"
)

// accountFlags holds the flags shared by the add-account and
// update-account commands.
type accountFlags struct {
	name        string
	currency    string
	fx          float64
	balance     float64
	autoDerived bool
}

func (a *accountFlags) register(f *flag.FlagSet) {
	f.StringVar(&a.name, "name", "", "Display name of the account.")
	f.StringVar(&a.currency, "currency", "", "Currency the balance is denominated in.")
	f.Float64Var(&a.fx, "fx", 1, "Exchange rate from the account currency to "+folio.AnchorCurrency+".")
	f.Float64Var(&a.balance, "balance", 0, "Manually entered balance. Ignored for auto-derived accounts.")
	f.BoolVar(&a.autoDerived, "auto", false, "Derive the balance from the total invested value instead of tracking it manually.")
}

// patch builds an AccountPatch from the flags the user explicitly set.
func (a *accountFlags) patch(f *flag.FlagSet) folio.AccountPatch {
	var patch folio.AccountPatch
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			patch.DisplayName = &a.name
		case "currency":
			patch.Currency = &a.currency
		case "fx":
			patch.FxToAnchor = &a.fx
		case "balance":
			patch.Balance = &a.balance
		case "auto":
			patch.AutoDerived = &a.autoDerived
		}
	})
	return patch
}

type addAccountCmd struct {
	flags accountFlags
}

func (*addAccountCmd) Name() string     { return "add-account" }
func (*addAccountCmd) Synopsis() string { return "add a new cash or brokerage account" }
func (*addAccountCmd) Usage() string {
	return `folio add-account -name <name> -currency <cur> [-fx <rate>] [-balance <amount> | -auto]

  Creates a new account. An auto-derived account has no balance of its
  own: it mirrors the total invested value, modeling brokerage cash
  fully deployed into positions.

Usage Examples:
$ folio add-account -name Bank -currency TWD -fx 0.241 -balance 100000
$ folio add-account -name Brokerage -currency HKD -auto
`
}

func (c *addAccountCmd) SetFlags(f *flag.FlagSet) { c.flags.register(f) }

func (c *addAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tracker := openTracker()
	a, err := tracker.AddAccount(c.flags.patch(f))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not add account: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added account %s (%s)\n", a.DisplayName, a.ID)
	return subcommands.ExitSuccess
}

type updateAccountCmd struct {
	id    string
	flags accountFlags
}

func (*updateAccountCmd) Name() string     { return "update-account" }
func (*updateAccountCmd) Synopsis() string { return "edit an existing account by id" }
func (*updateAccountCmd) Usage() string {
	return `folio update-account -id <id> [field flags...]

  Applies the given field overrides to the account with that id.
  Fields not passed on the command line keep their current value.
`
}

func (c *updateAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the account to update.")
	c.flags.register(f)
}

func (c *updateAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required")
		return subcommands.ExitUsageError
	}
	tracker := openTracker()
	a, err := tracker.UpdateAccount(c.id, c.flags.patch(f))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not update account: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated account %s (%s)\n", a.DisplayName, a.ID)
	return subcommands.ExitSuccess
}

type deleteAccountCmd struct {
	id string
}

func (*deleteAccountCmd) Name() string     { return "delete-account" }
func (*deleteAccountCmd) Synopsis() string { return "remove an account by id" }
func (*deleteAccountCmd) Usage() string {
	return `folio delete-account -id <id>

  Removes the account with that id from the portfolio.
`
}

func (c *deleteAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the account to delete.")
}

func (c *deleteAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required")
		return subcommands.ExitUsageError
	}
	tracker := openTracker()
	if err := tracker.DeleteAccount(c.id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not delete account: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted account %s\n", c.id)
	return subcommands.ExitSuccess
}
