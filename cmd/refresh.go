package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/hcpang/folio/lookup"
)

type refreshCmd struct{}

func (*refreshCmd) Name() string { return "refresh" }
func (*refreshCmd) Synopsis() string {
	return "fetch the exchange rate and the latest price of every position"
}
func (*refreshCmd) Usage() string {
	return `folio refresh

  Fetches the anchor exchange rate once, then asks the lookup service
  for the latest price of each position, one symbol at a time. A failed
  lookup keeps that position's previous quote and does not abort the
  rest of the batch.

  Requires GEMINI_API_KEY in the environment (or a .env file).
`
}

func (*refreshCmd) SetFlags(_ *flag.FlagSet) {}

func (c *refreshCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := lookup.NewClient(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	tracker := openTracker()
	if err := tracker.RefreshAll(ctx, client); err != nil {
		// partial refreshes are fine, stale entries are reported but kept
		fmt.Fprintf(os.Stderr, "Warning: some quotes are stale: %v\n", err)
	}

	fmt.Printf("Refreshed %d positions.\n", len(tracker.Positions()))
	return subcommands.ExitSuccess
}
