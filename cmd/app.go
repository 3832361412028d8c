// Package cmd implements the CLI application to manage the portfolio.
package cmd

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/hcpang/folio"
)

// as a CLI application, it has a very short lived lifecycle, so it is
// ok to use global variables.

var storeDir = flag.String("store", defaultStoreDir(), "Path to the folder holding the portfolio state")

func defaultStoreDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".folio")
	}
	return ".folio"
}

// Commands lists every subcommand of the application. A main package
// registers them all and executes the user-selected one.
var Commands = []subcommands.Command{
	&addPositionCmd{},
	&updatePositionCmd{},
	&deletePositionCmd{},
	&addAccountCmd{},
	&updateAccountCmd{},
	&deleteAccountCmd{},
	&refreshCmd{},
	&currencyCmd{},
	&contributeCmd{},
	&summaryCmd{},
	&adviseCmd{},
}

// openTracker loads the tracker state from the app store folder.
func openTracker() *folio.Tracker {
	return folio.NewTracker(folio.OpenStore(*storeDir))
}

// render pretty-prints a markdown report for the terminal, falling back
// to the raw markdown when styling fails.
func render(markdown string, plain bool) string {
	if plain {
		return markdown
	}
	out, err := glamour.Render(markdown, "auto")
	if err != nil {
		return markdown
	}
	return out
}
