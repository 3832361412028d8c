package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/hcpang/folio/cmd"
)

func main() {
	// the lookup API key can live in a .env file next to the binary
	godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	completion()

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion wires static shell completion for the subcommands.
func completion() {
	sub := make(map[string]*complete.Command, len(cmd.Commands))
	for _, c := range cmd.Commands {
		sub[c.Name()] = &complete.Command{}
	}
	root := &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"store": predict.Dirs("*"),
		},
	}
	root.Complete("folio")
}
