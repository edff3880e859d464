package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/coinwall"
	"github.com/etnz/coinwall/renderer"
	"github.com/google/subcommands"
)

type loadCmd struct{}

func (*loadCmd) Name() string     { return "load" }
func (*loadCmd) Synopsis() string { return "validate and display the wallet snapshot" }
func (*loadCmd) Usage() string {
	return `cw load

  Parses the snapshot file and displays its positions without fetching
  prices. Useful to check a hand-edited snapshot before a watch run.
`
}

func (*loadCmd) SetFlags(_ *flag.FlagSet) {}

func (*loadCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	wallet, err := DecodeWallet()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.PositionsMarkdown(coinwall.NewSummary(wallet)))
	return subcommands.ExitSuccess
}
