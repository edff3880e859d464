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

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	offline bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the wallet valued at current prices" }
func (*summaryCmd) Usage() string {
	return `cw summary [-offline]

  Loads the wallet snapshot, fetches current prices in one batch, and
  displays totals and the per-position breakdown sorted by value.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "Skip the price fetch and show invested values only.")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	wallet, err := DecodeWallet()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if !c.offline {
		if err := wallet.Revalue(ctx, coinwall.NewBinance()); err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching prices: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	printMarkdown(renderer.SummaryMarkdown(coinwall.NewSummary(wallet)))
	return subcommands.ExitSuccess
}
