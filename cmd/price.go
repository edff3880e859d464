package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/coinwall"
	"github.com/google/subcommands"
)

type priceCmd struct{}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "probe the latest close for one or more symbols" }
func (*priceCmd) Usage() string {
	return `cw price <symbol>...

  Fetches the close of the most recent 1-minute candle for each symbol,
  e.g. "cw price BTC ETH".
`
}

func (*priceCmd) SetFlags(_ *flag.FlagSet) {}

func (*priceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: expected at least one symbol")
		return subcommands.ExitUsageError
	}

	feed := coinwall.NewBinance()
	for _, symbol := range f.Args() {
		price, err := feed.LastClose(ctx, symbol)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching %s: %v\n", symbol, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("%s\t%s\n", symbol, price)
	}
	return subcommands.ExitSuccess
}
