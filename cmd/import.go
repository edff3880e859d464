package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/coinwall"
	"github.com/google/subcommands"
)

// importCmd converts an exchange trade-history export into a snapshot file.
type importCmd struct {
	out string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a trade-history CSV into a wallet snapshot" }
func (*importCmd) Usage() string {
	return `cw import [-o <snapshot>] <trades.csv>

  Replays the trade history (newest-first export, Side/Price/Executed/
  Amount/Fee columns), reconciles buys and sells per asset, filters dust
  positions, and writes the resulting snapshot.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "o", "", "Output snapshot file. Defaults to the -snapshot flag value.")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one trade-history file")
		return subcommands.ExitUsageError
	}
	if c.out == "" {
		c.out = *snapshotFile
	}

	in, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening trade history: %v\n", err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	positions, err := coinwall.ParseTradeHistory(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing trade history: %v\n", err)
		return subcommands.ExitFailure
	}

	// warn about symbols a later revaluation will not be able to price
	if pairs, err := coinwall.NewBinance().TradablePairs(ctx); err == nil {
		for _, p := range positions {
			if !pairs[p.Symbol()] {
				fmt.Fprintf(os.Stderr, "Warning: %s is not tradable against %s, revaluation will fail until it is removed\n", p.Symbol(), coinwall.Quote)
			}
		}
	}

	out, err := os.Create(c.out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating snapshot %q: %v\n", c.out, err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	if err := coinwall.EncodeSnapshot(out, coinwall.NewWallet(positions...)); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing snapshot %q: %v\n", c.out, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported %d positions into %s\n", len(positions), c.out)
	return subcommands.ExitSuccess
}
