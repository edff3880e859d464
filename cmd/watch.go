package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/coinwall"
	"github.com/etnz/coinwall/wall"
	"github.com/google/subcommands"
)

// watchCmd runs the periodic wallpaper refresh loop.
type watchCmd struct {
	interval time.Duration
	timeout  time.Duration
	out      string
	setter   string
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "periodically revalue the wallet and refresh the wallpaper" }
func (*watchCmd) Usage() string {
	return `cw watch [-every <interval>] [-out <file>] [-set <command>]

  Every interval: fetches prices, rewrites the summary artifact, and runs
  the configured setter command with the artifact path as last argument.
  A failed price fetch keeps the previous artifact and retries next cycle.
  Runs until interrupted.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.interval, "every", 15*time.Minute, "Refresh interval.")
	f.DurationVar(&c.timeout, "timeout", time.Minute, "Budget for a single refresh cycle.")
	f.StringVar(&c.out, "out", "wallet.md", "Path of the rendered summary artifact.")
	f.StringVar(&c.setter, "set", "", "Command run after each render, artifact path appended (e.g. 'feh --bg-fill').")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	wallet, err := DecodeWallet()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	routine := &wall.Routine{
		Wallet:   wallet,
		Feed:     coinwall.NewBinance(),
		Renderer: &wall.FileRenderer{Path: c.out},
		Setter:   &wall.CommandSetter{Command: c.setter},
		Interval: c.interval,
		Timeout:  c.timeout,
	}

	if err := routine.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
