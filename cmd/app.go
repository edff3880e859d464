// Package cmd implements the CLI application to track a crypto wallet.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/coinwall"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&summaryCmd{}, "wallet")
	c.Register(&loadCmd{}, "wallet")
	c.Register(&importCmd{}, "wallet")

	c.Register(&priceCmd{}, "market")

	c.Register(&watchCmd{}, "wallpaper")

	c.Register(&assistCmd{}, "assist")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var snapshotFile = flag.String("snapshot", "coins.txt", "Path to the wallet snapshot file (tab-separated: symbol, amount, invested)")

// DecodeWallet loads the wallet from the app snapshot file.
func DecodeWallet() (*coinwall.Wallet, error) {
	f, err := os.Open(*snapshotFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open snapshot %q: %w", *snapshotFile, err)
	}
	defer f.Close()

	positions, err := coinwall.LoadSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("cannot load snapshot %q: %w", *snapshotFile, err)
	}
	return coinwall.NewWallet(positions...), nil
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when the renderer cannot be set up (dumb terminals, pipes).
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
