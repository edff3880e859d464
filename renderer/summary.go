// Package renderer turns wallet projections into markdown. The output feeds
// both the terminal (through glamour in the CLI) and the wallpaper pipeline,
// which only ever sees the rendered file.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/coinwall"
)

// SummaryMarkdown renders the wallet summary: totals first, then one table
// row per position in wallet order (largest holdings first after a
// revaluation pass).
func SummaryMarkdown(s *coinwall.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Wallet\n\n")
	fmt.Fprintf(&b, "Current value: **%s** (invested %s, %s)\n\n", s.TotalCurrent, s.TotalInvested, s.Return.SignedString())

	fmt.Fprintln(&b, "| Symbol | Quantity | Invested | Current | Return |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")
	for _, p := range s.Positions {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			p.Symbol,
			p.Quantity,
			p.Invested,
			p.Current,
			p.Return.SignedString(),
		)
	}
	return b.String()
}

// PositionsMarkdown renders the positions table alone, without valuation
// totals. Used when a snapshot is inspected offline, before any price fetch.
func PositionsMarkdown(s *coinwall.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Positions\n\n")
	fmt.Fprintln(&b, "| Symbol | Quantity | Invested |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	for _, p := range s.Positions {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", p.Symbol, p.Quantity, p.Invested)
	}
	fmt.Fprintf(&b, "\nTotal invested: %s\n", s.TotalInvested)
	return b.String()
}
