// Package coinwall tracks a cryptocurrency wallet: it ingests exchange trade
// history or flat snapshot files into per-asset positions, revalues them
// against live spot prices, and projects summaries for the rendering and
// wallpaper layers.
package coinwall

import "sort"

// Position is a single asset holding: how much of the asset is held, what was
// spent acquiring it, and what it is worth at the latest known price.
type Position struct {
	symbol   string
	quantity Quantity
	invested Money
	current  Money // only written by a revaluation pass or a loader
}

// NewPosition creates a position with no current valuation yet.
func NewPosition(symbol string, quantity Quantity, invested Money) *Position {
	return &Position{symbol: symbol, quantity: quantity, invested: invested}
}

func (p *Position) Symbol() string     { return p.symbol }
func (p *Position) Quantity() Quantity { return p.quantity }
func (p *Position) Invested() Money    { return p.invested }
func (p *Position) Current() Money     { return p.current }

func (p *Position) String() string { return p.symbol + " " + p.quantity.String() }

// Return is the position's gain ratio since acquisition, zero when there is
// no cost basis to compare against.
func (p *Position) Return() Percent {
	if p.invested.IsZero() {
		return 0
	}
	return Percent(p.current.Sub(p.invested).AsFloat() / p.invested.AsFloat())
}

// Wallet is an ordered collection of positions. Order is insertion order until
// SortByValue reorders it by descending current value.
//
// Add does not reject duplicate symbols: two positions with the same symbol
// are two independent slots, and Get returns the first. Callers are expected
// to pre-deduplicate their input.
type Wallet struct {
	positions []*Position
}

// NewWallet creates an empty wallet.
func NewWallet(positions ...*Position) *Wallet {
	return &Wallet{positions: positions}
}

// Add appends a position to the wallet.
func (w *Wallet) Add(p *Position) { w.positions = append(w.positions, p) }

// Len returns the number of positions held.
func (w *Wallet) Len() int { return len(w.positions) }

// Get returns the first position with this symbol, or false if unknown.
func (w *Wallet) Get(symbol string) (*Position, bool) {
	for _, p := range w.positions {
		if p.symbol == symbol {
			return p, true
		}
	}
	return nil, false
}

// SortByValue reorders positions by descending current value. The sort is
// stable, so positions with equal values keep their relative order.
func (w *Wallet) SortByValue() {
	sort.SliceStable(w.positions, func(i, j int) bool {
		return w.positions[i].current.GreaterThan(w.positions[j].current)
	})
}

// Symbols returns all symbols in current wallet order.
func (w *Wallet) Symbols() []string {
	symbols := make([]string, 0, len(w.positions))
	for _, p := range w.positions {
		symbols = append(symbols, p.symbol)
	}
	return symbols
}

// Values returns all current values in current wallet order.
func (w *Wallet) Values() []Money {
	values := make([]Money, 0, len(w.positions))
	for _, p := range w.positions {
		values = append(values, p.current)
	}
	return values
}

// TotalCurrent sums the current value of all positions.
func (w *Wallet) TotalCurrent() Money {
	total := M(0, Quote)
	for _, p := range w.positions {
		total = total.Add(p.current)
	}
	return total
}

// TotalInvested sums the cost basis of all positions.
func (w *Wallet) TotalInvested() Money {
	total := M(0, Quote)
	for _, p := range w.positions {
		total = total.Add(p.invested)
	}
	return total
}
