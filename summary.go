package coinwall

// Summary provides an at-a-glance overview of the wallet: totals, the gain
// since inception, and a per-position breakdown in wallet order. It is a pure
// projection of wallet state, safe to hand to any renderer.
type Summary struct {
	TotalCurrent  Money
	TotalInvested Money
	Delta         Money
	Return        Percent
	Positions     []PositionSummary
}

// PositionSummary is a single row of the breakdown.
type PositionSummary struct {
	Symbol   string
	Quantity Quantity
	Invested Money
	Current  Money
	Return   Percent
}

// NewSummary projects the wallet's current state. The wallet is not mutated.
func NewSummary(w *Wallet) *Summary {
	current := w.TotalCurrent()
	invested := w.TotalInvested()
	s := &Summary{
		TotalCurrent:  current,
		TotalInvested: invested,
		Delta:         current.Sub(invested),
		Positions:     make([]PositionSummary, 0, w.Len()),
	}
	if !invested.IsZero() {
		s.Return = Percent(s.Delta.AsFloat() / invested.AsFloat())
	}
	for _, p := range w.positions {
		s.Positions = append(s.Positions, PositionSummary{
			Symbol:   p.Symbol(),
			Quantity: p.Quantity(),
			Invested: p.Invested(),
			Current:  p.Current(),
			Return:   p.Return(),
		})
	}
	return s
}

// Breakdown is shorthand for NewSummary(w).Breakdown().
func (w *Wallet) Breakdown() map[string]PositionSummary {
	return NewSummary(w).Breakdown()
}

// Breakdown returns the per-symbol mapping downstream renderers consume.
// Duplicate symbols collapse to the first occurrence, like Wallet.Get.
func (s *Summary) Breakdown() map[string]PositionSummary {
	breakdown := make(map[string]PositionSummary, len(s.Positions))
	for _, p := range s.Positions {
		if _, ok := breakdown[p.Symbol]; !ok {
			breakdown[p.Symbol] = p
		}
	}
	return breakdown
}
