package coinwall

import (
	"context"
	"errors"
	"fmt"
)

// PriceFeed is the contract the valuator depends on: one batched quote lookup
// for a set of asset symbols, prices denominated in the fixed quote currency.
// Implementations may return partial maps; the valuator treats any missing
// symbol as a whole-batch failure.
type PriceFeed interface {
	FetchBatch(ctx context.Context, symbols []string) (map[string]Money, error)
}

// ErrPriceFeedUnavailable marks a failed revaluation pass. It is transient by
// design: the caller's scheduler is expected to simply retry next cycle.
var ErrPriceFeedUnavailable = errors.New("price feed unavailable")

// PriceFeedError wraps the cause of a failed revaluation. It matches
// ErrPriceFeedUnavailable through errors.Is.
type PriceFeedError struct {
	Err error
}

func (e *PriceFeedError) Error() string {
	return fmt.Sprintf("price feed unavailable: %v", e.Err)
}

func (e *PriceFeedError) Unwrap() error { return e.Err }

func (e *PriceFeedError) Is(target error) bool { return target == ErrPriceFeedUnavailable }

// Revalue refreshes every position's current value from a single batched
// price-feed call, then reorders the wallet by descending current value.
//
// The pass is all-or-nothing: a transport error or a missing symbol in the
// response aborts it with a *PriceFeedError before anything is written, so a
// failed pass leaves every current value exactly as it was. Calling Revalue
// twice with unchanged prices yields identical values.
//
// Revalue does not lock the wallet. One pass must run to completion before
// the next starts; the periodic routine serializes them on a single goroutine.
func (w *Wallet) Revalue(ctx context.Context, feed PriceFeed) error {
	if len(w.positions) == 0 {
		return nil
	}

	prices, err := feed.FetchBatch(ctx, w.Symbols())
	if err != nil {
		return &PriceFeedError{Err: err}
	}

	// validate the full batch before touching the wallet
	for _, p := range w.positions {
		if _, ok := prices[p.symbol]; !ok {
			return &PriceFeedError{Err: fmt.Errorf("no price for %q", p.symbol)}
		}
	}

	for _, p := range w.positions {
		p.current = prices[p.symbol].Mul(p.quantity)
	}
	w.SortByValue()
	return nil
}
