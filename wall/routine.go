package wall

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/etnz/coinwall"
)

// Routine owns the periodic refresh cycle: revalue the wallet, render the
// summary, hand it to the setter. All cycles run on the goroutine that calls
// Run, so two revaluation passes can never overlap the same wallet; a slow
// price-feed call delays the next cycle, it never races it.
type Routine struct {
	Wallet   *coinwall.Wallet
	Feed     coinwall.PriceFeed
	Renderer Renderer
	Setter   Setter
	Interval time.Duration // cycle period, 15 minutes if zero
	Timeout  time.Duration // per-cycle budget, 1 minute if zero
}

// Run refreshes once immediately, then on every tick until ctx is cancelled.
// A failed price fetch is logged and skipped: the previous artifact stays up,
// and the wallet keeps its last-known-good values for the next attempt.
func (r *Routine) Run(ctx context.Context) error {
	interval := r.Interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	if err := r.Refresh(ctx); err != nil {
		if !errors.Is(err, coinwall.ErrPriceFeedUnavailable) {
			return err
		}
		log.Printf("refresh failed (will retry): %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			err := r.Refresh(ctx)
			switch {
			case err == nil:
			case errors.Is(err, coinwall.ErrPriceFeedUnavailable):
				// transient, keep the last-known-good wallpaper
				log.Printf("refresh failed (will retry): %v", err)
			default:
				return err
			}
		}
	}
}

// Refresh runs a single cycle with a bounded timeout. When the revaluation
// fails nothing is rendered and the wallet is left untouched.
func (r *Routine) Refresh(ctx context.Context) error {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := r.Wallet.Revalue(ctx, r.Feed); err != nil {
		return err
	}
	path, err := r.Renderer.Render(coinwall.NewSummary(r.Wallet))
	if err != nil {
		return err
	}
	return r.Setter.Set(path)
}
