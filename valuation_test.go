package coinwall

import (
	"context"
	"errors"
	"testing"
)

// fakeFeed serves a canned batch, or fails.
type fakeFeed struct {
	prices map[string]Money
	err    error
	calls  int
}

func (f *fakeFeed) FetchBatch(_ context.Context, symbols []string) (map[string]Money, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.prices, nil
}

func TestRevalue(t *testing.T) {
	w := NewWallet(
		NewPosition("ETH", Q(2), M(3000, Quote)),
		NewPosition("BTC", Q(0.5), M(20000, Quote)),
	)
	feed := &fakeFeed{prices: map[string]Money{
		"BTC": M(25000, Quote),
		"ETH": M(2000, Quote),
	}}

	if err := w.Revalue(context.Background(), feed); err != nil {
		t.Fatalf("Revalue() error = %v", err)
	}
	if feed.calls != 1 {
		t.Errorf("feed called %d times, want one batched call", feed.calls)
	}

	btc, _ := w.Get("BTC")
	if !btc.Current().Equal(M(12500, Quote)) {
		t.Errorf("BTC current = %v, want 12500", btc.Current())
	}
	// re-sorted: BTC (12500) now ahead of ETH (4000)
	if got := w.Symbols(); got[0] != "BTC" {
		t.Errorf("Symbols() = %v, want BTC first after revaluation", got)
	}
}

func TestRevalue_Idempotent(t *testing.T) {
	w := NewWallet(NewPosition("BTC", Q(0.5), M(20000, Quote)))
	feed := &fakeFeed{prices: map[string]Money{"BTC": M(25000, Quote)}}

	if err := w.Revalue(context.Background(), feed); err != nil {
		t.Fatalf("first Revalue() error = %v", err)
	}
	first := w.Values()

	if err := w.Revalue(context.Background(), feed); err != nil {
		t.Fatalf("second Revalue() error = %v", err)
	}
	second := w.Values()

	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Errorf("values changed between identical passes: %v then %v", first[i], second[i])
		}
	}
}

func TestRevalue_FeedErrorLeavesWalletUntouched(t *testing.T) {
	w := NewWallet(
		valued("BTC", 0.5, 20000, 12500),
		valued("ETH", 2, 3000, 4000),
	)
	before := w.Values()

	feed := &fakeFeed{err: errors.New("connection reset")}
	err := w.Revalue(context.Background(), feed)
	if !errors.Is(err, ErrPriceFeedUnavailable) {
		t.Fatalf("Revalue() error = %v, want ErrPriceFeedUnavailable", err)
	}
	var pfe *PriceFeedError
	if !errors.As(err, &pfe) {
		t.Fatalf("Revalue() error = %T, want *PriceFeedError", err)
	}

	after := w.Values()
	for i := range before {
		if !before[i].Equal(after[i]) {
			t.Errorf("current value changed on failed pass: %v then %v", before[i], after[i])
		}
	}
}

func TestRevalue_MissingSymbolIsWholeBatchFailure(t *testing.T) {
	w := NewWallet(
		valued("BTC", 0.5, 20000, 12500),
		valued("ETH", 2, 3000, 4000),
	)

	// BTC quoted, ETH missing: nothing must be applied, not even BTC
	feed := &fakeFeed{prices: map[string]Money{"BTC": M(99999, Quote)}}
	err := w.Revalue(context.Background(), feed)
	if !errors.Is(err, ErrPriceFeedUnavailable) {
		t.Fatalf("Revalue() error = %v, want ErrPriceFeedUnavailable", err)
	}

	btc, _ := w.Get("BTC")
	if !btc.Current().Equal(M(12500, Quote)) {
		t.Errorf("BTC current = %v, want untouched 12500", btc.Current())
	}
}

func TestRevalue_EmptyWalletSkipsFeed(t *testing.T) {
	w := NewWallet()
	feed := &fakeFeed{err: errors.New("must not be called")}
	if err := w.Revalue(context.Background(), feed); err != nil {
		t.Fatalf("Revalue() error = %v", err)
	}
	if feed.calls != 0 {
		t.Errorf("feed called %d times for an empty wallet, want 0", feed.calls)
	}
}
