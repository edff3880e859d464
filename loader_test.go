package coinwall

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadSnapshot(t *testing.T) {
	in := "symbol\tamount\tinvested\nBTC\t0.5\t20000\nETH\t2\t3000\n"

	positions, err := LoadSnapshot(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if len(positions) != 2 {
		t.Fatalf("len(positions) = %d, want 2", len(positions))
	}

	if positions[0].Symbol() != "BTC" || !positions[0].Quantity().Equal(Q(0.5)) || !positions[0].Invested().Equal(M(20000, Quote)) {
		t.Errorf("positions[0] = %v %v %v, want BTC 0.5 20000", positions[0].Symbol(), positions[0].Quantity(), positions[0].Invested())
	}
	if positions[1].Symbol() != "ETH" || !positions[1].Quantity().Equal(Q(2)) || !positions[1].Invested().Equal(M(3000, Quote)) {
		t.Errorf("positions[1] = %v %v %v, want ETH 2 3000", positions[1].Symbol(), positions[1].Quantity(), positions[1].Invested())
	}
}

func TestLoadSnapshot_HeaderIsAlwaysSkipped(t *testing.T) {
	// even a header that would parse as data is discarded
	in := "BTC\t1\t100\nETH\t2\t200\n"

	positions, err := LoadSnapshot(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if len(positions) != 1 || positions[0].Symbol() != "ETH" {
		t.Fatalf("positions = %v, want only ETH (first line is a header)", positions)
	}
}

func TestLoadSnapshot_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"two fields", "header\nBTC\t0.5\n"},
		{"four fields", "header\nBTC\t0.5\t100\textra\n"},
		{"bad amount", "header\nBTC\tlots\t100\n"},
		{"bad invested", "header\nBTC\t0.5\tcheap\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadSnapshot(strings.NewReader(tc.in))
			var malformed *MalformedRecordError
			if !errors.As(err, &malformed) {
				t.Fatalf("LoadSnapshot() error = %v, want *MalformedRecordError", err)
			}
		})
	}
}

func TestEncodeSnapshot_RoundTrip(t *testing.T) {
	wallet := NewWallet(
		NewPosition("BTC", Q(0.499), M(40, Quote)),
		NewPosition("ETH", Q(2), M(3000, Quote)),
	)

	var b strings.Builder
	if err := EncodeSnapshot(&b, wallet); err != nil {
		t.Fatalf("EncodeSnapshot() error = %v", err)
	}

	positions, err := LoadSnapshot(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if len(positions) != 2 {
		t.Fatalf("len(positions) = %d, want 2", len(positions))
	}
	if !positions[0].Quantity().Equal(Q(0.499)) || !positions[0].Invested().Equal(M(40, Quote)) {
		t.Errorf("positions[0] = %v %v, want 0.499 40", positions[0].Quantity(), positions[0].Invested())
	}
}
