package coinwall

import (
	"errors"
	"strings"
	"testing"
)

const tradesHeader = "Date,Side,Price,Executed,Amount,Fee\n"

func TestParseTradeHistory_BuyThenSell(t *testing.T) {
	// rows are newest first: the sell happened after the buy
	csv := tradesHeader +
		"2021-06-02,SELL,120,0.5BTC,60USDT,0.06USDT\n" +
		"2021-06-01,BUY,100,1.0BTC,100USDT,0.001BTC\n"

	positions, err := ParseTradeHistory(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseTradeHistory() error = %v", err)
	}
	if len(positions) != 1 {
		t.Fatalf("len(positions) = %d, want 1", len(positions))
	}

	p := positions[0]
	if p.Symbol() != "BTC" {
		t.Errorf("Symbol = %q, want BTC", p.Symbol())
	}
	// 1.0 - 0.001 (fee) - 0.5 = 0.499
	if !p.Quantity().Equal(Q(0.499)) {
		t.Errorf("Quantity = %v, want 0.499", p.Quantity())
	}
	// 100 bought - 60 sold = 40 invested
	if !p.Invested().Equal(M(40, Quote)) {
		t.Errorf("Invested = %v, want 40", p.Invested())
	}
}

func TestParseTradeHistory_ReversesChronologically(t *testing.T) {
	// Selling everything after buying must net to zero. If rows were
	// replayed as supplied (newest first) the fee handling would differ.
	csv := tradesHeader +
		"2021-06-03,SELL,100,2ETH,200USDT,0.2USDT\n" +
		"2021-06-02,BUY,100,1ETH,100USDT,0ETH\n" +
		"2021-06-01,BUY,100,1ETH,100USDT,0ETH\n"

	positions, err := ParseTradeHistory(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseTradeHistory() error = %v", err)
	}
	if len(positions) != 0 {
		t.Fatalf("positions = %v, want none (flat after selling all)", positions)
	}
}

func TestParseTradeHistory_DustFilter(t *testing.T) {
	tests := []struct {
		name string
		rows string
		want int
	}{
		// threshold = 5/100 = 0.05; net 0.04 is dust
		{"below threshold", "2021-06-01,BUY,100,0.04DOGE,4USDT,0DOGE\n", 0},
		// net 0.06 is just above
		{"above threshold", "2021-06-01,BUY,100,0.06DOGE,6USDT,0DOGE\n", 1},
		// exactly the threshold is still dust (strictly greater required)
		{"at threshold", "2021-06-01,BUY,100,0.05DOGE,5USDT,0DOGE\n", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			positions, err := ParseTradeHistory(strings.NewReader(tradesHeader + tc.rows))
			if err != nil {
				t.Fatalf("ParseTradeHistory() error = %v", err)
			}
			if len(positions) != tc.want {
				t.Errorf("len(positions) = %d, want %d", len(positions), tc.want)
			}
		})
	}
}

func TestParseTradeHistory_NonStablecoinQuoteNeverDust(t *testing.T) {
	// traded only against BTC: threshold stays zero, any net quantity is kept
	csv := tradesHeader +
		"2021-06-01,BUY,0.0001,0.001ETH,0.0000001BTC,0ETH\n"

	positions, err := ParseTradeHistory(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseTradeHistory() error = %v", err)
	}
	if len(positions) != 1 {
		t.Fatalf("len(positions) = %d, want 1", len(positions))
	}
	if !positions[0].Invested().IsZero() {
		t.Errorf("Invested = %v, want zero (no stablecoin flow)", positions[0].Invested())
	}
}

func TestParseTradeHistory_ThousandsSeparators(t *testing.T) {
	csv := tradesHeader +
		"2021-06-01,BUY,\"35,000.50\",0.1BTC,\"3,500.05USDT\",0BTC\n"

	positions, err := ParseTradeHistory(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseTradeHistory() error = %v", err)
	}
	if len(positions) != 1 {
		t.Fatalf("len(positions) = %d, want 1", len(positions))
	}
	if !positions[0].Invested().Equal(M(3500.05, Quote)) {
		t.Errorf("Invested = %v, want 3500.05", positions[0].Invested())
	}
}

func TestParseTradeHistory_MalformedRowAbortsParse(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"bad price", tradesHeader + "2021-06-01,BUY,not-a-number,1BTC,100USDT,0BTC\n"},
		{"bad side", tradesHeader + "2021-06-01,HODL,100,1BTC,100USDT,0BTC\n"},
		{"bad executed", tradesHeader + "2021-06-01,BUY,100,BTC,100USDT,0BTC\n"},
		{"missing column", "Date,Side,Price\n2021-06-01,BUY,100\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			positions, err := ParseTradeHistory(strings.NewReader(tc.csv))
			var malformed *MalformedRecordError
			if !errors.As(err, &malformed) {
				t.Fatalf("ParseTradeHistory() error = %v, want *MalformedRecordError", err)
			}
			if positions != nil {
				t.Errorf("positions = %v, want nil on malformed input", positions)
			}
		})
	}
}

func TestSplitAsset(t *testing.T) {
	tests := []struct {
		in     string
		number string
		symbol string
	}{
		{"0.00095BTC", "0.00095", "BTC"},
		{"1,061.40USDT", "1061.40", "USDT"},
		{"102.61", "102.61", ""},
		{" 2ETH ", "2", "ETH"},
	}
	for _, tc := range tests {
		number, symbol := splitAsset(tc.in)
		if number != tc.number || symbol != tc.symbol {
			t.Errorf("splitAsset(%q) = (%q, %q), want (%q, %q)", tc.in, number, symbol, tc.number, tc.symbol)
		}
	}
}
