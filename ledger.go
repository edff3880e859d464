package coinwall

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"
)

// This file parses exchange trade-history exports into positions.
//
// The export lists fills newest first, one row per fill. "Executed", "Amount"
// and "Fee" carry the asset symbol as a suffix of the numeric text
// ("0.00095BTC", "102.61USDT"), and numbers may carry thousands-separator
// commas. The parser replays the fills in chronological order and keeps a
// running aggregate per executed asset.

// Side of a trade, from the taker's point of view.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// stablecoins recognized as USD-pegged quote assets. Flows against any of
// them are folded into the single Quote currency.
var stablecoins = []string{"USDT", "BUSD", "USDC", "FDUSD"}

// dustQuote is the quote-currency value below which a holding is dust.
const dustQuote = 5

// TradeRecord is a single parsed fill. It is consumed once by the ledger pass
// and never mutated afterwards.
type TradeRecord struct {
	Side       Side
	Executed   Quantity // executed quantity, in Asset units
	Asset      string   // executed asset symbol
	Fee        Quantity // assumed denominated in Asset, see ParseTradeHistory
	Amount     Money    // quote amount, in QuoteAsset units
	QuoteAsset string
	Price      Money // unit price, in QuoteAsset units
}

// MalformedRecordError reports an input row that cannot be parsed. A single
// bad row aborts the whole parse: no partial ledger is ever produced.
type MalformedRecordError struct {
	Line   int // 1-based input line
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at line %d: %s", e.Line, e.Reason)
}

// aggregate is the per-asset running state of a ledger pass.
type aggregate struct {
	net       Quantity // net quantity held after all fills
	threshold Quantity // dust threshold in asset units, zero if never priced
	price     Money    // last seen stablecoin price
	flow      Money    // net quote-currency flow (buys - sells)
}

// splitAsset splits a raw field like "0.00095BTC" or "1,061.40USDT" into its
// numeric text (commas stripped) and its trailing asset symbol.
func splitAsset(field string) (number, symbol string) {
	s := strings.ReplaceAll(strings.TrimSpace(field), ",", "")
	i := len(s)
	for i > 0 {
		c := s[i-1]
		if c >= '0' && c <= '9' || c == '.' {
			break
		}
		i--
	}
	return s[:i], s[i:]
}

// numeric strips commas from a raw numeric field.
func numeric(field string) string {
	return strings.ReplaceAll(strings.TrimSpace(field), ",", "")
}

// ParseTradeHistory parses a trade-history CSV into positions.
//
// Rows are supplied newest first and replayed in chronological order. A buy
// adds executed minus fee to the net quantity, a sell subtracts executed.
// The fee is assumed to be denominated in the executed asset; when an
// exchange charges the fee in another currency (BNB discounts for instance)
// the net quantity is off by the fee. That simplification is deliberate and
// not silently corrected.
//
// Fills against a recognized stablecoin record the last price, accumulate the
// quote flow, and set the dust threshold to 5 quote units at that price.
// Assets never traded against a stablecoin have threshold zero and are never
// filtered. Positions whose |net quantity| exceeds their threshold are
// emitted with quantity |net| and invested value |flow|.
func ParseTradeHistory(r io.Reader) ([]*Position, error) {
	records, err := readTradeRecords(r)
	if err != nil {
		return nil, err
	}

	// replay in chronological order
	slices.Reverse(records)

	// one aggregate per executed asset, in first-trade order
	aggregates := make(map[string]*aggregate)
	order := make([]string, 0)
	for _, rec := range records {
		if _, ok := aggregates[rec.Asset]; !ok {
			aggregates[rec.Asset] = &aggregate{}
			order = append(order, rec.Asset)
		}
	}

	for _, rec := range records {
		agg := aggregates[rec.Asset]
		if rec.Side == Buy {
			agg.net = agg.net.Add(rec.Executed).Sub(rec.Fee)
		} else {
			agg.net = agg.net.Sub(rec.Executed)
		}

		if !slices.Contains(stablecoins, rec.QuoteAsset) {
			continue
		}
		agg.price = rec.Price
		agg.threshold = M(dustQuote, Quote).DivPrice(agg.price)
		// fold the stablecoin amount into the quote currency
		amount := Money{value: rec.Amount.value, cur: Quote}
		if rec.Side == Buy {
			agg.flow = agg.flow.Add(amount)
		} else {
			agg.flow = agg.flow.Sub(amount)
		}
	}

	positions := make([]*Position, 0, len(order))
	for _, symbol := range order {
		agg := aggregates[symbol]
		if !agg.net.Abs().GreaterThan(agg.threshold) {
			continue
		}
		positions = append(positions, NewPosition(symbol, agg.net.Abs(), agg.flow.Abs()))
	}
	return positions, nil
}

// readTradeRecords decodes the CSV rows into trade records, newest first as
// supplied.
func readTradeRecords(r io.Reader) ([]TradeRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, &MalformedRecordError{Line: 1, Reason: "missing header row"}
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range []string{"Side", "Price", "Executed", "Amount", "Fee"} {
		if _, ok := col[name]; !ok {
			return nil, &MalformedRecordError{Line: 1, Reason: fmt.Sprintf("missing column %q", name)}
		}
	}

	var records []TradeRecord
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &MalformedRecordError{Line: line, Reason: err.Error()}
		}

		side := Side(strings.TrimSpace(row[col["Side"]]))
		if side != Buy && side != Sell {
			return nil, &MalformedRecordError{Line: line, Reason: fmt.Sprintf("unknown side %q", row[col["Side"]])}
		}

		price, err := ParseMoney(numeric(row[col["Price"]]), Quote)
		if err != nil {
			return nil, &MalformedRecordError{Line: line, Reason: fmt.Sprintf("bad price %q", row[col["Price"]])}
		}

		executedText, asset := splitAsset(row[col["Executed"]])
		executed, err := ParseQuantity(executedText)
		if err != nil || asset == "" {
			return nil, &MalformedRecordError{Line: line, Reason: fmt.Sprintf("bad executed quantity %q", row[col["Executed"]])}
		}

		amountText, quoteAsset := splitAsset(row[col["Amount"]])
		amount, err := ParseMoney(amountText, quoteAsset)
		if err != nil {
			return nil, &MalformedRecordError{Line: line, Reason: fmt.Sprintf("bad amount %q", row[col["Amount"]])}
		}

		feeText, _ := splitAsset(row[col["Fee"]])
		fee, err := ParseQuantity(feeText)
		if err != nil {
			return nil, &MalformedRecordError{Line: line, Reason: fmt.Sprintf("bad fee %q", row[col["Fee"]])}
		}

		records = append(records, TradeRecord{
			Side:       side,
			Executed:   executed,
			Asset:      asset,
			Fee:        fee,
			Amount:     amount,
			QuoteAsset: quoteAsset,
			Price:      price,
		})
	}
	return records, nil
}
