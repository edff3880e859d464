package coinwall

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// This file handles the flat snapshot format: a tab-delimited UTF-8 file with
// one header line and one line per position (symbol, amount, invested value).
// It is the hand-curated alternative to a trade-history import, and also what
// the import command writes, so the two stay symmetric.

// LoadSnapshot reads positions from the flat snapshot format.
//
// The first line is a header and is skipped unconditionally. Every other line
// must split into exactly 3 tab-separated fields, amount and invested value
// parsing as decimals. No dust filter is applied: the snapshot is trusted as
// pre-curated. A bad line aborts the load with a *MalformedRecordError.
func LoadSnapshot(r io.Reader) ([]*Position, error) {
	scanner := bufio.NewScanner(r)
	var positions []*Position
	line := 0
	for scanner.Scan() {
		line++
		if line == 1 {
			continue // header
		}
		text := scanner.Text()
		if text == "" {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) != 3 {
			return nil, &MalformedRecordError{Line: line, Reason: fmt.Sprintf("expected 3 tab-separated fields, got %d", len(fields))}
		}
		quantity, err := ParseQuantity(fields[1])
		if err != nil {
			return nil, &MalformedRecordError{Line: line, Reason: fmt.Sprintf("bad amount %q", fields[1])}
		}
		invested, err := ParseMoney(fields[2], Quote)
		if err != nil {
			return nil, &MalformedRecordError{Line: line, Reason: fmt.Sprintf("bad invested value %q", fields[2])}
		}
		positions = append(positions, NewPosition(fields[0], quantity, invested))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return positions, nil
}

// EncodeSnapshot writes the wallet in the flat snapshot format, header first.
func EncodeSnapshot(w io.Writer, wallet *Wallet) error {
	if _, err := fmt.Fprintln(w, "symbol\tamount\tinvested"); err != nil {
		return err
	}
	for _, p := range wallet.positions {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", p.Symbol(), p.Quantity(), p.Invested().value); err != nil {
			return err
		}
	}
	return nil
}
