package coinwall

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"golang.org/x/time/rate"
)

// This file contains functions to access the Binance spot API.

const binanceAPI = "https://api.binance.com"

// Binance is a price feed backed by the public Binance spot endpoints. No API
// key is needed for market data. The client rate-limits itself so the periodic
// cycle cannot hammer the API, and the http client carries a hard timeout so a
// hung call cannot stall the cycle.
type Binance struct {
	base    string
	client  *http.Client
	limiter *rate.Limiter
}

// NewBinance creates a binance price feed with sane defaults.
func NewBinance() *Binance {
	return &Binance{
		base:    binanceAPI,
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
	}
}

// pair returns the exchange trading pair for an asset symbol ("BTC" -> "BTCUSDT").
func pair(symbol string) string { return symbol + Quote }

// FetchBatch fetches the latest price for every symbol in one request against
// /api/v3/ticker/price. The returned map is keyed by asset symbol (not by
// trading pair) and may be partial if the exchange omits a pair; the caller
// decides whether that is fatal.
func (b *Binance) FetchBatch(ctx context.Context, symbols []string) (map[string]Money, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	pairs := make([]string, 0, len(symbols))
	for _, s := range symbols {
		pairs = append(pairs, fmt.Sprintf("%q", pair(s)))
	}
	// the endpoint wants the batch as a JSON array in the query string
	addr := b.base + "/api/v3/ticker/price?symbols=" + url.QueryEscape("["+strings.Join(pairs, ",")+"]")

	var tickers []struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if err := jwget(ctx, b.client, addr, &tickers); err != nil {
		return nil, err
	}

	prices := make(map[string]Money, len(tickers))
	for _, t := range tickers {
		price, err := ParseMoney(t.Price, Quote)
		if err != nil {
			return nil, fmt.Errorf("cannot parse price %q for %s: %w", t.Price, t.Symbol, err)
		}
		prices[strings.TrimSuffix(t.Symbol, Quote)] = price
	}
	return prices, nil
}

// LastClose probes the most recent 1-minute candle close for a single symbol.
//
// The klines payload is a list of positional arrays, so the close is picked
// with a jsonpath expression rather than a dedicated struct.
func (b *Binance) LastClose(ctx context.Context, symbol string) (Money, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return Money{}, err
	}

	addr := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=1m&limit=1", b.base, pair(symbol))
	var jobj any
	if err := jwget(ctx, b.client, addr, &jobj); err != nil {
		return Money{}, fmt.Errorf("error in wget %q: %w", symbol, err)
	}

	path := "$[-1:][4]"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return Money{}, fmt.Errorf("error parsing %q: %q %w", symbol, path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	sval, ok := jval.(string)
	if !ok {
		return Money{}, fmt.Errorf("error parsing %q: %q not a string close, got %v", symbol, path, jval)
	}
	return ParseMoney(sval, Quote)
}

// TradablePairs returns the set of trading pairs the exchange currently
// serves against the quote currency. The symbol list moves slowly, so it is
// fetched through the daily disk cache.
func (b *Binance) TradablePairs(ctx context.Context) (map[string]bool, error) {
	addr := b.base + "/api/v3/exchangeInfo"

	var info struct {
		Symbols []struct {
			Symbol     string `json:"symbol"`
			Status     string `json:"status"`
			QuoteAsset string `json:"quoteAsset"`
			BaseAsset  string `json:"baseAsset"`
		} `json:"symbols"`
	}
	if err := jwget(ctx, daily(), addr, &info); err != nil {
		return nil, err
	}

	pairs := make(map[string]bool)
	for _, s := range info.Symbols {
		if s.QuoteAsset == Quote && s.Status == "TRADING" {
			pairs[s.BaseAsset] = true
		}
	}
	return pairs, nil
}
