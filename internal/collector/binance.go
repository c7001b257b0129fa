package collector

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"PatternScout/internal/model"
)

// BinanceFetcher implements Fetcher using the Binance spot klines REST API.
// Useful for crypto symbols where Yahoo's coverage is thin.
type BinanceFetcher struct {
	BaseURL string
	Client  *resty.Client
}

// NewBinanceFetcher creates a fetcher with optional proxy support.
func NewBinanceFetcher(proxyURL string) *BinanceFetcher {
	client := resty.New().
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second)
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &BinanceFetcher{
		BaseURL: "https://api.binance.com",
		Client:  client,
	}
}

func (f *BinanceFetcher) Name() string { return "binance" }

// binanceInterval maps the internal interval names to Binance kline intervals.
func binanceInterval(interval string) string {
	switch interval {
	case "1wk":
		return "1w"
	case "1mo":
		return "1M"
	default:
		return interval // "1d", "1h", ... line up already
	}
}

func (f *BinanceFetcher) FetchBars(symbol, interval string, lookback int) ([]model.OHLCV, error) {
	if lookback > 1000 {
		lookback = 1000 // API limit per request
	}
	resp, err := f.Client.R().
		SetQueryParams(map[string]string{
			"symbol":   symbol,
			"interval": binanceInterval(interval),
			"limit":    strconv.Itoa(lookback),
		}).
		Get(f.BaseURL + "/api/v3/klines")
	if err != nil {
		return nil, fmt.Errorf("binance fetch klines: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("binance: status %d, body: %s", resp.StatusCode(), resp.String())
	}

	// Klines arrive as arrays of mixed types:
	// [openTime, "open", "high", "low", "close", "volume", closeTime, ...]
	var raw [][]interface{}
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return nil, fmt.Errorf("binance decode klines: %w", err)
	}

	bars := make([]model.OHLCV, 0, len(raw))
	for _, k := range raw {
		if len(k) < 6 {
			continue
		}
		ts, ok := k[0].(float64)
		if !ok {
			continue
		}
		o, err1 := parsePrice(k[1])
		h, err2 := parsePrice(k[2])
		l, err3 := parsePrice(k[3])
		c, err4 := parsePrice(k[4])
		v, err5 := parsePrice(k[5])
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
			continue
		}
		bars = append(bars, model.OHLCV{
			Time:   time.UnixMilli(int64(ts)),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: v,
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func (f *BinanceFetcher) FetchCurrentPrice(symbol string) (float64, error) {
	resp, err := f.Client.R().
		SetQueryParam("symbol", symbol).
		Get(f.BaseURL + "/api/v3/ticker/price")
	if err != nil {
		return 0, fmt.Errorf("binance fetch price: %w", err)
	}
	if resp.StatusCode() != 200 {
		return 0, fmt.Errorf("binance: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	var result struct {
		Price string `json:"price"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return 0, fmt.Errorf("binance decode price: %w", err)
	}
	return strconv.ParseFloat(result.Price, 64)
}

func parsePrice(v interface{}) (float64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected kline field type %T", v)
	}
	return strconv.ParseFloat(s, 64)
}
