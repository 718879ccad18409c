package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	nivesh_errors "nivesh/internal"
	"nivesh/internal/domain"

	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// provider blocks requests without a browser-ish user agent
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// period -> lookback seconds for the chart endpoint
var periodSeconds = map[string]int64{
	"1d":  86400,
	"5d":  432000,
	"1mo": 2592000,
	"3mo": 7776000,
	"6mo": 15552000,
	"1y":  31536000,
	"2y":  63072000,
	"5y":  157680000,
	"max": 9999999999,
}

type YahooClient struct {
	HttpClient *http.Client
	BaseURL    string
	// IPO calendar feed; provider-neutral JSON array, see GetUpcomingIPOs.
	IPOCalendarURL string
	// number of concurrent quote fetches in a batch
	BatchWorkers int
}

func NewYahooClient() *YahooClient {
	return &YahooClient{
		HttpClient:   &http.Client{Timeout: 8 * time.Second},
		BaseURL:      defaultBaseURL,
		BatchWorkers: 4,
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol               string   `json:"symbol"`
				ShortName            string   `json:"shortName"`
				LongName             string   `json:"longName"`
				RegularMarketPrice   *float64 `json:"regularMarketPrice"`
				PreviousClose        *float64 `json:"previousClose"`
				ChartPreviousClose   *float64 `json:"chartPreviousClose"`
				RegularMarketVolume  *int64   `json:"regularMarketVolume"`
				RegularMarketDayHigh *float64 `json:"regularMarketDayHigh"`
				RegularMarketDayLow  *float64 `json:"regularMarketDayLow"`
				MarketCap            *float64 `json:"marketCap"`
				Sector               string   `json:"sector"`
			} `json:"meta"`
			Timestamp []int64 `json:"timestamp"`
			Events    struct {
				Dividends map[string]struct {
					Amount float64 `json:"amount"`
					Date   int64   `json:"date"`
				} `json:"dividends"`
			} `json:"events"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (c *YahooClient) getChart(ctx context.Context, symbol string, query string) (*chartResponse, error) {
	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.BaseURL, url.PathEscape(symbol), query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, nivesh_errors.ErrGatewayUnavailable{Cause: err}
	}
	req.Header.Set("User-Agent", userAgent)

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, nivesh_errors.ErrGatewayUnavailable{Cause: err}
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return nil, nivesh_errors.ErrSymbolNotFound{Symbol: symbol}
	}
	if response.StatusCode != http.StatusOK {
		return nil, nivesh_errors.ErrGatewayUnavailable{
			Cause: fmt.Errorf("chart endpoint returned status %d for %s", response.StatusCode, symbol),
		}
	}

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, nivesh_errors.ErrGatewayUnavailable{Cause: err}
	}
	var responseJson chartResponse
	if err := json.Unmarshal(responseBytes, &responseJson); err != nil {
		return nil, nivesh_errors.ErrGatewayUnavailable{Cause: err}
	}
	if responseJson.Chart.Error != nil {
		if responseJson.Chart.Error.Code == "Not Found" {
			return nil, nivesh_errors.ErrSymbolNotFound{Symbol: symbol}
		}
		return nil, nivesh_errors.ErrGatewayUnavailable{
			Cause: fmt.Errorf("chart endpoint error for %s: %s", symbol, responseJson.Chart.Error.Description),
		}
	}
	if len(responseJson.Chart.Result) == 0 {
		return nil, nivesh_errors.ErrSymbolNotFound{Symbol: symbol}
	}
	return &responseJson, nil
}

func (c *YahooClient) GetQuote(ctx context.Context, symbol string) (*Quote, error) {
	chart, err := c.getChart(ctx, symbol, "interval=1d")
	if err != nil {
		return nil, err
	}
	result := chart.Chart.Result[0]
	meta := result.Meta

	price := meta.RegularMarketPrice
	if price == nil {
		// meta can miss the live price; fall back to the last non-null close
		if len(result.Indicators.Quote) > 0 {
			closes := result.Indicators.Quote[0].Close
			for i := len(closes) - 1; i >= 0; i-- {
				if closes[i] != nil {
					price = closes[i]
					break
				}
			}
		}
	}
	if price == nil {
		return nil, nivesh_errors.ErrSymbolNotFound{Symbol: symbol}
	}

	previousClose := meta.PreviousClose
	if previousClose == nil {
		previousClose = meta.ChartPreviousClose
	}

	quote := Quote{
		Symbol: symbol,
		Name:   displayName(meta.LongName, meta.ShortName, meta.Symbol, symbol),
		Price:  decimal.NewFromFloat(*price).Round(2),
		Sector: meta.Sector,
	}
	if previousClose != nil {
		quote.PreviousClose = decimal.NewFromFloat(*previousClose).Round(2)
		quote.Change = quote.Price.Sub(quote.PreviousClose)
		if !quote.PreviousClose.IsZero() {
			quote.ChangePct = quote.Change.Div(quote.PreviousClose).Mul(decimal.NewFromInt(100)).Round(2)
		}
	}
	if meta.RegularMarketVolume != nil {
		quote.Volume = *meta.RegularMarketVolume
	}
	if meta.RegularMarketDayHigh != nil {
		high := decimal.NewFromFloat(*meta.RegularMarketDayHigh).Round(2)
		quote.DayHigh = &high
	}
	if meta.RegularMarketDayLow != nil {
		low := decimal.NewFromFloat(*meta.RegularMarketDayLow).Round(2)
		quote.DayLow = &low
	}
	if meta.MarketCap != nil {
		mcap := decimal.NewFromFloat(*meta.MarketCap)
		quote.MarketCap = &mcap
	}
	return &quote, nil
}

// GetBatchQuotes fetches quotes with a bounded fan-out, one result per
// requested symbol. Failures stay in the result set so callers can report
// them per symbol. Results come back sorted by market cap descending;
// symbols with an unknown cap sort last, ties break on symbol.
func (c *YahooClient) GetBatchQuotes(ctx context.Context, symbols []string) []BatchQuote {
	results := make([]BatchQuote, len(symbols))
	workers := c.BatchWorkers
	if workers <= 0 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, symbol := range symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			quote, err := c.GetQuote(ctx, symbol)
			results[i] = BatchQuote{Symbol: symbol, Quote: quote, Err: err}
		}(i, symbol)
	}
	wg.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		ci, cj := batchCap(results[i]), batchCap(results[j])
		if ci == nil && cj == nil {
			return results[i].Symbol < results[j].Symbol
		}
		if ci == nil {
			return false
		}
		if cj == nil {
			return true
		}
		return ci.GreaterThan(*cj)
	})
	return results
}

func batchCap(b BatchQuote) *decimal.Decimal {
	if b.Quote == nil {
		return nil
	}
	return b.Quote.MarketCap
}

func (c *YahooClient) GetHistory(ctx context.Context, symbol string, period string) ([]Bar, error) {
	seconds, ok := periodSeconds[period]
	if !ok {
		seconds = periodSeconds["1y"]
	}
	now := time.Now().Unix()
	query := fmt.Sprintf("interval=1d&period1=%d&period2=%d", now-seconds, now)
	chart, err := c.getChart(ctx, symbol, query)
	if err != nil {
		return nil, err
	}
	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return []Bar{}, nil
	}
	ohlcv := result.Indicators.Quote[0]

	bars := []Bar{}
	for i, ts := range result.Timestamp {
		if i >= len(ohlcv.Close) || ohlcv.Close[i] == nil {
			continue
		}
		bar := Bar{
			Date:  time.Unix(ts, 0),
			Close: decimal.NewFromFloat(*ohlcv.Close[i]).Round(2),
		}
		if i < len(ohlcv.Open) && ohlcv.Open[i] != nil {
			bar.Open = decimal.NewFromFloat(*ohlcv.Open[i]).Round(2)
		}
		if i < len(ohlcv.High) && ohlcv.High[i] != nil {
			bar.High = decimal.NewFromFloat(*ohlcv.High[i]).Round(2)
		}
		if i < len(ohlcv.Low) && ohlcv.Low[i] != nil {
			bar.Low = decimal.NewFromFloat(*ohlcv.Low[i]).Round(2)
		}
		if i < len(ohlcv.Volume) && ohlcv.Volume[i] != nil {
			bar.Volume = *ohlcv.Volume[i]
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

func (c *YahooClient) GetDividends(ctx context.Context, symbol string) ([]domain.Dividend, error) {
	now := time.Now().Unix()
	query := fmt.Sprintf("interval=1d&period1=%d&period2=%d&events=div", now-periodSeconds["5y"], now)
	chart, err := c.getChart(ctx, symbol, query)
	if err != nil {
		return nil, err
	}
	divs := []domain.Dividend{}
	for _, d := range chart.Chart.Result[0].Events.Dividends {
		divs = append(divs, domain.Dividend{
			Date:   time.Unix(d.Date, 0),
			Amount: decimal.NewFromFloat(d.Amount),
		})
	}
	sort.Slice(divs, func(i, j int) bool {
		return divs[i].Date.Before(divs[j].Date)
	})
	return divs, nil
}

func displayName(longName, shortName, metaSymbol, fallback string) string {
	for _, candidate := range []string{longName, shortName, metaSymbol} {
		if candidate != "" {
			return stripExchangeSuffix(candidate)
		}
	}
	return stripExchangeSuffix(fallback)
}

func stripExchangeSuffix(s string) string {
	s = strings.TrimSuffix(s, ".NS")
	s = strings.TrimSuffix(s, ".BO")
	return s
}
