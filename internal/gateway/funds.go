package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	nivesh_errors "nivesh/internal"

	"github.com/shopspring/decimal"
)

type fundQuoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol      string   `json:"symbol"`
			LongName    string   `json:"longName"`
			ShortName   string   `json:"shortName"`
			TotalAssets *float64 `json:"totalAssets"`
			Yield       *float64 `json:"yield"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

// GetFundQuote combines the chart endpoint (NAV, 1y return from closes)
// with the quote endpoint (name, AUM, expense ratio) the way the fund
// dashboard always has.
func (c *YahooClient) GetFundQuote(ctx context.Context, fundSymbol string) (*FundQuote, error) {
	chart, err := c.getChart(ctx, fundSymbol, fmt.Sprintf(
		"interval=1d&period1=%d&period2=%d", time.Now().Unix()-periodSeconds["2y"], time.Now().Unix()))
	if err != nil {
		return nil, err
	}
	result := chart.Chart.Result[0]
	meta := result.Meta
	if meta.RegularMarketPrice == nil {
		return nil, nivesh_errors.ErrSymbolNotFound{Symbol: fundSymbol}
	}

	fund := FundQuote{
		Symbol: fundSymbol,
		NAV:    decimal.NewFromFloat(*meta.RegularMarketPrice),
	}

	previousNAV := meta.PreviousClose
	if previousNAV == nil {
		previousNAV = meta.ChartPreviousClose
	}
	if previousNAV != nil {
		fund.PreviousNAV = decimal.NewFromFloat(*previousNAV)
		fund.Change = fund.NAV.Sub(fund.PreviousNAV)
		if !fund.PreviousNAV.IsZero() {
			fund.ChangePct = fund.Change.Div(fund.PreviousNAV).Mul(decimal.NewFromInt(100)).Round(2)
		}
	}

	name := fundDisplayName(meta.LongName, meta.ShortName, fundSymbol)

	// quote endpoint fills in the long name plus AUM / expense ratio;
	// losing it degrades the quote, it doesn't fail it
	if detail, detailErr := c.getFundDetail(ctx, fundSymbol); detailErr == nil && detail != nil {
		if detail.LongName != "" {
			name = detail.LongName
		} else if detail.ShortName != "" {
			name = detail.ShortName
		}
		if detail.TotalAssets != nil {
			aum := decimal.NewFromFloat(*detail.TotalAssets)
			fund.AUM = &aum
		}
		if detail.Yield != nil {
			expense := decimal.NewFromFloat(*detail.Yield)
			fund.ExpenseRatio = &expense
		}
	}
	fund.Name = name
	fund.Category = categoryFromName(name)
	fund.RiskLevel = riskForCategory(fund.Category)

	if oneYear := oneYearReturn(result.Timestamp, result.Indicators.Quote); oneYear != nil {
		fund.Return1Y = oneYear
	}
	return &fund, nil
}

func (c *YahooClient) getFundDetail(ctx context.Context, fundSymbol string) (*struct {
	Symbol      string   `json:"symbol"`
	LongName    string   `json:"longName"`
	ShortName   string   `json:"shortName"`
	TotalAssets *float64 `json:"totalAssets"`
	Yield       *float64 `json:"yield"`
}, error) {
	reqURL := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", c.BaseURL, url.QueryEscape(fundSymbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote endpoint returned status %d", response.StatusCode)
	}
	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}
	var responseJson fundQuoteResponse
	if err := json.Unmarshal(responseBytes, &responseJson); err != nil {
		return nil, err
	}
	if len(responseJson.QuoteResponse.Result) == 0 {
		return nil, nil
	}
	return &responseJson.QuoteResponse.Result[0], nil
}

func fundDisplayName(longName, shortName, symbol string) string {
	if longName != "" {
		return longName
	}
	if shortName != "" {
		return shortName
	}
	name := strings.TrimSuffix(symbol, ".MF")
	return strings.ReplaceAll(name, "-", " ")
}

func categoryFromName(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "large cap"):
		return "Large Cap"
	case strings.Contains(lower, "mid cap"):
		return "Mid Cap"
	case strings.Contains(lower, "small cap"):
		return "Small Cap"
	case strings.Contains(lower, "debt"), strings.Contains(lower, "bond"):
		return "Debt"
	case strings.Contains(lower, "hybrid"), strings.Contains(lower, "balanced"):
		return "Hybrid"
	case strings.Contains(lower, "index"):
		return "Index"
	}
	return "Equity"
}

func riskForCategory(category string) string {
	switch category {
	case "Large Cap", "Index", "Debt":
		return "Low"
	case "Small Cap":
		return "High"
	}
	return "Moderate"
}

// oneYearReturn needs at least a year of aligned daily closes, otherwise
// it reports nothing.
func oneYearReturn(timestamps []int64, quotes []struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}) *decimal.Decimal {
	if len(quotes) == 0 {
		return nil
	}
	closes := quotes[0].Close
	if len(closes) <= 250 || len(closes) != len(timestamps) {
		return nil
	}

	type point struct {
		ts    int64
		price float64
	}
	valid := []point{}
	for i, c := range closes {
		if c != nil {
			valid = append(valid, point{ts: timestamps[i], price: *c})
		}
	}
	if len(valid) == 0 {
		return nil
	}

	// compare against the last close at or before the one-year mark
	latest := valid[len(valid)-1].price
	oneYearAgo := time.Now().Unix() - periodSeconds["1y"]
	var base *point
	for i := range valid {
		if valid[i].ts > oneYearAgo {
			break
		}
		base = &valid[i]
	}
	if base == nil || base.price == 0 {
		return nil
	}
	r := decimal.NewFromFloat(latest/base.price - 1).Mul(decimal.NewFromInt(100)).Round(2)
	return &r
}
