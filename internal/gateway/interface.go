package gateway

import (
	"context"
	"time"

	"nivesh/internal/domain"

	"github.com/shopspring/decimal"
)

// Client is the market data gateway contract. The ledger and reporting
// layers only ever see this interface; everything it returns is a
// transient snapshot they copy into their own entities.
type Client interface {
	GetQuote(ctx context.Context, symbol string) (*Quote, error)
	GetBatchQuotes(ctx context.Context, symbols []string) []BatchQuote
	GetHistory(ctx context.Context, symbol string, period string) ([]Bar, error)
	GetDividends(ctx context.Context, symbol string) ([]domain.Dividend, error)
	GetFundQuote(ctx context.Context, fundSymbol string) (*FundQuote, error)
	GetUpcomingIPOs(ctx context.Context) ([]IPO, error)
}

type Quote struct {
	Symbol        string           `json:"symbol"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	PreviousClose decimal.Decimal  `json:"previousClose"`
	Change        decimal.Decimal  `json:"change"`
	ChangePct     decimal.Decimal  `json:"changePct"`
	Volume        int64            `json:"volume"`
	DayHigh       *decimal.Decimal `json:"dayHigh,omitempty"`
	DayLow        *decimal.Decimal `json:"dayLow,omitempty"`

	// Optional provider fields. Empty / nil means the provider did not
	// supply them; they are never synthesized.
	Sector    string           `json:"sector,omitempty"`
	MarketCap *decimal.Decimal `json:"marketCap,omitempty"`
}

// Trend is "up", "down" or "neutral" against the previous close.
func (q Quote) Trend() string {
	switch {
	case q.Change.IsPositive():
		return "up"
	case q.Change.IsNegative():
		return "down"
	}
	return "neutral"
}

// BatchQuote is one best-effort entry of a batch fetch. Exactly one of
// Quote / Err is set; failed symbols are reported, not dropped.
type BatchQuote struct {
	Symbol string
	Quote  *Quote
	Err    error
}

type Bar struct {
	Date   time.Time       `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

type FundQuote struct {
	Symbol       string           `json:"symbol"`
	Name         string           `json:"name"`
	NAV          decimal.Decimal  `json:"nav"`
	PreviousNAV  decimal.Decimal  `json:"previousNav"`
	Change       decimal.Decimal  `json:"change"`
	ChangePct    decimal.Decimal  `json:"changePct"`
	Category     string           `json:"category"`
	RiskLevel    string           `json:"riskLevel"`
	AUM          *decimal.Decimal `json:"aum,omitempty"`
	ExpenseRatio *decimal.Decimal `json:"expenseRatio,omitempty"`
	Return1Y     *decimal.Decimal `json:"return1y,omitempty"`
}

type IPO struct {
	Symbol       string `json:"symbol"`
	CompanyName  string `json:"companyName"`
	Exchange     string `json:"exchange"`
	PriceRange   string `json:"priceRange"`
	ExpectedDate string `json:"expectedDate"`
	IssueSize    string `json:"issueSize"`
	LotSize      int    `json:"lotSize"`
	Sector       string `json:"sector"`
	Status       string `json:"status"`
}
