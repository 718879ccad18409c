package types

import (
	"time"

	"nivesh/internal/gateway"
)

const timestampLayout = "2006-01-02 15:04:05"

// Envelope is the response shape every JSON endpoint returns. Callers
// always get a well-formed object; degraded fetches carry an empty Data
// plus a Message instead of an error status.
type Envelope struct {
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
	Metrics   interface{} `json:"metrics,omitempty"`
	Message   string      `json:"message,omitempty"`
}

func NewEnvelope(data interface{}) Envelope {
	return Envelope{
		Data:      data,
		Timestamp: time.Now().Format(timestampLayout),
	}
}

// StockRow is the display row for quote listings. Numeric fields are
// strings so a failed symbol can carry "Error" / "N/A" instead of being
// dropped from the batch.
type StockRow struct {
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	Change        string `json:"change"`
	ChangePercent string `json:"change_percent"`
	Volume        string `json:"volume"`
	Trend         string `json:"trend"`
	Sector        string `json:"sector,omitempty"`
	MarketCap     string `json:"market_cap,omitempty"`
}

func StockRowFromBatch(b gateway.BatchQuote) StockRow {
	if b.Err != nil || b.Quote == nil {
		return StockRow{
			Symbol:        b.Symbol,
			Name:          b.Symbol,
			Price:         "Error",
			Change:        "N/A",
			ChangePercent: "N/A",
			Volume:        "N/A",
			Trend:         "neutral",
		}
	}
	q := b.Quote
	row := StockRow{
		Symbol:        q.Symbol,
		Name:          q.Name,
		Price:         q.Price.StringFixed(2),
		Change:        signedFixed(q.Change),
		ChangePercent: signedFixed(q.ChangePct) + "%",
		Volume:        formatInt(q.Volume),
		Trend:         q.Trend(),
		Sector:        q.Sector,
	}
	if q.MarketCap != nil {
		row.MarketCap = q.MarketCap.StringFixed(0)
	}
	return row
}

type BuyRequest struct {
	Stock           string `form:"stock" binding:"required"`
	Quantity        int64  `form:"quantity" binding:"required"`
	BuyPrice        string `form:"buy_price"`
	TransactionDate string `form:"transaction_date"`
	TransactionType string `form:"transaction_type"`
	Notes           string `form:"notes"`
}

type SellRequest struct {
	Stock        string `form:"stock" binding:"required"`
	Quantity     int64  `form:"quantity" binding:"required"`
	TriggerPrice string `form:"trigger_price"`
}

type WatchlistRequest struct {
	Stock string `form:"stock" binding:"required"`
}

type AlertRequest struct {
	Symbol    string `form:"symbol" binding:"required"`
	Price     string `form:"price" binding:"required"`
	AlertType string `form:"alert_type" binding:"required"`
}

type DeleteAlertRequest struct {
	ID string `form:"id" binding:"required"`
}
