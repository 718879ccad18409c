package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionType_Buy TransactionType = "buy"
)

// Transaction is an immutable log entry within a position's history.
// Append-only; never updated after creation.
type Transaction struct {
	Date     time.Time       `json:"date"`
	Type     TransactionType `json:"type"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Cost     decimal.Decimal `json:"cost"`
	Notes    string          `json:"notes"`
}

// Position is an open holding. Quantity is always > 0; a position whose
// quantity reaches zero is removed from the account, never retained.
type Position struct {
	Symbol       string           `json:"symbol"`
	Name         string           `json:"name"`
	Quantity     int64            `json:"quantity"`
	AvgBuyPrice  decimal.Decimal  `json:"avgBuyPrice"`
	CurrentPrice *decimal.Decimal `json:"currentPrice,omitempty"`
	PurchaseDate time.Time        `json:"purchaseDate"`
	LastTxDate   time.Time        `json:"lastTxDate"`
	Sector       string           `json:"sector"`
	TotalFees    decimal.Decimal  `json:"totalFees"`
	History      []Transaction    `json:"history"`
}

func (p Position) DeepCopy() *Position {
	out := Position{
		Symbol:       p.Symbol,
		Name:         p.Name,
		Quantity:     p.Quantity,
		AvgBuyPrice:  p.AvgBuyPrice,
		PurchaseDate: p.PurchaseDate,
		LastTxDate:   p.LastTxDate,
		Sector:       p.Sector,
		TotalFees:    p.TotalFees,
		History:      make([]Transaction, len(p.History)),
	}
	if p.CurrentPrice != nil {
		price := *p.CurrentPrice
		out.CurrentPrice = &price
	}
	copy(out.History, p.History)
	return &out
}

// CostBasis is what was paid for the whole position at its blended
// average price, excluding fees.
func (p Position) CostBasis() decimal.Decimal {
	return p.AvgBuyPrice.Mul(decimal.NewFromInt(p.Quantity))
}

// CurrentValue is quantity * current price, or zero when no quote has
// been attached yet.
func (p Position) CurrentValue() decimal.Decimal {
	if p.CurrentPrice == nil {
		return decimal.Zero
	}
	return p.CurrentPrice.Mul(decimal.NewFromInt(p.Quantity))
}

func (p Position) UnrealizedPL() decimal.Decimal {
	if p.CurrentPrice == nil {
		return decimal.Zero
	}
	return p.CurrentValue().Sub(p.CostBasis())
}

// HoldingDays counts calendar days from the first purchase to now.
func (p Position) HoldingDays(now time.Time) int {
	return int(now.Sub(p.PurchaseDate).Hours() / 24)
}
