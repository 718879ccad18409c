package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TaxCategory string

const (
	TaxCategory_ShortTerm TaxCategory = "short_term"
	TaxCategory_LongTerm  TaxCategory = "long_term"
)

// Holdings at or past this age sell as long-term.
const LongTermHoldingDays = 365

// SoldLot records one executed sale. Created only by a sell, immutable
// afterwards.
type SoldLot struct {
	Symbol      string          `json:"symbol"`
	Name        string          `json:"name"`
	Quantity    int64           `json:"quantity"`
	BuyPrice    decimal.Decimal `json:"buyPrice"`
	SellPrice   decimal.Decimal `json:"sellPrice"`
	BuyDate     time.Time       `json:"buyDate"`
	SellDate    time.Time       `json:"sellDate"`
	HoldingDays int             `json:"holdingDays"`
	TaxCategory TaxCategory     `json:"taxCategory"`
	RealizedPL  decimal.Decimal `json:"realizedPL"`
}

// CategoryForHolding classifies a holding period against the 365 day
// boundary.
func CategoryForHolding(days int) TaxCategory {
	if days < LongTermHoldingDays {
		return TaxCategory_ShortTerm
	}
	return TaxCategory_LongTerm
}
