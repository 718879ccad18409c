package reporting

import (
	"context"
	"sort"
	"time"

	"nivesh/internal/domain"
	"nivesh/internal/gateway"

	"github.com/shopspring/decimal"
)

type DividendYield struct {
	Symbol         string          `json:"symbol"`
	Name           string          `json:"name"`
	AnnualDividend decimal.Decimal `json:"annualDividend"`
	CurrentPrice   decimal.Decimal `json:"currentPrice"`
	YieldPct       decimal.Decimal `json:"yieldPct"`
	Payouts        int             `json:"payouts"`
}

// DividendYields computes trailing-12-month yield for every open
// position. Payout history is cached on the account; symbols whose
// history can't be fetched are skipped rather than failing the view.
func DividendYields(ctx context.Context, marketData gateway.Client, st *domain.AccountState) []DividendYield {
	now := time.Now()
	yields := []DividendYield{}
	for _, position := range st.Positions {
		divs, ok := st.DividendCache[position.Symbol]
		if !ok {
			fetched, err := marketData.GetDividends(ctx, position.Symbol)
			if err != nil {
				continue
			}
			st.DividendCache[position.Symbol] = fetched
			divs = fetched
		}

		annual := domain.TrailingDividendSum(divs, now)
		y := DividendYield{
			Symbol:         position.Symbol,
			Name:           position.Name,
			AnnualDividend: annual,
			Payouts:        len(divs),
		}
		if position.CurrentPrice != nil {
			y.CurrentPrice = *position.CurrentPrice
			if y.CurrentPrice.IsPositive() {
				y.YieldPct = annual.Div(y.CurrentPrice).Mul(hundred).Round(2)
			}
		}
		yields = append(yields, y)
	}
	sort.Slice(yields, func(i, j int) bool {
		return yields[i].Symbol < yields[j].Symbol
	})
	return yields
}
