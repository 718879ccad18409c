package reporting

import (
	"nivesh/internal/domain"

	"github.com/shopspring/decimal"
)

// PortfolioMetrics are the headline numbers on the dashboard.
type PortfolioMetrics struct {
	PortfolioValue decimal.Decimal `json:"portfolio_value"`
	Invested       decimal.Decimal `json:"invested"`
	PortfolioPL    decimal.Decimal `json:"portfolio_pl"`
	PortfolioPLPct decimal.Decimal `json:"portfolio_pl_pct"`
	RealizedPL     decimal.Decimal `json:"realized_pl"`
	TotalFees      decimal.Decimal `json:"total_fees"`
	OpenPositions  int             `json:"open_positions"`
}

func Metrics(st *domain.AccountState) PortfolioMetrics {
	m := PortfolioMetrics{
		PortfolioValue: decimal.Zero,
		Invested:       decimal.Zero,
		PortfolioPL:    decimal.Zero,
		PortfolioPLPct: decimal.Zero,
		RealizedPL:     decimal.Zero,
		TotalFees:      decimal.Zero,
		OpenPositions:  len(st.Positions),
	}
	for _, position := range st.Positions {
		m.PortfolioValue = m.PortfolioValue.Add(position.CurrentValue())
		m.Invested = m.Invested.Add(position.CostBasis())
		m.TotalFees = m.TotalFees.Add(position.TotalFees)
	}
	m.PortfolioPL = m.PortfolioValue.Sub(m.Invested)
	if m.Invested.IsPositive() {
		m.PortfolioPLPct = m.PortfolioPL.Div(m.Invested).Mul(hundred).Round(2)
	}
	for _, lot := range st.SoldLots {
		m.RealizedPL = m.RealizedPL.Add(lot.RealizedPL)
	}
	return m
}
