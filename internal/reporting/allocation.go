package reporting

import (
	"sort"

	"nivesh/internal/domain"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

type SectorSlice struct {
	Sector  string          `json:"sector"`
	Value   decimal.Decimal `json:"value"`
	Percent decimal.Decimal `json:"percent"`
}

type HoldingWeight struct {
	Symbol  string          `json:"symbol"`
	Value   decimal.Decimal `json:"value"`
	Percent decimal.Decimal `json:"percent"`
}

type DiversificationReport struct {
	TotalValue decimal.Decimal `json:"totalValue"`
	Sectors    []SectorSlice   `json:"sectors"`
	Holdings   []HoldingWeight `json:"holdings"`

	// distance-from-equal-weight heuristic, 0..100
	Score decimal.Decimal `json:"score"`
	// sample stdev of holding percentages, 0 for fewer than 2 holdings
	WeightStdev float64 `json:"weightStdev"`
	// High / Medium / Low from the top holding's weight
	ConcentrationRisk string `json:"concentrationRisk"`
}

var hundred = decimal.NewFromInt(100)

// Diversification builds the allocation view from current position
// prices. Positions without a price contribute zero value; a zero total
// yields zero percentages rather than a division error.
func Diversification(st *domain.AccountState) DiversificationReport {
	report := DiversificationReport{
		TotalValue:        decimal.Zero,
		Sectors:           []SectorSlice{},
		Holdings:          []HoldingWeight{},
		Score:             decimal.Zero,
		ConcentrationRisk: "Low",
	}
	if len(st.Positions) == 0 {
		return report
	}

	sectorValues := map[string]decimal.Decimal{}
	for _, position := range st.Positions {
		value := position.CurrentValue()
		report.TotalValue = report.TotalValue.Add(value)
		sector := position.Sector
		if sector == "" {
			sector = "Unknown"
		}
		sectorValues[sector] = sectorValues[sector].Add(value)
		report.Holdings = append(report.Holdings, HoldingWeight{
			Symbol: position.Symbol,
			Value:  value,
		})
	}

	for sector, value := range sectorValues {
		slice := SectorSlice{Sector: sector, Value: value}
		if report.TotalValue.IsPositive() {
			slice.Percent = value.Div(report.TotalValue).Mul(hundred).Round(2)
		}
		report.Sectors = append(report.Sectors, slice)
	}
	sort.Slice(report.Sectors, func(i, j int) bool {
		return report.Sectors[i].Value.GreaterThan(report.Sectors[j].Value)
	})

	for i := range report.Holdings {
		if report.TotalValue.IsPositive() {
			report.Holdings[i].Percent = report.Holdings[i].Value.Div(report.TotalValue).Mul(hundred).Round(2)
		}
	}
	sort.Slice(report.Holdings, func(i, j int) bool {
		return report.Holdings[i].Value.GreaterThan(report.Holdings[j].Value)
	})

	report.Score = diversificationScore(report.Holdings)
	report.WeightStdev = weightStdev(report.Holdings)
	report.ConcentrationRisk = concentrationRisk(report.Holdings)
	return report
}

// score = max(0, 100 - sum(|pct - ideal|)/2), ideal = equal weight
func diversificationScore(holdings []HoldingWeight) decimal.Decimal {
	if len(holdings) == 0 {
		return decimal.Zero
	}
	ideal := hundred.Div(decimal.NewFromInt(int64(len(holdings))))
	deviation := decimal.Zero
	for _, h := range holdings {
		deviation = deviation.Add(h.Percent.Sub(ideal).Abs())
	}
	score := hundred.Sub(deviation.Div(decimal.NewFromInt(2))).Round(2)
	if score.IsNegative() {
		return decimal.Zero
	}
	return score
}

func weightStdev(holdings []HoldingWeight) float64 {
	if len(holdings) < 2 {
		return 0
	}
	weights := make(stats.Float64Data, len(holdings))
	for i, h := range holdings {
		weights[i] = h.Percent.InexactFloat64()
	}
	stdev, err := stats.StandardDeviationSample(weights)
	if err != nil {
		return 0
	}
	return stdev
}

func concentrationRisk(holdings []HoldingWeight) string {
	if len(holdings) == 0 {
		return "Low"
	}
	top := holdings[0].Percent
	switch {
	case top.GreaterThan(decimal.NewFromInt(30)):
		return "High"
	case top.GreaterThan(decimal.NewFromInt(20)):
		return "Medium"
	}
	return "Low"
}
