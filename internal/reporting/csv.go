package reporting

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"time"

	"nivesh/internal/domain"
	"nivesh/internal/tax"
)

const csvDateLayout = "2006-01-02"

// WritePortfolioCSV renders every open position, one row per holding.
func WritePortfolioCSV(w io.Writer, st *domain.AccountState) error {
	writer := csv.NewWriter(w)
	header := []string{
		"Symbol", "Company Name", "Quantity", "Buy Price", "Current Price",
		"Buy Date", "Holding Period (Days)", "Current Value", "Cost Basis",
		"Profit/Loss", "Profit/Loss %", "Sector",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	now := time.Now()
	for _, position := range sortedPositions(st) {
		currentPrice := ""
		if position.CurrentPrice != nil {
			currentPrice = position.CurrentPrice.StringFixed(2)
		}
		plPct := ""
		costBasis := position.CostBasis()
		if position.CurrentPrice != nil && costBasis.IsPositive() {
			plPct = position.UnrealizedPL().Div(costBasis).Mul(hundred).Round(2).StringFixed(2)
		}
		row := []string{
			position.Symbol,
			position.Name,
			strconv.FormatInt(position.Quantity, 10),
			position.AvgBuyPrice.StringFixed(2),
			currentPrice,
			position.PurchaseDate.Format(csvDateLayout),
			strconv.Itoa(position.HoldingDays(now)),
			position.CurrentValue().StringFixed(2),
			costBasis.StringFixed(2),
			position.UnrealizedPL().StringFixed(2),
			plPct,
			position.Sector,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteTaxReportCSV renders sold lots followed by the year's summary
// rows.
func WriteTaxReportCSV(w io.Writer, lots []domain.SoldLot, report tax.Report) error {
	writer := csv.NewWriter(w)
	header := []string{
		"Symbol", "Company Name", "Quantity", "Buy Price", "Sell Price",
		"Buy Date", "Sell Date", "Holding Period (Days)", "Tax Category",
		"Profit/Loss",
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, lot := range lots {
		row := []string{
			lot.Symbol,
			lot.Name,
			strconv.FormatInt(lot.Quantity, 10),
			lot.BuyPrice.StringFixed(2),
			lot.SellPrice.StringFixed(2),
			lot.BuyDate.Format(csvDateLayout),
			lot.SellDate.Format(csvDateLayout),
			strconv.Itoa(lot.HoldingDays),
			string(lot.TaxCategory),
			lot.RealizedPL.StringFixed(2),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	summary := [][]string{
		{},
		{"Financial Year", report.FinancialYear},
		{"Short Term P/L", report.ShortTermPL.StringFixed(2)},
		{"Short Term Tax (15%)", report.ShortTermTax.StringFixed(2)},
		{"Long Term P/L", report.LongTermPL.StringFixed(2)},
		{"Long Term Taxable", report.LongTermTaxable.StringFixed(2)},
		{"Long Term Tax (10%)", report.LongTermTax.StringFixed(2)},
		{"Total Tax", report.TotalTax.StringFixed(2)},
	}
	for _, row := range summary {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func WriteDividendsCSV(w io.Writer, yields []DividendYield) error {
	writer := csv.NewWriter(w)
	header := []string{
		"Symbol", "Company Name", "Annual Dividend", "Current Price",
		"Dividend Yield %", "Payouts On Record",
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, y := range yields {
		row := []string{
			y.Symbol,
			y.Name,
			y.AnnualDividend.StringFixed(2),
			y.CurrentPrice.StringFixed(2),
			y.YieldPct.StringFixed(2),
			strconv.Itoa(y.Payouts),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func sortedPositions(st *domain.AccountState) []*domain.Position {
	positions := []*domain.Position{}
	for _, p := range st.Positions {
		positions = append(positions, p)
	}
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].Symbol < positions[j].Symbol
	})
	return positions
}
