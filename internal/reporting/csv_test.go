package reporting

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"nivesh/internal/domain"
	"nivesh/internal/tax"

	"github.com/stretchr/testify/require"
)

func TestWritePortfolioCSV(t *testing.T) {
	st := domain.NewAccountState()
	p := position("INFY.NS", "Information Technology", 10, 1500)
	p.Name = "Infosys Limited"
	p.PurchaseDate = time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	st.Positions["INFY.NS"] = p
	st.Positions["TCS.NS"] = position("TCS.NS", "Information Technology", 5, 3200)

	var buf bytes.Buffer
	require.NoError(t, WritePortfolioCSV(&buf, st))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Symbol", rows[0][0])
	require.Equal(t, "Sector", rows[0][11])

	// sorted by symbol
	require.Equal(t, "INFY.NS", rows[1][0])
	require.Equal(t, "Infosys Limited", rows[1][1])
	require.Equal(t, "10", rows[1][2])
	require.Equal(t, "1500.00", rows[1][3])
	require.Equal(t, "2026-01-15", rows[1][5])
	require.Equal(t, "15000.00", rows[1][7])
	require.Equal(t, "0.00", rows[1][9])
	require.Equal(t, "TCS.NS", rows[2][0])
}

func TestWriteTaxReportCSV(t *testing.T) {
	lots := []domain.SoldLot{
		{
			Symbol:      "INFY.NS",
			Name:        "Infosys Limited",
			Quantity:    4,
			BuyPrice:    dec(1500),
			SellPrice:   dec(1600),
			BuyDate:     time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
			SellDate:    time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
			HoldingDays: 120,
			TaxCategory: domain.TaxCategory_ShortTerm,
			RealizedPL:  dec(400),
		},
	}
	report := tax.Compute(lots, domain.DefaultRateSchedule())
	report.FinancialYear = "2026-27"

	var buf bytes.Buffer
	require.NoError(t, WriteTaxReportCSV(&buf, lots, report))

	reader := csv.NewReader(&buf)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	require.NoError(t, err)

	require.Equal(t, "Tax Category", rows[0][8])
	require.Equal(t, []string{
		"INFY.NS", "Infosys Limited", "4", "1500.00", "1600.00",
		"2026-01-10", "2026-05-10", "120", "short_term", "400.00",
	}, rows[1])

	last := rows[len(rows)-1]
	require.Equal(t, "Total Tax", last[0])
	require.Equal(t, "60.00", last[1])
}

func TestWriteDividendsCSV(t *testing.T) {
	yields := []DividendYield{
		{
			Symbol:         "ITC.NS",
			Name:           "ITC Limited",
			AnnualDividend: dec(13.5),
			CurrentPrice:   dec(450),
			YieldPct:       dec(3),
			Payouts:        2,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDividendsCSV(&buf, yields))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, []string{"ITC.NS", "ITC Limited", "13.50", "450.00", "3.00", "2"}, rows[1])
}
