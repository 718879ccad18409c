package gateway

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCategoryFromName(t *testing.T) {
	cases := map[string]string{
		"Axis Bluechip Large Cap Fund":  "Large Cap",
		"HDFC Mid Cap Opportunities":    "Mid Cap",
		"Quant Small Cap Fund":          "Small Cap",
		"SBI Corporate Bond Fund":       "Debt",
		"ICICI Balanced Advantage Fund": "Hybrid",
		"UTI Nifty 50 Index Fund":       "Index",
		"Parag Parikh Flexi Cap Fund":   "Equity",
	}
	for name, want := range cases {
		require.Equal(t, want, categoryFromName(name), name)
	}
}

func TestRiskForCategory(t *testing.T) {
	require.Equal(t, "Low", riskForCategory("Large Cap"))
	require.Equal(t, "Low", riskForCategory("Debt"))
	require.Equal(t, "High", riskForCategory("Small Cap"))
	require.Equal(t, "Moderate", riskForCategory("Mid Cap"))
	require.Equal(t, "Moderate", riskForCategory("Equity"))
}

func TestGetFundQuote(t *testing.T) {
	t.Run("detail endpoint enriches the quote", func(t *testing.T) {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/v7/finance/quote":
				fmt.Fprint(w, `{"quoteResponse":{"result":[{"symbol":"0P0000XYZ.BO","longName":"Axis Bluechip Large Cap Fund","totalAssets":340000000000,"yield":0.58}]}}`)
			default:
				fmt.Fprint(w, chartBody("0P0000XYZ.BO",
					`,"shortName":"Axis Bluechip","regularMarketPrice":52.4,"previousClose":52.0`, ``))
			}
		}))
		defer server.Close()

		fund, err := client.GetFundQuote(context.Background(), "0P0000XYZ.BO")
		require.NoError(t, err)
		require.Equal(t, "Axis Bluechip Large Cap Fund", fund.Name)
		require.True(t, fund.NAV.Equal(decimal.NewFromFloat(52.4)))
		require.True(t, fund.ChangePct.Equal(decimal.NewFromFloat(0.77)), fund.ChangePct.String())
		require.Equal(t, "Large Cap", fund.Category)
		require.Equal(t, "Low", fund.RiskLevel)
		require.NotNil(t, fund.AUM)
		require.NotNil(t, fund.ExpenseRatio)
		// under a year of closes, no trailing return
		require.Nil(t, fund.Return1Y)
	})

	t.Run("detail failure degrades gracefully", func(t *testing.T) {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/v7/finance/quote" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			fmt.Fprint(w, chartBody("0P0000XYZ.BO",
				`,"shortName":"Axis Bluechip","regularMarketPrice":52.4`, ``))
		}))
		defer server.Close()

		fund, err := client.GetFundQuote(context.Background(), "0P0000XYZ.BO")
		require.NoError(t, err)
		require.Equal(t, "Axis Bluechip", fund.Name)
		require.Nil(t, fund.AUM)
		require.Nil(t, fund.ExpenseRatio)
	})
}
