package api

import (
	"net/http"
	"strings"
	"time"

	types "nivesh/api-types"
	"nivesh/internal/gateway"
	"nivesh/internal/ledger"

	"github.com/gin-gonic/gin"
)

// pause between sequential fund fetches so the provider doesn't throttle
const fundFetchDelay = 500 * time.Millisecond

func (s *Server) getStocks(c *gin.Context) {
	account := accountFrom(c)

	var symbols []string
	if param := c.Query("stocks"); param != "" {
		for _, raw := range strings.Split(param, ",") {
			if symbol := ledger.NormalizeSymbol(raw); symbol != "" {
				symbols = append(symbols, symbol)
			}
		}
	} else {
		symbols = account.Snapshot().Watchlist
	}

	rows := []types.StockRow{}
	failed := 0
	for _, result := range s.marketData.GetBatchQuotes(c.Request.Context(), symbols) {
		if result.Err != nil {
			failed++
		}
		rows = append(rows, types.StockRowFromBatch(result))
	}

	envelope := types.NewEnvelope(rows)
	if failed == len(symbols) && failed > 0 {
		envelope.Message = "market data provider unavailable"
	}
	c.JSON(http.StatusOK, envelope)
}

func (s *Server) getStockHistory(c *gin.Context) {
	symbol := ledger.NormalizeSymbol(c.Param("symbol"))
	period := c.DefaultQuery("period", "1y")

	bars, err := s.marketData.GetHistory(c.Request.Context(), symbol, period)
	if err != nil {
		s.degradeOrFail(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewEnvelope(bars))
}

func (s *Server) getMutualFunds(c *gin.Context) {
	funds := s.config.DefaultFunds
	if param := c.Query("funds"); param != "" {
		funds = strings.Split(param, ",")
	}

	quotes := []gateway.FundQuote{}
	for i, fund := range funds {
		if i > 0 {
			time.Sleep(fundFetchDelay)
		}
		quote, err := s.marketData.GetFundQuote(c.Request.Context(), strings.TrimSpace(fund))
		if err != nil {
			continue
		}
		quotes = append(quotes, *quote)
	}

	envelope := types.NewEnvelope(quotes)
	if len(quotes) == 0 && len(funds) > 0 {
		envelope.Message = "no mutual fund data retrieved"
	}
	c.JSON(http.StatusOK, envelope)
}

func (s *Server) getIPOs(c *gin.Context) {
	ipos, err := s.marketData.GetUpcomingIPOs(c.Request.Context())
	if err != nil {
		s.degradeOrFail(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewEnvelope(ipos))
}

// degradeOrFail turns provider outages on read endpoints into an empty
// 200 payload with a message; anything else surfaces as a real error.
func (s *Server) degradeOrFail(c *gin.Context, err error) {
	if status := statusForError(err); status == http.StatusBadGateway {
		envelope := types.NewEnvelope([]struct{}{})
		envelope.Message = "market data provider unavailable"
		c.JSON(http.StatusOK, envelope)
		return
	}
	returnErrorJson(err, c)
}
