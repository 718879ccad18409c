package api

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"nivesh/internal/domain"
	"nivesh/internal/reporting"
	"nivesh/internal/tax"

	"github.com/gin-gonic/gin"
)

func (s *Server) exportPortfolio(c *gin.Context) {
	account := accountFrom(c)
	var buf bytes.Buffer
	err := account.WithLock(func(st *domain.AccountState) error {
		s.ledger.RefreshPositions(c.Request.Context(), st)
		return reporting.WritePortfolioCSV(&buf, st)
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	sendCSV(c, "portfolio", buf.Bytes())
}

func (s *Server) exportTaxReport(c *gin.Context) {
	st := accountFrom(c).Snapshot()
	report := tax.Compute(st.SoldLots, s.schedule)

	var buf bytes.Buffer
	if err := reporting.WriteTaxReportCSV(&buf, st.SoldLots, report); err != nil {
		returnErrorJson(err, c)
		return
	}
	sendCSV(c, "tax_report", buf.Bytes())
}

func (s *Server) exportDividends(c *gin.Context) {
	account := accountFrom(c)
	var buf bytes.Buffer
	err := account.WithLock(func(st *domain.AccountState) error {
		s.ledger.RefreshPositions(c.Request.Context(), st)
		yields := reporting.DividendYields(c.Request.Context(), s.marketData, st)
		return reporting.WriteDividendsCSV(&buf, yields)
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	sendCSV(c, "dividends", buf.Bytes())
}

func sendCSV(c *gin.Context, name string, body []byte) {
	filename := fmt.Sprintf("%s_%s.csv", name, time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv", body)
}
