package api

import (
	"net/http"
	"time"

	types "nivesh/api-types"
	nivesh_errors "nivesh/internal"
	"nivesh/internal/domain"
	"nivesh/internal/ledger"
	"nivesh/internal/reporting"
	"nivesh/internal/tax"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const txDateLayout = "2006-01-02"

func (s *Server) buyStock(c *gin.Context) {
	var req types.BuyRequest
	if err := c.ShouldBind(&req); err != nil {
		returnErrorJson(nivesh_errors.ErrInvalidInput{Reason: err.Error()}, c)
		return
	}

	order := ledger.BuyOrder{
		Symbol:   req.Stock,
		Quantity: req.Quantity,
		Mode:     ledger.BuyMode_New,
		Notes:    req.Notes,
	}
	if req.TransactionType == string(ledger.BuyMode_Average) {
		order.Mode = ledger.BuyMode_Average
	}
	if req.BuyPrice != "" {
		price, err := decimal.NewFromString(req.BuyPrice)
		if err != nil {
			returnErrorJson(nivesh_errors.ErrInvalidInput{Reason: "buy_price must be a number"}, c)
			return
		}
		order.Price = &price
	}
	if req.TransactionDate != "" {
		date, err := time.Parse(txDateLayout, req.TransactionDate)
		if err != nil {
			returnErrorJson(nivesh_errors.ErrInvalidInput{Reason: "transaction_date must be YYYY-MM-DD"}, c)
			return
		}
		order.Date = &date
	}

	account := accountFrom(c)
	var position *domain.Position
	err := account.WithLock(func(st *domain.AccountState) error {
		var buyErr error
		position, buyErr = s.ledger.Buy(c.Request.Context(), st, order)
		return buyErr
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(http.StatusOK, types.NewEnvelope(position))
}

func (s *Server) sellStock(c *gin.Context) {
	var req types.SellRequest
	if err := c.ShouldBind(&req); err != nil {
		returnErrorJson(nivesh_errors.ErrInvalidInput{Reason: err.Error()}, c)
		return
	}

	triggerPrice := decimal.Zero
	if req.TriggerPrice != "" {
		parsed, err := decimal.NewFromString(req.TriggerPrice)
		if err != nil {
			returnErrorJson(nivesh_errors.ErrInvalidInput{Reason: "trigger_price must be a number"}, c)
			return
		}
		triggerPrice = parsed
	}

	account := accountFrom(c)
	var result *ledger.SellResult
	err := account.WithLock(func(st *domain.AccountState) error {
		var sellErr error
		result, sellErr = s.ledger.Sell(c.Request.Context(), st, req.Stock, req.Quantity, triggerPrice)
		return sellErr
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	envelope := types.NewEnvelope(result)
	if result.Status == ledger.SellStatus_Pending {
		envelope.Message = "order not filled: current price below trigger price"
	}
	c.JSON(http.StatusOK, envelope)
}

func (s *Server) addStock(c *gin.Context) {
	var req types.WatchlistRequest
	if err := c.ShouldBind(&req); err != nil {
		returnErrorJson(nivesh_errors.ErrInvalidInput{Reason: err.Error()}, c)
		return
	}
	account := accountFrom(c)
	var added string
	err := account.WithLock(func(st *domain.AccountState) error {
		var addErr error
		added, addErr = s.ledger.AddSymbol(c.Request.Context(), st, req.Stock)
		return addErr
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(http.StatusOK, types.NewEnvelope(gin.H{"added": added}))
}

func (s *Server) removeStock(c *gin.Context) {
	var req types.WatchlistRequest
	if err := c.ShouldBind(&req); err != nil {
		returnErrorJson(nivesh_errors.ErrInvalidInput{Reason: err.Error()}, c)
		return
	}
	account := accountFrom(c)
	err := account.WithLock(func(st *domain.AccountState) error {
		return s.ledger.RemoveSymbol(st, req.Stock)
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(http.StatusOK, types.NewEnvelope(gin.H{"removed": ledger.NormalizeSymbol(req.Stock)}))
}

func (s *Server) resetWatchlist(c *gin.Context) {
	account := accountFrom(c)
	var watchlist []string
	_ = account.WithLock(func(st *domain.AccountState) error {
		s.ledger.ResetWatchlist(st)
		watchlist = append([]string{}, st.Watchlist...)
		return nil
	})
	c.JSON(http.StatusOK, types.NewEnvelope(watchlist))
}

func (s *Server) getPortfolio(c *gin.Context) {
	account := accountFrom(c)
	var positions []*domain.Position
	var metrics reporting.PortfolioMetrics
	_ = account.WithLock(func(st *domain.AccountState) error {
		s.ledger.RefreshPositions(c.Request.Context(), st)
		for _, p := range st.Positions {
			positions = append(positions, p.DeepCopy())
		}
		metrics = reporting.Metrics(st)
		return nil
	})

	envelope := types.NewEnvelope(positions)
	envelope.Metrics = metrics
	c.JSON(http.StatusOK, envelope)
}

func (s *Server) getTaxReport(c *gin.Context) {
	st := accountFrom(c).Snapshot()
	report := tax.Compute(st.SoldLots, s.schedule)
	envelope := types.NewEnvelope(st.SoldLots)
	envelope.Metrics = report
	c.JSON(http.StatusOK, envelope)
}

func (s *Server) getDiversification(c *gin.Context) {
	account := accountFrom(c)
	var report reporting.DiversificationReport
	_ = account.WithLock(func(st *domain.AccountState) error {
		s.ledger.RefreshPositions(c.Request.Context(), st)
		report = reporting.Diversification(st)
		return nil
	})
	c.JSON(http.StatusOK, types.NewEnvelope(report))
}

func (s *Server) getDividends(c *gin.Context) {
	account := accountFrom(c)
	var yields []reporting.DividendYield
	_ = account.WithLock(func(st *domain.AccountState) error {
		s.ledger.RefreshPositions(c.Request.Context(), st)
		yields = reporting.DividendYields(c.Request.Context(), s.marketData, st)
		return nil
	})
	c.JSON(http.StatusOK, types.NewEnvelope(yields))
}

func (s *Server) getAlerts(c *gin.Context) {
	st := accountFrom(c).Snapshot()
	c.JSON(http.StatusOK, types.NewEnvelope(st.Alerts))
}

func (s *Server) addAlert(c *gin.Context) {
	var req types.AlertRequest
	if err := c.ShouldBind(&req); err != nil {
		returnErrorJson(nivesh_errors.ErrInvalidAlert{Reason: "price and direction are required"}, c)
		return
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		returnErrorJson(nivesh_errors.ErrInvalidAlert{Reason: "price must be a number"}, c)
		return
	}

	account := accountFrom(c)
	var alert *domain.Alert
	err = account.WithLock(func(st *domain.AccountState) error {
		var addErr error
		alert, addErr = s.ledger.AddAlert(c.Request.Context(), st, req.Symbol, price, domain.AlertDirection(req.AlertType))
		return addErr
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(http.StatusOK, types.NewEnvelope(alert))
}

func (s *Server) deleteAlert(c *gin.Context) {
	var req types.DeleteAlertRequest
	if err := c.ShouldBind(&req); err != nil {
		returnErrorJson(nivesh_errors.ErrInvalidInput{Reason: err.Error()}, c)
		return
	}
	account := accountFrom(c)
	err := account.WithLock(func(st *domain.AccountState) error {
		return s.ledger.DeleteAlert(st, req.ID)
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(http.StatusOK, types.NewEnvelope(gin.H{"deleted": req.ID}))
}

func (s *Server) checkAlerts(c *gin.Context) {
	account := accountFrom(c)
	var triggered []*domain.Alert
	err := account.WithLock(func(st *domain.AccountState) error {
		var checkErr error
		triggered, checkErr = s.ledger.CheckAlerts(c.Request.Context(), st)
		return checkErr
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(http.StatusOK, types.NewEnvelope(triggered))
}
