package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	nivesh_errors "nivesh/internal"
	"nivesh/internal/domain"
	"nivesh/internal/gateway"
	"nivesh/internal/ledger"
	"nivesh/internal/session"
	"nivesh/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookie = "nivesh_session"

type Server struct {
	marketData gateway.Client
	ledger     ledger.Service
	sessions   *session.Store
	config     util.Config
	schedule   domain.RateSchedule
}

func NewServer(marketData gateway.Client, ledgerService ledger.Service, sessions *session.Store, config util.Config) *Server {
	return &Server{
		marketData: marketData,
		ledger:     ledgerService,
		sessions:   sessions,
		config:     config,
		schedule:   domain.DefaultRateSchedule(),
	}
}

func StartApi(port int, s *Server) error {
	router := s.Router()
	return router.Run(fmt.Sprintf(":%d", port))
}

func (s *Server) Router() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(s.withSession)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, map[string]string{"message": "welcome to nivesh"})
	})

	router.GET("/api/stocks", s.getStocks)
	router.GET("/api/stock_history/:symbol", s.getStockHistory)
	router.GET("/api/mutualfunds", s.getMutualFunds)
	router.GET("/api/ipos", s.getIPOs)

	router.GET("/api/portfolio", s.getPortfolio)
	router.GET("/api/tax_report", s.getTaxReport)
	router.GET("/api/diversification", s.getDiversification)
	router.GET("/api/dividends", s.getDividends)
	router.GET("/api/alerts", s.getAlerts)

	router.POST("/buy_stock", s.buyStock)
	router.POST("/sell_stock", s.sellStock)
	router.POST("/add_stock", s.addStock)
	router.POST("/remove_stock", s.removeStock)
	router.POST("/reset_watchlist", s.resetWatchlist)
	router.POST("/add_alert", s.addAlert)
	router.POST("/delete_alert", s.deleteAlert)
	router.POST("/check_alerts", s.checkAlerts)

	router.GET("/export_portfolio", s.exportPortfolio)
	router.GET("/export_tax_report", s.exportTaxReport)
	router.GET("/export_dividends", s.exportDividends)

	return router
}

// withSession resolves the account from the session cookie, issuing a
// fresh default-seeded account (and cookie) when none exists.
func (s *Server) withSession(c *gin.Context) {
	var account *session.Account
	if raw, err := c.Cookie(sessionCookie); err == nil {
		if id, parseErr := uuid.Parse(raw); parseErr == nil {
			if found, ok := s.sessions.Get(id); ok {
				account = found
			}
		}
	}
	if account == nil {
		id, created := s.sessions.Create()
		c.SetCookie(sessionCookie, id.String(), int((24 * time.Hour).Seconds()), "/", "", false, true)
		account = created
	}
	c.Set("account", account)
	c.Next()
}

func accountFrom(c *gin.Context) *session.Account {
	return c.MustGet("account").(*session.Account)
}

func returnErrorJson(err error, c *gin.Context) {
	log.Println(err.Error())
	c.AbortWithStatusJSON(statusForError(err), gin.H{
		"error": err.Error(),
	})
}

func statusForError(err error) int {
	switch err.(type) {
	case nivesh_errors.ErrInvalidInput, nivesh_errors.ErrInvalidAlert:
		return http.StatusBadRequest
	case nivesh_errors.ErrSymbolNotFound, nivesh_errors.ErrPositionNotFound, nivesh_errors.ErrNotFound:
		return http.StatusNotFound
	case nivesh_errors.ErrDuplicateSymbol, nivesh_errors.ErrDuplicatePosition,
		nivesh_errors.ErrInsufficientQuantity, nivesh_errors.ErrPriceConstraint:
		return http.StatusConflict
	case nivesh_errors.ErrGatewayUnavailable:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
