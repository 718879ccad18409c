package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"nivesh/api"
	"nivesh/internal/gateway"
	"nivesh/internal/ledger"
	"nivesh/internal/session"
	"nivesh/internal/util"
)

func main() {
	config, err := util.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	marketData := gateway.NewYahooClient()
	marketData.HttpClient = &http.Client{
		Timeout: time.Duration(config.RequestTimeoutMS) * time.Millisecond,
	}
	if config.ProviderBaseURL != "" {
		marketData.BaseURL = config.ProviderBaseURL
	}
	marketData.IPOCalendarURL = config.IPOCalendarURL

	sessions := session.NewStore(time.Duration(config.SessionTTLHours) * time.Hour)
	sessions.StartJanitor(context.Background(), time.Hour)

	ledgerService := ledger.NewService(marketData, ledger.BuyPolicy_Reject)

	server := api.NewServer(marketData, ledgerService, sessions, config)
	if err := api.StartApi(config.Port, server); err != nil {
		log.Fatal(err)
	}
}
