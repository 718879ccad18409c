package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"nivesh/internal/gateway"
	"nivesh/internal/ledger"
)

// one-shot quote dump for sanity checking the provider from a terminal
func main() {
	symbolsFlag := flag.String("symbols", "RELIANCE,TCS,INFY", "comma separated NSE/BSE symbols")
	flag.Parse()

	symbols := []string{}
	for _, raw := range strings.Split(*symbolsFlag, ",") {
		if symbol := ledger.NormalizeSymbol(raw); symbol != "" {
			symbols = append(symbols, symbol)
		}
	}
	if len(symbols) == 0 {
		log.Fatal("no symbols given")
	}

	client := gateway.NewYahooClient()
	for _, result := range client.GetBatchQuotes(context.Background(), symbols) {
		if result.Err != nil {
			fmt.Printf("%-16s error: %v\n", result.Symbol, result.Err)
			continue
		}
		q := result.Quote
		fmt.Printf("%-16s %10s  %8s (%s%%)  vol %d\n",
			q.Symbol, q.Price.StringFixed(2), q.Change.StringFixed(2), q.ChangePct.StringFixed(2), q.Volume)
	}
}
