package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultWatchlist seeds every new account. NSE large caps, same set the
// dashboard shipped with.
var DefaultWatchlist = []string{
	"RELIANCE.NS",
	"TCS.NS",
	"HDFCBANK.NS",
	"INFY.NS",
	"BAJFINANCE.NS",
	"SBIN.NS",
	"ICICIBANK.NS",
	"HINDUNILVR.NS",
	"ADANIENT.NS",
	"TATAMOTORS.NS",
}

// AccountState is the single aggregate holding everything a session owns:
// watchlist, open positions, sold-lot history, alerts and the dividend
// cache. All mutation goes through the ledger; nothing else owns entities.
type AccountState struct {
	Watchlist []string             `json:"watchlist"`
	Positions map[string]*Position `json:"positions"`
	SoldLots  []SoldLot            `json:"soldLots"`
	Alerts    []*Alert             `json:"alerts"`

	// Dividends fetched per symbol, keyed by normalized symbol. Transient
	// convenience data, safe to drop at any time.
	DividendCache map[string][]Dividend `json:"dividendCache,omitempty"`

	CreatedAt  time.Time `json:"createdAt"`
	LastAction time.Time `json:"lastAction"`
}

// NewAccountState is the one place account defaults are initialized.
func NewAccountState() *AccountState {
	now := time.Now()
	watchlist := make([]string, len(DefaultWatchlist))
	copy(watchlist, DefaultWatchlist)
	return &AccountState{
		Watchlist:     watchlist,
		Positions:     map[string]*Position{},
		SoldLots:      []SoldLot{},
		Alerts:        []*Alert{},
		DividendCache: map[string][]Dividend{},
		CreatedAt:     now,
		LastAction:    now,
	}
}

func (a *AccountState) DeepCopy() *AccountState {
	out := AccountState{
		Watchlist:     make([]string, len(a.Watchlist)),
		Positions:     map[string]*Position{},
		SoldLots:      make([]SoldLot, len(a.SoldLots)),
		Alerts:        make([]*Alert, 0, len(a.Alerts)),
		DividendCache: map[string][]Dividend{},
		CreatedAt:     a.CreatedAt,
		LastAction:    a.LastAction,
	}
	copy(out.Watchlist, a.Watchlist)
	copy(out.SoldLots, a.SoldLots)
	for symbol, p := range a.Positions {
		out.Positions[symbol] = p.DeepCopy()
	}
	for _, alert := range a.Alerts {
		c := *alert
		if alert.TriggeredAt != nil {
			t := *alert.TriggeredAt
			c.TriggeredAt = &t
		}
		out.Alerts = append(out.Alerts, &c)
	}
	for symbol, divs := range a.DividendCache {
		d := make([]Dividend, len(divs))
		copy(d, divs)
		out.DividendCache[symbol] = d
	}
	return &out
}

func (a *AccountState) PositionSymbols() []string {
	symbols := []string{}
	for s := range a.Positions {
		symbols = append(symbols, s)
	}
	return symbols
}

func (a *AccountState) FindAlert(id uuid.UUID) *Alert {
	for _, alert := range a.Alerts {
		if alert.ID == id {
			return alert
		}
	}
	return nil
}

func (a *AccountState) Touch() {
	a.LastAction = time.Now()
}
