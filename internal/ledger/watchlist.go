package ledger

import (
	"context"

	nivesh_errors "nivesh/internal"
	"nivesh/internal/domain"
)

// AddSymbol validates the symbol against the market data provider before
// putting it on the watchlist, so a typo never lands there. Returns the
// normalized symbol that was added.
func (h *ledgerHandler) AddSymbol(ctx context.Context, st *domain.AccountState, symbol string) (string, error) {
	normalized := NormalizeSymbol(symbol)
	if normalized == "" {
		return "", nivesh_errors.ErrInvalidInput{Reason: "symbol must not be empty"}
	}
	for _, existing := range st.Watchlist {
		if existing == normalized {
			return "", nivesh_errors.ErrDuplicateSymbol{Symbol: normalized}
		}
	}
	if _, err := h.marketData.GetQuote(ctx, normalized); err != nil {
		return "", err
	}
	st.Watchlist = append(st.Watchlist, normalized)
	st.Touch()
	return normalized, nil
}

func (h *ledgerHandler) RemoveSymbol(st *domain.AccountState, symbol string) error {
	normalized := NormalizeSymbol(symbol)
	for i, existing := range st.Watchlist {
		if existing == normalized {
			st.Watchlist = append(st.Watchlist[:i], st.Watchlist[i+1:]...)
			st.Touch()
			return nil
		}
	}
	return nivesh_errors.ErrNotFound{Kind: "watchlist symbol", ID: normalized}
}

// ResetWatchlist restores the default list unconditionally.
func (h *ledgerHandler) ResetWatchlist(st *domain.AccountState) {
	st.Watchlist = make([]string, len(domain.DefaultWatchlist))
	copy(st.Watchlist, domain.DefaultWatchlist)
	st.Touch()
}
