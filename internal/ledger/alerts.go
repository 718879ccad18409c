package ledger

import (
	"context"
	"time"

	nivesh_errors "nivesh/internal"
	"nivesh/internal/domain"
	"nivesh/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddAlert creates a price alert. An alert has to describe a future
// crossing: an "above" alert priced at or under the market (or a "below"
// alert at or over it) would fire immediately and is rejected.
func (h *ledgerHandler) AddAlert(ctx context.Context, st *domain.AccountState, symbol string, targetPrice decimal.Decimal, direction domain.AlertDirection) (*domain.Alert, error) {
	normalized := NormalizeSymbol(symbol)
	if normalized == "" {
		return nil, nivesh_errors.ErrInvalidAlert{Reason: "symbol must not be empty"}
	}
	if targetPrice.LessThanOrEqual(decimal.Zero) {
		return nil, nivesh_errors.ErrInvalidAlert{Reason: "target price must be greater than 0"}
	}
	if !direction.Valid() {
		return nil, nivesh_errors.ErrInvalidAlert{Reason: "direction must be above or below"}
	}

	quote, err := h.marketData.GetQuote(ctx, normalized)
	if err != nil {
		return nil, err
	}

	violated := (direction == domain.AlertDirection_Above && targetPrice.LessThanOrEqual(quote.Price)) ||
		(direction == domain.AlertDirection_Below && targetPrice.GreaterThanOrEqual(quote.Price))
	if violated {
		return nil, nivesh_errors.ErrPriceConstraint{
			Symbol:       normalized,
			Direction:    string(direction),
			TargetPrice:  targetPrice.StringFixed(2),
			CurrentPrice: quote.Price.StringFixed(2),
		}
	}

	alert := domain.Alert{
		ID:          uuid.New(),
		Symbol:      normalized,
		TargetPrice: targetPrice,
		Direction:   direction,
		CreatedAt:   time.Now(),
	}
	st.Alerts = append(st.Alerts, &alert)
	st.Touch()
	return &alert, nil
}

func (h *ledgerHandler) DeleteAlert(st *domain.AccountState, id string) error {
	alertID, err := uuid.Parse(id)
	if err != nil {
		return nivesh_errors.ErrNotFound{Kind: "alert", ID: id}
	}
	for i, alert := range st.Alerts {
		if alert.ID == alertID {
			st.Alerts = append(st.Alerts[:i], st.Alerts[i+1:]...)
			st.Touch()
			return nil
		}
	}
	return nivesh_errors.ErrNotFound{Kind: "alert", ID: id}
}

// CheckAlerts refetches prices for every distinct alert symbol in one
// batch and flips alerts whose condition now holds. Triggered alerts stay
// on the list. Returns the alerts that flipped on this pass.
func (h *ledgerHandler) CheckAlerts(ctx context.Context, st *domain.AccountState) ([]*domain.Alert, error) {
	symbols := util.NewSet()
	for _, alert := range st.Alerts {
		if !alert.Triggered {
			symbols.Add(alert.Symbol)
		}
	}
	if symbols.Length() == 0 {
		return []*domain.Alert{}, nil
	}

	prices := map[string]decimal.Decimal{}
	for _, result := range h.marketData.GetBatchQuotes(ctx, symbols.List()) {
		if result.Err == nil && result.Quote != nil {
			prices[result.Symbol] = result.Quote.Price
		}
	}

	triggered := []*domain.Alert{}
	now := time.Now()
	for _, alert := range st.Alerts {
		if alert.Triggered {
			continue
		}
		price, ok := prices[alert.Symbol]
		if !ok {
			continue
		}
		if alert.ConditionMet(price) {
			alert.Triggered = true
			alert.TriggeredAt = &now
			triggered = append(triggered, alert)
		}
	}
	if len(triggered) > 0 {
		st.Touch()
	}
	return triggered, nil
}
