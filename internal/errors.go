package nivesh_errors

import (
	"fmt"
)

type ErrInvalidInput struct {
	Reason string
}

func (e ErrInvalidInput) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

type ErrSymbolNotFound struct {
	Symbol string
}

func (e ErrSymbolNotFound) Error() string {
	return fmt.Sprintf("could not resolve a quote for symbol %s", e.Symbol)
}

type ErrPositionNotFound struct {
	Symbol string
}

func (e ErrPositionNotFound) Error() string {
	return fmt.Sprintf("no open position for symbol %s", e.Symbol)
}

type ErrInsufficientQuantity struct {
	Symbol    string
	Held      int64
	Requested int64
}

func (e ErrInsufficientQuantity) Error() string {
	return fmt.Sprintf("cannot sell %d shares of %s, only %d held", e.Requested, e.Symbol, e.Held)
}

type ErrDuplicateSymbol struct {
	Symbol string
}

func (e ErrDuplicateSymbol) Error() string {
	return fmt.Sprintf("%s is already on the watchlist", e.Symbol)
}

// ErrDuplicatePosition is returned when a new-mode buy targets a symbol
// that already has an open position and the ledger policy rejects
// duplicates.
type ErrDuplicatePosition struct {
	Symbol string
}

func (e ErrDuplicatePosition) Error() string {
	return fmt.Sprintf("position already open for %s; use average mode or change the buy policy", e.Symbol)
}

type ErrNotFound struct {
	Kind string
	ID   string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

type ErrInvalidAlert struct {
	Reason string
}

func (e ErrInvalidAlert) Error() string {
	return fmt.Sprintf("invalid alert: %s", e.Reason)
}

// ErrPriceConstraint is returned when an alert describes a condition that
// already holds, e.g. an "above" alert at or under the current price.
type ErrPriceConstraint struct {
	Symbol       string
	Direction    string
	TargetPrice  string
	CurrentPrice string
}

func (e ErrPriceConstraint) Error() string {
	return fmt.Sprintf("%s alert for %s at %s would trigger immediately (current price %s)",
		e.Direction, e.Symbol, e.TargetPrice, e.CurrentPrice)
}

type ErrGatewayUnavailable struct {
	Cause error
}

func (e ErrGatewayUnavailable) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("market data provider unavailable: %s", e.Cause.Error())
	}
	return "market data provider unavailable"
}

func (e ErrGatewayUnavailable) Unwrap() error {
	return e.Cause
}
