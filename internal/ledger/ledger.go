package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	nivesh_errors "nivesh/internal"
	"nivesh/internal/domain"
	"nivesh/internal/gateway"

	"github.com/shopspring/decimal"
)

// flat synthetic brokerage fee charged on every buy
var feeRate = decimal.NewFromFloat(0.005)

type BuyMode string

const (
	BuyMode_New     BuyMode = "new"
	BuyMode_Average BuyMode = "average"
)

// BuyPolicy decides what a new-mode buy into an already-held symbol does.
// The default rejects it; AlwaysAverage folds it into the position as if
// average mode had been requested.
type BuyPolicy string

const (
	BuyPolicy_Reject        BuyPolicy = "reject"
	BuyPolicy_AlwaysAverage BuyPolicy = "average"
)

type BuyOrder struct {
	Symbol   string
	Quantity int64
	// explicit limit price; nil means buy at the live market price
	Price *decimal.Decimal
	// nil means today
	Date  *time.Time
	Mode  BuyMode
	Notes string
}

type SellStatus string

const (
	SellStatus_Executed SellStatus = "executed"
	SellStatus_Pending  SellStatus = "pending"
)

type SellResult struct {
	Status SellStatus
	// set only when the sale executed
	Lot               *domain.SoldLot
	RemainingQuantity int64
	CurrentPrice      decimal.Decimal
	TriggerPrice      decimal.Decimal
}

type Service interface {
	Buy(ctx context.Context, st *domain.AccountState, order BuyOrder) (*domain.Position, error)
	Sell(ctx context.Context, st *domain.AccountState, symbol string, quantity int64, triggerPrice decimal.Decimal) (*SellResult, error)

	AddSymbol(ctx context.Context, st *domain.AccountState, symbol string) (string, error)
	RemoveSymbol(st *domain.AccountState, symbol string) error
	ResetWatchlist(st *domain.AccountState)

	AddAlert(ctx context.Context, st *domain.AccountState, symbol string, targetPrice decimal.Decimal, direction domain.AlertDirection) (*domain.Alert, error)
	DeleteAlert(st *domain.AccountState, id string) error
	CheckAlerts(ctx context.Context, st *domain.AccountState) ([]*domain.Alert, error)

	RefreshPositions(ctx context.Context, st *domain.AccountState)
}

type ledgerHandler struct {
	marketData gateway.Client
	policy     BuyPolicy
}

func NewService(marketData gateway.Client, policy BuyPolicy) Service {
	if policy == "" {
		policy = BuyPolicy_Reject
	}
	return &ledgerHandler{marketData: marketData, policy: policy}
}

// NormalizeSymbol uppercases and appends the NSE suffix unless the symbol
// already carries a recognized exchange suffix.
func NormalizeSymbol(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return ""
	}
	if strings.HasSuffix(symbol, ".NS") || strings.HasSuffix(symbol, ".BO") {
		return symbol
	}
	return symbol + ".NS"
}

func (h *ledgerHandler) Buy(ctx context.Context, st *domain.AccountState, order BuyOrder) (*domain.Position, error) {
	if order.Quantity <= 0 {
		return nil, nivesh_errors.ErrInvalidInput{Reason: "quantity must be greater than 0"}
	}
	symbol := NormalizeSymbol(order.Symbol)
	if symbol == "" {
		return nil, nivesh_errors.ErrInvalidInput{Reason: "symbol must not be empty"}
	}
	if order.Mode != BuyMode_New && order.Mode != BuyMode_Average {
		return nil, nivesh_errors.ErrInvalidInput{Reason: "mode must be new or average"}
	}

	date := time.Now()
	if order.Date != nil {
		date = *order.Date
	}

	existing := st.Positions[symbol]

	var quote *gateway.Quote
	needQuote := order.Price == nil || existing == nil
	if needQuote {
		var err error
		quote, err = h.marketData.GetQuote(ctx, symbol)
		if err != nil {
			if existing == nil {
				var gw nivesh_errors.ErrGatewayUnavailable
				if errors.As(err, &gw) {
					return nil, gw
				}
				return nil, nivesh_errors.ErrSymbolNotFound{Symbol: symbol}
			}
			if order.Price == nil {
				return nil, err
			}
			// averaging into a held symbol at an explicit price doesn't
			// need a live quote
			quote = nil
		}
	}

	var price decimal.Decimal
	if order.Price != nil {
		price = order.Price.Round(2)
	} else {
		price = quote.Price
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, nivesh_errors.ErrInvalidInput{Reason: "price must be greater than 0"}
	}

	quantity := decimal.NewFromInt(order.Quantity)
	fee := price.Mul(quantity).Mul(feeRate).Round(2)
	totalCost := price.Mul(quantity).Add(fee)

	tx := domain.Transaction{
		Date:     date,
		Type:     domain.TransactionType_Buy,
		Quantity: order.Quantity,
		Price:    price,
		Cost:     totalCost,
		Notes:    order.Notes,
	}

	if existing != nil {
		if order.Mode == BuyMode_New && h.policy == BuyPolicy_Reject {
			return nil, nivesh_errors.ErrDuplicatePosition{Symbol: symbol}
		}
		// weighted average of the held lot and the new lot
		heldQty := decimal.NewFromInt(existing.Quantity)
		newAvg := heldQty.Mul(existing.AvgBuyPrice).
			Add(quantity.Mul(price)).
			Div(heldQty.Add(quantity)).
			Round(2)
		existing.AvgBuyPrice = newAvg
		existing.Quantity += order.Quantity
		existing.TotalFees = existing.TotalFees.Add(fee)
		existing.LastTxDate = date
		existing.History = append(existing.History, tx)
		if quote != nil {
			existing.CurrentPrice = &quote.Price
		}
		st.Touch()
		return existing, nil
	}

	position := domain.Position{
		Symbol:       symbol,
		Name:         quote.Name,
		Quantity:     order.Quantity,
		AvgBuyPrice:  price,
		CurrentPrice: &quote.Price,
		PurchaseDate: date,
		LastTxDate:   date,
		Sector:       sectorOrUnknown(quote.Sector),
		TotalFees:    fee,
		History:      []domain.Transaction{tx},
	}
	st.Positions[symbol] = &position
	st.Touch()
	return &position, nil
}

func (h *ledgerHandler) Sell(ctx context.Context, st *domain.AccountState, symbol string, quantity int64, triggerPrice decimal.Decimal) (*SellResult, error) {
	symbol = NormalizeSymbol(symbol)
	position, ok := st.Positions[symbol]
	if !ok {
		return nil, nivesh_errors.ErrPositionNotFound{Symbol: symbol}
	}
	if quantity <= 0 {
		return nil, nivesh_errors.ErrInvalidInput{Reason: "quantity must be greater than 0"}
	}
	if quantity > position.Quantity {
		return nil, nivesh_errors.ErrInsufficientQuantity{
			Symbol:    symbol,
			Held:      position.Quantity,
			Requested: quantity,
		}
	}

	quote, err := h.marketData.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	currentPrice := quote.Price

	// an unmet trigger leaves the ledger untouched; once the trigger is
	// met the executed price is still the live market price
	if triggerPrice.GreaterThan(decimal.Zero) && currentPrice.LessThan(triggerPrice) {
		return &SellResult{
			Status:            SellStatus_Pending,
			RemainingQuantity: position.Quantity,
			CurrentPrice:      currentPrice,
			TriggerPrice:      triggerPrice,
		}, nil
	}

	now := time.Now()
	holdingDays := position.HoldingDays(now)
	lot := domain.SoldLot{
		Symbol:      symbol,
		Name:        position.Name,
		Quantity:    quantity,
		BuyPrice:    position.AvgBuyPrice,
		SellPrice:   currentPrice,
		BuyDate:     position.PurchaseDate,
		SellDate:    now,
		HoldingDays: holdingDays,
		TaxCategory: domain.CategoryForHolding(holdingDays),
		RealizedPL:  currentPrice.Sub(position.AvgBuyPrice).Mul(decimal.NewFromInt(quantity)).Round(2),
	}

	position.Quantity -= quantity
	position.CurrentPrice = &currentPrice
	position.LastTxDate = now
	remaining := position.Quantity
	if remaining == 0 {
		delete(st.Positions, symbol)
	}
	st.SoldLots = append(st.SoldLots, lot)
	st.Touch()

	return &SellResult{
		Status:            SellStatus_Executed,
		Lot:               &lot,
		RemainingQuantity: remaining,
		CurrentPrice:      currentPrice,
		TriggerPrice:      triggerPrice,
	}, nil
}

// RefreshPositions re-attaches live prices to every open position in one
// batch. Symbols the provider can't resolve keep their previous price.
func (h *ledgerHandler) RefreshPositions(ctx context.Context, st *domain.AccountState) {
	symbols := st.PositionSymbols()
	if len(symbols) == 0 {
		return
	}
	for _, result := range h.marketData.GetBatchQuotes(ctx, symbols) {
		if result.Err != nil || result.Quote == nil {
			continue
		}
		if position, ok := st.Positions[result.Symbol]; ok {
			price := result.Quote.Price
			position.CurrentPrice = &price
			if position.Sector == "Unknown" && result.Quote.Sector != "" {
				position.Sector = result.Quote.Sector
			}
		}
	}
}

func sectorOrUnknown(sector string) string {
	if sector == "" {
		return "Unknown"
	}
	return sector
}
