package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	nivesh_errors "nivesh/internal"
	"nivesh/internal/domain"
	"nivesh/internal/gateway"
	"nivesh/internal/mocks"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func quote(symbol string, price float64) *gateway.Quote {
	return &gateway.Quote{
		Symbol: symbol,
		Name:   symbol,
		Price:  dec(price),
	}
}

func TestNormalizeSymbol(t *testing.T) {
	require.Equal(t, "INFY.NS", NormalizeSymbol("infy"))
	require.Equal(t, "INFY.NS", NormalizeSymbol(" INFY.NS "))
	require.Equal(t, "TCS.BO", NormalizeSymbol("tcs.bo"))
	require.Equal(t, "", NormalizeSymbol("   "))
}

func TestBuy(t *testing.T) {
	ctx := context.Background()

	t.Run("new position at explicit price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		marketData := mocks.NewMockClient(ctrl)
		marketData.EXPECT().GetQuote(gomock.Any(), "INFY.NS").Return(quote("INFY.NS", 1510), nil)

		st := domain.NewAccountState()
		svc := NewService(marketData, BuyPolicy_Reject)

		price := dec(1500)
		position, err := svc.Buy(ctx, st, BuyOrder{
			Symbol:   "INFY",
			Quantity: 10,
			Price:    &price,
			Mode:     BuyMode_New,
			Notes:    "initial lot",
		})
		require.NoError(t, err)

		require.Equal(t, "INFY.NS", position.Symbol)
		require.Equal(t, int64(10), position.Quantity)
		require.True(t, position.AvgBuyPrice.Equal(dec(1500)))
		// 0.5% of 15000
		require.True(t, position.TotalFees.Equal(dec(75)))
		require.Len(t, position.History, 1)
		require.True(t, position.History[0].Cost.Equal(dec(15075)))
		require.Equal(t, "initial lot", position.History[0].Notes)
	})

	t.Run("average mode blends the price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		marketData := mocks.NewMockClient(ctrl)
		marketData.EXPECT().GetQuote(gomock.Any(), "TCS.NS").Return(quote("TCS.NS", 3000), nil)

		st := domain.NewAccountState()
		svc := NewService(marketData, BuyPolicy_Reject)

		p1 := dec(3000)
		_, err := svc.Buy(ctx, st, BuyOrder{Symbol: "TCS", Quantity: 5, Price: &p1, Mode: BuyMode_New})
		require.NoError(t, err)

		p2 := dec(3400)
		position, err := svc.Buy(ctx, st, BuyOrder{Symbol: "TCS", Quantity: 5, Price: &p2, Mode: BuyMode_Average})
		require.NoError(t, err)

		require.Equal(t, int64(10), position.Quantity)
		require.True(t, position.AvgBuyPrice.Equal(dec(3200)), position.AvgBuyPrice.String())
		require.Len(t, position.History, 2)
	})

	t.Run("market price fetched when no explicit price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		marketData := mocks.NewMockClient(ctrl)
		marketData.EXPECT().GetQuote(gomock.Any(), "SBIN.NS").Return(&gateway.Quote{
			Symbol: "SBIN.NS",
			Name:   "State Bank of India",
			Price:  dec(612.35),
			Sector: "Financial Services",
		}, nil)

		st := domain.NewAccountState()
		svc := NewService(marketData, BuyPolicy_Reject)

		position, err := svc.Buy(ctx, st, BuyOrder{Symbol: "sbin", Quantity: 3, Mode: BuyMode_New})
		require.NoError(t, err)
		require.True(t, position.AvgBuyPrice.Equal(dec(612.35)))
		require.Equal(t, "Financial Services", position.Sector)
		require.Equal(t, "State Bank of India", position.Name)
	})

	t.Run("new mode into held symbol rejected by default", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		marketData := mocks.NewMockClient(ctrl)
		marketData.EXPECT().GetQuote(gomock.Any(), "INFY.NS").Return(quote("INFY.NS", 1500), nil)

		st := domain.NewAccountState()
		svc := NewService(marketData, BuyPolicy_Reject)

		price := dec(1500)
		_, err := svc.Buy(ctx, st, BuyOrder{Symbol: "INFY", Quantity: 10, Price: &price, Mode: BuyMode_New})
		require.NoError(t, err)

		_, err = svc.Buy(ctx, st, BuyOrder{Symbol: "INFY", Quantity: 5, Price: &price, Mode: BuyMode_New})
		require.True(t, errors.As(err, &nivesh_errors.ErrDuplicatePosition{}), err)
		require.Equal(t, int64(10), st.Positions["INFY.NS"].Quantity)
	})

	t.Run("always-average policy folds a new-mode buy in", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		marketData := mocks.NewMockClient(ctrl)
		marketData.EXPECT().GetQuote(gomock.Any(), "INFY.NS").Return(quote("INFY.NS", 1500), nil)

		st := domain.NewAccountState()
		svc := NewService(marketData, BuyPolicy_AlwaysAverage)

		p1 := dec(100)
		_, err := svc.Buy(ctx, st, BuyOrder{Symbol: "INFY", Quantity: 1, Price: &p1, Mode: BuyMode_New})
		require.NoError(t, err)

		p2 := dec(200)
		position, err := svc.Buy(ctx, st, BuyOrder{Symbol: "INFY", Quantity: 1, Price: &p2, Mode: BuyMode_New})
		require.NoError(t, err)
		require.True(t, position.AvgBuyPrice.Equal(dec(150)))
	})

	t.Run("invalid inputs", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		marketData := mocks.NewMockClient(ctrl)

		st := domain.NewAccountState()
		svc := NewService(marketData, BuyPolicy_Reject)

		_, err := svc.Buy(ctx, st, BuyOrder{Symbol: "INFY", Quantity: 0, Mode: BuyMode_New})
		require.True(t, errors.As(err, &nivesh_errors.ErrInvalidInput{}), err)

		_, err = svc.Buy(ctx, st, BuyOrder{Symbol: "  ", Quantity: 1, Mode: BuyMode_New})
		require.True(t, errors.As(err, &nivesh_errors.ErrInvalidInput{}), err)
	})

	t.Run("unresolvable symbol for new position", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		marketData := mocks.NewMockClient(ctrl)
		marketData.EXPECT().GetQuote(gomock.Any(), "NOPE.NS").
			Return(nil, nivesh_errors.ErrSymbolNotFound{Symbol: "NOPE.NS"})

		st := domain.NewAccountState()
		svc := NewService(marketData, BuyPolicy_Reject)

		_, err := svc.Buy(ctx, st, BuyOrder{Symbol: "NOPE", Quantity: 1, Mode: BuyMode_New})
		require.True(t, errors.As(err, &nivesh_errors.ErrSymbolNotFound{}), err)
		require.Empty(t, st.Positions)
	})
}

func TestSell(t *testing.T) {
	ctx := context.Background()

	seedPosition := func(st *domain.AccountState, symbol string, quantity int64, avgPrice float64, purchased time.Time) {
		st.Positions[symbol] = &domain.Position{
			Symbol:       symbol,
			Name:         symbol,
			Quantity:     quantity,
			AvgBuyPrice:  dec(avgPrice),
			PurchaseDate: purchased,
			LastTxDate:   purchased,
			Sector:       "Unknown",
			History: []domain.Transaction{
				{Date: purchased, Type: domain.TransactionType_Buy, Quantity: quantity, Price: dec(avgPrice)},
			},
		}
	}

	t.Run("partial sell realizes P/L against the blended average", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		marketData := mocks.NewMockClient(ctrl)
		marketData.EXPECT().GetQuote(gomock.Any(), "INFY.NS").Return(quote("INFY.NS", 1600), nil)

		st := domain.NewAccountState()
		seedPosition(st, "INFY.NS", 10, 1500, time.Now().AddDate(0, -2, 0))
		svc := NewService(marketData, BuyPolicy_Reject)

		result, err := svc.Sell(ctx, st, "INFY", 4, decimal.Zero)
		require.NoError(t, err)
		require.Equal(t, SellStatus_Executed, result.Status)
		require.True(t, result.Lot.RealizedPL.Equal(dec(400)), result.Lot.RealizedPL.String())
		require.Equal(t, domain.TaxCategory_ShortTerm, result.Lot.TaxCategory)
		require.Equal(t, int64(6), result.RemainingQuantity)
		require.Equal(t, int64(6), st.Positions["INFY.NS"].Quantity)
		require.Len(t, st.SoldLots, 1)
	})

	t.Run("selling everything removes the position", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		marketData := mocks.NewMockClient(ctrl)
		marketData.EXPECT().GetQuote(gomock.Any(), "TCS.NS").Return(quote("TCS.NS", 3500), nil)

		st := domain.NewAccountState()
		seedPosition(st, "TCS.NS", 5, 3000, time.Now().AddDate(-2, 0, 0))
		svc := NewService(marketData, BuyPolicy_Reject)

		result, err := svc.Sell(ctx, st, "TCS", 5, decimal.Zero)
		require.NoError(t, err)
		require.Equal(t, int64(0), result.RemainingQuantity)
		require.NotContains(t, st.Positions, "TCS.NS")
		require.Equal(t, domain.TaxCategory_LongTerm, result.Lot.TaxCategory)
	})

	t.Run("unmet trigger returns pending and mutates nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		marketData := mocks.NewMockClient(ctrl)
		marketData.EXPECT().GetQuote(gomock.Any(), "INFY.NS").Return(quote("INFY.NS", 1550), nil)

		st := domain.NewAccountState()
		seedPosition(st, "INFY.NS", 10, 1500, time.Now().AddDate(0, -1, 0))
		svc := NewService(marketData, BuyPolicy_Reject)

		result, err := svc.Sell(ctx, st, "INFY", 4, dec(1600))
		require.NoError(t, err)
		require.Equal(t, SellStatus_Pending, result.Status)
		require.Nil(t, result.Lot)
		require.Equal(t, int64(10), st.Positions["INFY.NS"].Quantity)
		require.Empty(t, st.SoldLots)
	})

	t.Run("met trigger executes at the market price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		marketData := mocks.NewMockClient(ctrl)
		marketData.EXPECT().GetQuote(gomock.Any(), "INFY.NS").Return(quote("INFY.NS", 1650), nil)

		st := domain.NewAccountState()
		seedPosition(st, "INFY.NS", 10, 1500, time.Now().AddDate(0, -1, 0))
		svc := NewService(marketData, BuyPolicy_Reject)

		result, err := svc.Sell(ctx, st, "INFY", 2, dec(1600))
		require.NoError(t, err)
		require.Equal(t, SellStatus_Executed, result.Status)
		// executed at 1650, not at the 1600 trigger
		require.True(t, result.Lot.SellPrice.Equal(dec(1650)))
	})

	t.Run("preconditions", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		marketData := mocks.NewMockClient(ctrl)

		st := domain.NewAccountState()
		seedPosition(st, "INFY.NS", 3, 1500, time.Now())
		svc := NewService(marketData, BuyPolicy_Reject)

		_, err := svc.Sell(ctx, st, "TCS", 1, decimal.Zero)
		require.True(t, errors.As(err, &nivesh_errors.ErrPositionNotFound{}), err)

		_, err = svc.Sell(ctx, st, "INFY", 4, decimal.Zero)
		require.True(t, errors.As(err, &nivesh_errors.ErrInsufficientQuantity{}), err)
	})

	t.Run("history quantities reconcile with holdings plus sales", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		marketData := mocks.NewMockClient(ctrl)
		marketData.EXPECT().GetQuote(gomock.Any(), "INFY.NS").Return(quote("INFY.NS", 1600), nil).Times(3)

		st := domain.NewAccountState()
		svc := NewService(marketData, BuyPolicy_Reject)

		p := dec(1500)
		_, err := svc.Buy(ctx, st, BuyOrder{Symbol: "INFY", Quantity: 10, Price: &p, Mode: BuyMode_New})
		require.NoError(t, err)
		_, err = svc.Buy(ctx, st, BuyOrder{Symbol: "INFY", Quantity: 6, Price: &p, Mode: BuyMode_Average})
		require.NoError(t, err)

		_, err = svc.Sell(ctx, st, "INFY", 5, decimal.Zero)
		require.NoError(t, err)
		_, err = svc.Sell(ctx, st, "INFY", 2, decimal.Zero)
		require.NoError(t, err)

		var bought int64
		for _, tx := range st.Positions["INFY.NS"].History {
			bought += tx.Quantity
		}
		var sold int64
		for _, lot := range st.SoldLots {
			sold += lot.Quantity
		}
		require.Equal(t, bought, st.Positions["INFY.NS"].Quantity+sold)
	})
}

func TestRefreshPositions(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	marketData := mocks.NewMockClient(ctrl)
	marketData.EXPECT().GetBatchQuotes(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, symbols []string) []gateway.BatchQuote {
			require.ElementsMatch(t, []string{"INFY.NS", "TCS.NS"}, symbols)
			return []gateway.BatchQuote{
				{Symbol: "INFY.NS", Quote: quote("INFY.NS", 1625.5)},
				{Symbol: "TCS.NS", Err: nivesh_errors.ErrGatewayUnavailable{}},
			}
		})

	st := domain.NewAccountState()
	st.Positions["INFY.NS"] = &domain.Position{Symbol: "INFY.NS", Quantity: 1, AvgBuyPrice: dec(1500), Sector: "Unknown"}
	st.Positions["TCS.NS"] = &domain.Position{Symbol: "TCS.NS", Quantity: 1, AvgBuyPrice: dec(3000), Sector: "Unknown"}

	svc := NewService(marketData, BuyPolicy_Reject)
	svc.RefreshPositions(ctx, st)

	require.NotNil(t, st.Positions["INFY.NS"].CurrentPrice)
	require.True(t, st.Positions["INFY.NS"].CurrentPrice.Equal(dec(1625.5)))
	require.Nil(t, st.Positions["TCS.NS"].CurrentPrice)
}
