package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestTradeTotalCost(t *testing.T) {
	trade := Trade{
		Side:         TradeSideBuy,
		Quantity:     decimal.NewFromInt(2),
		PricePerUnit: decimal.NewFromInt(100),
		Fees:         decimal.NewFromInt(5),
	}
	require.True(t, trade.TotalCost().Equal(decimal.NewFromInt(205)))
}

func TestHoldingDerivedValues(t *testing.T) {
	h := Holding{
		Quantity:     decimal.NewFromInt(3),
		AverageCost:  decimal.NewFromInt(100),
		CurrentPrice: decimal.NewFromInt(120),
	}
	require.True(t, h.MarketValue().Equal(decimal.NewFromInt(360)))
	require.True(t, h.CostBasis().Equal(decimal.NewFromInt(300)))
	require.True(t, h.UnrealizedGainLoss().Equal(decimal.NewFromInt(60)))
}

func TestApplyTradeBuyReAveragesCost(t *testing.T) {
	h := Holding{
		Quantity:    decimal.NewFromInt(1),
		AverageCost: decimal.NewFromInt(100),
	}
	buy := Trade{
		Side:         TradeSideBuy,
		Quantity:     decimal.NewFromInt(1),
		PricePerUnit: decimal.NewFromInt(200),
	}

	require.NoError(t, h.ApplyTrade(&buy))
	require.True(t, h.Quantity.Equal(decimal.NewFromInt(2)))
	require.True(t, h.AverageCost.Equal(decimal.NewFromInt(150)))
}

func TestApplyTradeSell(t *testing.T) {
	h := Holding{
		Quantity:    decimal.NewFromInt(3),
		AverageCost: decimal.NewFromInt(100),
	}
	sell := Trade{
		Side:         TradeSideSell,
		Quantity:     decimal.NewFromInt(2),
		PricePerUnit: decimal.NewFromInt(150),
	}

	require.NoError(t, h.ApplyTrade(&sell))
	require.True(t, h.Quantity.Equal(decimal.NewFromInt(1)))
	// A sell leaves the average cost untouched.
	require.True(t, h.AverageCost.Equal(decimal.NewFromInt(100)))
}

func TestApplyTradeSellEmptiesPosition(t *testing.T) {
	h := Holding{
		Quantity:    decimal.NewFromInt(2),
		AverageCost: decimal.NewFromInt(100),
	}
	sell := Trade{
		Side:         TradeSideSell,
		Quantity:     decimal.NewFromInt(2),
		PricePerUnit: decimal.NewFromInt(150),
	}

	require.NoError(t, h.ApplyTrade(&sell))
	require.True(t, h.Quantity.IsZero())
	require.True(t, h.AverageCost.IsZero())
}

func TestApplyTradeRejectsOversell(t *testing.T) {
	h := Holding{
		Quantity:    decimal.NewFromInt(1),
		AverageCost: decimal.NewFromInt(100),
	}
	sell := Trade{
		Side:         TradeSideSell,
		Quantity:     decimal.NewFromInt(5),
		PricePerUnit: decimal.NewFromInt(150),
	}

	require.ErrorIs(t, h.ApplyTrade(&sell), ErrInsufficientQuantity)
	require.True(t, h.Quantity.Equal(decimal.NewFromInt(1)))
}

func TestResetPositionAllowsReplay(t *testing.T) {
	h := Holding{
		Quantity:    decimal.NewFromInt(2),
		AverageCost: decimal.NewFromInt(100),
	}
	sell := Trade{
		Side:         TradeSideSell,
		Quantity:     decimal.NewFromInt(2),
		PricePerUnit: decimal.NewFromInt(150),
	}
	buy := Trade{
		Side:         TradeSideBuy,
		Quantity:     decimal.NewFromInt(2),
		PricePerUnit: decimal.NewFromInt(100),
	}

	// Emptying the position erases the basis.
	require.NoError(t, h.ApplyTrade(&sell))
	require.True(t, h.AverageCost.IsZero())

	// Replaying the surviving trades from a clean slate recovers it.
	h.ResetPosition()
	require.NoError(t, h.ApplyTrade(&buy))
	require.True(t, h.Quantity.Equal(decimal.NewFromInt(2)))
	require.True(t, h.AverageCost.Equal(decimal.NewFromInt(100)))
}

func TestUpdatePriceStampsTime(t *testing.T) {
	now := time.Now().UTC()
	h := Holding{CurrentPrice: decimal.NewFromInt(100)}
	h.UpdatePrice(decimal.NewFromInt(110), now)
	require.True(t, h.CurrentPrice.Equal(decimal.NewFromInt(110)))
	require.NotNil(t, h.LastPriceUpdate)
	require.Equal(t, now, *h.LastPriceUpdate)
}
