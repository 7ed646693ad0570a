package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TradeSide is the direction of a trade
type TradeSide string

// Trade sides
const (
	TradeSideBuy  TradeSide = "buy"
	TradeSideSell TradeSide = "sell"
)

// Holding Model
type Holding struct {
	ID              uuid.UUID       `gorm:"type:char(36);primaryKey"`     // Primary key
	UserID          uuid.UUID       `gorm:"type:char(36);index;not null"` // Owner
	Symbol          string          `gorm:"not null;index"`               // Ticker symbol (BTC, ETH, ...)
	Name            string          // Display name
	Quantity        decimal.Decimal `gorm:"type:decimal(24,8);not null"`  // Units held
	AverageCost     decimal.Decimal `gorm:"type:decimal(18,2);not null"`  // Average acquisition cost per unit
	CurrentPrice    decimal.Decimal `gorm:"type:decimal(18,2);not null"`  // Last known market price per unit
	LastPriceUpdate *time.Time      // Stamped by UpdatePrice
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Trade Model
type Trade struct {
	ID           uuid.UUID       `gorm:"type:char(36);primaryKey"`     // Primary key
	HoldingID    uuid.UUID       `gorm:"type:char(36);index;not null"` // Foreign key to Holding
	Side         TradeSide       `gorm:"type:varchar(8);not null"`     // buy or sell
	Quantity     decimal.Decimal `gorm:"type:decimal(24,8);not null"`  // Units traded, always positive
	PricePerUnit decimal.Decimal `gorm:"type:decimal(18,2);not null"`  // Execution price per unit
	Fees         decimal.Decimal `gorm:"type:decimal(18,2);not null"`  // Broker/exchange fees
	TradedAt     time.Time       `gorm:"not null"`                     // Execution time
	CreatedAt    time.Time
}

// MarketValue is what the position is worth at the current price.
func (h *Holding) MarketValue() decimal.Decimal {
	return h.Quantity.Mul(h.CurrentPrice)
}

// CostBasis is what the position cost to acquire.
func (h *Holding) CostBasis() decimal.Decimal {
	return h.Quantity.Mul(h.AverageCost)
}

// UnrealizedGainLoss is market value minus cost basis.
func (h *Holding) UnrealizedGainLoss() decimal.Decimal {
	return h.MarketValue().Sub(h.CostBasis())
}

// UpdatePrice records a new market price and stamps the update time.
func (h *Holding) UpdatePrice(price decimal.Decimal, now time.Time) {
	h.CurrentPrice = price
	h.LastPriceUpdate = &now
}

// ApplyTrade folds a trade into the position. A buy grows the quantity and
// re-averages the cost over the combined basis; a sell shrinks the quantity
// at an unchanged average cost. Selling more than is held is rejected.
func (h *Holding) ApplyTrade(t *Trade) error {
	switch t.Side {
	case TradeSideSell:
		if t.Quantity.GreaterThan(h.Quantity) {
			return ErrInsufficientQuantity
		}
		h.Quantity = h.Quantity.Sub(t.Quantity)
		if h.Quantity.IsZero() {
			h.AverageCost = decimal.Zero
		}
	default: // buy
		basis := h.CostBasis().Add(t.Quantity.Mul(t.PricePerUnit))
		h.Quantity = h.Quantity.Add(t.Quantity)
		h.AverageCost = basis.Div(h.Quantity)
	}
	return nil
}

// ResetPosition clears the quantity and average cost so the position can be
// rebuilt by replaying trades. Folding is lossy (a sell that empties the
// position erases the basis), so replaying is the only exact way to undo one.
func (h *Holding) ResetPosition() {
	h.Quantity = decimal.Zero
	h.AverageCost = decimal.Zero
}

// TotalCost is quantity times price plus fees.
func (t *Trade) TotalCost() decimal.Decimal {
	return t.Quantity.Mul(t.PricePerUnit).Add(t.Fees)
}
