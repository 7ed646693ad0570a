package service

import (
	"context"
	"errors"
	"time"

	"lifehub/internal/domain"
	"lifehub/internal/events"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PortfolioService executes holding and trade commands and queries. Trade
// mutations fold into the parent holding's quantity and average cost inside
// the same transaction, the tax-lot accumulation the portfolio carries.
type PortfolioService struct {
	db     *gorm.DB
	notify *events.Publisher
}

// NewPortfolioService returns a service bound to the given database.
func NewPortfolioService(db *gorm.DB, notify *events.Publisher) *PortfolioService {
	return &PortfolioService{db: db, notify: notify}
}

// HoldingDTO is the flat projection of a holding plus its derived values.
type HoldingDTO struct {
	ID                 uuid.UUID       `json:"id"`
	UserID             uuid.UUID       `json:"user_id"`
	Symbol             string          `json:"symbol"`
	Name               string          `json:"name"`
	Quantity           decimal.Decimal `json:"quantity"`
	AverageCost        decimal.Decimal `json:"average_cost"`
	CurrentPrice       decimal.Decimal `json:"current_price"`
	MarketValue        decimal.Decimal `json:"market_value"`
	CostBasis          decimal.Decimal `json:"cost_basis"`
	UnrealizedGainLoss decimal.Decimal `json:"unrealized_gain_loss"`
	LastPriceUpdate    *time.Time      `json:"last_price_update,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// TradeDTO is the flat projection of a trade plus its total cost.
type TradeDTO struct {
	ID           uuid.UUID       `json:"id"`
	HoldingID    uuid.UUID       `json:"holding_id"`
	Side         domain.TradeSide `json:"side"`
	Quantity     decimal.Decimal `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Fees         decimal.Decimal `json:"fees"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	TradedAt     time.Time       `json:"traded_at"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CreateHoldingInput carries the fields for a new holding.
type CreateHoldingInput struct {
	UserID       uuid.UUID       `json:"user_id" binding:"required"`
	Symbol       string          `json:"symbol" binding:"required"`
	Name         string          `json:"name"`
	CurrentPrice decimal.Decimal `json:"current_price"`
}

// UpdateHoldingInput replaces the holding's descriptive fields. Quantity and
// average cost are owned by trade commands and are not writable here.
type UpdateHoldingInput struct {
	ID     uuid.UUID `json:"id"` // Optional; must match the path id when present
	Symbol string    `json:"symbol" binding:"required"`
	Name   string    `json:"name"`
}

// TradeInput carries the fields for a new or replacement trade.
type TradeInput struct {
	Side         domain.TradeSide `json:"side" binding:"required,oneof=buy sell"`
	Quantity     decimal.Decimal  `json:"quantity" binding:"required"`
	PricePerUnit decimal.Decimal  `json:"price_per_unit" binding:"required"`
	Fees         decimal.Decimal  `json:"fees"`
	TradedAt     *time.Time       `json:"traded_at"`
}

// CreateHolding inserts a new, empty position.
func (s *PortfolioService) CreateHolding(ctx context.Context, in CreateHoldingInput) (HoldingDTO, error) {
	holding := domain.Holding{
		ID:           uuid.New(),
		UserID:       in.UserID,
		Symbol:       in.Symbol,
		Name:         in.Name,
		Quantity:     decimal.Zero,
		AverageCost:  decimal.Zero,
		CurrentPrice: in.CurrentPrice,
	}
	if err := s.db.WithContext(ctx).Create(&holding).Error; err != nil {
		return HoldingDTO{}, err
	}
	return toHoldingDTO(holding), nil
}

// GetHolding returns the holding DTO or ErrNotFound.
func (s *PortfolioService) GetHolding(ctx context.Context, id uuid.UUID) (HoldingDTO, error) {
	holding, err := s.loadHolding(ctx, s.db, id)
	if err != nil {
		return HoldingDTO{}, err
	}
	return toHoldingDTO(*holding), nil
}

// ListHoldings returns the owner's holdings ordered by symbol.
func (s *PortfolioService) ListHoldings(ctx context.Context, userID uuid.UUID) ([]HoldingDTO, error) {
	var holdings []domain.Holding
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("symbol asc").
		Find(&holdings).Error; err != nil {
		return nil, err
	}
	dtos := make([]HoldingDTO, len(holdings))
	for i, h := range holdings {
		dtos[i] = toHoldingDTO(h)
	}
	return dtos, nil
}

// UpdateHolding overwrites the holding's descriptive fields.
func (s *PortfolioService) UpdateHolding(ctx context.Context, id uuid.UUID, in UpdateHoldingInput) (HoldingDTO, error) {
	holding, err := s.loadHolding(ctx, s.db, id)
	if err != nil {
		return HoldingDTO{}, err
	}
	holding.Symbol = in.Symbol
	holding.Name = in.Name
	if err := s.db.WithContext(ctx).Save(holding).Error; err != nil {
		return HoldingDTO{}, err
	}
	return toHoldingDTO(*holding), nil
}

// UpdatePrice records a new market price through the entity's named method.
func (s *PortfolioService) UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) (HoldingDTO, error) {
	holding, err := s.loadHolding(ctx, s.db, id)
	if err != nil {
		return HoldingDTO{}, err
	}
	holding.UpdatePrice(price, time.Now().UTC())
	if err := s.db.WithContext(ctx).Save(holding).Error; err != nil {
		return HoldingDTO{}, err
	}
	return toHoldingDTO(*holding), nil
}

// DeleteHolding hard-deletes the holding and its trades.
func (s *PortfolioService) DeleteHolding(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Holding{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.Delete(&domain.Trade{}, "holding_id = ?", id).Error
	})
}

// CreateTrade inserts a trade and folds it into the parent holding; one
// commit persists both changes. The holding is returned as it stands after
// the fold so callers can invalidate cached reads without a second load.
func (s *PortfolioService) CreateTrade(ctx context.Context, holdingID uuid.UUID, in TradeInput) (TradeDTO, HoldingDTO, error) {
	trade := newTrade(holdingID, in)
	var result domain.Holding
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		holding, err := s.loadHolding(ctx, tx, holdingID)
		if err != nil {
			return err
		}
		if err := holding.ApplyTrade(&trade); err != nil {
			return err
		}
		if err := tx.Save(holding).Error; err != nil {
			return err
		}
		result = *holding
		return tx.Create(&trade).Error
	})
	if err != nil {
		return TradeDTO{}, HoldingDTO{}, err
	}
	s.notify.Notify(ctx, events.ChannelPortfolioTrade, toTradeDTO(trade))
	return toTradeDTO(trade), toHoldingDTO(result), nil
}

// ListTrades returns a holding's trades, most recent execution first.
func (s *PortfolioService) ListTrades(ctx context.Context, holdingID uuid.UUID) ([]TradeDTO, error) {
	if _, err := s.loadHolding(ctx, s.db, holdingID); err != nil {
		return nil, err
	}
	var trades []domain.Trade
	if err := s.db.WithContext(ctx).
		Where("holding_id = ?", holdingID).
		Order("traded_at desc").
		Find(&trades).Error; err != nil {
		return nil, err
	}
	dtos := make([]TradeDTO, len(trades))
	for i, t := range trades {
		dtos[i] = toTradeDTO(t)
	}
	return dtos, nil
}

// UpdateTrade replaces a trade's fields and rebuilds the parent holding from
// its surviving trades in the same transaction. Folding a sell that empties
// the position erases the average cost, so undoing a fold by arithmetic alone
// cannot recover it; replaying every remaining trade can, and keeps the
// holding equal to what the trade history implies.
func (s *PortfolioService) UpdateTrade(ctx context.Context, id uuid.UUID, in TradeInput) (TradeDTO, HoldingDTO, error) {
	var trade domain.Trade
	var result domain.Holding
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&trade, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		holding, err := s.loadHolding(ctx, tx, trade.HoldingID)
		if err != nil {
			return err
		}
		trade.Side = in.Side
		trade.Quantity = in.Quantity
		trade.PricePerUnit = in.PricePerUnit
		trade.Fees = in.Fees
		if in.TradedAt != nil {
			trade.TradedAt = *in.TradedAt
		}
		if err := tx.Save(&trade).Error; err != nil {
			return err
		}
		if err := s.refoldTrades(tx, holding); err != nil {
			return err
		}
		result = *holding
		return tx.Save(holding).Error
	})
	if err != nil {
		return TradeDTO{}, HoldingDTO{}, err
	}
	s.notify.Notify(ctx, events.ChannelPortfolioTrade, toTradeDTO(trade))
	return toTradeDTO(trade), toHoldingDTO(result), nil
}

// DeleteTrade removes a trade and rebuilds the parent holding from the
// trades that remain, returning the holding as it stands afterwards.
func (s *PortfolioService) DeleteTrade(ctx context.Context, id uuid.UUID) (HoldingDTO, error) {
	var result domain.Holding
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var trade domain.Trade
		if err := tx.First(&trade, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		holding, err := s.loadHolding(ctx, tx, trade.HoldingID)
		if err != nil {
			return err
		}
		if err := tx.Delete(&trade).Error; err != nil {
			return err
		}
		if err := s.refoldTrades(tx, holding); err != nil {
			return err
		}
		result = *holding
		return tx.Save(holding).Error
	})
	if err != nil {
		return HoldingDTO{}, err
	}
	return toHoldingDTO(result), nil
}

// refoldTrades replays the holding's trades in the order they were accepted,
// rebuilding quantity and average cost from a clean slate. Acceptance order
// (not execution order) is replayed so every sell is checked against the same
// quantity it was originally checked against.
func (s *PortfolioService) refoldTrades(tx *gorm.DB, holding *domain.Holding) error {
	var trades []domain.Trade
	if err := tx.Where("holding_id = ?", holding.ID).
		Order("created_at asc").
		Find(&trades).Error; err != nil {
		return err
	}
	holding.ResetPosition()
	for i := range trades {
		if err := holding.ApplyTrade(&trades[i]); err != nil {
			return err
		}
	}
	return nil
}

func newTrade(holdingID uuid.UUID, in TradeInput) domain.Trade {
	tradedAt := time.Now().UTC()
	if in.TradedAt != nil {
		tradedAt = *in.TradedAt
	}
	return domain.Trade{
		ID:           uuid.New(),
		HoldingID:    holdingID,
		Side:         in.Side,
		Quantity:     in.Quantity,
		PricePerUnit: in.PricePerUnit,
		Fees:         in.Fees,
		TradedAt:     tradedAt,
	}
}

func (s *PortfolioService) loadHolding(ctx context.Context, db *gorm.DB, id uuid.UUID) (*domain.Holding, error) {
	var holding domain.Holding
	if err := db.WithContext(ctx).First(&holding, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &holding, nil
}

func toHoldingDTO(h domain.Holding) HoldingDTO {
	return HoldingDTO{
		ID:                 h.ID,
		UserID:             h.UserID,
		Symbol:             h.Symbol,
		Name:               h.Name,
		Quantity:           h.Quantity,
		AverageCost:        h.AverageCost,
		CurrentPrice:       h.CurrentPrice,
		MarketValue:        h.MarketValue(),
		CostBasis:          h.CostBasis(),
		UnrealizedGainLoss: h.UnrealizedGainLoss(),
		LastPriceUpdate:    h.LastPriceUpdate,
		CreatedAt:          h.CreatedAt,
		UpdatedAt:          h.UpdatedAt,
	}
}

func toTradeDTO(t domain.Trade) TradeDTO {
	return TradeDTO{
		ID:           t.ID,
		HoldingID:    t.HoldingID,
		Side:         t.Side,
		Quantity:     t.Quantity,
		PricePerUnit: t.PricePerUnit,
		Fees:         t.Fees,
		TotalCost:    t.TotalCost(),
		TradedAt:     t.TradedAt,
		CreatedAt:    t.CreatedAt,
	}
}
