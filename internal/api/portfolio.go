package api

import (
	"net/http"

	"lifehub/internal/service"
	"lifehub/internal/utils"

	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// priceRequest carries a new market price for a holding.
type priceRequest struct {
	Price decimal.Decimal `json:"price" binding:"required"`
}

func holdingCacheKey(id uuid.UUID) string {
	return "portfolio:holding:" + id.String()
}

func holdingsListCacheKey(userID uuid.UUID) string {
	return "portfolio:holdings:user:" + userID.String()
}

// invalidateHolding drops the cached reads touched by a holding mutation.
func invalidateHolding(c *gin.Context, cache *utils.Cache, holdingID, userID uuid.UUID) {
	_ = cache.Delete(c.Request.Context(), holdingCacheKey(holdingID), holdingsListCacheKey(userID))
}

// validateTradeInput applies the range checks the binding tags cannot
// express on decimal fields.
func validateTradeInput(c *gin.Context, in service.TradeInput) bool {
	if !in.Quantity.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
		return false
	}
	if !in.PricePerUnit.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price_per_unit must be positive"})
		return false
	}
	if in.Fees.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fees must not be negative"})
		return false
	}
	return true
}

// CreateHoldingHandler creates an empty position
func CreateHoldingHandler(svc *service.PortfolioService, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in service.CreateHoldingInput
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		if in.CurrentPrice.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "current_price must not be negative"})
			return
		}
		dto, err := svc.CreateHolding(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateHolding(c, cache, dto.ID, dto.UserID)
		c.Header("Location", "/api/holdings/"+dto.ID.String())
		c.JSON(http.StatusCreated, dto)
	}
}

// GetHoldingHandler returns a single holding with derived market value,
// cost basis and unrealized gain/loss, served from cache when fresh
func GetHoldingHandler(svc *service.PortfolioService, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()
		var cached service.HoldingDTO
		if found, err := cache.GetJSON(ctx, holdingCacheKey(id), &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"holding": cached, "cached": true})
			return
		}
		dto, err := svc.GetHolding(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}
		_ = cache.SetJSON(ctx, holdingCacheKey(id), dto)
		c.JSON(http.StatusOK, gin.H{"holding": dto, "cached": false})
	}
}

// ListHoldingsHandler returns the owner's holdings ordered by symbol,
// served from cache when fresh
func ListHoldingsHandler(svc *service.PortfolioService, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := ownerID(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		var cached []service.HoldingDTO
		if found, err := cache.GetJSON(ctx, holdingsListCacheKey(userID), &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"holdings": cached, "cached": true})
			return
		}
		dtos, err := svc.ListHoldings(ctx, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		_ = cache.SetJSON(ctx, holdingsListCacheKey(userID), dtos)
		c.JSON(http.StatusOK, gin.H{"holdings": dtos, "cached": false})
	}
}

// UpdateHoldingHandler replaces a holding's descriptive fields
func UpdateHoldingHandler(svc *service.PortfolioService, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in service.UpdateHoldingInput
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		if !matchBodyID(c, id, in.ID) {
			return
		}
		dto, err := svc.UpdateHolding(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateHolding(c, cache, dto.ID, dto.UserID)
		c.JSON(http.StatusOK, dto)
	}
}

// UpdateHoldingPriceHandler records a new market price
func UpdateHoldingPriceHandler(svc *service.PortfolioService, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req priceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		if req.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
			return
		}
		dto, err := svc.UpdatePrice(c.Request.Context(), id, req.Price)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateHolding(c, cache, dto.ID, dto.UserID)
		c.JSON(http.StatusOK, dto)
	}
}

// DeleteHoldingHandler hard-deletes a holding and its trades
func DeleteHoldingHandler(svc *service.PortfolioService, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		// Load first so the owner's list cache can be invalidated after.
		dto, err := svc.GetHolding(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := svc.DeleteHolding(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		invalidateHolding(c, cache, id, dto.UserID)
		c.Status(http.StatusNoContent)
	}
}

// CreateTradeHandler records a trade and folds it into the parent holding
// in the same commit
func CreateTradeHandler(svc *service.PortfolioService, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		holdingID, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in service.TradeInput
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		if !validateTradeInput(c, in) {
			return
		}
		dto, holding, err := svc.CreateTrade(c.Request.Context(), holdingID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateHolding(c, cache, holding.ID, holding.UserID)
		c.Header("Location", "/api/trades/"+dto.ID.String())
		c.JSON(http.StatusCreated, dto)
	}
}

// ListTradesHandler returns a holding's trades, most recent execution first
func ListTradesHandler(svc *service.PortfolioService) gin.HandlerFunc {
	return func(c *gin.Context) {
		holdingID, ok := pathID(c, "id")
		if !ok {
			return
		}
		dtos, err := svc.ListTrades(c.Request.Context(), holdingID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"trades": dtos})
	}
}

// UpdateTradeHandler replaces a trade, re-folding the parent holding
func UpdateTradeHandler(svc *service.PortfolioService, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in service.TradeInput
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		if !validateTradeInput(c, in) {
			return
		}
		dto, holding, err := svc.UpdateTrade(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateHolding(c, cache, holding.ID, holding.UserID)
		c.JSON(http.StatusOK, dto)
	}
}

// DeleteTradeHandler removes a trade, rebuilding the holding from the trades
// that remain
func DeleteTradeHandler(svc *service.PortfolioService, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		holding, err := svc.DeleteTrade(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateHolding(c, cache, holding.ID, holding.UserID)
		c.Status(http.StatusNoContent)
	}
}
