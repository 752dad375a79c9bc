package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/borsazengini/trading-terminal/internal/ledger"
	"github.com/borsazengini/trading-terminal/internal/middleware"
	"github.com/borsazengini/trading-terminal/internal/models"
)

// Position is one holding priced against the live market.
type Position struct {
	models.Holding
	CurrentPrice float64 `json:"current_price"`
	Value        float64 `json:"value"`
	ProfitLoss   float64 `json:"profit_loss"`
}

// PortfolioResponse is what GET /api/portfolio returns. NetWorth is
// recomputed from live prices on every call.
type PortfolioResponse struct {
	Positions []Position `json:"positions"`
	Balance   float64    `json:"balance"`
	NetWorth  float64    `json:"net_worth"`
}

// GetPortfolio handles GET /api/portfolio.
func (h *Handler) GetPortfolio(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(string)

	acc, err := h.Store.FindByID(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrAccountNotFound.Error()})
		return
	}

	prices := h.Market.Prices()
	positions := make([]Position, 0, len(acc.Portfolio))
	for _, hld := range acc.Portfolio {
		price := prices[hld.Symbol]
		value := price * float64(hld.Shares)
		positions = append(positions, Position{
			Holding:      hld,
			CurrentPrice: price,
			Value:        value,
			ProfitLoss:   value - hld.AvgPrice*float64(hld.Shares),
		})
	}

	c.JSON(http.StatusOK, PortfolioResponse{
		Positions: positions,
		Balance:   acc.Balance,
		NetWorth:  ledger.NetWorth(acc, prices),
	})
}

// MaxAffordable handles GET /api/portfolio/max/:symbol: how many shares the
// balance covers at the current price.
func (h *Handler) MaxAffordable(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(string)

	acc, err := h.Store.FindByID(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrAccountNotFound.Error()})
		return
	}

	stock, ok := h.Market.Get(c.Param("symbol"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrUnknownSymbol.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"symbol": stock.Symbol,
		"price":  stock.Price,
		"shares": ledger.MaxAffordableShares(acc.Balance, stock.Price),
	})
}
