package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/borsazengini/trading-terminal/internal/models"
)

// ListStocks handles GET /api/stocks: the live snapshot of every tracked
// instrument.
func (h *Handler) ListStocks(c *gin.Context) {
	stocks := h.Market.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"stocks": stocks,
		"count":  len(stocks),
	})
}

// GetStock handles GET /api/stocks/:symbol.
func (h *Handler) GetStock(c *gin.Context) {
	stock, ok := h.Market.Get(c.Param("symbol"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrUnknownSymbol.Error()})
		return
	}
	c.JSON(http.StatusOK, stock)
}

// GetInsight handles GET /api/stocks/:symbol/insight. Degrades to the
// fallback commentary, never to an error response.
func (h *Handler) GetInsight(c *gin.Context) {
	stock, ok := h.Market.Get(c.Param("symbol"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrUnknownSymbol.Error()})
		return
	}
	c.JSON(http.StatusOK, h.Insights.MarketInsight(c.Request.Context(), stock.Symbol))
}

// GetProverb handles GET /api/proverb.
func (h *Handler) GetProverb(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"proverb": h.Insights.DailyProverb(c.Request.Context()),
	})
}
