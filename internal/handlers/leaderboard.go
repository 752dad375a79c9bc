package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/borsazengini/trading-terminal/internal/market"
	"github.com/borsazengini/trading-terminal/internal/store"
)

// GetLeaderboard handles GET /api/leaderboard: the top accounts by stored
// net worth. Clients poll this every tick, so the result is cached in Redis
// for one tick window when a cache is available.
func (h *Handler) GetLeaderboard(c *gin.Context) {
	ctx := c.Request.Context()

	if h.Sessions != nil {
		if entries, ok := h.Sessions.CachedLeaderboard(ctx); ok {
			c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
			return
		}
	}

	entries, err := h.Store.TopLeaderboard(ctx, store.DefaultLeaderboardLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard"})
		return
	}

	if h.Sessions != nil {
		// A failed cache write only costs the next poll a store query.
		_ = h.Sessions.CacheLeaderboard(ctx, entries, market.TickWindow)
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
