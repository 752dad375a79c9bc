package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/borsazengini/trading-terminal/internal/ledger"
	"github.com/borsazengini/trading-terminal/internal/middleware"
	"github.com/borsazengini/trading-terminal/internal/models"
)

const tradeHistoryLimit = 50

// TradeInput is the buy/sell request body.
type TradeInput struct {
	Symbol string `json:"symbol" binding:"required"`
	Shares int    `json:"shares" binding:"required,min=1"`
}

// Buy handles POST /api/trades/buy.
func (h *Handler) Buy(c *gin.Context) {
	h.trade(c, models.TradeTypeBuy)
}

// Sell handles POST /api/trades/sell.
func (h *Handler) Sell(c *gin.Context) {
	h.trade(c, models.TradeTypeSell)
}

func (h *Handler) trade(c *gin.Context, side models.TradeType) {
	var input TradeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accountID := c.MustGet(middleware.ContextAccountID).(string)
	result := h.Trades.Submit(c.Request.Context(), ledger.TradeRequest{
		AccountID: accountID,
		Symbol:    input.Symbol,
		Shares:    input.Shares,
		Type:      side,
	})
	if result.Err != nil {
		c.JSON(tradeErrorStatus(result.Err), gin.H{"error": result.Err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Trade executed successfully",
		"transaction": result.Transaction,
		"balance":     result.Balance,
		"net_worth":   result.NetWorth,
	})
}

func tradeErrorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrInsufficientFunds),
		errors.Is(err, models.ErrInsufficientShares):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUnknownSymbol),
		errors.Is(err, models.ErrAccountNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// GetTransactions handles GET /api/trades: the account's trade log, newest
// first, capped at 50 entries.
func (h *Handler) GetTransactions(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(string)

	acc, err := h.Store.FindByID(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrAccountNotFound.Error()})
		return
	}

	transactions := acc.Transactions
	if len(transactions) > tradeHistoryLimit {
		transactions = transactions[:tradeHistoryLimit]
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": transactions,
		"count":        len(transactions),
	})
}
