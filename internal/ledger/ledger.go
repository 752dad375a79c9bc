package ledger

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/borsazengini/trading-terminal/internal/models"
)

// Buy executes a market buy of shares at the stock's current price.
// Validation happens before any mutation, so a rejected trade leaves the
// account exactly as it was.
func Buy(acc *models.Account, stock models.Stock, shares int) (models.Transaction, error) {
	if shares < 1 {
		shares = 1
	}

	cost := stock.Price * float64(shares)
	if acc.Balance < cost {
		return models.Transaction{}, models.ErrInsufficientFunds
	}

	acc.Balance -= cost
	if h, ok := acc.Holding(stock.Symbol); ok {
		total := h.Shares + shares
		h.AvgPrice = (h.AvgPrice*float64(h.Shares) + cost) / float64(total)
		h.Shares = total
	} else {
		acc.Portfolio = append(acc.Portfolio, models.Holding{
			Symbol:   stock.Symbol,
			Shares:   shares,
			AvgPrice: stock.Price,
		})
	}

	tx := record(stock, models.TradeTypeBuy, shares)
	acc.Transactions = append([]models.Transaction{tx}, acc.Transactions...)
	return tx, nil
}

// Sell executes a market sell of shares at the stock's current price. The
// holding is removed outright when its share count reaches zero; its average
// cost is never recomputed on the way down, so realized P/L stays implicit.
func Sell(acc *models.Account, stock models.Stock, shares int) (models.Transaction, error) {
	if shares < 1 {
		shares = 1
	}

	h, ok := acc.Holding(stock.Symbol)
	if !ok || h.Shares < shares {
		return models.Transaction{}, models.ErrInsufficientShares
	}

	acc.Balance += stock.Price * float64(shares)
	h.Shares -= shares
	if h.Shares == 0 {
		kept := acc.Portfolio[:0]
		for _, p := range acc.Portfolio {
			if p.Symbol != stock.Symbol {
				kept = append(kept, p)
			}
		}
		acc.Portfolio = kept
	}

	tx := record(stock, models.TradeTypeSell, shares)
	acc.Transactions = append([]models.Transaction{tx}, acc.Transactions...)
	return tx, nil
}

// MaxAffordableShares is how many whole shares the balance covers at the
// given price, floored at 1. A UI convenience, not a ledger rule: the buy
// path still rejects unaffordable orders.
func MaxAffordableShares(balance, price float64) int {
	shares := int(math.Floor(balance / price))
	if shares < 1 {
		return 1
	}
	return shares
}

// NetWorth is cash plus the market value of every holding at current prices.
// Always derived, never read back from storage.
func NetWorth(acc *models.Account, prices map[string]float64) float64 {
	total := acc.Balance
	for _, h := range acc.Portfolio {
		total += prices[h.Symbol] * float64(h.Shares)
	}
	return total
}

func record(stock models.Stock, side models.TradeType, shares int) models.Transaction {
	return models.Transaction{
		ID:        uuid.NewString(),
		Symbol:    stock.Symbol,
		Type:      side,
		Shares:    shares,
		Price:     stock.Price,
		Timestamp: time.Now(),
	}
}
