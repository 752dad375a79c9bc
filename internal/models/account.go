package models

import "time"

// StartingBalance is the virtual cash every new account begins with.
const StartingBalance = 10000.0

// TradeType is the direction of a transaction.
type TradeType string

const (
	TradeTypeBuy  TradeType = "BUY"
	TradeTypeSell TradeType = "SELL"
)

// Holding is a position in one instrument. AvgPrice is a running weighted
// average recomputed on every buy; it is left alone on sells.
type Holding struct {
	Symbol   string  `json:"symbol"`
	Shares   int     `json:"shares"`
	AvgPrice float64 `json:"avg_price"`
}

// Transaction is an immutable record of one executed trade.
type Transaction struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Type      TradeType `json:"type"`
	Shares    int       `json:"shares"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// Account is a user of the trading terminal. The password is stored and
// compared verbatim. NetWorth is a derived value mirrored here only so the
// leaderboard can read it without repricing every portfolio; the live value
// is always recomputed from current prices.
type Account struct {
	ID           string        `json:"id"`
	Username     string        `json:"username"`
	Password     string        `json:"-"`
	Balance      float64       `json:"balance"`
	Portfolio    []Holding     `json:"portfolio"`
	NetWorth     float64       `json:"net_worth"`
	Transactions []Transaction `json:"transactions"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Holding returns the account's position in symbol, if any.
func (a *Account) Holding(symbol string) (*Holding, bool) {
	for i := range a.Portfolio {
		if a.Portfolio[i].Symbol == symbol {
			return &a.Portfolio[i], true
		}
	}
	return nil, false
}

// LeaderboardEntry is one row of the global net-worth ranking.
type LeaderboardEntry struct {
	Username string  `json:"username"`
	NetWorth float64 `json:"net_worth"`
	Rank     int     `json:"rank"`
}
