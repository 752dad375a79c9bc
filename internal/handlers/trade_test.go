package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borsazengini/trading-terminal/internal/models"
)

func TestBuyEndpoint_Success(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerUser(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/api/trades/buy", token,
		TradeInput{Symbol: "AAPL", Shares: 5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Balance     float64            `json:"balance"`
		NetWorth    float64            `json:"net_worth"`
		Transaction models.Transaction `json:"transaction"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 9500.0, resp.Balance)
	assert.Equal(t, 10000.0, resp.NetWorth)
	assert.Equal(t, models.TradeTypeBuy, resp.Transaction.Type)
	assert.Equal(t, 100.0, resp.Transaction.Price)
}

func TestBuyEndpoint_InsufficientFunds(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerUser(t, router, "alice")

	// 500 * 100 BTC is far beyond the starting balance.
	w := doJSON(t, router, http.MethodPost, "/api/trades/buy", token,
		TradeInput{Symbol: "BTC", Shares: 100})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), models.ErrInsufficientFunds.Error())
}

func TestSellEndpoint_InsufficientShares(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerUser(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/api/trades/sell", token,
		TradeInput{Symbol: "AAPL", Shares: 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), models.ErrInsufficientShares.Error())
}

func TestTradeEndpoint_UnknownSymbol(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerUser(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/api/trades/buy", token,
		TradeInput{Symbol: "NOPE", Shares: 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTradeEndpoint_RejectsZeroShares(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerUser(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/api/trades/buy", token,
		TradeInput{Symbol: "AAPL", Shares: 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPortfolioEndpoint_PricesHoldingsLive(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerUser(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/api/trades/buy", token,
		TradeInput{Symbol: "AAPL", Shares: 10})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/portfolio", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp PortfolioResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 9000.0, resp.Balance)
	assert.Equal(t, 10000.0, resp.NetWorth)
	require.Len(t, resp.Positions, 1)
	assert.Equal(t, "AAPL", resp.Positions[0].Symbol)
	assert.Equal(t, 1000.0, resp.Positions[0].Value)
	assert.Equal(t, 0.0, resp.Positions[0].ProfitLoss)
}

func TestTransactionsEndpoint_NewestFirst(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerUser(t, router, "alice")

	for _, shares := range []int{5, 3} {
		w := doJSON(t, router, http.MethodPost, "/api/trades/buy", token,
			TradeInput{Symbol: "AAPL", Shares: shares})
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := doJSON(t, router, http.MethodPost, "/api/trades/sell", token,
		TradeInput{Symbol: "AAPL", Shares: 8})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/trades", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Transactions []models.Transaction `json:"transactions"`
		Count        int                  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 3, resp.Count)
	assert.Equal(t, models.TradeTypeSell, resp.Transactions[0].Type)
	assert.Equal(t, 3, resp.Transactions[1].Shares)
	assert.Equal(t, 5, resp.Transactions[2].Shares)
}

func TestMaxAffordableEndpoint(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerUser(t, router, "alice")

	w := doJSON(t, router, http.MethodGet, "/api/portfolio/max/AAPL", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Symbol string  `json:"symbol"`
		Price  float64 `json:"price"`
		Shares int     `json:"shares"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "AAPL", resp.Symbol)
	assert.Equal(t, 100, resp.Shares)
}

func TestLeaderboardEndpoint_RanksByNetWorth(t *testing.T) {
	router, _ := newTestServer(t)

	registerUser(t, router, "alice")
	bobToken := registerUser(t, router, "bob")

	// A buy at the execution price keeps net worth flat, so both accounts
	// sit at the starting balance and simply need to show up ranked.
	w := doJSON(t, router, http.MethodPost, "/api/trades/buy", bobToken,
		TradeInput{Symbol: "AAPL", Shares: 10})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/leaderboard", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Leaderboard []models.LeaderboardEntry `json:"leaderboard"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Leaderboard, 2)
	assert.Equal(t, 1, resp.Leaderboard[0].Rank)
	assert.Equal(t, 2, resp.Leaderboard[1].Rank)
	assert.GreaterOrEqual(t, resp.Leaderboard[0].NetWorth, resp.Leaderboard[1].NetWorth)
}

func TestListStocksEndpoint(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(t, router, http.MethodGet, "/api/stocks", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Stocks []models.Stock `json:"stocks"`
		Count  int            `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Stocks[0].History, 20)
}
