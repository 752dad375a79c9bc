package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borsazengini/trading-terminal/internal/insight"
	"github.com/borsazengini/trading-terminal/internal/ledger"
	"github.com/borsazengini/trading-terminal/internal/market"
	"github.com/borsazengini/trading-terminal/internal/middleware"
	"github.com/borsazengini/trading-terminal/internal/models"
	"github.com/borsazengini/trading-terminal/internal/store"
)

const testSecret = "test-secret"

// newTestServer wires a full router against the in-memory store and an
// unstarted market, so prices stay at their opening values.
func newTestServer(t *testing.T) (*gin.Engine, *store.Memory) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemory()
	mkt := market.New([]models.Stock{
		{Symbol: "AAPL", Name: "Apple Inc.", Price: 100, Category: models.CategoryTech},
		{Symbol: "BTC", Name: "Bitcoin", Price: 500, Category: models.CategoryCrypto},
	})

	trades := ledger.NewProcessor(2, st, mkt)
	trades.Start()
	t.Cleanup(trades.Stop)

	h := &Handler{
		Store:     st,
		Market:    mkt,
		Trades:    trades,
		Insights:  &insight.Service{},
		JWTSecret: testSecret,
	}

	router := gin.New()
	api := router.Group("/api")
	{
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)
		api.POST("/auth/logout", h.Logout)
		api.GET("/stocks", h.ListStocks)
		api.GET("/stocks/:symbol", h.GetStock)
		api.GET("/stocks/:symbol/insight", h.GetInsight)
		api.GET("/leaderboard", h.GetLeaderboard)

		auth := api.Group("/")
		auth.Use(middleware.Auth(testSecret))
		{
			auth.POST("/trades/buy", h.Buy)
			auth.POST("/trades/sell", h.Sell)
			auth.GET("/trades", h.GetTransactions)
			auth.GET("/portfolio", h.GetPortfolio)
			auth.GET("/portfolio/max/:symbol", h.MaxAffordable)
		}
	}
	return router, st
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "",
		AuthInput{Username: username, Password: "hunter2"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestRegister_CreatesFundedAccount(t *testing.T) {
	router, st := newTestServer(t)

	registerUser(t, router, "alice")

	acc, err := st.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, models.StartingBalance, acc.Balance)
	assert.Equal(t, models.StartingBalance, acc.NetWorth)
	assert.Empty(t, acc.Portfolio)
	assert.Empty(t, acc.Transactions)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	router, _ := newTestServer(t)
	registerUser(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "",
		AuthInput{Username: "alice", Password: "other"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_VerbatimCredentials(t *testing.T) {
	router, _ := newTestServer(t)
	registerUser(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", "",
		AuthInput{Username: "alice", Password: "hunter2"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "",
		AuthInput{Username: "alice", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "",
		AuthInput{Username: "nobody", Password: "hunter2"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(t, router, http.MethodGet, "/api/portfolio", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/portfolio", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInsightEndpoint_AlwaysAnswers(t *testing.T) {
	router, _ := newTestServer(t)

	// The degraded insight service must still produce commentary.
	w := doJSON(t, router, http.MethodGet, "/api/stocks/AAPL/insight", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Text)

	w = doJSON(t, router, http.MethodGet, "/api/stocks/NOPE/insight", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
