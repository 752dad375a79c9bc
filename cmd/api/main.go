package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/borsazengini/trading-terminal/internal/config"
	"github.com/borsazengini/trading-terminal/internal/handlers"
	"github.com/borsazengini/trading-terminal/internal/insight"
	"github.com/borsazengini/trading-terminal/internal/ledger"
	"github.com/borsazengini/trading-terminal/internal/market"
	"github.com/borsazengini/trading-terminal/internal/middleware"
	"github.com/borsazengini/trading-terminal/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults or environment variables")
	}
	cfg := config.FromEnv()

	// Account store: Postgres by default, in-memory for local hacking.
	var st store.Store
	if cfg.StoreKind == "memory" {
		log.Println("Using in-memory store, accounts will not survive a restart")
		st = store.NewMemory()
	} else {
		pg, err := store.OpenPostgres(cfg.DatabaseDSN)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer pg.Close()
		if err := pg.EnsureSchema(context.Background()); err != nil {
			log.Fatal("Failed to prepare schema:", err)
		}
		st = pg
	}

	var sessions *store.Redis
	if cfg.RedisAddr != "" {
		var err error
		sessions, err = store.OpenRedis(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		defer sessions.Close()
	}

	mkt := market.NewDefault()
	mkt.Start()
	defer mkt.Stop()

	trades := ledger.NewProcessor(cfg.TradeWorkers, st, mkt)
	trades.Start()
	defer trades.Stop()

	h := &handlers.Handler{
		Store:     st,
		Sessions:  sessions,
		Market:    mkt,
		Trades:    trades,
		Insights:  insight.New(context.Background()),
		JWTSecret: cfg.JWTSecret,
	}

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	api := router.Group("/api")
	{
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)
		api.POST("/auth/logout", h.Logout)

		api.GET("/stocks", h.ListStocks)
		api.GET("/stocks/:symbol", h.GetStock)
		api.GET("/stocks/:symbol/insight", h.GetInsight)
		api.GET("/proverb", h.GetProverb)
		api.GET("/leaderboard", h.GetLeaderboard)

		auth := api.Group("/")
		auth.Use(middleware.Auth(cfg.JWTSecret))
		{
			auth.POST("/trades/buy", h.Buy)
			auth.POST("/trades/sell", h.Sell)
			auth.GET("/trades", h.GetTransactions)
			auth.GET("/portfolio", h.GetPortfolio)
			auth.GET("/portfolio/max/:symbol", h.MaxAffordable)
		}
	}

	// WebSocket price stream
	router.GET("/ws/prices", h.HandleWebSocket)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	log.Println("Server starting on http://localhost:" + cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
