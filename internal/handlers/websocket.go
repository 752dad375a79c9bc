package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/borsazengini/trading-terminal/internal/market"
	"github.com/borsazengini/trading-terminal/internal/models"
)

// PriceFrame is one websocket message: the full market snapshot for a tick.
type PriceFrame struct {
	Stocks    []models.Stock `json:"stocks"`
	Timestamp time.Time      `json:"timestamp"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins (for development and demo)
	},
}

// HandleWebSocket handles GET /ws/prices. Every connected client gets the
// same snapshot each tick window, since all prices derive from the shared
// deterministic formula.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	log.Println("Client connected to price stream")

	// First frame immediately so the client does not wait a full window.
	if err := conn.WriteJSON(PriceFrame{Stocks: h.Market.Snapshot(), Timestamp: time.Now()}); err != nil {
		log.Println("WebSocket write error:", err)
		return
	}

	ticker := time.NewTicker(market.TickWindow)
	defer ticker.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case now := <-ticker.C:
			frame := PriceFrame{Stocks: h.Market.Snapshot(), Timestamp: now}
			if err := conn.WriteJSON(frame); err != nil {
				log.Println("WebSocket write error:", err)
				return
			}
		}
	}
}
