package handlers

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/borsazengini/trading-terminal/internal/insight"
	"github.com/borsazengini/trading-terminal/internal/ledger"
	"github.com/borsazengini/trading-terminal/internal/market"
	"github.com/borsazengini/trading-terminal/internal/store"
)

const sessionTTL = 24 * time.Hour

// Handler wires the HTTP surface to the domain services. Everything is
// injected by the composition root; there are no package globals.
type Handler struct {
	Store    store.Store
	Sessions *store.Redis // optional; nil disables session pointers and caching
	Market   *market.Market
	Trades   *ledger.Processor
	Insights *insight.Service

	JWTSecret string
}

func (h *Handler) issueToken(accountID string) (string, error) {
	claims := jwt.MapClaims{
		"account_id": accountID,
		"exp":        time.Now().Add(sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.JWTSecret))
}
