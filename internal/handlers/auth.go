package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/borsazengini/trading-terminal/internal/models"
)

// AuthInput is the shared register/login request body.
type AuthInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/auth/register. New accounts start with the
// fixed virtual balance and an empty portfolio.
func (h *Handler) Register(c *gin.Context) {
	var input AuthInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.Store.FindByUsername(c.Request.Context(), input.Username)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": models.ErrDuplicateUsername.Error()})
		return
	}
	if !errors.Is(err, models.ErrAccountNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	acc := &models.Account{
		ID:           uuid.NewString(),
		Username:     input.Username,
		Password:     input.Password,
		Balance:      models.StartingBalance,
		Portfolio:    []models.Holding{},
		NetWorth:     models.StartingBalance,
		Transactions: []models.Transaction{},
		CreatedAt:    time.Now(),
	}
	if err := h.Store.UpsertAccount(c.Request.Context(), acc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	h.openSession(c, http.StatusCreated, acc)
}

// Login handles POST /api/auth/login. Credentials are compared verbatim.
func (h *Handler) Login(c *gin.Context) {
	var input AuthInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	acc, err := h.Store.FindByUsername(c.Request.Context(), input.Username)
	if err != nil || acc.Password != input.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": models.ErrInvalidCredentials.Error()})
		return
	}

	h.openSession(c, http.StatusOK, acc)
}

// Logout handles POST /api/auth/logout and drops the active-session
// pointer. The JWT itself simply ages out.
func (h *Handler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if h.Sessions != nil && token != "" {
		if err := h.Sessions.DeleteSession(c.Request.Context(), token); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close session"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handler) openSession(c *gin.Context, status int, acc *models.Account) {
	token, err := h.issueToken(acc.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
		return
	}
	if h.Sessions != nil {
		if err := h.Sessions.PutSession(c.Request.Context(), token, acc.ID, sessionTTL); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error storing session"})
			return
		}
	}

	c.JSON(status, gin.H{
		"token":   token,
		"account": acc,
	})
}
