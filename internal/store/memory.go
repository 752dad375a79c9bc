package store

import (
	"context"
	"sort"
	"sync"

	"github.com/borsazengini/trading-terminal/internal/models"
)

// Memory is an in-memory Store for tests and database-less development.
// It copies accounts on the way in and out so callers never share state
// with the store, matching the wholesale-overwrite contract.
type Memory struct {
	mu       sync.RWMutex
	accounts map[string]*models.Account
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{accounts: make(map[string]*models.Account)}
}

func (m *Memory) LoadAccounts(_ context.Context) ([]*models.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*models.Account, 0, len(m.accounts))
	for _, acc := range m.accounts {
		out = append(out, copyAccount(acc))
	}
	return out, nil
}

func (m *Memory) FindByID(_ context.Context, id string) (*models.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	acc, ok := m.accounts[id]
	if !ok {
		return nil, models.ErrAccountNotFound
	}
	return copyAccount(acc), nil
}

func (m *Memory) FindByUsername(_ context.Context, username string) (*models.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, acc := range m.accounts {
		if acc.Username == username {
			return copyAccount(acc), nil
		}
	}
	return nil, models.ErrAccountNotFound
}

func (m *Memory) UpsertAccount(_ context.Context, acc *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.accounts[acc.ID] = copyAccount(acc)
	return nil
}

func (m *Memory) TopLeaderboard(_ context.Context, limit int) ([]models.LeaderboardEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ranked := make([]*models.Account, 0, len(m.accounts))
	for _, acc := range m.accounts {
		ranked = append(ranked, acc)
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].NetWorth > ranked[j].NetWorth
	})

	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	entries := make([]models.LeaderboardEntry, 0, len(ranked))
	for i, acc := range ranked {
		entries = append(entries, models.LeaderboardEntry{
			Username: acc.Username,
			NetWorth: acc.NetWorth,
			Rank:     i + 1,
		})
	}
	return entries, nil
}

func copyAccount(acc *models.Account) *models.Account {
	c := *acc
	c.Portfolio = make([]models.Holding, len(acc.Portfolio))
	copy(c.Portfolio, acc.Portfolio)
	c.Transactions = make([]models.Transaction, len(acc.Transactions))
	copy(c.Transactions, acc.Transactions)
	return &c
}
