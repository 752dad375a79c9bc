package store

import (
	"context"

	"github.com/borsazengini/trading-terminal/internal/models"
)

// DefaultLeaderboardLimit caps the global ranking.
const DefaultLeaderboardLimit = 50

// Store is the persistence and leaderboard collaborator. Accounts are
// written wholesale, replace-by-id: the last writer wins and there is no
// merge. FindByID and FindByUsername return models.ErrAccountNotFound when
// no account matches.
type Store interface {
	LoadAccounts(ctx context.Context) ([]*models.Account, error)
	FindByID(ctx context.Context, id string) (*models.Account, error)
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
	UpsertAccount(ctx context.Context, acc *models.Account) error
	TopLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
}
