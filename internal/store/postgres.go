package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/borsazengini/trading-terminal/internal/models"
)

// Postgres is the durable Store. Every write is a full replace of the
// account row plus its holdings and transaction log inside one SQL
// transaction, which keeps the last-write-wins contract honest.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects to the database and verifies the connection.
func OpenPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected")
	return &Postgres{db: db}, nil
}

// Close closes the underlying connection pool.
func (p *Postgres) Close() {
	if p.db != nil {
		p.db.Close()
		log.Println("Database connection closed")
	}
}

// EnsureSchema creates the tables if they do not exist yet.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id TEXT PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			balance DOUBLE PRECISION NOT NULL,
			net_worth DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS holdings (
			account_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
			symbol TEXT NOT NULL,
			shares INT NOT NULL,
			avg_price DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (account_id, symbol)
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			account_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
			symbol TEXT NOT NULL,
			trade_type TEXT NOT NULL,
			shares INT NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			executed_at TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := p.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema setup failed: %w", err)
		}
	}
	return nil
}

func (p *Postgres) LoadAccounts(ctx context.Context) ([]*models.Account, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, username, password, balance, net_worth, created_at FROM accounts`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		acc := &models.Account{}
		if err := rows.Scan(&acc.ID, &acc.Username, &acc.Password,
			&acc.Balance, &acc.NetWorth, &acc.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, acc := range accounts {
		if err := p.loadDetails(ctx, acc); err != nil {
			return nil, err
		}
	}
	return accounts, nil
}

func (p *Postgres) FindByID(ctx context.Context, id string) (*models.Account, error) {
	return p.findBy(ctx, "id", id)
}

func (p *Postgres) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	return p.findBy(ctx, "username", username)
}

func (p *Postgres) findBy(ctx context.Context, column, value string) (*models.Account, error) {
	acc := &models.Account{}
	err := p.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT id, username, password, balance, net_worth, created_at
			FROM accounts WHERE %s = $1`, column), value,
	).Scan(&acc.ID, &acc.Username, &acc.Password, &acc.Balance, &acc.NetWorth, &acc.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := p.loadDetails(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

func (p *Postgres) loadDetails(ctx context.Context, acc *models.Account) error {
	rows, err := p.db.QueryContext(ctx,
		`SELECT symbol, shares, avg_price FROM holdings WHERE account_id = $1 ORDER BY symbol`,
		acc.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	acc.Portfolio = make([]models.Holding, 0)
	for rows.Next() {
		var h models.Holding
		if err := rows.Scan(&h.Symbol, &h.Shares, &h.AvgPrice); err != nil {
			return err
		}
		acc.Portfolio = append(acc.Portfolio, h)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	txRows, err := p.db.QueryContext(ctx,
		`SELECT id, symbol, trade_type, shares, price, executed_at
		 FROM transactions WHERE account_id = $1 ORDER BY executed_at DESC, id`,
		acc.ID)
	if err != nil {
		return err
	}
	defer txRows.Close()

	acc.Transactions = make([]models.Transaction, 0)
	for txRows.Next() {
		var t models.Transaction
		if err := txRows.Scan(&t.ID, &t.Symbol, &t.Type, &t.Shares, &t.Price, &t.Timestamp); err != nil {
			return err
		}
		acc.Transactions = append(acc.Transactions, t)
	}
	return txRows.Err()
}

// UpsertAccount replaces the stored account wholesale: account row, holdings
// and the transaction log, all or nothing.
func (p *Postgres) UpsertAccount(ctx context.Context, acc *models.Account) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO accounts (id, username, password, balance, net_worth, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id)
		DO UPDATE SET
			username = $2,
			password = $3,
			balance = $4,
			net_worth = $5
	`, acc.ID, acc.Username, acc.Password, acc.Balance, acc.NetWorth, acc.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert account: %w", err)
	}

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM holdings WHERE account_id = $1`, acc.ID); err != nil {
		return fmt.Errorf("failed to clear holdings: %w", err)
	}
	for _, h := range acc.Portfolio {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO holdings (account_id, symbol, shares, avg_price)
			VALUES ($1, $2, $3, $4)
		`, acc.ID, h.Symbol, h.Shares, h.AvgPrice); err != nil {
			return fmt.Errorf("failed to write holding: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM transactions WHERE account_id = $1`, acc.ID); err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}
	for _, t := range acc.Transactions {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO transactions (id, account_id, symbol, trade_type, shares, price, executed_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, t.ID, acc.ID, t.Symbol, t.Type, t.Shares, t.Price, t.Timestamp); err != nil {
			return fmt.Errorf("failed to write transaction: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}
	return nil
}

// TopLeaderboard ranks accounts by their stored net worth, best first.
func (p *Postgres) TopLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	rows, err := p.db.QueryContext(ctx, `
		SELECT username, net_worth
		FROM accounts
		ORDER BY net_worth DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.LeaderboardEntry, 0, limit)
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.Username, &e.NetWorth); err != nil {
			return nil, err
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
