package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"recipe-box/internal/domain"
	"recipe-box/internal/repository"
)

const createTokensTable = `
CREATE TABLE IF NOT EXISTS auth_tokens (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	account_id INTEGER NOT NULL UNIQUE REFERENCES accounts(id) ON DELETE CASCADE,
	key TEXT NOT NULL UNIQUE,
	created_at DATETIME NOT NULL
);
`

type TokenRepository struct {
	db *sql.DB
}

func NewTokenRepository(db *sql.DB) repository.TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTokensTable); err != nil {
		return fmt.Errorf("create auth tokens table: %w", err)
	}
	return nil
}

func (r *TokenRepository) GetByAccount(ctx context.Context, accountID int64) (*domain.AuthToken, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, account_id, key, created_at
FROM auth_tokens
WHERE account_id = ?`,
		accountID,
	)
	return scanToken(row)
}

func (r *TokenRepository) GetByKey(ctx context.Context, key string) (*domain.AuthToken, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, account_id, key, created_at
FROM auth_tokens
WHERE key = ?`,
		key,
	)
	return scanToken(row)
}

func (r *TokenRepository) Create(ctx context.Context, token *domain.AuthToken) (int64, error) {
	token.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO auth_tokens (account_id, key, created_at)
VALUES (?, ?, ?)`,
		token.AccountID,
		token.Key,
		token.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert auth token: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("auth token last insert id: %w", err)
	}
	token.ID = id
	return id, nil
}

func scanToken(row interface {
	Scan(dest ...any) error
}) (*domain.AuthToken, error) {
	var token domain.AuthToken
	if err := row.Scan(
		&token.ID,
		&token.AccountID,
		&token.Key,
		&token.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan auth token: %w", err)
	}
	return &token, nil
}
