package repository

import (
	"context"

	"recipe-box/internal/domain"
)

// TokenRepository manages opaque bearer tokens, one per account.
type TokenRepository interface {
	Init(ctx context.Context) error
	GetByAccount(ctx context.Context, accountID int64) (*domain.AuthToken, error)
	GetByKey(ctx context.Context, key string) (*domain.AuthToken, error)
	Create(ctx context.Context, token *domain.AuthToken) (int64, error)
}
