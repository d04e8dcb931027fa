package repository

import (
	"context"

	"recipe-box/internal/domain"
)

// RecipeRepository exposes persistence operations for Recipe entities.
//
// The owner-scoped methods treat "exists but owned by another account"
// identically to "does not exist": both surface ErrNotFound.
type RecipeRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, recipe *domain.Recipe) (int64, error)
	Update(ctx context.Context, recipe *domain.Recipe) error
	GetForOwner(ctx context.Context, id, ownerID int64) (*domain.Recipe, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Recipe, error)
	DeleteForOwner(ctx context.Context, id, ownerID int64) error
	List(ctx context.Context) ([]domain.Recipe, error)
}
