package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"recipe-box/internal/domain"
	"recipe-box/internal/repository"
)

const createRecipesTable = `
CREATE TABLE IF NOT EXISTS recipes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	account_id INTEGER NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	slug TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	duration_minutes INTEGER NOT NULL DEFAULT 0,
	price TEXT NOT NULL DEFAULT '0.00',
	link TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type RecipeRepository struct {
	db *sql.DB
}

func NewRecipeRepository(db *sql.DB) repository.RecipeRepository {
	return &RecipeRepository{db: db}
}

func (r *RecipeRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createRecipesTable); err != nil {
		return fmt.Errorf("create recipes table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_recipes_account ON recipes(account_id)`); err != nil {
		return fmt.Errorf("create recipes account index: %w", err)
	}
	return nil
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) (int64, error) {
	now := time.Now().UTC()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO recipes (account_id, title, slug, description, duration_minutes, price, link, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		recipe.AccountID,
		recipe.Title,
		recipe.Slug,
		recipe.Description,
		recipe.DurationMinutes,
		recipe.Price.StringFixed(2),
		recipe.Link,
		recipe.CreatedAt,
		recipe.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert recipe: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("recipe last insert id: %w", err)
	}
	recipe.ID = id
	return id, nil
}

// Update persists mutable recipe fields. The WHERE clause carries the owner so
// an update against someone else's recipe reports ErrNotFound, and account_id
// is never part of the SET list.
func (r *RecipeRepository) Update(ctx context.Context, recipe *domain.Recipe) error {
	recipe.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE recipes
SET title=?, slug=?, description=?, duration_minutes=?, price=?, link=?, updated_at=?
WHERE id=? AND account_id=?`,
		recipe.Title,
		recipe.Slug,
		recipe.Description,
		recipe.DurationMinutes,
		recipe.Price.StringFixed(2),
		recipe.Link,
		recipe.UpdatedAt,
		recipe.ID,
		recipe.AccountID,
	)
	if err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("recipe update rows affected: %w", err)
	}
	if aff == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RecipeRepository) GetForOwner(ctx context.Context, id, ownerID int64) (*domain.Recipe, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, account_id, title, slug, description, duration_minutes, price, link, created_at, updated_at
FROM recipes
WHERE id=? AND account_id=?`,
		id,
		ownerID,
	)
	return scanRecipe(row)
}

func (r *RecipeRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, account_id, title, slug, description, duration_minutes, price, link, created_at, updated_at
FROM recipes
WHERE account_id=?
ORDER BY id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()
	return collectRecipes(rows)
}

func (r *RecipeRepository) DeleteForOwner(ctx context.Context, id, ownerID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recipes WHERE id=? AND account_id=?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("recipe delete rows affected: %w", err)
	}
	if aff == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RecipeRepository) List(ctx context.Context) ([]domain.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, account_id, title, slug, description, duration_minutes, price, link, created_at, updated_at
FROM recipes
ORDER BY title ASC`)
	if err != nil {
		return nil, fmt.Errorf("query all recipes: %w", err)
	}
	defer rows.Close()
	return collectRecipes(rows)
}

func collectRecipes(rows *sql.Rows) ([]domain.Recipe, error) {
	var recipes []domain.Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *recipe)
	}
	return recipes, rows.Err()
}

func scanRecipe(row interface {
	Scan(dest ...any) error
}) (*domain.Recipe, error) {
	var (
		recipe domain.Recipe
		price  string
	)
	if err := row.Scan(
		&recipe.ID,
		&recipe.AccountID,
		&recipe.Title,
		&recipe.Slug,
		&recipe.Description,
		&recipe.DurationMinutes,
		&price,
		&recipe.Link,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan recipe: %w", err)
	}

	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse recipe price: %w", err)
	}
	recipe.Price = parsed
	return &recipe, nil
}
