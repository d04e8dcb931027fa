package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-box/internal/domain"
	"recipe-box/internal/repository"
	"recipe-box/internal/repository/sqlite"
	"recipe-box/internal/service"
)

func newRecipeFixture(t *testing.T) (service.RecipeService, *domain.Account, *domain.Account) {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	accountRepo := sqlite.NewAccountRepository(db)
	require.NoError(t, accountRepo.Init(ctx))
	recipeRepo := sqlite.NewRecipeRepository(db)
	require.NoError(t, recipeRepo.Init(ctx))

	accounts := service.NewAccountService(accountRepo)
	owner, err := accounts.Create(ctx, "owner@domain.com", "goodpass", "Owner", "One")
	require.NoError(t, err)
	other, err := accounts.Create(ctx, "other@domain.com", "goodpass", "Other", "Two")
	require.NoError(t, err)

	return service.NewRecipeService(recipeRepo), owner, other
}

func sampleInput() service.RecipeInput {
	return service.RecipeInput{
		Title:           "Sample Recipe",
		Slug:            "sample-recipe",
		Description:     "Sample description",
		DurationMinutes: 22,
		Price:           decimal.RequireFromString("20.25"),
		Link:            "http://example.com/recipe.pdf",
	}
}

func TestCreateRecipe(t *testing.T) {
	svc, owner, _ := newRecipeFixture(t)

	recipe, err := svc.Create(context.Background(), owner.ID, sampleInput())
	require.NoError(t, err)

	assert.Equal(t, owner.ID, recipe.AccountID)
	assert.Equal(t, "Sample Recipe", recipe.Title)
	assert.Equal(t, "20.25", recipe.Price.StringFixed(2))
}

func TestCreateRecipeValidation(t *testing.T) {
	svc, owner, _ := newRecipeFixture(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*service.RecipeInput)
		field  string
	}{
		{"missing title", func(in *service.RecipeInput) { in.Title = "" }, "title"},
		{"missing slug", func(in *service.RecipeInput) { in.Slug = "" }, "slug"},
		{"slug with spaces", func(in *service.RecipeInput) { in.Slug = "not a slug" }, "slug"},
		{"negative duration", func(in *service.RecipeInput) { in.DurationMinutes = -1 }, "duration_minutes"},
		{"negative price", func(in *service.RecipeInput) { in.Price = decimal.RequireFromString("-1") }, "price"},
		{"too many decimal places", func(in *service.RecipeInput) { in.Price = decimal.RequireFromString("1.005") }, "price"},
		{"too many digits", func(in *service.RecipeInput) { in.Price = decimal.RequireFromString("10000.00") }, "price"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := sampleInput()
			tc.mutate(&input)
			_, err := svc.Create(ctx, owner.ID, input)
			verr, ok := service.AsValidationError(err)
			require.True(t, ok)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
}

func TestListRecipesLimitedToOwner(t *testing.T) {
	svc, owner, other := newRecipeFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, owner.ID, sampleInput())
	require.NoError(t, err)
	_, err = svc.Create(ctx, other.ID, sampleInput())
	require.NoError(t, err)

	recipes, err := svc.List(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, owner.ID, recipes[0].AccountID)
}

func TestListRecipesOrderedByIDDescending(t *testing.T) {
	svc, owner, _ := newRecipeFixture(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, owner.ID, sampleInput())
	require.NoError(t, err)
	second, err := svc.Create(ctx, owner.ID, sampleInput())
	require.NoError(t, err)

	recipes, err := svc.List(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, second.ID, recipes[0].ID)
	assert.Equal(t, first.ID, recipes[1].ID)
}

func TestGetRecipeOfOtherOwnerNotFound(t *testing.T) {
	svc, owner, other := newRecipeFixture(t)
	ctx := context.Background()

	recipe, err := svc.Create(ctx, other.ID, sampleInput())
	require.NoError(t, err)

	_, err = svc.Get(ctx, owner.ID, recipe.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPartialUpdateLeavesOtherFields(t *testing.T) {
	svc, owner, _ := newRecipeFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, owner.ID, sampleInput())
	require.NoError(t, err)

	title := "new_recipe_title"
	updated, err := svc.Update(ctx, owner.ID, created.ID, service.RecipeUpdate{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "new_recipe_title", updated.Title)
	assert.Equal(t, created.Slug, updated.Slug)
	assert.Equal(t, created.Link, updated.Link)
	assert.Equal(t, created.Description, updated.Description)
	assert.True(t, created.Price.Equal(updated.Price))
	assert.Equal(t, owner.ID, updated.AccountID)
}

func TestUpdateRecipeOfOtherOwnerNotFound(t *testing.T) {
	svc, owner, other := newRecipeFixture(t)
	ctx := context.Background()

	recipe, err := svc.Create(ctx, other.ID, sampleInput())
	require.NoError(t, err)

	title := "hijacked"
	_, err = svc.Update(ctx, owner.ID, recipe.ID, service.RecipeUpdate{Title: &title})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// the recipe is unchanged for its real owner
	unchanged, err := svc.Get(ctx, other.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sample Recipe", unchanged.Title)
}

func TestDeleteRecipe(t *testing.T) {
	svc, owner, _ := newRecipeFixture(t)
	ctx := context.Background()

	recipe, err := svc.Create(ctx, owner.ID, sampleInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner.ID, recipe.ID))
	_, err = svc.Get(ctx, owner.ID, recipe.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteRecipeOfOtherOwnerNotFound(t *testing.T) {
	svc, owner, other := newRecipeFixture(t)
	ctx := context.Background()

	recipe, err := svc.Create(ctx, other.ID, sampleInput())
	require.NoError(t, err)

	err = svc.Delete(ctx, owner.ID, recipe.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Get(ctx, other.ID, recipe.ID)
	assert.NoError(t, err)
}

func TestListAllOrderedByTitle(t *testing.T) {
	svc, owner, other := newRecipeFixture(t)
	ctx := context.Background()

	b := sampleInput()
	b.Title = "Banana Bread"
	b.Slug = "banana-bread"
	_, err := svc.Create(ctx, owner.ID, b)
	require.NoError(t, err)

	a := sampleInput()
	a.Title = "Apple Pie"
	a.Slug = "apple-pie"
	_, err = svc.Create(ctx, other.ID, a)
	require.NoError(t, err)

	recipes, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Apple Pie", recipes[0].Title)
	assert.Equal(t, "Banana Bread", recipes[1].Title)
}
