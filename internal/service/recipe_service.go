package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"recipe-box/internal/domain"
	"recipe-box/internal/repository"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// price fits 6 total digits with 2 of them fractional
var maxPrice = decimal.New(1, 4) // 10000

// RecipeInput carries the writable recipe fields for a create or full update.
type RecipeInput struct {
	Title           string
	Slug            string
	Description     string
	DurationMinutes int
	Price           decimal.Decimal
	Link            string
}

// RecipeUpdate is a partial update. Nil means "leave unchanged".
type RecipeUpdate struct {
	Title           *string
	Slug            *string
	Description     *string
	DurationMinutes *int
	Price           *decimal.Decimal
	Link            *string
}

// RecipeService coordinates ownership-scoped recipe operations. Every method
// takes the caller's account id; recipes belonging to other accounts behave
// as if they do not exist.
type RecipeService interface {
	Create(ctx context.Context, ownerID int64, input RecipeInput) (*domain.Recipe, error)
	Get(ctx context.Context, ownerID, id int64) (*domain.Recipe, error)
	List(ctx context.Context, ownerID int64) ([]domain.Recipe, error)
	Update(ctx context.Context, ownerID, id int64, update RecipeUpdate) (*domain.Recipe, error)
	Delete(ctx context.Context, ownerID, id int64) error
	ListAll(ctx context.Context) ([]domain.Recipe, error)
}

type recipeService struct {
	recipes repository.RecipeRepository
}

func NewRecipeService(recipes repository.RecipeRepository) RecipeService {
	return &recipeService{recipes: recipes}
}

func (s *recipeService) Create(ctx context.Context, ownerID int64, input RecipeInput) (*domain.Recipe, error) {
	recipe := &domain.Recipe{
		AccountID:       ownerID,
		Title:           strings.TrimSpace(input.Title),
		Slug:            strings.TrimSpace(input.Slug),
		Description:     input.Description,
		DurationMinutes: input.DurationMinutes,
		Price:           input.Price,
		Link:            strings.TrimSpace(input.Link),
	}
	if err := validateRecipe(recipe); err != nil {
		return nil, err
	}
	if _, err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) Get(ctx context.Context, ownerID, id int64) (*domain.Recipe, error) {
	return s.recipes.GetForOwner(ctx, id, ownerID)
}

func (s *recipeService) List(ctx context.Context, ownerID int64) ([]domain.Recipe, error) {
	return s.recipes.ListByOwner(ctx, ownerID)
}

func (s *recipeService) Update(ctx context.Context, ownerID, id int64, update RecipeUpdate) (*domain.Recipe, error) {
	recipe, err := s.recipes.GetForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		recipe.Title = strings.TrimSpace(*update.Title)
	}
	if update.Slug != nil {
		recipe.Slug = strings.TrimSpace(*update.Slug)
	}
	if update.Description != nil {
		recipe.Description = *update.Description
	}
	if update.DurationMinutes != nil {
		recipe.DurationMinutes = *update.DurationMinutes
	}
	if update.Price != nil {
		recipe.Price = *update.Price
	}
	if update.Link != nil {
		recipe.Link = strings.TrimSpace(*update.Link)
	}

	if err := validateRecipe(recipe); err != nil {
		return nil, err
	}
	if err := s.recipes.Update(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) Delete(ctx context.Context, ownerID, id int64) error {
	return s.recipes.DeleteForOwner(ctx, id, ownerID)
}

func (s *recipeService) ListAll(ctx context.Context) ([]domain.Recipe, error) {
	return s.recipes.List(ctx)
}

func validateRecipe(recipe *domain.Recipe) error {
	fields := map[string]string{}
	if recipe.Title == "" {
		fields["title"] = "title is required"
	}
	if recipe.Slug == "" {
		fields["slug"] = "slug is required"
	} else if !slugPattern.MatchString(recipe.Slug) {
		fields["slug"] = "slug may only contain letters, numbers, hyphens and underscores"
	}
	if recipe.DurationMinutes < 0 {
		fields["duration_minutes"] = "duration must not be negative"
	}
	if recipe.Price.IsNegative() {
		fields["price"] = "price must not be negative"
	} else if !recipe.Price.Equal(recipe.Price.Round(2)) {
		fields["price"] = "price allows at most 2 decimal places"
	} else if recipe.Price.GreaterThanOrEqual(maxPrice) {
		fields["price"] = "price allows at most 6 digits in total"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
