package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"recipe-box/internal/domain"
	"recipe-box/internal/service"
)

// recipeWriteRequest covers both create and full update. A supplied owner
// field is deliberately absent: the owner is always the caller.
type recipeWriteRequest struct {
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	Description     string          `json:"description"`
	DurationMinutes int             `json:"duration_minutes"`
	Price           decimal.Decimal `json:"price"`
	Link            string          `json:"link"`
}

type recipePatchRequest struct {
	Title           *string          `json:"title"`
	Slug            *string          `json:"slug"`
	Description     *string          `json:"description"`
	DurationMinutes *int             `json:"duration_minutes"`
	Price           *decimal.Decimal `json:"price"`
	Link            *string          `json:"link"`
}

// RecipeListItem is the reduced serialization used for listings.
type RecipeListItem struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	DurationMinutes int    `json:"duration_minutes"`
	Price           string `json:"price"`
	Link            string `json:"link"`
}

// RecipeDetail is the full serialization including the description.
type RecipeDetail struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	Price           string `json:"price"`
	Link            string `json:"link"`
}

func (h *Handler) listRecipes(c *gin.Context) {
	recipes, err := h.recipes.List(c.Request.Context(), currentAccount(c).ID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]RecipeListItem, len(recipes))
	for i := range recipes {
		resp[i] = recipeToListItem(recipes[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), currentAccount(c).ID, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipeToDetail(recipe))
}

func (h *Handler) createRecipe(c *gin.Context) {
	var req recipeWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), currentAccount(c).ID, service.RecipeInput{
		Title:           req.Title,
		Slug:            req.Slug,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Link:            req.Link,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipeToDetail(recipe))
}

func (h *Handler) replaceRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	var req recipeWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), currentAccount(c).ID, id, service.RecipeUpdate{
		Title:           &req.Title,
		Slug:            &req.Slug,
		Description:     &req.Description,
		DurationMinutes: &req.DurationMinutes,
		Price:           &req.Price,
		Link:            &req.Link,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipeToDetail(recipe))
}

func (h *Handler) patchRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	var req recipePatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), currentAccount(c).ID, id, service.RecipeUpdate{
		Title:           req.Title,
		Slug:            req.Slug,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Link:            req.Link,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipeToDetail(recipe))
}

func (h *Handler) deleteRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), currentAccount(c).ID, id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listAllRecipes(c *gin.Context) {
	recipes, err := h.recipes.ListAll(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]RecipeDetail, len(recipes))
	for i := range recipes {
		resp[i] = recipeToDetail(&recipes[i])
	}
	c.JSON(http.StatusOK, resp)
}

func recipeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return 0, false
	}
	return id, true
}

func recipeToListItem(recipe domain.Recipe) RecipeListItem {
	return RecipeListItem{
		ID:              recipe.ID,
		Title:           recipe.Title,
		Slug:            recipe.Slug,
		DurationMinutes: recipe.DurationMinutes,
		Price:           recipe.Price.StringFixed(2),
		Link:            recipe.Link,
	}
}

func recipeToDetail(recipe *domain.Recipe) RecipeDetail {
	return RecipeDetail{
		ID:              recipe.ID,
		Title:           recipe.Title,
		Slug:            recipe.Slug,
		Description:     recipe.Description,
		DurationMinutes: recipe.DurationMinutes,
		Price:           recipe.Price.StringFixed(2),
		Link:            recipe.Link,
	}
}
