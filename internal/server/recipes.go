package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"meal-planner/internal/catalog"
	"meal-planner/internal/clipper"
)

// RecipeHandler serves the recipe CRUD endpoints and the web clipper.
type RecipeHandler struct {
	repo    *catalog.Repository
	clipper *clipper.Clipper
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(repo *catalog.Repository, clip *clipper.Clipper) *RecipeHandler {
	return &RecipeHandler{repo: repo, clipper: clip}
}

type recipeIngredientRequest struct {
	IngredientID int64           `json:"ingredient_id" binding:"required"`
	Amount       decimal.Decimal `json:"amount"`
	Unit         string          `json:"unit"`
	SortOrder    int             `json:"sort_order"`
}

type recipeRequest struct {
	Name         string                    `json:"name" binding:"required"`
	Description  string                    `json:"description"`
	PeopleAmount int                       `json:"peopleAmount" binding:"required"`
	Steps        []string                  `json:"steps"`
	Ingredients  []recipeIngredientRequest `json:"ingredients"`
}

func (p recipeRequest) toRecipe() catalog.Recipe {
	rec := catalog.Recipe{
		Name:         p.Name,
		Description:  p.Description,
		PeopleAmount: p.PeopleAmount,
		Steps:        p.Steps,
	}
	if rec.Steps == nil {
		rec.Steps = []string{}
	}
	for _, line := range p.Ingredients {
		rec.Ingredients = append(rec.Ingredients, catalog.RecipeIngredient{
			IngredientID: line.IngredientID,
			Amount:       line.Amount,
			Unit:         line.Unit,
			SortOrder:    line.SortOrder,
		})
	}
	return rec
}

func (h *RecipeHandler) List(c *gin.Context) {
	recipes, err := h.repo.ListRecipes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if recipes == nil {
		recipes = []catalog.Recipe{}
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	recipe, err := h.repo.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if recipe == nil {
		c.JSON(http.StatusNotFound, errorBody{Message: "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) Create(c *gin.Context) {
	var payload recipeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	recipe, err := h.repo.CreateRecipe(c.Request.Context(), payload.toRecipe())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var payload recipeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	recipe, err := h.repo.UpdateRecipe(c.Request.Context(), id, payload.toRecipe())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.repo.DeleteRecipe(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type clipRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// Clip fetches a recipe page and returns an extracted draft.
func (h *RecipeHandler) Clip(c *gin.Context) {
	var payload clipRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	draft, err := h.clipper.ClipURL(c.Request.Context(), payload.URL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}
