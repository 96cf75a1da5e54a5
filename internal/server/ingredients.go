package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"meal-planner/internal/apperr"
	"meal-planner/internal/catalog"
)

// IngredientHandler serves the ingredient CRUD endpoints.
type IngredientHandler struct {
	repo *catalog.Repository
}

// NewIngredientHandler creates a new IngredientHandler.
func NewIngredientHandler(repo *catalog.Repository) *IngredientHandler {
	return &IngredientHandler{repo: repo}
}

type ingredientRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required"`
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperr.InvalidArgument("invalid id")
	}
	return id, nil
}

func (h *IngredientHandler) List(c *gin.Context) {
	ingredients, err := h.repo.ListIngredients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if ingredients == nil {
		ingredients = []catalog.Ingredient{}
	}
	c.JSON(http.StatusOK, ingredients)
}

func (h *IngredientHandler) Create(c *gin.Context) {
	var payload ingredientRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	ingredient, err := h.repo.CreateIngredient(c.Request.Context(), payload.Name, payload.Category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *IngredientHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var payload ingredientRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	ingredient, err := h.repo.UpdateIngredient(c.Request.Context(), id, payload.Name, payload.Category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *IngredientHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.repo.DeleteIngredient(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
