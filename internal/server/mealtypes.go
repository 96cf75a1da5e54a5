package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meal-planner/internal/catalog"
)

// MealTypeHandler serves the meal type CRUD endpoints.
type MealTypeHandler struct {
	repo *catalog.Repository
}

// NewMealTypeHandler creates a new MealTypeHandler.
func NewMealTypeHandler(repo *catalog.Repository) *MealTypeHandler {
	return &MealTypeHandler{repo: repo}
}

type mealTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *MealTypeHandler) List(c *gin.Context) {
	mealTypes, err := h.repo.ListMealTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if mealTypes == nil {
		mealTypes = []catalog.MealType{}
	}
	c.JSON(http.StatusOK, mealTypes)
}

func (h *MealTypeHandler) Create(c *gin.Context) {
	var payload mealTypeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	mealType, err := h.repo.CreateMealType(c.Request.Context(), payload.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mealType)
}

func (h *MealTypeHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var payload mealTypeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	mealType, err := h.repo.UpdateMealType(c.Request.Context(), id, payload.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mealType)
}

func (h *MealTypeHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.repo.DeleteMealType(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
