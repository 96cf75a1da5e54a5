package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meal-planner/internal/mealplan"
)

// MealPlanHandler serves the meal plan CRUD endpoints.
type MealPlanHandler struct {
	repo *mealplan.Repository
}

// NewMealPlanHandler creates a new MealPlanHandler.
func NewMealPlanHandler(repo *mealplan.Repository) *MealPlanHandler {
	return &MealPlanHandler{repo: repo}
}

type mealPlanCreateRequest struct {
	Date        mealplan.Date `json:"date" binding:"required"`
	MealTypeID  int64         `json:"mealTypeId" binding:"required"`
	RecipeID    int64         `json:"recipeId" binding:"required"`
	PeopleCount int           `json:"peopleCount" binding:"required"`
}

type mealPlanUpdateRequest struct {
	PeopleCount int `json:"peopleCount" binding:"required"`
}

func (h *MealPlanHandler) List(c *gin.Context) {
	plans, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if plans == nil {
		plans = []mealplan.MealPlan{}
	}
	c.JSON(http.StatusOK, plans)
}

func (h *MealPlanHandler) Create(c *gin.Context) {
	var payload mealPlanCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	plan, err := h.repo.Create(c.Request.Context(), mealplan.MealPlan{
		Date:        payload.Date,
		MealTypeID:  payload.MealTypeID,
		RecipeID:    payload.RecipeID,
		PeopleCount: payload.PeopleCount,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *MealPlanHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var payload mealPlanUpdateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	plan, err := h.repo.UpdatePeopleCount(c.Request.Context(), id, payload.PeopleCount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *MealPlanHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
