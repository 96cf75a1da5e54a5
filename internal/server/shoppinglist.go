package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"meal-planner/internal/apperr"
	"meal-planner/internal/mealplan"
	"meal-planner/internal/shopping"
)

// ShoppingHandler serves the shopping list endpoints.
type ShoppingHandler struct {
	svc *shopping.Service
}

// NewShoppingHandler creates a new ShoppingHandler.
func NewShoppingHandler(svc *shopping.Service) *ShoppingHandler {
	return &ShoppingHandler{svc: svc}
}

// GetList builds the consolidated shopping list. Accepts optional
// "untilDate" (YYYY-MM-DD) and "shopId" query parameters.
func (h *ShoppingHandler) GetList(c *gin.Context) {
	var until *mealplan.Date
	if raw := c.Query("untilDate"); raw != "" {
		parsed, err := mealplan.ParseDate(raw)
		if err != nil {
			respondError(c, apperr.InvalidArgument("untilDate must be YYYY-MM-DD"))
			return
		}
		until = &parsed
	}

	var shopID *int64
	if raw := c.Query("shopId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, apperr.InvalidArgument("shopId must be an integer"))
			return
		}
		shopID = &parsed
	}

	list, err := h.svc.BuildShoppingList(c.Request.Context(), until, shopID)
	if err != nil {
		respondError(c, err)
		return
	}
	if list.Items == nil {
		list.Items = []shopping.ListItem{}
	}
	c.JSON(http.StatusOK, list)
}

type customItemRequest struct {
	Name     string           `json:"name" binding:"required"`
	Category *string          `json:"category"`
	Quantity *decimal.Decimal `json:"quantity"`
	Unit     *string          `json:"unit"`
}

func (h *ShoppingHandler) AddCustomItem(c *gin.Context) {
	var payload customItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := h.svc.AddCustomItem(c.Request.Context(), shopping.CustomItem{
		Name:     payload.Name,
		Category: payload.Category,
		Quantity: payload.Quantity,
		Unit:     payload.Unit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ShoppingHandler) DeleteCustomItem(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.svc.RemoveCustomItem(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type toggleRequest struct {
	ItemKey string `json:"item_key" binding:"required"`
	Checked bool   `json:"checked"`
}

func (h *ShoppingHandler) Toggle(c *gin.Context) {
	var payload toggleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.svc.ToggleItem(c.Request.Context(), payload.ItemKey, payload.Checked); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

type learnOrderRequest struct {
	ShopID   int64    `json:"shopId" binding:"required"`
	ItemKeys []string `json:"itemKeys"`
}

func (h *ShoppingHandler) LearnOrder(c *gin.Context) {
	var payload learnOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.svc.LearnOrder(c.Request.Context(), payload.ShopID, payload.ItemKeys); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "learned"})
}
