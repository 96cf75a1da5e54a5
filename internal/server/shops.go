package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meal-planner/internal/catalog"
)

// ShopHandler serves the shop CRUD endpoints.
type ShopHandler struct {
	repo *catalog.Repository
}

// NewShopHandler creates a new ShopHandler.
func NewShopHandler(repo *catalog.Repository) *ShopHandler {
	return &ShopHandler{repo: repo}
}

type shopRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *ShopHandler) List(c *gin.Context) {
	shops, err := h.repo.ListShops(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if shops == nil {
		shops = []catalog.Shop{}
	}
	c.JSON(http.StatusOK, shops)
}

func (h *ShopHandler) Create(c *gin.Context) {
	var payload shopRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	shop, err := h.repo.CreateShop(c.Request.Context(), payload.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shop)
}

func (h *ShopHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.repo.DeleteShop(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
