package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"gigspace/internal/service"
	"gigspace/pkg/auth"
	"gigspace/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type shopRoutes struct {
	ss service.ShopServiceI
}

func NewShopRoutes(handler *gin.RouterGroup, ss service.ShopServiceI, a *auth.SessionAuth) {
	r := &shopRoutes{ss: ss}
	h := handler.Group("/shop")
	h.Use(a.SessionMiddleware())
	{
		h.GET("/items", r.GetItems)
		h.POST("/purchase/:item_id", r.PurchaseItem)
	}
}

type ShopItemResponse struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       int      `json:"price"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	ImageURL    string   `json:"image_url"`
}

type PurchaseRequest struct {
	Quantity int `json:"quantity"`
}

func (r *shopRoutes) GetItems(c *gin.Context) {
	log := logger.Logger()

	items, err := r.ss.GetActiveItems(c.Request.Context())
	if err != nil {
		log.Error("failed to get shop items", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to get shop items"})
		return
	}

	out := make([]ShopItemResponse, len(items))
	for i, item := range items {
		out[i] = ShopItemResponse{
			ID:          item.ID,
			Title:       item.Title,
			Description: item.Description,
			Price:       item.Price,
			Category:    item.Category,
			Tags:        item.Tags,
			ImageURL:    item.ImageURL,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"items":   out,
	})
}

func (r *shopRoutes) PurchaseItem(c *gin.Context) {
	log := logger.Logger()

	userID, ok := auth.UserID(c)
	if !ok {
		log.Error("user id not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
		return
	}

	itemID, err := strconv.ParseInt(c.Param("item_id"), 10, 64)
	if err != nil {
		log.Error("failed to parse item_id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid item_id"})
		return
	}

	req := PurchaseRequest{Quantity: 1}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Error("failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
			return
		}
	}

	result, err := r.ss.Purchase(c.Request.Context(), userID, itemID, req.Quantity)
	if err != nil {
		var insufficientErr *service.InsufficientBalanceError
		switch {
		case errors.As(err, &insufficientErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": fmt.Sprintf("Insufficient balance. Need %d more GC", insufficientErr.Shortfall),
			})
		case errors.Is(err, service.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "item not found"})
		case errors.Is(err, service.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid quantity"})
		default:
			log.Error("failed to purchase item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to purchase item"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Purchase successful!",
		"new_balance": result.NewBalance,
	})
}
