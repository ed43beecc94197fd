package api

import (
	"errors"
	"fmt"
	"net/http"

	"gigspace/internal/middleware"
	"gigspace/internal/service"
	"gigspace/pkg/auth"
	"gigspace/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

const defaultMintAmount = 1000

type adminRoutes struct {
	us service.UserServiceI
}

func NewAdminRoutes(handler *gin.RouterGroup, us service.UserServiceI, a *auth.SessionAuth, authz *middleware.Authorization) {
	r := &adminRoutes{us: us}
	h := handler.Group("/admin")
	h.Use(a.SessionMiddleware())
	h.Use(authz.AdminOnly())
	{
		h.POST("/mint", r.MintCoins)
	}
}

type MintRequest struct {
	Amount int `json:"amount"`
}

func (r *adminRoutes) MintCoins(c *gin.Context) {
	log := logger.Logger()

	userID, ok := auth.UserID(c)
	if !ok {
		log.Error("user id not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
		return
	}

	req := MintRequest{Amount: defaultMintAmount}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Error("failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
			return
		}
	}

	newBalance, err := r.us.MintCoins(c.Request.Context(), userID, req.Amount)
	if err != nil {
		log.Error("failed to mint coins", zap.Error(err))
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to mint coins"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     fmt.Sprintf("Minted %d GC", req.Amount),
		"new_balance": newBalance,
	})
}
