package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"gigspace/internal/service"
	"gigspace/pkg/auth"
	"gigspace/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type dailyBonusRoutes struct {
	ds service.DailyBonusServiceI
}

func NewDailyBonusRoutes(handler *gin.RouterGroup, ds service.DailyBonusServiceI, a *auth.SessionAuth) {
	r := &dailyBonusRoutes{ds: ds}
	h := handler.Group("/users")
	h.Use(a.SessionMiddleware())
	{
		h.GET("/daily-bonus", r.GetStatus)
		h.POST("/claim-daily", r.Claim)
	}
}

type DailyBonusStatusResponse struct {
	LastClaimedAt      *time.Time `json:"last_claimed_at,omitempty"`
	NextClaimAvailable *time.Time `json:"next_claim_available,omitempty"`
	IsAvailable        bool       `json:"is_available"`
	Streak             int        `json:"streak"`
}

func (r *dailyBonusRoutes) GetStatus(c *gin.Context) {
	log := logger.Logger()

	userID, ok := auth.UserID(c)
	if !ok {
		log.Error("user id not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
		return
	}

	status, err := r.ds.GetStatus(c.Request.Context(), userID)
	if err != nil {
		log.Error("failed to get daily bonus status", zap.Error(err))
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to get daily bonus status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status": DailyBonusStatusResponse{
			LastClaimedAt:      status.LastClaimedAt,
			NextClaimAvailable: status.NextClaimAvailable,
			IsAvailable:        status.IsAvailable,
			Streak:             status.Streak,
		},
	})
}

func (r *dailyBonusRoutes) Claim(c *gin.Context) {
	log := logger.Logger()

	userID, ok := auth.UserID(c)
	if !ok {
		log.Error("user id not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
		return
	}

	claim, err := r.ds.Claim(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClaimNotAvailable):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Daily bonus not ready yet"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "user not found"})
		default:
			log.Error("failed to claim daily bonus", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to claim daily bonus"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     fmt.Sprintf("Claimed %d GC! Streak: %d days", claim.Amount, claim.Streak),
		"amount":      claim.Amount,
		"streak":      claim.Streak,
		"new_balance": claim.NewBalance,
	})
}
