package api

import (
	"errors"
	"fmt"
	"net/http"

	"gigspace/internal/model"
	"gigspace/internal/service"
	"gigspace/pkg/auth"
	"gigspace/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type userRoutes struct {
	us service.UserServiceI
}

func NewUserRoutes(handler *gin.RouterGroup, us service.UserServiceI, a *auth.SessionAuth) {
	r := &userRoutes{us: us}
	h := handler.Group("/users")
	h.Use(a.SessionMiddleware())
	{
		h.GET("/profile", r.GetProfile)
		h.POST("/claim-welcome", r.ClaimWelcomeBonus)
		h.GET("/leaderboard", r.GetLeaderboard)
	}
}

type UserResponse struct {
	ID                int64  `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	Role              string `json:"role"`
	Balance           int    `json:"balance"`
	DailyStreak       int    `json:"daily_streak"`
	HasClaimedWelcome bool   `json:"has_claimed_welcome"`
	AvatarURL         string `json:"avatar_url"`
	LastDailyClaim    int64  `json:"last_daily_claim"`
}

// userPayload serializes last_daily_claim as unix millis with 0 meaning
// "never claimed", which is what the claim controller keys off.
func userPayload(user *model.User) UserResponse {
	var lastClaim int64
	if user.LastDailyClaim != nil {
		lastClaim = user.LastDailyClaim.UnixMilli()
	}

	return UserResponse{
		ID:                user.ID,
		Username:          user.Username,
		Email:             user.Email,
		Role:              user.Role,
		Balance:           user.Balance,
		DailyStreak:       user.DailyStreak,
		HasClaimedWelcome: user.HasClaimedWelcome,
		AvatarURL:         user.AvatarURL,
		LastDailyClaim:    lastClaim,
	}
}

func (r *userRoutes) GetProfile(c *gin.Context) {
	log := logger.Logger()

	userID, ok := auth.UserID(c)
	if !ok {
		log.Error("user id not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
		return
	}

	user, err := r.us.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		log.Error("failed to get user", zap.Error(err))
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    userPayload(user),
	})
}

func (r *userRoutes) ClaimWelcomeBonus(c *gin.Context) {
	log := logger.Logger()

	userID, ok := auth.UserID(c)
	if !ok {
		log.Error("user id not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
		return
	}

	newBalance, err := r.us.ClaimWelcomeBonus(c.Request.Context(), userID)
	if err != nil {
		log.Error("failed to claim welcome bonus", zap.Error(err))
		switch {
		case errors.Is(err, service.ErrWelcomeAlreadyClaimed):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Welcome bonus already claimed"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to claim welcome bonus"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     fmt.Sprintf("Welcome bonus claimed! +%d GC", service.WelcomeBonus),
		"new_balance": newBalance,
	})
}

type LeaderboardEntryResponse struct {
	Rank      int    `json:"rank"`
	Username  string `json:"username"`
	Coins     int    `json:"coins"`
	AvatarURL string `json:"avatar_url"`
}

func (r *userRoutes) GetLeaderboard(c *gin.Context) {
	log := logger.Logger()

	entries, err := r.us.GetLeaderboard(c.Request.Context())
	if err != nil {
		log.Error("failed to get leaderboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to get leaderboard"})
		return
	}

	out := make([]LeaderboardEntryResponse, len(entries))
	for i, entry := range entries {
		out[i] = LeaderboardEntryResponse{
			Rank:      entry.Rank,
			Username:  entry.Username,
			Coins:     entry.Balance,
			AvatarURL: entry.AvatarURL,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"leaderboard": out,
	})
}
