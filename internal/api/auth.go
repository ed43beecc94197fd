package api

import (
	"errors"
	"net/http"
	"strings"

	"gigspace/internal/repository"
	"gigspace/internal/service"
	"gigspace/pkg/auth"
	"gigspace/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type authRoutes struct {
	us service.UserServiceI
	a  *auth.SessionAuth
}

func NewAuthRoutes(handler *gin.RouterGroup, us service.UserServiceI, a *auth.SessionAuth) {
	r := &authRoutes{us: us, a: a}
	h := handler.Group("/auth")
	{
		h.POST("/signup", r.Signup)
		h.POST("/login", r.Login)
	}

	authed := handler.Group("/auth")
	authed.Use(a.SessionMiddleware())
	{
		authed.POST("/logout", r.Logout)
	}
}

type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r *authRoutes) Signup(c *gin.Context) {
	log := logger.Logger()

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}

	user, err := r.us.Signup(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		log.Error("failed to sign up user", zap.Error(err))
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email already registered"})
		case errors.Is(err, repository.ErrUsernameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username already taken"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to create account"})
		}
		return
	}

	token := r.a.CreateSession(user.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Account created successfully",
		"token":   token,
		"user":    userPayload(user),
	})
}

func (r *authRoutes) Login(c *gin.Context) {
	log := logger.Logger()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}

	user, err := r.us.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
			return
		}
		log.Error("failed to log in user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to log in"})
		return
	}

	token := r.a.CreateSession(user.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    userPayload(user),
	})
}

func (r *authRoutes) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if token, found := strings.CutPrefix(authHeader, "Bearer "); found {
		r.a.RevokeSession(token)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}
