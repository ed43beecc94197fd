package api

import (
	"net/http"
	"time"

	"gigspace/internal/model"
	"gigspace/internal/service"
	"gigspace/pkg/auth"
	"gigspace/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type transactionRoutes struct {
	us service.UserServiceI
}

func NewTransactionRoutes(handler *gin.RouterGroup, us service.UserServiceI, a *auth.SessionAuth) {
	r := &transactionRoutes{us: us}
	h := handler.Group("/transactions")
	h.Use(a.SessionMiddleware())
	{
		h.GET("", r.GetTransactions)
	}
}

type TransactionResponse struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Amount      int    `json:"amount"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
	Status      string `json:"status"`
}

func transactionPayload(t *model.Transaction) TransactionResponse {
	direction := "EARN"
	amount := t.Amount
	if amount < 0 {
		direction = "SPEND"
		amount = -amount
	}

	return TransactionResponse{
		ID:          t.ID,
		Type:        direction,
		Amount:      amount,
		Description: t.Description,
		Timestamp:   t.CreatedAt.Format(time.DateTime),
		Status:      "COMPLETED",
	}
}

func (r *transactionRoutes) GetTransactions(c *gin.Context) {
	log := logger.Logger()

	userID, ok := auth.UserID(c)
	if !ok {
		log.Error("user id not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
		return
	}

	transactions, err := r.us.GetTransactions(c.Request.Context(), userID)
	if err != nil {
		log.Error("failed to get transactions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to get transactions"})
		return
	}

	out := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		out[i] = transactionPayload(t)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"transactions": out,
	})
}
