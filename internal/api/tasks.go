package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"gigspace/internal/model"
	"gigspace/internal/service"
	"gigspace/pkg/auth"
	"gigspace/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type taskRoutes struct {
	ts service.TaskServiceI
}

func NewTaskRoutes(handler *gin.RouterGroup, ts service.TaskServiceI, a *auth.SessionAuth) {
	r := &taskRoutes{ts: ts}
	h := handler.Group("/tasks")
	h.Use(a.SessionMiddleware())
	{
		h.GET("", r.GetTasks)
		h.POST("/:task_id/complete", r.CompleteTask)
	}
}

type TaskResponse struct {
	ID                   int64  `json:"id"`
	Title                string `json:"title"`
	Description          string `json:"description"`
	Type                 string `json:"type"`
	Reward               int    `json:"reward"`
	RequiresVerification bool   `json:"requires_verification"`
}

func taskPayload(task *model.Task) TaskResponse {
	return TaskResponse{
		ID:                   task.ID,
		Title:                task.Title,
		Description:          task.Description,
		Type:                 task.Type,
		Reward:               task.Reward,
		RequiresVerification: task.RequiresVerification,
	}
}

func (r *taskRoutes) GetTasks(c *gin.Context) {
	log := logger.Logger()

	tasks, err := r.ts.GetActiveTasks(c.Request.Context())
	if err != nil {
		log.Error("failed to get tasks", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to get tasks"})
		return
	}

	out := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		out[i] = taskPayload(task)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tasks":   out,
	})
}

func (r *taskRoutes) CompleteTask(c *gin.Context) {
	log := logger.Logger()

	userID, ok := auth.UserID(c)
	if !ok {
		log.Error("user id not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
		return
	}

	taskID, err := strconv.ParseInt(c.Param("task_id"), 10, 64)
	if err != nil {
		log.Error("failed to parse task_id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid task_id"})
		return
	}

	completion, err := r.ts.Complete(c.Request.Context(), userID, taskID)
	if err != nil {
		log.Error("failed to complete task", zap.Error(err))
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "task not found"})
		case errors.Is(err, service.ErrTaskAlreadyCompleted):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Task already completed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to complete task"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     fmt.Sprintf("Earned +%d GC", completion.Amount),
		"amount":      completion.Amount,
		"new_balance": completion.NewBalance,
	})
}
