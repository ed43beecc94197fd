package service

import (
	"context"
	"errors"
	"fmt"

	"gigspace/internal/model"
	"gigspace/internal/repository"
)

type TaskService struct {
	repo     TaskRepository
	notifier BalanceNotifier
}

func NewTaskService(repo TaskRepository, notifier BalanceNotifier) *TaskService {
	return &TaskService{
		repo:     repo,
		notifier: notifier,
	}
}

func (s *TaskService) GetActiveTasks(ctx context.Context) ([]*model.Task, error) {
	tasks, err := s.repo.GetActiveTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) Complete(ctx context.Context, userID, taskID int64) (*model.TaskCompletion, error) {
	task, err := s.repo.GetTaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	newBalance, err := s.repo.CompleteTask(ctx, userID, task)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTaskCompleted):
			return nil, ErrTaskAlreadyCompleted
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.PublishBalance(userID, newBalance, "task_reward")
	}

	return &model.TaskCompletion{
		TaskID:     taskID,
		Amount:     task.Reward,
		NewBalance: newBalance,
	}, nil
}
