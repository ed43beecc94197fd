package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gigspace/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type Task struct {
	ID                   int64     `db:"id"`
	Title                string    `db:"title"`
	Description          string    `db:"description"`
	Type                 string    `db:"type"`
	RewardAmount         int       `db:"reward_amount"`
	RequiresVerification bool      `db:"requires_verification"`
	IsActive             bool      `db:"is_active"`
	CreatedAt            time.Time `db:"created_at"`
}

func (t *Task) toModel() *model.Task {
	return &model.Task{
		ID:                   t.ID,
		Title:                t.Title,
		Description:          t.Description,
		Type:                 t.Type,
		Reward:               t.RewardAmount,
		RequiresVerification: t.RequiresVerification,
		IsActive:             t.IsActive,
		CreatedAt:            t.CreatedAt,
	}
}

func (r *Repository) GetActiveTasks(ctx context.Context) ([]*model.Task, error) {
	var tasks []Task

	query, args, err := squirrel.
		Select("*").
		From("tasks").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.SelectContext(ctx, &tasks, query, args...)
	if err != nil {
		return nil, err
	}

	taskList := make([]*model.Task, len(tasks))
	for i := range tasks {
		taskList[i] = tasks[i].toModel()
	}

	return taskList, nil
}

func (r *Repository) GetTaskByID(ctx context.Context, taskID int64) (*model.Task, error) {
	var task Task

	query, args, err := squirrel.
		Select("*").
		From("tasks").
		Where(squirrel.Eq{"id": taskID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &task, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return task.toModel(), nil
}

// CompleteTask records the completion and credits the reward atomically.
// The unique (user_id, task_id) pair makes repeat completion impossible.
func (r *Repository) CompleteTask(ctx context.Context, userID int64, task *model.Task) (int, error) {
	var newBalance int
	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		completedQuery, completedArgs, err := squirrel.
			Select("1").
			From("user_tasks").
			Where(squirrel.Eq{"user_id": userID, "task_id": task.ID}).
			Limit(1).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		var one int
		err = tx.GetContext(ctx, &one, completedQuery, completedArgs...)
		if err == nil {
			return ErrTaskCompleted
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		insertQuery, insertArgs, err := squirrel.
			Insert("user_tasks").
			SetMap(map[string]interface{}{
				"user_id":      userID,
				"task_id":      task.ID,
				"completed_at": time.Now().UTC(),
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, insertQuery, insertArgs...)
		if err != nil {
			return fmt.Errorf("failed to record task completion: %w", err)
		}

		newBalance, err = r.creditWithTx(ctx, tx, userID, task.Reward, model.TransactionEarn,
			fmt.Sprintf("Task: %s", task.Title))
		return err
	})
	if err != nil {
		return 0, err
	}

	return newBalance, nil
}
