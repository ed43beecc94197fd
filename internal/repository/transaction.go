package repository

import (
	"context"
	"time"

	"gigspace/internal/model"

	"github.com/Masterminds/squirrel"
)

type Transaction struct {
	ID           int64     `db:"id"`
	UserID       int64     `db:"user_id"`
	Amount       int       `db:"amount"`
	Type         string    `db:"type"`
	Description  string    `db:"description"`
	BalanceAfter int       `db:"balance_after"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r *Repository) GetUserTransactions(ctx context.Context, userID int64, limit int) ([]*model.Transaction, error) {
	var transactions []Transaction

	query, args, err := squirrel.
		Select("*").
		From("transactions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.SelectContext(ctx, &transactions, query, args...)
	if err != nil {
		return nil, err
	}

	txList := make([]*model.Transaction, len(transactions))
	for i, t := range transactions {
		txList[i] = &model.Transaction{
			ID:           t.ID,
			UserID:       t.UserID,
			Amount:       t.Amount,
			Type:         t.Type,
			Description:  t.Description,
			BalanceAfter: t.BalanceAfter,
			CreatedAt:    t.CreatedAt,
		}
	}

	return txList, nil
}
