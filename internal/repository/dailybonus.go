package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gigspace/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type dailyBonusRow struct {
	UserID         int64      `db:"id"`
	LastDailyClaim *time.Time `db:"last_daily_claim"`
	DailyStreak    int        `db:"daily_streak"`
}

func (r *Repository) GetDailyBonusStatus(ctx context.Context, userID int64) (*model.DailyBonusStatus, error) {
	var row dailyBonusRow

	query, args, err := squirrel.
		Select("id", "last_daily_claim", "daily_streak").
		From("users").
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &model.DailyBonusStatus{
		UserID:        row.UserID,
		LastClaimedAt: row.LastDailyClaim,
		Streak:        row.DailyStreak,
	}, nil
}

// ApplyDailyBonus credits the bonus, advances the streak and stamps the
// claim time in a single transaction, mirroring the ledger on the way.
// The user row is locked first and the cooldown re-checked under the
// lock, so concurrent claims serialize and the loser gets
// ErrClaimNotReady instead of a second credit.
func (r *Repository) ApplyDailyBonus(ctx context.Context, userID int64, amount, streak int, claimedAt time.Time, cooldown time.Duration, description string) (int, error) {
	var newBalance int
	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		user, err := r.getUserWithTx(ctx, tx, userID)
		if err != nil {
			return err
		}

		if user.LastDailyClaim != nil && claimedAt.Sub(*user.LastDailyClaim) < cooldown {
			return ErrClaimNotReady
		}

		updateQuery, updateArgs, err := squirrel.
			Update("users").
			SetMap(map[string]interface{}{
				"daily_streak":     streak,
				"last_daily_claim": claimedAt,
			}).
			Where(squirrel.Eq{"id": userID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, updateQuery, updateArgs...)
		if err != nil {
			return err
		}

		newBalance, err = r.creditWithTx(ctx, tx, userID, amount, model.TransactionBonus, description)
		return err
	})
	if err != nil {
		return 0, err
	}

	return newBalance, nil
}
