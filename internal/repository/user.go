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

type User struct {
	ID                int64      `db:"id"`
	Username          string     `db:"username"`
	Email             string     `db:"email"`
	PasswordHash      string     `db:"password_hash"`
	Role              string     `db:"role"`
	Balance           int        `db:"balance"`
	DailyStreak       int        `db:"daily_streak"`
	LastDailyClaim    *time.Time `db:"last_daily_claim"`
	HasClaimedWelcome bool       `db:"has_claimed_welcome"`
	AvatarURL         string     `db:"avatar_url"`
	CreatedAt         time.Time  `db:"created_at"`
}

func (u *User) toModel() *model.User {
	return &model.User{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		PasswordHash:      u.PasswordHash,
		Role:              u.Role,
		Balance:           u.Balance,
		DailyStreak:       u.DailyStreak,
		LastDailyClaim:    u.LastDailyClaim,
		HasClaimedWelcome: u.HasClaimedWelcome,
		AvatarURL:         u.AvatarURL,
		CreatedAt:         u.CreatedAt,
	}
}

func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		taken, err := r.userExistsWithTx(ctx, tx, squirrel.Eq{"email": user.Email})
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return ErrEmailTaken
		}

		taken, err = r.userExistsWithTx(ctx, tx, squirrel.Eq{"username": user.Username})
		if err != nil {
			return fmt.Errorf("failed to check username: %w", err)
		}
		if taken {
			return ErrUsernameTaken
		}

		query, args, err := squirrel.
			Insert("users").
			SetMap(map[string]interface{}{
				"username":            user.Username,
				"email":               user.Email,
				"password_hash":       user.PasswordHash,
				"role":                user.Role,
				"balance":             user.Balance,
				"daily_streak":        user.DailyStreak,
				"has_claimed_welcome": user.HasClaimedWelcome,
				"avatar_url":          user.AvatarURL,
				"created_at":          user.CreatedAt,
			}).
			Suffix("RETURNING id").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build user insert query: %w", err)
		}

		err = tx.GetContext(ctx, &user.ID, query, args...)
		if err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}

		return nil
	})
}

func (r *Repository) userExistsWithTx(ctx context.Context, tx *sqlx.Tx, cond squirrel.Eq) (bool, error) {
	query, args, err := squirrel.
		Select("1").
		From("users").
		Where(cond).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, err
	}

	var one int
	err = tx.GetContext(ctx, &one, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (r *Repository) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	var user User
	query, args, err := squirrel.
		Select("*").
		From("users").
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &user, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user.toModel(), nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user User
	query, args, err := squirrel.
		Select("*").
		From("users").
		Where(squirrel.Eq{"email": email}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &user, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user.toModel(), nil
}

func (r *Repository) getUserWithTx(ctx context.Context, tx *sqlx.Tx, userID int64) (*model.User, error) {
	var user User
	query, args, err := squirrel.
		Select("*").
		From("users").
		Where(squirrel.Eq{"id": userID}).
		Suffix("FOR UPDATE").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = tx.GetContext(ctx, &user, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user.toModel(), nil
}

// creditWithTx applies a signed balance delta and records the matching
// ledger row. Callers are responsible for funds checks.
func (r *Repository) creditWithTx(ctx context.Context, tx *sqlx.Tx, userID int64, amount int, txType, description string) (int, error) {
	var newBalance int
	updateQuery, updateArgs, err := squirrel.
		Update("users").
		Set("balance", squirrel.Expr("balance + ?", amount)).
		Where(squirrel.Eq{"id": userID}).
		Suffix("RETURNING balance").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	err = tx.GetContext(ctx, &newBalance, updateQuery, updateArgs...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	insertQuery, insertArgs, err := squirrel.
		Insert("transactions").
		SetMap(map[string]interface{}{
			"user_id":       userID,
			"amount":        amount,
			"type":          txType,
			"description":   description,
			"balance_after": newBalance,
			"created_at":    time.Now().UTC(),
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx, insertQuery, insertArgs...)
	if err != nil {
		return 0, err
	}

	return newBalance, nil
}

func (r *Repository) CreditBalance(ctx context.Context, userID int64, amount int, txType, description string) (int, error) {
	var newBalance int
	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		var err error
		newBalance, err = r.creditWithTx(ctx, tx, userID, amount, txType, description)
		return err
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}

// SetWelcomeClaimed flips the welcome flag and credits the bonus in one
// transaction. The user row is locked and the flag re-checked under the
// lock so the bonus pays out at most once.
func (r *Repository) SetWelcomeClaimed(ctx context.Context, userID int64, amount int, description string) (int, error) {
	var newBalance int
	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		user, err := r.getUserWithTx(ctx, tx, userID)
		if err != nil {
			return err
		}

		if user.HasClaimedWelcome {
			return ErrWelcomeClaimed
		}

		updateQuery, updateArgs, err := squirrel.
			Update("users").
			Set("has_claimed_welcome", true).
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

func (r *Repository) GetTopUsers(ctx context.Context, limit int) ([]*model.User, error) {
	var users []User

	query, args, err := squirrel.
		Select("id", "username", "balance", "avatar_url").
		From("users").
		OrderBy("balance DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.SelectContext(ctx, &users, query, args...)
	if err != nil {
		return nil, err
	}

	userList := make([]*model.User, len(users))
	for i, user := range users {
		userList[i] = &model.User{
			ID:        user.ID,
			Username:  user.Username,
			Balance:   user.Balance,
			AvatarURL: user.AvatarURL,
		}
	}

	return userList, nil
}
