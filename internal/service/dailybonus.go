package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gigspace/internal/model"
	"gigspace/internal/repository"
)

const (
	// ClaimCooldown is the minimum gap between daily claims; a streak
	// survives as long as the next claim lands inside StreakWindow.
	ClaimCooldown = 24 * time.Hour
	StreakWindow  = 48 * time.Hour

	DailyReward  = 1
	WeeklyReward = 10
)

type DailyBonusService struct {
	repo     DailyBonusRepository
	notifier BalanceNotifier
}

func NewDailyBonusService(repo DailyBonusRepository, notifier BalanceNotifier) *DailyBonusService {
	return &DailyBonusService{
		repo:     repo,
		notifier: notifier,
	}
}

func (s *DailyBonusService) GetStatus(ctx context.Context, userID int64) (*model.DailyBonusStatus, error) {
	status, err := s.repo.GetDailyBonusStatus(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	hasNeverBeenClaimed := status.LastClaimedAt == nil

	out := &model.DailyBonusStatus{
		UserID:              userID,
		LastClaimedAt:       status.LastClaimedAt,
		Streak:              status.Streak,
		HasNeverBeenClaimed: hasNeverBeenClaimed,
	}

	if hasNeverBeenClaimed {
		out.IsAvailable = true
		return out, nil
	}

	nextClaimAvailable := status.LastClaimedAt.Add(ClaimCooldown)
	out.NextClaimAvailable = &nextClaimAvailable
	out.IsAvailable = !now.Before(nextClaimAvailable)

	return out, nil
}

// RewardFor returns the bonus paid on the given streak day: every seventh
// consecutive day pays the weekly reward, all others the base daily reward.
func RewardFor(streak int) int {
	if streak%7 == 0 {
		return WeeklyReward
	}
	return DailyReward
}

func (s *DailyBonusService) Claim(ctx context.Context, userID int64) (*model.DailyBonusClaim, error) {
	status, err := s.GetStatus(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !status.IsAvailable {
		return nil, ErrClaimNotAvailable
	}

	now := time.Now().UTC()

	newStreak := 1
	if status.LastClaimedAt != nil && now.Sub(*status.LastClaimedAt) < StreakWindow {
		newStreak = status.Streak + 1
	}

	amount := RewardFor(newStreak)

	newBalance, err := s.repo.ApplyDailyBonus(ctx, userID, amount, newStreak, now, ClaimCooldown,
		fmt.Sprintf("Daily Login Bonus (Day %d)", newStreak))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrClaimNotReady):
			// A concurrent claim won the row lock first.
			return nil, ErrClaimNotAvailable
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.PublishBalance(userID, newBalance, "daily_bonus")
	}

	return &model.DailyBonusClaim{
		Amount:     amount,
		Streak:     newStreak,
		NewBalance: newBalance,
	}, nil
}
