package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gigspace/internal/model"
	"gigspace/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const (
	WelcomeBonus = 50

	leaderboardSize  = 100
	transactionLimit = 50
)

type UserService struct {
	repo     UserRepository
	notifier BalanceNotifier
}

func NewUserService(repo UserRepository, notifier BalanceNotifier) *UserService {
	return &UserService{
		repo:     repo,
		notifier: notifier,
	}
}

func (s *UserService) Signup(ctx context.Context, username, email, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleMember,
		AvatarURL:    fmt.Sprintf("https://i.pravatar.cc/300?u=%s", email),
		CreatedAt:    time.Now().UTC(),
	}

	err = s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *UserService) ClaimWelcomeBonus(ctx context.Context, userID int64) (int, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	if user.HasClaimedWelcome {
		return 0, ErrWelcomeAlreadyClaimed
	}

	newBalance, err := s.repo.SetWelcomeClaimed(ctx, userID, WelcomeBonus, "Welcome Bonus")
	if err != nil {
		if errors.Is(err, repository.ErrWelcomeClaimed) {
			return 0, ErrWelcomeAlreadyClaimed
		}
		return 0, fmt.Errorf("failed to claim welcome bonus: %w", err)
	}

	if s.notifier != nil {
		s.notifier.PublishBalance(userID, newBalance, "welcome_bonus")
	}

	return newBalance, nil
}

func (s *UserService) MintCoins(ctx context.Context, userID int64, amount int) (int, error) {
	newBalance, err := s.repo.CreditBalance(ctx, userID, amount, model.TransactionAdmin, "Admin Mint")
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to mint coins: %w", err)
	}

	if s.notifier != nil {
		s.notifier.PublishBalance(userID, newBalance, "admin_mint")
	}

	return newBalance, nil
}

func (s *UserService) GetLeaderboard(ctx context.Context) ([]*model.LeaderboardEntry, error) {
	users, err := s.repo.GetTopUsers(ctx, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get top users: %w", err)
	}

	entries := make([]*model.LeaderboardEntry, len(users))
	for i, user := range users {
		entries[i] = &model.LeaderboardEntry{
			Rank:      i + 1,
			Username:  user.Username,
			Balance:   user.Balance,
			AvatarURL: user.AvatarURL,
		}
	}

	return entries, nil
}

func (s *UserService) GetTransactions(ctx context.Context, userID int64) ([]*model.Transaction, error) {
	transactions, err := s.repo.GetUserTransactions(ctx, userID, transactionLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}
