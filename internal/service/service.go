package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gigspace/internal/model"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrClaimNotAvailable     = errors.New("daily bonus not ready yet")
	ErrWelcomeAlreadyClaimed = errors.New("welcome bonus already claimed")
	ErrTaskNotFound          = errors.New("task not found")
	ErrTaskAlreadyCompleted  = errors.New("task already completed")
	ErrItemNotFound          = errors.New("item not found")
	ErrInvalidQuantity       = errors.New("invalid quantity")
)

// InsufficientBalanceError carries the shortfall so the caller can tell the
// user how many more coins a purchase needs.
type InsufficientBalanceError struct {
	Shortfall int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance, need %d more GC", e.Shortfall)
}

type Service struct {
	*UserService
	*DailyBonusService
	*TaskService
	*ShopService
}

func NewService(users *UserService, dailyBonus *DailyBonusService, tasks *TaskService, shop *ShopService) *Service {
	return &Service{
		UserService:       users,
		DailyBonusService: dailyBonus,
		TaskService:       tasks,
		ShopService:       shop,
	}
}

type UserServiceI interface {
	Signup(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	ClaimWelcomeBonus(ctx context.Context, userID int64) (int, error)
	MintCoins(ctx context.Context, userID int64, amount int) (int, error)
	GetLeaderboard(ctx context.Context) ([]*model.LeaderboardEntry, error)
	GetTransactions(ctx context.Context, userID int64) ([]*model.Transaction, error)
}

type DailyBonusServiceI interface {
	GetStatus(ctx context.Context, userID int64) (*model.DailyBonusStatus, error)
	Claim(ctx context.Context, userID int64) (*model.DailyBonusClaim, error)
}

type TaskServiceI interface {
	GetActiveTasks(ctx context.Context) ([]*model.Task, error)
	Complete(ctx context.Context, userID, taskID int64) (*model.TaskCompletion, error)
}

type ShopServiceI interface {
	GetActiveItems(ctx context.Context) ([]*model.ShopItem, error)
	Purchase(ctx context.Context, userID, itemID int64, quantity int) (*model.PurchaseResult, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreditBalance(ctx context.Context, userID int64, amount int, txType, description string) (int, error)
	SetWelcomeClaimed(ctx context.Context, userID int64, amount int, description string) (int, error)
	GetTopUsers(ctx context.Context, limit int) ([]*model.User, error)
	GetUserTransactions(ctx context.Context, userID int64, limit int) ([]*model.Transaction, error)
}

type DailyBonusRepository interface {
	GetDailyBonusStatus(ctx context.Context, userID int64) (*model.DailyBonusStatus, error)
	ApplyDailyBonus(ctx context.Context, userID int64, amount, streak int, claimedAt time.Time, cooldown time.Duration, description string) (int, error)
}

type TaskRepository interface {
	GetActiveTasks(ctx context.Context) ([]*model.Task, error)
	GetTaskByID(ctx context.Context, taskID int64) (*model.Task, error)
	CompleteTask(ctx context.Context, userID int64, task *model.Task) (int, error)
}

type ShopRepository interface {
	GetActiveShopItems(ctx context.Context) ([]*model.ShopItem, error)
	GetShopItemByID(ctx context.Context, itemID int64) (*model.ShopItem, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	PurchaseItem(ctx context.Context, userID int64, item *model.ShopItem, quantity int) (int, error)
}
