package mocks

import (
	"context"
	"time"

	"gigspace/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) CreditBalance(ctx context.Context, userID int64, amount int, txType, description string) (int, error) {
	args := m.Called(ctx, userID, amount, txType, description)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) SetWelcomeClaimed(ctx context.Context, userID int64, amount int, description string) (int, error) {
	args := m.Called(ctx, userID, amount, description)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) GetTopUsers(ctx context.Context, limit int) ([]*model.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockUserRepository) GetUserTransactions(ctx context.Context, userID int64, limit int) ([]*model.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Transaction), args.Error(1)
}

type MockDailyBonusRepository struct {
	mock.Mock
}

func (m *MockDailyBonusRepository) GetDailyBonusStatus(ctx context.Context, userID int64) (*model.DailyBonusStatus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DailyBonusStatus), args.Error(1)
}

func (m *MockDailyBonusRepository) ApplyDailyBonus(ctx context.Context, userID int64, amount, streak int, claimedAt time.Time, cooldown time.Duration, description string) (int, error) {
	args := m.Called(ctx, userID, amount, streak, claimedAt, cooldown, description)
	return args.Int(0), args.Error(1)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) GetActiveTasks(ctx context.Context) ([]*model.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Task), args.Error(1)
}

func (m *MockTaskRepository) GetTaskByID(ctx context.Context, taskID int64) (*model.Task, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) CompleteTask(ctx context.Context, userID int64, task *model.Task) (int, error) {
	args := m.Called(ctx, userID, task)
	return args.Int(0), args.Error(1)
}

type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) GetActiveShopItems(ctx context.Context) ([]*model.ShopItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ShopItem), args.Error(1)
}

func (m *MockShopRepository) GetShopItemByID(ctx context.Context, itemID int64) (*model.ShopItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShopItem), args.Error(1)
}

func (m *MockShopRepository) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockShopRepository) PurchaseItem(ctx context.Context, userID int64, item *model.ShopItem, quantity int) (int, error) {
	args := m.Called(ctx, userID, item, quantity)
	return args.Int(0), args.Error(1)
}
