package service

import (
	"context"
	"errors"
	"fmt"

	"gigspace/internal/model"
	"gigspace/internal/repository"
)

type ShopService struct {
	repo     ShopRepository
	notifier BalanceNotifier
}

func NewShopService(repo ShopRepository, notifier BalanceNotifier) *ShopService {
	return &ShopService{
		repo:     repo,
		notifier: notifier,
	}
}

func (s *ShopService) GetActiveItems(ctx context.Context) ([]*model.ShopItem, error) {
	items, err := s.repo.GetActiveShopItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get shop items: %w", err)
	}
	return items, nil
}

func (s *ShopService) Purchase(ctx context.Context, userID, itemID int64, quantity int) (*model.PurchaseResult, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.repo.GetShopItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	totalPrice := item.Price * quantity

	newBalance, err := s.repo.PurchaseItem(ctx, userID, item, quantity)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientBalance):
			user, userErr := s.repo.GetUserByID(ctx, userID)
			if userErr != nil {
				return nil, userErr
			}
			return nil, &InsufficientBalanceError{Shortfall: totalPrice - user.Balance}
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.PublishBalance(userID, newBalance, "purchase")
	}

	return &model.PurchaseResult{
		ItemID:     itemID,
		Quantity:   quantity,
		TotalPrice: totalPrice,
		NewBalance: newBalance,
	}, nil
}
