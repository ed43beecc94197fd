package service

import (
	"context"
	"testing"

	"gigspace/internal/model"
	"gigspace/internal/repository"
	"gigspace/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestShopService_Purchase(t *testing.T) {
	item := &model.ShopItem{
		ID:       1,
		Title:    "$5 Amazon Gift Card",
		Price:    1250,
		Category: "Gift Cards",
	}

	tests := []struct {
		name           string
		userID         int64
		itemID         int64
		quantity       int
		setupMocks     func(mockRepo *mocks.MockShopRepository)
		expectedError  error
		checkError     func(*testing.T, error)
		expectedResult *model.PurchaseResult
	}{
		{
			name:     "Successful purchase",
			userID:   10,
			itemID:   1,
			quantity: 2,
			setupMocks: func(mockRepo *mocks.MockShopRepository) {
				mockRepo.On("GetShopItemByID", mock.Anything, int64(1)).Return(item, nil)
				mockRepo.On("PurchaseItem", mock.Anything, int64(10), item, 2).Return(500, nil)
			},
			expectedResult: &model.PurchaseResult{
				ItemID:     1,
				Quantity:   2,
				TotalPrice: 2500,
				NewBalance: 500,
			},
		},
		{
			name:          "Invalid quantity",
			userID:        10,
			itemID:        1,
			quantity:      0,
			setupMocks:    func(mockRepo *mocks.MockShopRepository) {},
			expectedError: ErrInvalidQuantity,
		},
		{
			name:     "Item not found",
			userID:   10,
			itemID:   99,
			quantity: 1,
			setupMocks: func(mockRepo *mocks.MockShopRepository) {
				mockRepo.On("GetShopItemByID", mock.Anything, int64(99)).
					Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrItemNotFound,
		},
		{
			name:     "Insufficient balance reports shortfall",
			userID:   10,
			itemID:   1,
			quantity: 1,
			setupMocks: func(mockRepo *mocks.MockShopRepository) {
				mockRepo.On("GetShopItemByID", mock.Anything, int64(1)).Return(item, nil)
				mockRepo.On("PurchaseItem", mock.Anything, int64(10), item, 1).
					Return(0, repository.ErrInsufficientBalance)
				mockRepo.On("GetUserByID", mock.Anything, int64(10)).
					Return(&model.User{ID: 10, Balance: 1000}, nil)
			},
			checkError: func(t *testing.T, err error) {
				var insufficientErr *InsufficientBalanceError
				assert.ErrorAs(t, err, &insufficientErr)
				assert.Equal(t, 250, insufficientErr.Shortfall)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockShopRepository{}
			service := NewShopService(mockRepo, nil)

			tt.setupMocks(mockRepo)

			result, err := service.Purchase(context.Background(), tt.userID, tt.itemID, tt.quantity)

			switch {
			case tt.checkError != nil:
				assert.Error(t, err)
				tt.checkError(t, err)
			case tt.expectedError != nil:
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedResult, result)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
