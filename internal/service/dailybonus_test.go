package service

import (
	"context"
	"testing"
	"time"

	"gigspace/internal/model"
	"gigspace/internal/repository"
	"gigspace/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestDailyBonusService_GetStatus(t *testing.T) {
	tests := []struct {
		name            string
		userID          int64
		mockSetup       func(mockRepo *mocks.MockDailyBonusRepository)
		expectedError   error
		checkAdditional func(*testing.T, *model.DailyBonusStatus)
	}{
		{
			name:   "User not found",
			userID: 123,
			mockSetup: func(mockRepo *mocks.MockDailyBonusRepository) {
				mockRepo.On("GetDailyBonusStatus", mock.Anything, int64(123)).
					Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrUserNotFound,
		},
		{
			name:   "Never claimed before",
			userID: 124,
			mockSetup: func(mockRepo *mocks.MockDailyBonusRepository) {
				mockRepo.On("GetDailyBonusStatus", mock.Anything, int64(124)).
					Return(&model.DailyBonusStatus{
						UserID: 124,
						Streak: 0,
					}, nil)
			},
			checkAdditional: func(t *testing.T, status *model.DailyBonusStatus) {
				assert.True(t, status.IsAvailable)
				assert.True(t, status.HasNeverBeenClaimed)
				assert.Nil(t, status.NextClaimAvailable)
				assert.Equal(t, 0, status.Streak)
			},
		},
		{
			name:   "Recently claimed (not available)",
			userID: 125,
			mockSetup: func(mockRepo *mocks.MockDailyBonusRepository) {
				lastClaimed := time.Now().UTC().Add(-12 * time.Hour)
				mockRepo.On("GetDailyBonusStatus", mock.Anything, int64(125)).
					Return(&model.DailyBonusStatus{
						UserID:        125,
						LastClaimedAt: &lastClaimed,
						Streak:        2,
					}, nil)
			},
			checkAdditional: func(t *testing.T, status *model.DailyBonusStatus) {
				assert.False(t, status.IsAvailable)
				assert.NotNil(t, status.NextClaimAvailable)
				assert.Equal(t, 2, status.Streak)
			},
		},
		{
			name:   "Available after 24 hours",
			userID: 126,
			mockSetup: func(mockRepo *mocks.MockDailyBonusRepository) {
				lastClaimed := time.Now().UTC().Add(-25 * time.Hour)
				mockRepo.On("GetDailyBonusStatus", mock.Anything, int64(126)).
					Return(&model.DailyBonusStatus{
						UserID:        126,
						LastClaimedAt: &lastClaimed,
						Streak:        3,
					}, nil)
			},
			checkAdditional: func(t *testing.T, status *model.DailyBonusStatus) {
				assert.True(t, status.IsAvailable)
				assert.False(t, status.HasNeverBeenClaimed)
				assert.Equal(t, 3, status.Streak)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockDailyBonusRepository{}
			service := NewDailyBonusService(mockRepo, nil)

			tt.mockSetup(mockRepo)

			status, err := service.GetStatus(context.Background(), tt.userID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, status)

			if tt.checkAdditional != nil {
				tt.checkAdditional(t, status)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestDailyBonusService_Claim(t *testing.T) {
	tests := []struct {
		name          string
		userID        int64
		setupMocks    func(mockRepo *mocks.MockDailyBonusRepository)
		expectedError error
		expectedClaim *model.DailyBonusClaim
	}{
		{
			name:   "Successful first claim",
			userID: 123,
			setupMocks: func(mockRepo *mocks.MockDailyBonusRepository) {
				mockRepo.On("GetDailyBonusStatus", mock.Anything, int64(123)).
					Return(&model.DailyBonusStatus{
						UserID: 123,
						Streak: 0,
					}, nil)

				mockRepo.On("ApplyDailyBonus", mock.Anything, int64(123), DailyReward, 1,
					mock.MatchedBy(func(claimedAt time.Time) bool {
						return time.Since(claimedAt) < 2*time.Second
					}), ClaimCooldown, "Daily Login Bonus (Day 1)").
					Return(100, nil)
			},
			expectedClaim: &model.DailyBonusClaim{
				Amount:     DailyReward,
				Streak:     1,
				NewBalance: 100,
			},
		},
		{
			name:   "Streak continues within 48 hours",
			userID: 124,
			setupMocks: func(mockRepo *mocks.MockDailyBonusRepository) {
				lastClaimed := time.Now().UTC().Add(-25 * time.Hour)
				mockRepo.On("GetDailyBonusStatus", mock.Anything, int64(124)).
					Return(&model.DailyBonusStatus{
						UserID:        124,
						LastClaimedAt: &lastClaimed,
						Streak:        2,
					}, nil)

				mockRepo.On("ApplyDailyBonus", mock.Anything, int64(124), DailyReward, 3,
					mock.Anything, ClaimCooldown, "Daily Login Bonus (Day 3)").
					Return(103, nil)
			},
			expectedClaim: &model.DailyBonusClaim{
				Amount:     DailyReward,
				Streak:     3,
				NewBalance: 103,
			},
		},
		{
			name:   "Streak resets after 48 hours",
			userID: 125,
			setupMocks: func(mockRepo *mocks.MockDailyBonusRepository) {
				lastClaimed := time.Now().UTC().Add(-49 * time.Hour)
				mockRepo.On("GetDailyBonusStatus", mock.Anything, int64(125)).
					Return(&model.DailyBonusStatus{
						UserID:        125,
						LastClaimedAt: &lastClaimed,
						Streak:        5,
					}, nil)

				mockRepo.On("ApplyDailyBonus", mock.Anything, int64(125), DailyReward, 1,
					mock.Anything, ClaimCooldown, "Daily Login Bonus (Day 1)").
					Return(106, nil)
			},
			expectedClaim: &model.DailyBonusClaim{
				Amount:     DailyReward,
				Streak:     1,
				NewBalance: 106,
			},
		},
		{
			name:   "Weekly reward on day 7",
			userID: 126,
			setupMocks: func(mockRepo *mocks.MockDailyBonusRepository) {
				lastClaimed := time.Now().UTC().Add(-25 * time.Hour)
				mockRepo.On("GetDailyBonusStatus", mock.Anything, int64(126)).
					Return(&model.DailyBonusStatus{
						UserID:        126,
						LastClaimedAt: &lastClaimed,
						Streak:        6,
					}, nil)

				mockRepo.On("ApplyDailyBonus", mock.Anything, int64(126), WeeklyReward, 7,
					mock.Anything, ClaimCooldown, "Daily Login Bonus (Day 7)").
					Return(116, nil)
			},
			expectedClaim: &model.DailyBonusClaim{
				Amount:     WeeklyReward,
				Streak:     7,
				NewBalance: 116,
			},
		},
		{
			name:   "Claim not available",
			userID: 127,
			setupMocks: func(mockRepo *mocks.MockDailyBonusRepository) {
				lastClaimed := time.Now().UTC().Add(-12 * time.Hour)
				mockRepo.On("GetDailyBonusStatus", mock.Anything, int64(127)).
					Return(&model.DailyBonusStatus{
						UserID:        127,
						LastClaimedAt: &lastClaimed,
						Streak:        1,
					}, nil)
			},
			expectedError: ErrClaimNotAvailable,
		},
		{
			name:   "Apply error",
			userID: 128,
			setupMocks: func(mockRepo *mocks.MockDailyBonusRepository) {
				mockRepo.On("GetDailyBonusStatus", mock.Anything, int64(128)).
					Return(&model.DailyBonusStatus{
						UserID: 128,
					}, nil)

				mockRepo.On("ApplyDailyBonus", mock.Anything, int64(128), mock.Anything,
					mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(0, assert.AnError)
			},
			expectedError: assert.AnError,
		},
		{
			name:   "Concurrent claim loses the row lock",
			userID: 129,
			setupMocks: func(mockRepo *mocks.MockDailyBonusRepository) {
				lastClaimed := time.Now().UTC().Add(-25 * time.Hour)
				mockRepo.On("GetDailyBonusStatus", mock.Anything, int64(129)).
					Return(&model.DailyBonusStatus{
						UserID:        129,
						LastClaimedAt: &lastClaimed,
						Streak:        1,
					}, nil)

				mockRepo.On("ApplyDailyBonus", mock.Anything, int64(129), mock.Anything,
					mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(0, repository.ErrClaimNotReady)
			},
			expectedError: ErrClaimNotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockDailyBonusRepository{}
			service := NewDailyBonusService(mockRepo, nil)

			tt.setupMocks(mockRepo)

			claim, err := service.Claim(context.Background(), tt.userID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedClaim, claim)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestRewardFor(t *testing.T) {
	assert.Equal(t, DailyReward, RewardFor(1))
	assert.Equal(t, DailyReward, RewardFor(6))
	assert.Equal(t, WeeklyReward, RewardFor(7))
	assert.Equal(t, DailyReward, RewardFor(8))
	assert.Equal(t, WeeklyReward, RewardFor(14))
}
