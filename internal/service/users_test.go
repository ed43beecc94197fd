package service

import (
	"context"
	"testing"

	"gigspace/internal/model"
	"gigspace/internal/repository"
	"gigspace/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_Signup(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		email         string
		setupMocks    func(mockRepo *mocks.MockUserRepository)
		expectedError error
	}{
		{
			name:     "Successful signup",
			username: "alice",
			email:    "alice@example.com",
			setupMocks: func(mockRepo *mocks.MockUserRepository) {
				mockRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(user *model.User) bool {
					return user.Username == "alice" &&
						user.Email == "alice@example.com" &&
						user.Role == model.RoleMember &&
						bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")) == nil
				})).Return(nil)
			},
		},
		{
			name:     "Email taken",
			username: "bob",
			email:    "taken@example.com",
			setupMocks: func(mockRepo *mocks.MockUserRepository) {
				mockRepo.On("CreateUser", mock.Anything, mock.Anything).
					Return(repository.ErrEmailTaken)
			},
			expectedError: repository.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockUserRepository{}
			service := NewUserService(mockRepo, nil)

			tt.setupMocks(mockRepo)

			user, err := service.Signup(context.Background(), tt.username, tt.email, "secret123")

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.username, user.Username)
				assert.NotEqual(t, "secret123", user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	assert.NoError(t, err)

	stored := &model.User{
		ID:           10,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
	}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMocks    func(mockRepo *mocks.MockUserRepository)
		expectedError error
	}{
		{
			name:     "Successful login",
			email:    "alice@example.com",
			password: "secret123",
			setupMocks: func(mockRepo *mocks.MockUserRepository) {
				mockRepo.On("GetUserByEmail", mock.Anything, "alice@example.com").
					Return(stored, nil)
			},
		},
		{
			name:     "Wrong password",
			email:    "alice@example.com",
			password: "wrong",
			setupMocks: func(mockRepo *mocks.MockUserRepository) {
				mockRepo.On("GetUserByEmail", mock.Anything, "alice@example.com").
					Return(stored, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "Unknown email",
			email:    "nobody@example.com",
			password: "secret123",
			setupMocks: func(mockRepo *mocks.MockUserRepository) {
				mockRepo.On("GetUserByEmail", mock.Anything, "nobody@example.com").
					Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockUserRepository{}
			service := NewUserService(mockRepo, nil)

			tt.setupMocks(mockRepo)

			user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(10), user.ID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_ClaimWelcomeBonus(t *testing.T) {
	tests := []struct {
		name            string
		userID          int64
		setupMocks      func(mockRepo *mocks.MockUserRepository)
		expectedError   error
		expectedBalance int
	}{
		{
			name:   "Successful claim",
			userID: 10,
			setupMocks: func(mockRepo *mocks.MockUserRepository) {
				mockRepo.On("GetUserByID", mock.Anything, int64(10)).
					Return(&model.User{ID: 10, HasClaimedWelcome: false}, nil)
				mockRepo.On("SetWelcomeClaimed", mock.Anything, int64(10), WelcomeBonus, "Welcome Bonus").
					Return(50, nil)
			},
			expectedBalance: 50,
		},
		{
			name:   "Concurrent claim loses the row lock",
			userID: 13,
			setupMocks: func(mockRepo *mocks.MockUserRepository) {
				mockRepo.On("GetUserByID", mock.Anything, int64(13)).
					Return(&model.User{ID: 13, HasClaimedWelcome: false}, nil)
				mockRepo.On("SetWelcomeClaimed", mock.Anything, int64(13), WelcomeBonus, "Welcome Bonus").
					Return(0, repository.ErrWelcomeClaimed)
			},
			expectedError: ErrWelcomeAlreadyClaimed,
		},
		{
			name:   "Already claimed",
			userID: 11,
			setupMocks: func(mockRepo *mocks.MockUserRepository) {
				mockRepo.On("GetUserByID", mock.Anything, int64(11)).
					Return(&model.User{ID: 11, HasClaimedWelcome: true}, nil)
			},
			expectedError: ErrWelcomeAlreadyClaimed,
		},
		{
			name:   "User not found",
			userID: 12,
			setupMocks: func(mockRepo *mocks.MockUserRepository) {
				mockRepo.On("GetUserByID", mock.Anything, int64(12)).
					Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockUserRepository{}
			service := NewUserService(mockRepo, nil)

			tt.setupMocks(mockRepo)

			newBalance, err := service.ClaimWelcomeBonus(context.Background(), tt.userID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedBalance, newBalance)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_GetLeaderboard(t *testing.T) {
	mockRepo := &mocks.MockUserRepository{}
	service := NewUserService(mockRepo, nil)

	mockRepo.On("GetTopUsers", mock.Anything, leaderboardSize).
		Return([]*model.User{
			{ID: 1, Username: "first", Balance: 900},
			{ID: 2, Username: "second", Balance: 500},
		}, nil)

	entries, err := service.GetLeaderboard(context.Background())
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "first", entries[0].Username)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, 500, entries[1].Balance)

	mockRepo.AssertExpectations(t)
}
