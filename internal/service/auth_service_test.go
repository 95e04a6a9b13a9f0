package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"tasktrack/internal/auth"
	"tasktrack/internal/errors"
	"tasktrack/internal/model"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func newAuthServiceForTest(repo *MockUserRepository) AuthService {
	hasher := auth.NewArgon2Hasher()
	jwtService := auth.NewJWTService("test-secret")
	return NewAuthService(repo, hasher, jwtService, zap.NewNop().Sugar())
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name            string
		username        string
		password        string
		confirmPassword string
		setupMock       func(*MockUserRepository)
		wantConflict    bool
		wantValidation  bool
	}{
		{
			name:            "successful registration",
			username:        "alice",
			password:        "Secret123",
			confirmPassword: "Secret123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:            "username taken, caught by pre-check",
			username:        "alice",
			password:        "Secret123",
			confirmPassword: "Secret123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").
					Return(&model.User{ID: uuid.New(), Username: "alice"}, nil)
			},
			wantConflict: true,
		},
		{
			name:            "username taken, race lost at the store",
			username:        "alice",
			password:        "Secret123",
			confirmPassword: "Secret123",
			setupMock: func(m *MockUserRepository) {
				// Pre-check misses, the unique constraint catches it.
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
					Return(&errors.ConflictError{Username: "alice"})
			},
			wantConflict: true,
		},
		{
			name:            "username too short",
			username:        "al",
			password:        "Secret123",
			confirmPassword: "Secret123",
			setupMock:       func(m *MockUserRepository) {},
			wantValidation:  true,
		},
		{
			name:            "username has forbidden characters",
			username:        "alice!",
			password:        "Secret123",
			confirmPassword: "Secret123",
			setupMock:       func(m *MockUserRepository) {},
			wantValidation:  true,
		},
		{
			name:            "password too weak",
			username:        "alice",
			password:        "short1",
			confirmPassword: "short1",
			setupMock:       func(m *MockUserRepository) {},
			wantValidation:  true,
		},
		{
			name:            "password confirmation mismatch",
			username:        "alice",
			password:        "Secret123",
			confirmPassword: "Secret124",
			setupMock:       func(m *MockUserRepository) {},
			wantValidation:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := newAuthServiceForTest(mockRepo)
			profile, err := service.Register(context.Background(), tt.username, tt.password, tt.confirmPassword)

			switch {
			case tt.wantConflict:
				var conflictErr *errors.ConflictError
				assert.ErrorAs(t, err, &conflictErr)
				assert.Equal(t, tt.username, conflictErr.Username)
			case tt.wantValidation:
				var validationErr *errors.ValidationError
				assert.ErrorAs(t, err, &validationErr)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tt.username, profile.Username)
				assert.NotEqual(t, uuid.Nil, profile.ID)
			}

			// Validation failures must never reach the store.
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_RegisterNeverStoresPlaintext(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, nil)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(user *model.User) bool {
		return user.PasswordHash != "" && user.PasswordHash != "Secret123"
	})).Return(nil)

	service := newAuthServiceForTest(mockRepo)
	_, err := service.Register(context.Background(), "alice", "Secret123", "Secret123")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	hasher := auth.NewArgon2Hasher()
	storedHash, err := hasher.Hash("Secret123")
	assert.NoError(t, err)

	aliceID := uuid.New()
	alice := &model.User{ID: aliceID, Username: "alice", PasswordHash: storedHash}

	t.Run("successful login issues a valid token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByUsername", mock.Anything, "alice").Return(alice, nil)

		jwtService := auth.NewJWTService("test-secret")
		service := NewAuthService(mockRepo, hasher, jwtService, zap.NewNop().Sugar())

		result, err := service.Login(context.Background(), "alice", "Secret123")
		assert.NoError(t, err)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, int64(24*60*60), result.ExpiresIn)
		assert.Equal(t, "alice", result.User.Username)
		assert.Equal(t, aliceID, result.User.ID)

		// The issued token is immediately accepted by the validator.
		principal, err := jwtService.Authenticate(result.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, aliceID, principal.UserID)

		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown username and wrong password are indistinguishable", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByUsername", mock.Anything, "alice").Return(alice, nil)
		mockRepo.On("FindByUsername", mock.Anything, "bob").Return(nil, nil)

		service := NewAuthService(mockRepo, hasher, auth.NewJWTService("test-secret"), zap.NewNop().Sugar())

		wrongPassword, errWrongPassword := service.Login(context.Background(), "alice", "WrongPass1")
		unknownUser, errUnknownUser := service.Login(context.Background(), "bob", "WrongPass1")

		assert.Nil(t, wrongPassword)
		assert.Nil(t, unknownUser)
		assert.ErrorIs(t, errWrongPassword, errors.ErrInvalidCredentials)
		assert.ErrorIs(t, errUnknownUser, errors.ErrInvalidCredentials)
		// Byte-for-byte the same outcome.
		assert.Equal(t, errWrongPassword.Error(), errUnknownUser.Error())

		mockRepo.AssertExpectations(t)
	})
}
