package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tasktrack/internal/auth"
	"tasktrack/internal/errors"
	"tasktrack/internal/model"
	"tasktrack/internal/repository"
)

// LoginResult is what a successful login hands back to the boundary layer.
type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64
	User        model.Profile
}

// AuthService orchestrates registration and login.
type AuthService interface {
	Register(ctx context.Context, username, password, confirmPassword string) (model.Profile, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

type authService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
	tokens *auth.JWTService
	log    *zap.SugaredLogger
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, hasher auth.PasswordHasher, tokens *auth.JWTService, log *zap.SugaredLogger) AuthService {
	return &authService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		log:    log,
	}
}

// Register validates input, hashes the password and persists the new user.
// The lookup before Create is an optimistic pre-check for a fast, specific
// error; the store's unique constraint is the authoritative arbiter, so a
// registration that loses a race still surfaces the same conflict.
func (s *authService) Register(ctx context.Context, username, password, confirmPassword string) (model.Profile, error) {
	if err := ValidateUsername(username); err != nil {
		return model.Profile{}, err
	}
	if err := ValidatePassword(password); err != nil {
		return model.Profile{}, err
	}
	if password != confirmPassword {
		return model.Profile{}, errors.NewValidationError("passwords do not match")
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return model.Profile{}, fmt.Errorf("check username availability: %w", err)
	}
	if existing != nil {
		s.log.Infow("registration rejected: username taken", "username", username)
		return model.Profile{}, &errors.ConflictError{Username: username}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return model.Profile{}, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The constraint may reject a race the pre-check missed; the
		// repository already maps that to the same ConflictError.
		return model.Profile{}, err
	}

	s.log.Infow("user registered", "username", username, "user_id", user.ID)
	return user.Profile(), nil
}

// Login verifies credentials and issues a session token. An unknown
// username and a wrong password produce the identical ErrInvalidCredentials
// so the response never reveals whether a username is registered.
func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, errors.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Infow("login rejected: password verification failed", "username", username)
		return nil, errors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Infow("user logged in", "username", username, "user_id", user.ID)
	return &LoginResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		User:        user.Profile(),
	}, nil
}
