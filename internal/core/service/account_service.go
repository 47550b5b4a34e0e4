package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"little-lemon/internal/core/domain"
	"little-lemon/internal/port"
)

const tokenTTL = 24 * time.Hour

type AccountService struct {
	users port.UserRepository
	cache port.CacheRepository
}

func NewAccountService(users port.UserRepository, cache port.CacheRepository) *AccountService {
	return &AccountService{users: users, cache: cache}
}

func (s *AccountService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.users.CreateUser(ctx, username, email, string(hash))
}

// Login verifies credentials and issues an opaque token with a TTL.
// Bad username and bad password are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrUnauthorized
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrUnauthorized
	}
	token := uuid.NewString()
	if err := s.cache.StoreToken(ctx, token, user.ID, tokenTTL); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	return token, nil
}

func (s *AccountService) Logout(ctx context.Context, token string) error {
	return s.cache.RevokeToken(ctx, token)
}

// Authenticate resolves a token to a user, loading group membership
// fresh from storage so role changes take effect on the next request.
func (s *AccountService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.cache.LookupToken(ctx, token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

func (s *AccountService) ListGroupMembers(ctx context.Context, group string) ([]domain.User, error) {
	members, err := s.users.ListGroupMembers(ctx, group)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []domain.User{}
	}
	return members, nil
}

// AddToGroup assigns the named user to a group. An unknown username is
// ErrNotFound; re-adding an existing member succeeds.
func (s *AccountService) AddToGroup(ctx context.Context, username, group string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("user %q: %w", username, err)
	}
	return s.users.AddToGroup(ctx, user.ID, group)
}

// RemoveFromGroup takes a user id. The user must exist (404 otherwise);
// removing a non-member is a successful no-op.
func (s *AccountService) RemoveFromGroup(ctx context.Context, userID int64, group string) error {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return fmt.Errorf("user %d: %w", userID, err)
	}
	return s.users.RemoveFromGroup(ctx, userID, group)
}
