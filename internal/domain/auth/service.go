package auth

import (
	"context"
	"time"
)

type Service struct {
	Store    *Store
	Secret   string
	TokenTTL time.Duration
}

func NewService(store *Store, secret string, tokenTTL time.Duration) *Service {
	return &Service{Store: store, Secret: secret, TokenTTL: tokenTTL}
}

func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	user, err := s.Store.FindActiveUserByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := GenerateToken(s.Secret, Claims{
		UserID:      user.ID,
		Role:        user.Role,
		Designation: user.Designation,
	}, s.TokenTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *Service) GetUser(ctx context.Context, userID string) (*User, error) {
	return s.Store.GetUser(ctx, userID)
}

func (s *Service) UserEmail(ctx context.Context, userID string) (string, error) {
	return s.Store.UserEmail(ctx, userID)
}

func (s *Service) UserExists(ctx context.Context, userID string) (bool, error) {
	return s.Store.UserExists(ctx, userID)
}

func (s *Service) CreateUser(ctx context.Context, user User, password string) (string, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return "", err
	}
	user.PasswordHash = hash
	if user.Status == "" {
		user.Status = UserStatusActive
	}
	return s.Store.CreateUser(ctx, user)
}

func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]User, error) {
	return s.Store.ListUsers(ctx, limit, offset)
}
