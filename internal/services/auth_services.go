package services

import (
	"context"
	"fmt"

	"github.com/stackltd/API-for-onlinestore/internal/model"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLen = 8

type AuthService struct {
	Users UserStore
}

func NewAuthService(u UserStore) *AuthService {
	return &AuthService{Users: u}
}

// SignUp creates a user and returns it with the password hash zeroed out.
func (s *AuthService) SignUp(ctx context.Context, username, name, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password required: %w", ErrValidation)
	}
	if len(password) < MinPasswordLen {
		return nil, fmt.Errorf("password too short: must be at least %d characters: %w", MinPasswordLen, ErrValidation)
	}
	exists, err := s.Users.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("username already exists: %w", ErrConflict)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	id, err := s.Users.Create(ctx, username, name, string(hash))
	if err != nil {
		return nil, err
	}
	return &model.User{ID: id, Username: username, Name: name}, nil
}

// SignIn authenticates with username + password. The error does not reveal
// whether the username exists.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("login and password required: %w", ErrValidation)
	}
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	u.PasswordHash = ""
	return u, nil
}

// ChangePassword verifies the current password and sets the new one.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, current, password, passwordReply string) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)); err != nil {
		return fmt.Errorf("current password is incorrect: %w", ErrValidation)
	}
	if password != passwordReply {
		return fmt.Errorf("passwords do not match: %w", ErrValidation)
	}
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password too short: must be at least %d characters: %w", MinPasswordLen, ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(ctx, userID, string(hash))
}
