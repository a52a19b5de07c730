package services_test

import (
	"context"
	"testing"

	"github.com/stackltd/API-for-onlinestore/internal/model"
	"github.com/stackltd/API-for-onlinestore/internal/services"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserStore struct {
	nextID int64
	users  map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: make(map[string]*model.User)}
}

func (s *fakeUserStore) Create(_ context.Context, username, name, passwordHash string) (int64, error) {
	id := s.nextID
	s.nextID++
	s.users[username] = &model.User{ID: id, Username: username, Name: name, PasswordHash: passwordHash}
	return id, nil
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeUserStore) UsernameExists(_ context.Context, username string) (bool, error) {
	_, ok := s.users[username]
	return ok, nil
}

func (s *fakeUserStore) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	for _, u := range s.users {
		if u.ID == userID {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return pgx.ErrNoRows
}

func TestSignUpAndSignIn(t *testing.T) {
	ctx := context.Background()
	svc := services.NewAuthService(newFakeUserStore())

	created, err := svc.SignUp(ctx, "ann", "Ann Example", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "ann", created.Username)
	assert.Empty(t, created.PasswordHash)

	u, err := svc.SignIn(ctx, "ann", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	assert.Empty(t, u.PasswordHash)
}

func TestSignUpValidation(t *testing.T) {
	ctx := context.Background()
	svc := services.NewAuthService(newFakeUserStore())

	_, err := svc.SignUp(ctx, "", "Ann", "correct horse")
	require.ErrorIs(t, err, services.ErrValidation)

	_, err = svc.SignUp(ctx, "ann", "Ann", "short")
	require.ErrorIs(t, err, services.ErrValidation)

	_, err = svc.SignUp(ctx, "ann", "Ann", "correct horse")
	require.NoError(t, err)
	_, err = svc.SignUp(ctx, "ann", "Other Ann", "correct horse")
	require.ErrorIs(t, err, services.ErrConflict)
}

func TestSignInBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := services.NewAuthService(newFakeUserStore())

	_, err := svc.SignUp(ctx, "ann", "Ann", "correct horse")
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, "ann", "wrong password")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)

	// unknown username yields the same error as a wrong password
	_, err = svc.SignIn(ctx, "nobody", "correct horse")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	svc := services.NewAuthService(users)

	created, err := svc.SignUp(ctx, "ann", "Ann", "correct horse")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, created.ID, "wrong", "new password!", "new password!")
	require.ErrorIs(t, err, services.ErrValidation)

	err = svc.ChangePassword(ctx, created.ID, "correct horse", "new password!", "mismatch")
	require.ErrorIs(t, err, services.ErrValidation)

	err = svc.ChangePassword(ctx, created.ID, "correct horse", "new password!", "new password!")
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, "ann", "correct horse")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)
	_, err = svc.SignIn(ctx, "ann", "new password!")
	require.NoError(t, err)
}
