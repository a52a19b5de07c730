package repository

import (
	"context"
	"fmt"

	"github.com/stackltd/API-for-onlinestore/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

// Create inserts a new user and returns the created id
func (r *UserRepository) Create(ctx context.Context, username, name, passwordHash string) (int64, error) {
	var id int64
	query := `INSERT INTO users (username, name, passwordhash) VALUES ($1, $2, $3) RETURNING id`
	if err := r.DB.QueryRow(ctx, query, username, name, passwordHash).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	query := `SELECT id, username, name, passwordhash, created_at FROM users WHERE username=$1`
	if err := r.DB.QueryRow(ctx, query, username).Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("user %q: %w", username, err)
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	query := `SELECT id, username, name, passwordhash, created_at FROM users WHERE id=$1`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("user %d: %w", id, err)
	}
	return &u, nil
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username=$1)`
	if err := r.DB.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	tag, err := r.DB.Exec(ctx, `UPDATE users SET passwordhash=$1 WHERE id=$2`, passwordHash, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", userID, pgx.ErrNoRows)
	}
	return nil
}
