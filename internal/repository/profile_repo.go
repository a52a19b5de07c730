package repository

import (
	"context"
	"fmt"

	"github.com/stackltd/API-for-onlinestore/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfileRepository struct {
	DB *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

// GetOrCreate returns the user's profile, creating an empty one on first use.
func (r *ProfileRepository) GetOrCreate(ctx context.Context, userID int64) (*model.Profile, error) {
	if _, err := r.DB.Exec(ctx,
		`INSERT INTO profiles (userid) VALUES ($1) ON CONFLICT (userid) DO NOTHING`, userID); err != nil {
		return nil, err
	}
	var p model.Profile
	query := `SELECT id, userid, fullname, email, phone FROM profiles WHERE userid=$1`
	if err := r.DB.QueryRow(ctx, query, userID).Scan(&p.ID, &p.UserID, &p.FullName, &p.Email, &p.Phone); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *model.Profile) error {
	query := `UPDATE profiles SET fullname=$1, email=$2, phone=$3 WHERE userid=$4`
	tag, err := r.DB.Exec(ctx, query, p.FullName, p.Email, p.Phone, p.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile for user %d: %w", p.UserID, pgx.ErrNoRows)
	}
	return nil
}
