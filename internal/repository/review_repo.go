package repository

import (
	"context"

	"github.com/stackltd/API-for-onlinestore/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewRepository struct {
	DB *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

// Create inserts a review and fills in its id and date.
func (r *ReviewRepository) Create(ctx context.Context, rv *model.Review) error {
	query := `INSERT INTO reviews (productid, author, email, text, rate)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, date`
	return r.DB.QueryRow(ctx, query, rv.ProductID, rv.Author, rv.Email, rv.Text, rv.Rate).
		Scan(&rv.ID, &rv.Date)
}
