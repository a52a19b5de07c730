package repository

import (
	"context"

	"github.com/stackltd/API-for-onlinestore/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TagRepository struct {
	DB *pgxpool.Pool
}

func NewTagRepository(db *pgxpool.Pool) *TagRepository {
	return &TagRepository{DB: db}
}

// List returns all tags, restricted to a category when one is given.
func (r *TagRepository) List(ctx context.Context, categoryID *int64) ([]model.Tag, error) {
	query := `SELECT id, name, categoryid FROM tags ORDER BY id`
	args := []any{}
	if categoryID != nil {
		query = `SELECT id, name, categoryid FROM tags WHERE categoryid=$1 ORDER BY id`
		args = append(args, *categoryID)
	}
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CategoryID); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
