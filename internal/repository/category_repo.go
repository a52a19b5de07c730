package repository

import (
	"context"
	"fmt"

	"github.com/stackltd/API-for-onlinestore/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CategoryRepository struct {
	DB *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	var c model.Category
	query := `SELECT id, title, parentid FROM categories WHERE id=$1`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&c.ID, &c.Title, &c.ParentID); err != nil {
		return nil, fmt.Errorf("category %d: %w", id, err)
	}
	return &c, nil
}

func (r *CategoryRepository) Roots(ctx context.Context) ([]model.Category, error) {
	return r.list(ctx, `SELECT id, title, parentid FROM categories WHERE parentid IS NULL ORDER BY id`)
}

func (r *CategoryRepository) Children(ctx context.Context, parentID int64) ([]model.Category, error) {
	return r.list(ctx, `SELECT id, title, parentid FROM categories WHERE parentid=$1 ORDER BY id`, parentID)
}

// SubtreeIDs resolves a category filter to product-category ids: a root
// category stands for its children, a child stands for itself.
func (r *CategoryRepository) SubtreeIDs(ctx context.Context, id int64) ([]int64, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.IsRoot() {
		return []int64{c.ID}, nil
	}
	children, err := r.Children(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(children))
	for _, child := range children {
		ids = append(ids, child.ID)
	}
	return ids, nil
}

func (r *CategoryRepository) list(ctx context.Context, query string, args ...any) ([]model.Category, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.ParentID); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
