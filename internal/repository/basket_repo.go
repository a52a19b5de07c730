package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/stackltd/API-for-onlinestore/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BasketRepository struct {
	DB *pgxpool.Pool
}

func NewBasketRepository(db *pgxpool.Pool) *BasketRepository {
	return &BasketRepository{DB: db}
}

// GetOrCreate returns the user's basket id, creating the basket on first use.
func (r *BasketRepository) GetOrCreate(ctx context.Context, userID int64) (int64, error) {
	var id int64
	err := r.DB.QueryRow(ctx, `SELECT id FROM baskets WHERE userid=$1`, userID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}
	query := `INSERT INTO baskets (userid) VALUES ($1)
		ON CONFLICT (userid) DO UPDATE SET userid=EXCLUDED.userid
		RETURNING id`
	if err := r.DB.QueryRow(ctx, query, userID).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Items returns the basket's lines joined with their products.
func (r *BasketRepository) Items(ctx context.Context, basketID int64) ([]model.BasketEntry, error) {
	query := `SELECT ` + productColumns + `, bi.count
		FROM basket_items bi
		JOIN products p ON p.id = bi.productid
		WHERE bi.basketid=$1
		ORDER BY p.id`
	rows, err := r.DB.Query(ctx, query, basketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.BasketEntry
	for rows.Next() {
		var e model.BasketEntry
		p := &e.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.FullDescription, &p.Price, &p.Count,
			&p.FreeDelivery, &p.SortIndex, &p.LimitedEdition, &p.SalePrice, &p.DateFrom, &p.DateTo,
			&p.Date, &p.Archived, &p.CategoryID, &e.Count); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ItemCount returns the stored quantity for one line.
func (r *BasketRepository) ItemCount(ctx context.Context, basketID, productID int64) (int, error) {
	var count int
	query := `SELECT count FROM basket_items WHERE basketid=$1 AND productid=$2`
	if err := r.DB.QueryRow(ctx, query, basketID, productID).Scan(&count); err != nil {
		return 0, fmt.Errorf("basket item %d: %w", productID, err)
	}
	return count, nil
}

// UpsertItem inserts a line or increments an existing one.
func (r *BasketRepository) UpsertItem(ctx context.Context, basketID, productID int64, count int) error {
	query := `INSERT INTO basket_items (basketid, productid, count)
		VALUES ($1, $2, $3)
		ON CONFLICT (basketid, productid)
		DO UPDATE SET count = basket_items.count + EXCLUDED.count`
	_, err := r.DB.Exec(ctx, query, basketID, productID, count)
	return err
}

// SetItemCount sets the exact quantity for a line.
func (r *BasketRepository) SetItemCount(ctx context.Context, basketID, productID int64, count int) error {
	query := `UPDATE basket_items SET count=$1 WHERE basketid=$2 AND productid=$3`
	tag, err := r.DB.Exec(ctx, query, count, basketID, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("basket item %d: %w", productID, pgx.ErrNoRows)
	}
	return nil
}

// DeleteItem removes a line.
func (r *BasketRepository) DeleteItem(ctx context.Context, basketID, productID int64) error {
	query := `DELETE FROM basket_items WHERE basketid=$1 AND productid=$2`
	tag, err := r.DB.Exec(ctx, query, basketID, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("basket item %d: %w", productID, pgx.ErrNoRows)
	}
	return nil
}

// ReplaceItems drops everything in the user's basket and inserts one line per
// session-map entry, all in one transaction.
func (r *BasketRepository) ReplaceItems(ctx context.Context, userID int64, items map[string]int) error {
	basketID, err := r.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM basket_items WHERE basketid=$1`, basketID); err != nil {
		return err
	}

	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		productID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			continue
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO basket_items (basketid, productid, count) VALUES ($1, $2, $3)`,
			basketID, productID, items[id]); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
