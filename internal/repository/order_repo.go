package repository

import (
	"context"
	"fmt"

	"github.com/stackltd/API-for-onlinestore/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

const orderColumns = `id, userid, createdat, fullname, email, phone, deliverytype,
	paymenttype, totalcost, status, city, address, paymentdata, paymenterror`

func scanOrder(row pgx.Row, o *model.Order) error {
	var paymentData string
	if err := row.Scan(&o.ID, &o.UserID, &o.CreatedAt, &o.FullName, &o.Email, &o.Phone,
		&o.DeliveryType, &o.PaymentType, &o.TotalCost, &o.Status, &o.City, &o.Address,
		&paymentData, &o.PaymentError); err != nil {
		return err
	}
	o.PaymentData = []byte(paymentData)
	return nil
}

// CreateWithLines inserts a new order in status "created" together with its
// product lines, accumulating duplicates, in one transaction.
func (r *OrderRepository) CreateWithLines(ctx context.Context, userID int64, lines []model.LineItem, total decimal.Decimal) (int64, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var orderID int64
	query := `INSERT INTO orders (userid, totalcost, status) VALUES ($1, $2, $3) RETURNING id`
	if err := tx.QueryRow(ctx, query, userID, total, model.OrderStatusCreated).Scan(&orderID); err != nil {
		return 0, err
	}

	for _, line := range lines {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_products (orderid, productid, count)
			VALUES ($1, $2, $3)
			ON CONFLICT (orderid, productid)
			DO UPDATE SET count = order_products.count + EXCLUDED.count`,
			orderID, line.ID, line.Count); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return orderID, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	var o model.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	if err := scanOrder(r.DB.QueryRow(ctx, query, orderID), &o); err != nil {
		return nil, fmt.Errorf("order %d: %w", orderID, err)
	}
	return &o, nil
}

// ListByUser returns the user's orders, most recent first, summary fields
// only.
func (r *OrderRepository) ListByUser(ctx context.Context, userID int64) ([]model.OrderSummary, error) {
	query := `SELECT id, createdat, deliverytype, paymenttype, totalcost, status
		FROM orders WHERE userid=$1 ORDER BY createdat DESC, id DESC`
	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.OrderSummary
	for rows.Next() {
		var s model.OrderSummary
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.DeliveryType, &s.PaymentType, &s.TotalCost, &s.Status); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Lines returns the order's product lines with the stored quantity snapshot.
func (r *OrderRepository) Lines(ctx context.Context, orderID int64) ([]model.OrderEntry, error) {
	query := `SELECT ` + productColumns + `, op.count
		FROM order_products op
		JOIN products p ON p.id = op.productid
		WHERE op.orderid=$1
		ORDER BY p.id`
	rows, err := r.DB.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.OrderEntry
	for rows.Next() {
		var e model.OrderEntry
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

// Confirm persists the confirmed order and clears the owner's basket in one
// transaction.
func (r *OrderRepository) Confirm(ctx context.Context, o *model.Order) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `UPDATE orders
		SET fullname=$2, email=$3, phone=$4, deliverytype=$5, paymenttype=$6,
		    city=$7, address=$8, totalcost=$9, status=$10
		WHERE id=$1`
	tag, err := tx.Exec(ctx, query, o.ID, o.FullName, o.Email, o.Phone, o.DeliveryType,
		o.PaymentType, o.City, o.Address, o.TotalCost, o.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d: %w", o.ID, pgx.ErrNoRows)
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM basket_items bi
		USING baskets b
		WHERE bi.basketid = b.id AND b.userid = $1`, o.UserID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// RecordPayment stores the payment payload verbatim and completes the order.
func (r *OrderRepository) RecordPayment(ctx context.Context, orderID int64, payload []byte) error {
	query := `UPDATE orders SET status=$2, paymentdata=$3, paymenterror=false WHERE id=$1`
	tag, err := r.DB.Exec(ctx, query, orderID, model.OrderStatusCompleted, string(payload))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d: %w", orderID, pgx.ErrNoRows)
	}
	return nil
}
