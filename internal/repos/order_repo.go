package repos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type OrderSummary struct {
	ID            string          `db:"id"`
	UserID        int             `db:"user_id"`
	CustomerName  string          `db:"customer_name"`
	CustomerEmail string          `db:"customer_email"`
	Total         decimal.Decimal `db:"total"`
	ItemCount     int             `db:"item_count"`
	Status        string          `db:"status"`
	CreatedAt     string          `db:"created_at"`
}

type OrderItemRow struct {
	LineID   string          `db:"line_id"`
	Name     string          `db:"name"`
	Kind     string          `db:"kind"`
	Qty      int             `db:"qty"`
	Price    decimal.Decimal `db:"price"`
	Subtotal decimal.Decimal `db:"-"`
}

// Place inserts an order header and its items in one transaction.
func (r *OrderRepo) Place(ctx context.Context, o OrderSummary, items []OrderItemRow, at time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
	  INSERT INTO orders
	    (id, user_id, customer_name, customer_email, total, item_count, status, created_at)
	  VALUES
	    (?,  ?,       ?,             ?,              ?,     ?,          'PLACED', ?)
	`, o.ID, o.UserID, o.CustomerName, o.CustomerEmail, o.Total.String(), o.ItemCount, stamp(at)); err != nil {
		return err
	}
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, `
		  INSERT INTO order_items(order_id, line_id, name, kind, qty, price)
		  VALUES(?, ?, ?, ?, ?, ?)
		`, o.ID, it.LineID, it.Name, it.Kind, it.Qty, it.Price.String()); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *OrderRepo) Get(ctx context.Context, orderID string) (OrderSummary, []OrderItemRow, error) {
	var o OrderSummary
	if err := r.db.GetContext(ctx, &o, `
		SELECT id, user_id, customer_name, customer_email, total, item_count, status, created_at
		FROM orders WHERE id = ?
	`, orderID); err != nil {
		return OrderSummary{}, nil, err
	}

	var items []OrderItemRow
	if err := r.db.SelectContext(ctx, &items, `
		SELECT line_id, name, kind, qty, price
		FROM order_items
		WHERE order_id = ?
		ORDER BY name
	`, orderID); err != nil {
		return OrderSummary{}, nil, err
	}
	for i := range items {
		items[i].Subtotal = items[i].Price.Mul(decimal.NewFromInt(int64(items[i].Qty)))
	}
	return o, items, nil
}

func (r *OrderRepo) ListLatest(ctx context.Context, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []OrderSummary
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, user_id, customer_name, customer_email, total, item_count, status, created_at
		FROM orders
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID int) ([]OrderSummary, error) {
	var out []OrderSummary
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, user_id, customer_name, customer_email, total, item_count, status, created_at
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC
	`, userID)
	return out, err
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
