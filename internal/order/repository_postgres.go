package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/wichananm65/fresh-meat-hub/internal/apperr"
)

const (
	orderColumns = `id, "customerName", phone, address, pincode, items, "totalPrice", "paymentMode", status, "createdAt"`

	insertOrderQuery       = `INSERT INTO orders (` + orderColumns + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	listOrdersQuery        = `SELECT ` + orderColumns + ` FROM orders ORDER BY "createdAt" DESC`
	getOrderQuery          = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	updateStatusQuery      = `UPDATE orders SET status = $1 WHERE id = $2 RETURNING ` + orderColumns
	countOrdersQuery       = `SELECT COUNT(*) FROM orders`
	countOrdersStatusQuery = `SELECT COUNT(*) FROM orders WHERE status = $1`
	revenueQuery           = `SELECT COALESCE(SUM("totalPrice"), 0) FROM orders WHERE status = $1`
)

// PostgresRepository keeps order items as a JSONB column.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var (
		o      Order
		items  []byte
		status string
	)
	if err := row.Scan(&o.ID, &o.CustomerName, &o.Phone, &o.Address, &o.Pincode, &items, &o.TotalPrice, &o.PaymentMode, &status, &o.CreatedAt); err != nil {
		return Order{}, err
	}
	o.Status = Status(status)
	o.Items = make([]Item, 0)
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return Order{}, err
		}
	}
	return o, nil
}

func (r *PostgresRepository) Create(ctx context.Context, o Order) (Order, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return Order{}, apperr.Storage(err)
	}
	_, err = r.db.ExecContext(ctx, insertOrderQuery,
		o.ID, o.CustomerName, o.Phone, o.Address, o.Pincode, string(items), o.TotalPrice, o.PaymentMode, string(o.Status), o.CreatedAt)
	if err != nil {
		return Order{}, apperr.Storage(err)
	}
	return o, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, listOrdersQuery)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(err)
	}
	return out, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, getOrderQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, apperr.Storage(err)
	}
	return o, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status Status) (Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, updateStatusQuery, string(status), id))
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, apperr.Storage(err)
	}
	return o, nil
}

func (r *PostgresRepository) Count(ctx context.Context, status Status) (int64, error) {
	var (
		n   int64
		err error
	)
	if status == "" {
		err = r.db.QueryRowContext(ctx, countOrdersQuery).Scan(&n)
	} else {
		err = r.db.QueryRowContext(ctx, countOrdersStatusQuery, string(status)).Scan(&n)
	}
	if err != nil {
		return 0, apperr.Storage(err)
	}
	return n, nil
}

func (r *PostgresRepository) Revenue(ctx context.Context, status Status) (float64, error) {
	var total float64
	if err := r.db.QueryRowContext(ctx, revenueQuery, string(status)).Scan(&total); err != nil {
		return 0, apperr.Storage(err)
	}
	return total, nil
}
