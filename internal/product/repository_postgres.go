package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/wichananm65/fresh-meat-hub/internal/apperr"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	productColumns = `id, name, price, category, image, "inStock", weight, description, "createdAt"`

	listProductsQuery           = `SELECT ` + productColumns + ` FROM products ORDER BY "createdAt"`
	listProductsByCategoryQuery = `SELECT ` + productColumns + ` FROM products WHERE category = $1 ORDER BY "createdAt"`
	getProductByIDQuery         = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	insertProductQuery          = `INSERT INTO products (` + productColumns + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	deleteProductQuery          = `DELETE FROM products WHERE id = $1`
	countProductsQuery          = `SELECT COUNT(*) FROM products`
	countByCategoryQuery        = `SELECT COUNT(*) FROM products WHERE category = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var (
		p     Product
		image sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &image, &p.InStock, &p.Weight, &p.Description, &p.CreatedAt); err != nil {
		return Product{}, err
	}
	if image.Valid {
		p.Image = &image.String
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context, category string) ([]Product, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if category == "" {
		rows, err = r.db.QueryContext(ctx, listProductsQuery)
	} else {
		rows, err = r.db.QueryContext(ctx, listProductsByCategoryQuery, category)
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(err)
	}
	return out, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, getProductByIDQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, apperr.Storage(err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p Product) (Product, error) {
	_, err := r.db.ExecContext(ctx, insertProductQuery,
		p.ID, p.Name, p.Price, p.Category, p.Image, p.InStock, p.Weight, p.Description, p.CreatedAt)
	if err != nil {
		return Product{}, apperr.Storage(err)
	}
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, p Patch) (Product, error) {
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Price != nil {
		add("price", *p.Price)
	}
	if p.Category != nil {
		add("category", *p.Category)
	}
	if p.Image != nil {
		add("image", *p.Image)
	}
	if p.InStock != nil {
		add(`"inStock"`, *p.InStock)
	}
	if p.Weight != nil {
		add("weight", *p.Weight)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)

	q := fmt.Sprintf(`UPDATE products SET %s WHERE id = $%d RETURNING %s`, strings.Join(sets, ", "), len(args), productColumns)
	out, err := scanProduct(r.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, apperr.Storage(err)
	}
	return out, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteProductQuery, id)
	if err != nil {
		return apperr.Storage(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, countProductsQuery).Scan(&n); err != nil {
		return 0, apperr.Storage(err)
	}
	return n, nil
}

func (r *PostgresRepository) CountByCategory(ctx context.Context, category string) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, countByCategoryQuery, category).Scan(&n); err != nil {
		return 0, apperr.Storage(err)
	}
	return n, nil
}
