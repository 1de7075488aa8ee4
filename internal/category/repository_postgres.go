package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/wichananm65/fresh-meat-hub/internal/apperr"
	"github.com/wichananm65/fresh-meat-hub/internal/infrastructure/database/postgres"
)

const (
	categoryColumns = `id, name, "displayOrder", "coverImage", description, "createdAt"`

	listCategoriesQuery = `SELECT ` + categoryColumns + ` FROM categories ORDER BY "displayOrder", "createdAt"`
	getCategoryQuery    = `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	insertCategoryQuery = `INSERT INTO categories (` + categoryColumns + `) VALUES ($1,$2,$3,$4,$5,$6)`
	deleteCategoryQuery = `DELETE FROM categories WHERE id = $1`
	countCategoryQuery  = `SELECT COUNT(*) FROM categories`
)

// PostgresRepository implements Repository on the categories table. The
// UNIQUE constraint on name makes duplicate inserts fail atomically.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (Category, error) {
	var (
		c     Category
		cover sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Name, &c.DisplayOrder, &cover, &c.Description, &c.CreatedAt); err != nil {
		return Category{}, err
	}
	if cover.Valid {
		c.CoverImage = &cover.String
	}
	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, listCategoriesQuery)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(err)
	}
	return out, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Category, error) {
	c, err := scanCategory(r.db.QueryRowContext(ctx, getCategoryQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, ErrNotFound
	}
	if err != nil {
		return Category{}, apperr.Storage(err)
	}
	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c Category) (Category, error) {
	_, err := r.db.ExecContext(ctx, insertCategoryQuery, c.ID, c.Name, c.DisplayOrder, c.CoverImage, c.Description, c.CreatedAt)
	if postgres.IsUniqueViolation(err) {
		return Category{}, ErrDuplicateName
	}
	if err != nil {
		return Category{}, apperr.Storage(err)
	}
	return c, nil
}

func (r *PostgresRepository) CreateMany(ctx context.Context, cs []Category) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Storage(err)
	}
	defer tx.Rollback()

	for _, c := range cs {
		_, err := tx.ExecContext(ctx, insertCategoryQuery, c.ID, c.Name, c.DisplayOrder, c.CoverImage, c.Description, c.CreatedAt)
		if postgres.IsUniqueViolation(err) {
			return ErrDuplicateName
		}
		if err != nil {
			return apperr.Storage(err)
		}
	}
	if err := tx.Commit(); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, p Patch) (Category, error) {
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
	if p.DisplayOrder != nil {
		add(`"displayOrder"`, *p.DisplayOrder)
	}
	if p.CoverImage != nil {
		add(`"coverImage"`, *p.CoverImage)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)

	q := fmt.Sprintf(`UPDATE categories SET %s WHERE id = $%d RETURNING %s`, strings.Join(sets, ", "), len(args), categoryColumns)
	c, err := scanCategory(r.db.QueryRowContext(ctx, q, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return Category{}, ErrNotFound
	case postgres.IsUniqueViolation(err):
		return Category{}, ErrDuplicateName
	case err != nil:
		return Category{}, apperr.Storage(err)
	}
	return c, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteCategoryQuery, id)
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
	if err := r.db.QueryRowContext(ctx, countCategoryQuery).Scan(&n); err != nil {
		return 0, apperr.Storage(err)
	}
	return n, nil
}
