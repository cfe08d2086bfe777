// Package departments provides the PostgreSQL-backed repository and the
// service for department rows.
package departments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fortress-vault/fortress/internal/common"
	"github.com/fortress-vault/fortress/internal/dbx"
	"github.com/fortress-vault/fortress/internal/server/models"
)

// PostgresRepository implements department storage over *sql.DB.
// Delete runs its guard and the row removal in a single transaction.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository constructs a repository bound to the given database.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns departments ordered by name. MemberCount counts Active users
// only; it is computed here and never stored.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Department, error) {
	query := `
		SELECT d.id, d.name, COUNT(u.id) FILTER (WHERE u.status = 'Active')
		FROM departments d
		LEFT JOIN users u ON u.department_id = d.id
		GROUP BY d.id, d.name
		ORDER BY d.name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Department
	for rows.Next() {
		var item models.Department
		if err := rows.Scan(&item.ID, &item.Name, &item.MemberCount); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, d *models.Department) error {
	query := `INSERT INTO departments (id, name) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, d.ID, d.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrorDuplicateName
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Rename(ctx context.Context, id string, name string) error {
	query := `UPDATE departments SET name = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, name)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrorDuplicateName
		}
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Delete counts referencing users (any status) and removes the row inside one
// transaction, so a blocked delete leaves everything untouched.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var refs int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM users WHERE department_id = $1`, id).Scan(&refs)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if refs > 0 {
			return common.ErrorReferentialIntegrity
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM departments WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected error: %w", err)
		}
		if n == 0 {
			return common.ErrorNotFound
		}
		return nil
	})
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
