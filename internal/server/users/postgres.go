// Package users provides the PostgreSQL-backed repository and the service
// for user accounts.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fortress-vault/fortress/internal/common"
	"github.com/fortress-vault/fortress/internal/dbx"
	"github.com/fortress-vault/fortress/internal/server/models"
)

// PostgresRepository implements user storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT u.id, u.name, u.email, u.role, u.department_id, d.name, u.last_login, u.status
		FROM users u
		JOIN departments d ON d.id = u.department_id
		ORDER BY u.name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		var item models.User
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Email, &item.Role,
			&item.DepartmentID, &item.DepartmentName, &item.LastLogin, &item.Status,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Create inserts a new user row. A unique violation on email maps to
// ErrorDuplicateEmail; a foreign-key violation on the department maps to
// ErrorValidation.
func (r *PostgresRepository) Create(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (id, name, email, role, department_id, last_login, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Name, u.Email, u.Role, u.DepartmentID, u.LastLogin, u.Status)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return common.ErrorDuplicateEmail
			case "23503":
				return common.ErrorValidation
			}
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, name string, role models.UserRole, departmentID string) error {
	query := `UPDATE users SET name = $2, role = $3, department_id = $4 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, name, role, departmentID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return common.ErrorValidation
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

// SetStatus writes the status unconditionally, which makes repeated
// deactivation a no-op rather than an error.
func (r *PostgresRepository) SetStatus(ctx context.Context, id string, status models.UserStatus) error {
	query := `UPDATE users SET status = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, status)
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
}

var _ Repository = (*PostgresRepository)(nil)
