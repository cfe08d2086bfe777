// Package passwords provides the PostgreSQL-backed repository, the service
// and the random generator for credential records.
package passwords

import (
	"context"
	"fmt"

	"github.com/fortress-vault/fortress/internal/common"
	"github.com/fortress-vault/fortress/internal/dbx"
	"github.com/fortress-vault/fortress/internal/server/models"
)

// PostgresRepository implements credential storage over a dbx.DBTX
// (*sql.DB or *sql.Tx). Field values are stored and returned verbatim.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Password, error) {
	query := `
		SELECT id, name, username, password_value, url, notes, folder, expiry_date
		FROM passwords
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Password
	for rows.Next() {
		var item models.Password
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Username, &item.PasswordValue,
			&item.URL, &item.Notes, &item.Folder, &item.ExpiryDate,
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

func (r *PostgresRepository) Create(ctx context.Context, p *models.Password) error {
	query := `
		INSERT INTO passwords (id, name, username, password_value, url, notes, folder, expiry_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Username, p.PasswordValue, p.URL, p.Notes, p.Folder, p.ExpiryDate)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.Password) error {
	query := `
		UPDATE passwords
		SET name = $2, username = $3, password_value = $4, url = $5, notes = $6, folder = $7, expiry_date = $8
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Username, p.PasswordValue, p.URL, p.Notes, p.Folder, p.ExpiryDate)
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
