package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/fortress-vault/fortress/internal/server/departments"
	"github.com/fortress-vault/fortress/internal/server/migrations"
	"github.com/fortress-vault/fortress/internal/server/passwords"
	"github.com/fortress-vault/fortress/internal/server/users"
)

type PostgresRepositoryManager struct {
	db          *sql.DB
	departments departments.Repository
	users       users.Repository
	passwords   passwords.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

func (m *PostgresRepositoryManager) Departments() departments.Repository {
	return m.departments
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Passwords() passwords.Repository {
	return m.passwords
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:          db,
		departments: departments.NewPostgresRepository(db),
		users:       users.NewPostgresRepository(db),
		passwords:   passwords.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
