package db

import (
	"context"
	"database/sql"

	"github.com/fortress-vault/fortress/internal/server/departments"
	"github.com/fortress-vault/fortress/internal/server/passwords"
	"github.com/fortress-vault/fortress/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Close() error
	Departments() departments.Repository
	Users() users.Repository
	Passwords() passwords.Repository
}
