package users

import (
	"context"

	"github.com/fortress-vault/fortress/internal/server/models"
)

type Repository interface {
	// List returns all users joined with their department's display name,
	// ordered by user name.
	List(ctx context.Context) ([]*models.User, error)

	Create(ctx context.Context, u *models.User) error

	// Update mutates name, role and department only. Email is immutable
	// after creation and is deliberately absent here.
	Update(ctx context.Context, id string, name string, role models.UserRole, departmentID string) error

	SetStatus(ctx context.Context, id string, status models.UserStatus) error
}
