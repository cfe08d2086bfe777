package departments

import (
	"context"

	"github.com/fortress-vault/fortress/internal/server/models"
)

type Repository interface {
	// List returns all departments ordered by name, each annotated with the
	// number of Active users assigned to it.
	List(ctx context.Context) ([]*models.Department, error)

	Create(ctx context.Context, d *models.Department) error

	Rename(ctx context.Context, id string, name string) error

	// Delete removes the department unless any user, active or not, still
	// references it.
	Delete(ctx context.Context, id string) error
}
