package passwords

import (
	"context"

	"github.com/fortress-vault/fortress/internal/server/models"
)

type Repository interface {
	// List returns every credential record, no filtering.
	List(ctx context.Context) ([]*models.Password, error)

	Create(ctx context.Context, p *models.Password) error

	// Update replaces every field of the record keyed by its id.
	Update(ctx context.Context, p *models.Password) error
}
