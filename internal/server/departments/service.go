package departments

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/fortress-vault/fortress/internal/common"
	"github.com/fortress-vault/fortress/internal/logging"
	"github.com/fortress-vault/fortress/internal/server/identity"
	"github.com/fortress-vault/fortress/internal/server/models"
)

type Service struct {
	repo   Repository
	logger logging.Logger
}

func NewService(repo Repository, logger logging.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("module", "departments"),
	}
}

func (s *Service) List(ctx context.Context) ([]*models.Department, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.mapError(ctx, "list", err)
	}
	return result, nil
}

// Save creates a department when id is empty and renames it otherwise.
func (s *Service) Save(ctx context.Context, actor identity.Identity, name string, id string) (*models.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.ErrorValidation
	}

	if id == "" {
		d := &models.Department{ID: uuid.NewString(), Name: name}
		if err := s.repo.Create(ctx, d); err != nil {
			return nil, s.mapError(ctx, "create", err)
		}
		s.logger.Info(ctx, "department created", "id", d.ID, "name", name, "actor", actor.Email)
		return d, nil
	}

	if err := s.repo.Rename(ctx, id, name); err != nil {
		return nil, s.mapError(ctx, "rename", err)
	}
	s.logger.Info(ctx, "department renamed", "id", id, "name", name, "actor", actor.Email)
	return &models.Department{ID: id, Name: name}, nil
}

// Delete removes an empty department. It fails while any user, active or
// inactive, is still assigned to it.
func (s *Service) Delete(ctx context.Context, actor identity.Identity, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapError(ctx, "delete", err)
	}
	s.logger.Info(ctx, "department deleted", "id", id, "actor", actor.Email)
	return nil
}

// mapError passes taxonomy errors through and converts anything unexpected
// into ErrorStoreUnavailable after logging the details.
func (s *Service) mapError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrorDuplicateName),
		errors.Is(err, common.ErrorReferentialIntegrity):
		return err
	}
	s.logger.Error(ctx, "department store failure", "op", op, "error", err.Error())
	return common.ErrorStoreUnavailable
}
