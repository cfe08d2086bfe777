package users

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/fortress-vault/fortress/internal/common"
	"github.com/fortress-vault/fortress/internal/logging"
	"github.com/fortress-vault/fortress/internal/server/identity"
	"github.com/fortress-vault/fortress/internal/server/models"
)

// SaveInput carries the mutable user fields supplied by the caller. Email is
// only honored on create; updates never touch it.
type SaveInput struct {
	Name         string
	Email        string
	Role         models.UserRole
	DepartmentID string
}

type Service struct {
	repo   Repository
	logger logging.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger logging.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("module", "users"),
		now:    time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]*models.User, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.mapError(ctx, "list", err)
	}
	return result, nil
}

// Save invites a new user when id is empty and updates name, role and
// department otherwise.
func (s *Service) Save(ctx context.Context, actor identity.Identity, in SaveInput, id string) (*models.User, error) {
	if in.Name == "" || in.DepartmentID == "" || !in.Role.IsValid() {
		return nil, common.ErrorValidation
	}

	if id == "" {
		if in.Email == "" {
			return nil, common.ErrorValidation
		}
		u := &models.User{
			ID:           uuid.NewString(),
			Name:         in.Name,
			Email:        in.Email,
			Role:         in.Role,
			DepartmentID: in.DepartmentID,
			LastLogin:    s.now().UTC(),
			Status:       models.StatusActive,
		}
		if err := s.repo.Create(ctx, u); err != nil {
			return nil, s.mapError(ctx, "create", err)
		}
		s.logger.Info(ctx, "user invited", "id", u.ID, "email", u.Email, "actor", actor.Email)
		return u, nil
	}

	if err := s.repo.Update(ctx, id, in.Name, in.Role, in.DepartmentID); err != nil {
		return nil, s.mapError(ctx, "update", err)
	}
	s.logger.Info(ctx, "user updated", "id", id, "actor", actor.Email)
	return &models.User{ID: id, Name: in.Name, Role: in.Role, DepartmentID: in.DepartmentID}, nil
}

// Deactivate transitions the user to Inactive. The transition is one-way and
// idempotent: deactivating an inactive user succeeds without effect.
func (s *Service) Deactivate(ctx context.Context, actor identity.Identity, id string) error {
	if err := s.repo.SetStatus(ctx, id, models.StatusInactive); err != nil {
		return s.mapError(ctx, "deactivate", err)
	}
	s.logger.Info(ctx, "user deactivated", "id", id, "actor", actor.Email)
	return nil
}

func (s *Service) mapError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrorDuplicateEmail),
		errors.Is(err, common.ErrorValidation):
		return err
	}
	s.logger.Error(ctx, "user store failure", "op", op, "error", err.Error())
	return common.ErrorStoreUnavailable
}
