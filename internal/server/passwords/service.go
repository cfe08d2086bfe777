package passwords

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

// SaveInput carries the credential fields supplied by the caller. URL, when
// present, has already passed well-formedness validation upstream; the store
// keeps every value verbatim.
type SaveInput struct {
	Name          string
	Username      string
	PasswordValue string
	URL           string
	Notes         string
	Folder        models.Folder
	ExpiryDate    string
}

type Service struct {
	repo   Repository
	logger logging.Logger
}

func NewService(repo Repository, logger logging.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("module", "passwords"),
	}
}

func (s *Service) List(ctx context.Context) ([]*models.Password, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.mapError(ctx, "list", err)
	}
	return result, nil
}

// Save inserts a new record when id is empty and replaces all fields of the
// existing record otherwise. There is no delete operation for credentials.
func (s *Service) Save(ctx context.Context, actor identity.Identity, in SaveInput, id string) (*models.Password, error) {
	if in.Name == "" || in.Username == "" || in.PasswordValue == "" || !in.Folder.IsValid() {
		return nil, common.ErrorValidation
	}
	if in.ExpiryDate != "" {
		if _, err := time.Parse("2006-01-02", in.ExpiryDate); err != nil {
			return nil, common.ErrorValidation
		}
	}

	p := &models.Password{
		ID:            id,
		Name:          in.Name,
		Username:      in.Username,
		PasswordValue: in.PasswordValue,
		URL:           in.URL,
		Notes:         in.Notes,
		Folder:        in.Folder,
		ExpiryDate:    in.ExpiryDate,
	}

	if id == "" {
		p.ID = uuid.NewString()
		if err := s.repo.Create(ctx, p); err != nil {
			return nil, s.mapError(ctx, "create", err)
		}
		s.logger.Info(ctx, "credential created", "id", p.ID, "name", p.Name, "actor", actor.Email)
		return p, nil
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, s.mapError(ctx, "update", err)
	}
	s.logger.Info(ctx, "credential updated", "id", p.ID, "actor", actor.Email)
	return p, nil
}

func (s *Service) mapError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrorValidation):
		return err
	}
	s.logger.Error(ctx, "credential store failure", "op", op, "error", err.Error())
	return common.ErrorStoreUnavailable
}
