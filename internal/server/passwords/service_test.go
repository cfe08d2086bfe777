package passwords

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/fortress-vault/fortress/internal/common"
	"github.com/fortress-vault/fortress/internal/logging"
	"github.com/fortress-vault/fortress/internal/server/identity"
	"github.com/fortress-vault/fortress/internal/server/models"
)

type fakeRepo struct {
	listOut []*models.Password
	listErr error

	created   *models.Password
	createErr error

	updated   *models.Password
	updateErr error
}

func (f *fakeRepo) List(ctx context.Context) ([]*models.Password, error) {
	return f.listOut, f.listErr
}

func (f *fakeRepo) Create(ctx context.Context, p *models.Password) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = p
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, p *models.Password) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = p
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
}

func validInput() SaveInput {
	return SaveInput{
		Name:          "Google Account",
		Username:      "user@gmail.com",
		PasswordValue: "supersecret123",
		URL:           "https://accounts.google.com",
		Notes:         "Main account",
		Folder:        models.FolderWork,
		ExpiryDate:    "2024-12-31",
	}
}

func TestSave_CreatePreservesFieldsVerbatim(t *testing.T) {
	repo := &fakeRepo{}
	s := NewService(repo, testLogger())

	in := validInput()
	p, err := s.Save(context.Background(), identity.Admin(), in, "")
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if p.ID == "" {
		t.Fatal("expected a generated id")
	}
	if repo.created.PasswordValue != in.PasswordValue ||
		repo.created.Notes != in.Notes ||
		repo.created.URL != in.URL {
		t.Fatalf("fields were transformed: %+v", repo.created)
	}
}

func TestSave_MissingRequiredFieldsRejected(t *testing.T) {
	s := NewService(&fakeRepo{}, testLogger())

	cases := []func(*SaveInput){
		func(in *SaveInput) { in.Name = "" },
		func(in *SaveInput) { in.Username = "" },
		func(in *SaveInput) { in.PasswordValue = "" },
		func(in *SaveInput) { in.Folder = "Shared" },
	}
	for i, mutate := range cases {
		in := validInput()
		mutate(&in)
		if _, err := s.Save(context.Background(), identity.Admin(), in, ""); !errors.Is(err, common.ErrorValidation) {
			t.Fatalf("case %d: want common.ErrorValidation, got %v", i, err)
		}
	}
}

func TestSave_BadExpiryDateRejected(t *testing.T) {
	s := NewService(&fakeRepo{}, testLogger())

	in := validInput()
	in.ExpiryDate = "31-12-2024"
	if _, err := s.Save(context.Background(), identity.Admin(), in, ""); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want common.ErrorValidation, got %v", err)
	}
}

func TestSave_EmptyExpiryDateAllowed(t *testing.T) {
	repo := &fakeRepo{}
	s := NewService(repo, testLogger())

	in := validInput()
	in.ExpiryDate = ""
	if _, err := s.Save(context.Background(), identity.Admin(), in, ""); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if repo.created.ExpiryDate != "" {
		t.Fatalf("expiry must stay empty, got %q", repo.created.ExpiryDate)
	}
}

func TestSave_UpdateKeyedByID(t *testing.T) {
	repo := &fakeRepo{}
	s := NewService(repo, testLogger())

	_, err := s.Save(context.Background(), identity.Admin(), validInput(), "p-1")
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if repo.created != nil {
		t.Fatal("update must not insert")
	}
	if repo.updated == nil || repo.updated.ID != "p-1" {
		t.Fatalf("unexpected update: %+v", repo.updated)
	}
}

func TestSave_UpdateNotFound(t *testing.T) {
	s := NewService(&fakeRepo{updateErr: common.ErrorNotFound}, testLogger())

	_, err := s.Save(context.Background(), identity.Admin(), validInput(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
