package departments

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
	listOut []*models.Department
	listErr error

	created   *models.Department
	createErr error

	renamedID   string
	renamedName string
	renameErr   error

	deletedID string
	deleteErr error
}

func (f *fakeRepo) List(ctx context.Context) ([]*models.Department, error) {
	return f.listOut, f.listErr
}

func (f *fakeRepo) Create(ctx context.Context, d *models.Department) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = d
	return nil
}

func (f *fakeRepo) Rename(ctx context.Context, id string, name string) error {
	if f.renameErr != nil {
		return f.renameErr
	}
	f.renamedID, f.renamedName = id, name
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedID = id
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
}

func TestSave_EmptyNameRejected(t *testing.T) {
	s := NewService(&fakeRepo{}, testLogger())

	_, err := s.Save(context.Background(), identity.Admin(), "   ", "")
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want common.ErrorValidation, got %v", err)
	}
}

func TestSave_CreateAssignsID(t *testing.T) {
	repo := &fakeRepo{}
	s := NewService(repo, testLogger())

	d, err := s.Save(context.Background(), identity.Admin(), "Engineering", "")
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if d.ID == "" {
		t.Fatal("expected a generated id")
	}
	if repo.created == nil || repo.created.Name != "Engineering" {
		t.Fatalf("unexpected created row: %+v", repo.created)
	}
}

func TestSave_RenameInPlace(t *testing.T) {
	repo := &fakeRepo{}
	s := NewService(repo, testLogger())

	d, err := s.Save(context.Background(), identity.Admin(), "Platform", "d-1")
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if d.ID != "d-1" || repo.renamedID != "d-1" || repo.renamedName != "Platform" {
		t.Fatalf("unexpected rename: %+v / %s=%s", d, repo.renamedID, repo.renamedName)
	}
	if repo.created != nil {
		t.Fatal("rename must not create a row")
	}
}

func TestSave_DuplicateNamePassesThrough(t *testing.T) {
	s := NewService(&fakeRepo{createErr: common.ErrorDuplicateName}, testLogger())

	_, err := s.Save(context.Background(), identity.Admin(), "Engineering", "")
	if !errors.Is(err, common.ErrorDuplicateName) {
		t.Fatalf("want common.ErrorDuplicateName, got %v", err)
	}
}

func TestDelete_ReferentialIntegrityPassesThrough(t *testing.T) {
	s := NewService(&fakeRepo{deleteErr: common.ErrorReferentialIntegrity}, testLogger())

	err := s.Delete(context.Background(), identity.Admin(), "d-1")
	if !errors.Is(err, common.ErrorReferentialIntegrity) {
		t.Fatalf("want common.ErrorReferentialIntegrity, got %v", err)
	}
}

func TestDelete_UnexpectedErrorBecomesStoreUnavailable(t *testing.T) {
	s := NewService(&fakeRepo{deleteErr: errors.New("connection refused")}, testLogger())

	err := s.Delete(context.Background(), identity.Admin(), "d-1")
	if !errors.Is(err, common.ErrorStoreUnavailable) {
		t.Fatalf("want common.ErrorStoreUnavailable, got %v", err)
	}
}

func TestList_PassesRowsThrough(t *testing.T) {
	repo := &fakeRepo{listOut: []*models.Department{{ID: "d-1", Name: "Engineering", MemberCount: 1}}}
	s := NewService(repo, testLogger())

	got, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 1 || got[0].MemberCount != 1 {
		t.Fatalf("unexpected result: %+v", got)
	}
}
