package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/vibe-journal/internal/errs"
	"github.com/and161185/vibe-journal/internal/model"
	"github.com/and161185/vibe-journal/internal/repository"
)

type fakeEntryRepo struct {
	listInUser uuid.UUID
	listOut    []model.JournalEntry
	listErr    error

	upsertIn  *model.JournalEntry
	upsertErr error

	delInUser uuid.UUID
	delInID   uuid.UUID
	delOut    bool
	delErr    error
}

var _ repository.EntryRepository = (*fakeEntryRepo)(nil)

func (f *fakeEntryRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.JournalEntry, error) {
	f.listInUser = userID
	return append([]model.JournalEntry(nil), f.listOut...), f.listErr
}
func (f *fakeEntryRepo) Upsert(_ context.Context, e *model.JournalEntry) error {
	cpy := *e
	f.upsertIn = &cpy
	return f.upsertErr
}
func (f *fakeEntryRepo) Delete(_ context.Context, userID, entryID uuid.UUID) (bool, error) {
	f.delInUser, f.delInID = userID, entryID
	return f.delOut, f.delErr
}

func TestEntryService_Upsert_Validation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := &fakeEntryRepo{}
	s := NewEntryService(repo)

	user := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())

	if _, err := s.Upsert(ctx, uuid.Nil, model.JournalEntry{ID: id, Title: "t", Content: "c"}); err == nil {
		t.Fatalf("want validation error on empty userID")
	}
	if _, err := s.Upsert(ctx, user, model.JournalEntry{Title: "t", Content: "c"}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error on empty entry id, got %v", err)
	}
	if _, err := s.Upsert(ctx, user, model.JournalEntry{ID: id, Title: "   ", Content: "c"}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error on blank title, got %v", err)
	}
	if _, err := s.Upsert(ctx, user, model.JournalEntry{ID: id, Title: "t", Content: ""}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error on empty content, got %v", err)
	}
	if _, err := s.Upsert(ctx, user, model.JournalEntry{ID: id, Title: "t", Content: "c", Mood: "giddy"}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error on unknown mood, got %v", err)
	}
	if repo.upsertIn != nil {
		t.Fatalf("repo must not be called on invalid input")
	}
}

func TestEntryService_Upsert_NormalizesAndDerivesOwner(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := &fakeEntryRepo{}
	s := NewEntryService(repo)

	user := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())

	in := model.JournalEntry{
		ID:      id,
		UserID:  uuid.Must(uuid.NewV4()), // spoofed owner, must be overridden
		Title:   "Day 1",
		Content: "Good day",
		Tags:    []string{"life", "", "life", "work"},
	}
	out, err := s.Upsert(ctx, user, in)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if out.UserID != user || repo.upsertIn.UserID != user {
		t.Fatalf("owner must come from the session: %v", repo.upsertIn.UserID)
	}
	if out.Mood != model.MoodNeutral {
		t.Fatalf("empty mood should default to neutral, got %q", out.Mood)
	}
	if len(out.Tags) != 2 || out.Tags[0] != "life" || out.Tags[1] != "work" {
		t.Fatalf("tags not deduplicated in order: %v", out.Tags)
	}
}

func TestEntryService_ListAndDelete_Delegate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())
	repo := &fakeEntryRepo{
		listOut: []model.JournalEntry{{ID: id, Title: "x"}},
		delOut:  true,
	}
	s := NewEntryService(repo)
	user := uuid.Must(uuid.NewV4())

	if _, err := s.List(ctx, uuid.Nil); err == nil {
		t.Fatalf("want validation error on empty userID")
	}
	out, err := s.List(ctx, user)
	if err != nil || len(out) != 1 || repo.listInUser != user {
		t.Fatalf("list delegate mismatch: out=%v err=%v", out, err)
	}

	if _, err := s.Delete(ctx, user, uuid.Nil); err == nil {
		t.Fatalf("want validation error on empty entryID")
	}
	ok, err := s.Delete(ctx, user, id)
	if err != nil || !ok || repo.delInUser != user || repo.delInID != id {
		t.Fatalf("delete delegate mismatch: ok=%v err=%v", ok, err)
	}
}

func TestEntryService_RepoErrorsPropagate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := &fakeEntryRepo{
		listErr:   errors.New("boom-list"),
		upsertErr: errors.New("boom-upsert"),
		delErr:    errors.New("boom-del"),
	}
	s := NewEntryService(repo)
	user := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())

	if _, err := s.List(ctx, user); err == nil {
		t.Fatalf("want repo error propagate (list)")
	}
	if _, err := s.Upsert(ctx, user, model.JournalEntry{ID: id, Title: "t", Content: "c"}); err == nil {
		t.Fatalf("want repo error propagate (upsert)")
	}
	if _, err := s.Delete(ctx, user, id); err == nil {
		t.Fatalf("want repo error propagate (delete)")
	}
}
