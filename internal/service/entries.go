package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/and161185/vibe-journal/internal/errs"
	"github.com/and161185/vibe-journal/internal/model"
	"github.com/and161185/vibe-journal/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// EntryService defines per-user operations over journal entries.
type EntryService interface {
	// List returns all entries of the user, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]model.JournalEntry, error)
	// Upsert creates or overwrites the entry with its id.
	Upsert(ctx context.Context, userID uuid.UUID, e model.JournalEntry) (model.JournalEntry, error)
	// Delete removes an entry; absent ids count as deleted.
	Delete(ctx context.Context, userID, entryID uuid.UUID) (bool, error)
}

type EntryServiceImpl struct {
	repo repository.EntryRepository
}

// NewEntryService constructs EntryService.
func NewEntryService(repo repository.EntryRepository) *EntryServiceImpl {
	return &EntryServiceImpl{repo: repo}
}

// List delegates to the repository.
func (s *EntryServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]model.JournalEntry, error) {
	if userID == uuid.Nil {
		return nil, errors.New("validation: empty userID")
	}
	return s.repo.ListByUser(ctx, userID)
}

// Upsert validates the entry and delegates to the repository.
// The owning user id is always taken from the session, never from the payload.
// Validation rules:
// - ID != uuid.Nil (assigned client-side at first save)
// - Title and Content non-blank
// - Mood within the fixed enumeration
// Tags are deduplicated preserving insertion order.
func (s *EntryServiceImpl) Upsert(ctx context.Context, userID uuid.UUID, e model.JournalEntry) (model.JournalEntry, error) {
	if userID == uuid.Nil {
		return model.JournalEntry{}, errors.New("validation: empty userID")
	}
	if e.ID == uuid.Nil {
		return model.JournalEntry{}, fmt.Errorf("%w: empty entry id", errs.ErrValidation)
	}
	if strings.TrimSpace(e.Title) == "" || strings.TrimSpace(e.Content) == "" {
		return model.JournalEntry{}, fmt.Errorf("%w: title and content are required", errs.ErrValidation)
	}
	if e.Mood == "" {
		e.Mood = model.MoodNeutral
	}
	if !e.Mood.Valid() {
		return model.JournalEntry{}, fmt.Errorf("%w: unknown mood %q", errs.ErrValidation, e.Mood)
	}
	e.UserID = userID
	e.Tags = model.NormalizeTags(e.Tags)

	if err := s.repo.Upsert(ctx, &e); err != nil {
		return model.JournalEntry{}, err
	}
	return e, nil
}

// Delete removes an entry by id; deleting an absent id is success.
func (s *EntryServiceImpl) Delete(ctx context.Context, userID, entryID uuid.UUID) (bool, error) {
	if userID == uuid.Nil || entryID == uuid.Nil {
		return false, errors.New("validation: empty userID/entryID")
	}
	return s.repo.Delete(ctx, userID, entryID)
}
