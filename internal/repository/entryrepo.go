package repository

import (
	"context"

	"github.com/and161185/vibe-journal/internal/model"
	"github.com/gofrs/uuid/v5"
)

// EntryRepository provides per-user access to journal entries.
type EntryRepository interface {
	// ListByUser returns all entries of a user ordered by creation time descending.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.JournalEntry, error)

	// Upsert inserts the entry or overwrites the existing row with the same id.
	// The creation timestamp of an existing row is preserved.
	Upsert(ctx context.Context, e *model.JournalEntry) error

	// Delete removes an entry by id. Deleting an absent id is not an error;
	// the returned bool reports whether a row was actually removed.
	Delete(ctx context.Context, userID, entryID uuid.UUID) (bool, error)
}
