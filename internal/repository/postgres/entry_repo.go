package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/and161185/vibe-journal/internal/errs"
	"github.com/and161185/vibe-journal/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// EntryRepo implements EntryRepository using PostgreSQL.
type EntryRepo struct{ db *DB }

// NewEntryRepo constructs an entry repository.
func NewEntryRepo(db *DB) *EntryRepo { return &EntryRepo{db: db} }

// ListByUser returns entries of a user, newest first.
func (r *EntryRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.JournalEntry, error) {
	const q = `
SELECT id, user_id, title, content, mood, tags, insight, created_at
FROM entries
WHERE user_id=$1
ORDER BY created_at DESC`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.JournalEntry
	for rows.Next() {
		var (
			e    model.JournalEntry
			mood string
		)
		if err = rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &mood, &e.Tags, &e.Insight, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Mood = model.Mood(mood)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Upsert inserts a new entry row or overwrites an existing one with the same id.
// The row is locked for the duration of the transaction so that concurrent
// saves of the same id serialize. created_at of an existing row is preserved.
func (r *EntryRepo) Upsert(ctx context.Context, e *model.JournalEntry) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if cErr := tx.Commit(ctx); cErr != nil {
			err = cErr
		}
	}()

	const sel = `SELECT user_id FROM entries WHERE id=$1 FOR UPDATE`
	const ins = `
INSERT INTO entries (id, user_id, title, content, mood, tags, insight, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	const upd = `
UPDATE entries
SET title=$3, content=$4, mood=$5, tags=$6, insight=$7, updated_at=now()
WHERE id=$1 AND user_id=$2`

	var owner uuid.UUID
	scanErr := tx.QueryRow(ctx, sel, e.ID).Scan(&owner)
	switch {
	case scanErr == nil:
		// overwrite, but never across user boundaries
		if owner != e.UserID {
			return errs.ErrNotFound
		}
		_, err = tx.Exec(ctx, upd, e.ID, e.UserID, e.Title, e.Content, string(e.Mood), e.Tags, e.Insight)
		return err
	case errors.Is(scanErr, pgx.ErrNoRows):
		createdAt := e.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		_, err = tx.Exec(ctx, ins, e.ID, e.UserID, e.Title, e.Content, string(e.Mood), e.Tags, e.Insight, createdAt)
		return err
	default:
		return scanErr
	}
}

// Delete removes an entry row. Absent ids are reported via the bool, not an error.
func (r *EntryRepo) Delete(ctx context.Context, userID, entryID uuid.UUID) (bool, error) {
	const q = `DELETE FROM entries WHERE id=$1 AND user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, entryID, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
