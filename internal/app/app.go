// Package app holds the client-side view-state machine. It owns the
// in-memory entry list and funnels every transition between the auth,
// home, create and edit views through explicit methods.
package app

import (
	"context"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/and161185/vibe-journal/internal/errs"
	"github.com/and161185/vibe-journal/internal/model"
)

// View names a screen the presentation layer renders against.
type View string

const (
	ViewAuth   View = "auth"
	ViewHome   View = "home"
	ViewCreate View = "create"
	ViewEdit   View = "edit"
)

// SessionStore is the authentication collaborator.
type SessionStore interface {
	// CurrentUser resolves an existing session. No session is (nil, nil),
	// not an error.
	CurrentUser(ctx context.Context) (*model.User, error)
	// Register creates an account but does not open a session.
	Register(ctx context.Context, email, name, password string) error
	Login(ctx context.Context, email, password string) (*model.User, error)
	// Logout is best-effort and never fails.
	Logout(ctx context.Context)
}

// EntryStore is the remote journal storage collaborator.
type EntryStore interface {
	List(ctx context.Context) ([]model.JournalEntry, error)
	Upsert(ctx context.Context, e model.JournalEntry) (model.JournalEntry, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// Confirmer gates destructive transitions behind an explicit user prompt.
type Confirmer interface {
	Confirm(prompt string) bool
}

// App is the view-state machine. It is not safe for concurrent use;
// callers drive it from a single logical thread.
type App struct {
	sessions SessionStore
	entries  EntryStore
	confirm  Confirmer
	log      *zap.Logger

	user      *model.User
	view      View
	list      []model.JournalEntry
	selected  *model.JournalEntry
	filterTag string
}

// New builds an App in the auth view with an empty list.
func New(sessions SessionStore, entries EntryStore, confirm Confirmer, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		sessions: sessions,
		entries:  entries,
		confirm:  confirm,
		log:      log,
		view:     ViewAuth,
		list:     []model.JournalEntry{},
	}
}

// User returns the authenticated user, or nil.
func (a *App) User() *model.User { return a.user }

// View returns the current view.
func (a *App) View() View { return a.view }

// Entries returns the full in-memory list, newest first.
func (a *App) Entries() []model.JournalEntry { return a.list }

// Selected returns the entry being edited, or nil.
func (a *App) Selected() *model.JournalEntry { return a.selected }

// FilterTag returns the active tag filter, empty when unset.
func (a *App) FilterTag() string { return a.filterTag }

// Startup resolves an existing session and, when present, loads entries
// and lands on home. Without a session the machine stays on auth.
func (a *App) Startup(ctx context.Context) error {
	u, err := a.sessions.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if u == nil {
		a.view = ViewAuth
		return nil
	}
	a.user = u
	a.view = ViewHome
	a.refresh(ctx)
	return nil
}

// Register creates an account. A session is not opened; the user must
// log in afterwards.
func (a *App) Register(ctx context.Context, email, name, password string) error {
	return a.sessions.Register(ctx, email, name, password)
}

// Login authenticates and, on success, moves to home with a fresh list.
// On failure the machine state is untouched.
func (a *App) Login(ctx context.Context, email, password string) error {
	u, err := a.sessions.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.user = u
	a.view = ViewHome
	a.refresh(ctx)
	return nil
}

// Logout resets to the auth view unconditionally. Prior repository
// failures never block it.
func (a *App) Logout(ctx context.Context) {
	a.sessions.Logout(ctx)
	a.user = nil
	a.view = ViewAuth
	a.list = []model.JournalEntry{}
	a.selected = nil
	a.filterTag = ""
}

// BeginCreate opens the editor on a blank entry.
func (a *App) BeginCreate() {
	a.selected = nil
	a.view = ViewCreate
}

// BeginEdit opens the editor on an existing entry from the list.
func (a *App) BeginEdit(id uuid.UUID) error {
	for i := range a.list {
		if a.list[i].ID == id {
			e := a.list[i]
			a.selected = &e
			a.view = ViewEdit
			return nil
		}
	}
	return errs.ErrNotFound
}

// Save persists the draft. A blank title or content makes the save a
// no-op, not an error. The first save assigns the entry id and creation
// time; later saves overwrite the same row. On success the list is
// refreshed and the machine returns to home; on failure the current
// view and draft are kept so the user can retry.
func (a *App) Save(ctx context.Context, draft model.JournalEntry) (bool, error) {
	if strings.TrimSpace(draft.Title) == "" || strings.TrimSpace(draft.Content) == "" {
		return false, nil
	}
	if draft.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return false, err
		}
		draft.ID = id
	}
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = time.Now().UTC()
	}

	if _, err := a.entries.Upsert(ctx, draft); err != nil {
		a.selected = &draft
		return false, err
	}
	a.selected = nil
	a.view = ViewHome
	a.refresh(ctx)
	return true, nil
}

// Delete removes an entry after explicit confirmation. Declining the
// prompt leaves everything untouched. On failure the list is kept as-is.
func (a *App) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if a.confirm != nil && !a.confirm.Confirm("Delete this entry?") {
		return false, nil
	}
	if _, err := a.entries.Delete(ctx, id); err != nil {
		return false, err
	}
	a.refresh(ctx)
	return true, nil
}

// SetFilter restricts the displayed projection to entries carrying tag.
// Pure local state, no network call.
func (a *App) SetFilter(tag string) { a.filterTag = tag }

// ClearFilter restores the full projection.
func (a *App) ClearFilter() { a.filterTag = "" }

// Displayed projects the list through the active filter. It never
// mutates the underlying list and preserves its order.
func (a *App) Displayed() []model.JournalEntry {
	if a.filterTag == "" {
		return a.list
	}
	out := make([]model.JournalEntry, 0, len(a.list))
	for _, e := range a.list {
		if e.HasTag(a.filterTag) {
			out = append(out, e)
		}
	}
	return out
}

// refresh replaces the local list from the store. List failures degrade
// to an empty list; the cause is logged, not surfaced.
func (a *App) refresh(ctx context.Context) {
	es, err := a.entries.List(ctx)
	if err != nil {
		a.log.Warn("entry list refresh", zap.Error(err))
		a.list = []model.JournalEntry{}
		return
	}
	if es == nil {
		es = []model.JournalEntry{}
	}
	a.list = es
}
