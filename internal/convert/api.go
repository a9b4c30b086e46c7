// Package convert maps domain entities to and from their wire shapes.
package convert

import (
	"fmt"
	"time"

	"github.com/and161185/vibe-journal/internal/api"
	"github.com/and161185/vibe-journal/internal/model"
	u "github.com/gofrs/uuid/v5"
)

// ToAPIUser converts a domain user to its wire shape.
func ToAPIUser(m model.User) api.User {
	return api.User{
		ID:    m.ID.String(),
		Email: m.Email,
		Name:  m.Name,
	}
}

// ToAPIEntry converts a domain entry to its wire shape.
func ToAPIEntry(e model.JournalEntry) api.Entry {
	out := api.Entry{
		ID:      e.ID.String(),
		UserID:  e.UserID.String(),
		Title:   e.Title,
		Content: e.Content,
		Mood:    string(e.Mood),
		Tags:    e.Tags,
		Insight: e.Insight,
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if !e.CreatedAt.IsZero() {
		out.CreatedAt = e.CreatedAt.UTC().Format(time.RFC3339)
	}
	return out
}

// ToAPIEntries converts a slice of domain entries.
func ToAPIEntries(es []model.JournalEntry) []api.Entry {
	out := make([]api.Entry, 0, len(es))
	for _, e := range es {
		out = append(out, ToAPIEntry(e))
	}
	return out
}

// FromAPIEntry converts a wire entry to the domain struct.
// The user id field of the payload is ignored: ownership is derived
// from the session on the server.
func FromAPIEntry(in api.Entry) (model.JournalEntry, error) {
	var id u.UUID
	if err := id.UnmarshalText([]byte(in.ID)); err != nil {
		return model.JournalEntry{}, fmt.Errorf("invalid id: %w", err)
	}
	e := model.JournalEntry{
		ID:      id,
		Title:   in.Title,
		Content: in.Content,
		Mood:    model.Mood(in.Mood),
		Tags:    in.Tags,
		Insight: in.Insight,
	}
	if in.CreatedAt != "" {
		ts, err := time.Parse(time.RFC3339, in.CreatedAt)
		if err != nil {
			return model.JournalEntry{}, fmt.Errorf("invalid created_at: %w", err)
		}
		e.CreatedAt = ts
	}
	return e, nil
}

// FromAPIUser converts a wire user to the domain struct.
func FromAPIUser(in api.User) (model.User, error) {
	var id u.UUID
	if err := id.UnmarshalText([]byte(in.ID)); err != nil {
		return model.User{}, fmt.Errorf("invalid user id: %w", err)
	}
	return model.User{ID: id, Email: in.Email, Name: in.Name}, nil
}
