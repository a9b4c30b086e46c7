// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Tokens collects issued access tokens.
type Tokens struct {
	AccessToken string
	ExpiresAt   time.Time // access token expiry (for diagnostics)
}

// Mood is one of the fixed mood tags attached to a journal entry.
type Mood string

// Fixed mood enumeration. Anything else is rejected on save.
const (
	MoodHappy   Mood = "happy"
	MoodSad     Mood = "sad"
	MoodNeutral Mood = "neutral"
	MoodAngry   Mood = "angry"
	MoodExcited Mood = "excited"
	MoodTired   Mood = "tired"
	MoodChill   Mood = "chill"
)

// Moods lists all valid moods in display order.
var Moods = []Mood{MoodHappy, MoodSad, MoodNeutral, MoodAngry, MoodExcited, MoodTired, MoodChill}

// Valid reports whether the mood is one of the fixed enumeration.
func (m Mood) Valid() bool {
	for _, v := range Moods {
		if m == v {
			return true
		}
	}
	return false
}

// JournalEntry is a single dated journal record.
type JournalEntry struct {
	ID        uuid.UUID // client-generated PK, assigned at first save
	UserID    uuid.UUID // FK -> users.id, derived server-side from the session
	Title     string
	Content   string
	Mood      Mood
	Tags      []string  // free-form, insertion order preserved, no duplicates
	Insight   string    // optional AI vibe check text
	CreatedAt time.Time // immutable after first save
}

// HasTag reports whether the entry carries the given tag.
func (e *JournalEntry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddTag appends a tag unless it is already present or blank.
func (e *JournalEntry) AddTag(tag string) {
	if tag == "" || e.HasTag(tag) {
		return
	}
	e.Tags = append(e.Tags, tag)
}

// NormalizeTags drops blank and duplicate tags keeping first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// User represents an account. The password hash never leaves the server.
type User struct {
	ID        uuid.UUID // PK
	Email     string    // unique
	Name      string    // display name
	PwdHash   []byte    // Argon2id(password, SaltAuth)
	SaltAuth  []byte    // per-user auth salt
	CreatedAt time.Time
}
