// Package api defines the JSON wire types shared by the HTTP server and client.
package api

// RegisterRequest is the payload of POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// RegisterResponse reports the created account id.
type RegisterResponse struct {
	UserID string `json:"user_id"`
}

// LoginRequest is the payload of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token and the account it belongs to.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   string `json:"expires_at"` // RFC 3339
	User        User   `json:"user"`
}

// User is the public account shape.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Entry is the wire shape of a journal entry.
type Entry struct {
	ID        string   `json:"id"`
	UserID    string   `json:"user_id,omitempty"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Mood      string   `json:"mood"`
	Tags      []string `json:"tags"`
	Insight   string   `json:"insight,omitempty"`
	CreatedAt string   `json:"created_at,omitempty"` // RFC 3339, immutable after first save
}

// EntryList wraps GET /api/entries results, newest first.
type EntryList struct {
	Entries []Entry `json:"entries"`
}

// UpsertResponse returns the stored entry after a PUT.
type UpsertResponse struct {
	Entry Entry `json:"entry"`
}

// DeleteResponse reports the outcome of DELETE /api/entries/{id}.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// Error is the uniform error envelope.
type Error struct {
	Error string `json:"error"`
}
