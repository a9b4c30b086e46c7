// Package client talks to the Vibe Journal HTTP API and keeps the
// session token on disk between invocations.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/and161185/vibe-journal/internal/api"
	"github.com/and161185/vibe-journal/internal/convert"
	"github.com/and161185/vibe-journal/internal/model"
)

// ErrNoSession is returned by authenticated calls without a saved token.
var ErrNoSession = errors.New("no valid session (login required)")

// ---- token store ----

type tokenFile struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func defaultCfgDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "vibejournal")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "vibejournal")
}

// Client implements the session and entry collaborators of the
// view-state machine over HTTP.
type Client struct {
	baseURL string
	httpc   *http.Client
	cfgDir  string
	log     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpc = c }
}

// WithConfigDir overrides where the token file lives.
func WithConfigDir(dir string) Option {
	return func(cl *Client) { cl.cfgDir = dir }
}

// New builds a Client for the given server base URL.
func New(baseURL string, log *zap.Logger, opts ...Option) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		cfgDir:  defaultCfgDir(),
		log:     log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) tokenPath() string { return filepath.Join(c.cfgDir, "token.json") }

func (c *Client) saveToken(tok string, exp time.Time) error {
	if err := os.MkdirAll(c.cfgDir, 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(c.tokenPath(), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(tokenFile{AccessToken: tok, ExpiresAt: exp})
}

func (c *Client) loadToken() (string, error) {
	b, err := os.ReadFile(c.tokenPath())
	if err != nil {
		return "", ErrNoSession
	}
	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return "", ErrNoSession
	}
	if tf.AccessToken == "" || time.Now().After(tf.ExpiresAt) {
		return "", ErrNoSession
	}
	return tf.AccessToken, nil
}

// ---- request plumbing ----

func (c *Client) do(ctx context.Context, method, path, bearer string, in, out any) (int, error) {
	var body *bytes.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, err
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr api.Error
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return resp.StatusCode, errors.New(apiErr.Error)
		}
		return resp.StatusCode, fmt.Errorf("server returned %s", resp.Status)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// ---- app.SessionStore ----

// CurrentUser resolves the saved session, if any. A missing or expired
// token is not an error; the caller just is not logged in.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	tok, err := c.loadToken()
	if err != nil {
		return nil, nil
	}
	var wire api.User
	status, err := c.do(ctx, http.MethodGet, "/api/auth/me", tok, nil, &wire)
	if status == http.StatusUnauthorized {
		// stale token, drop it
		_ = os.Remove(c.tokenPath())
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u, err := convert.FromAPIUser(wire)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Register creates an account. No session is opened.
func (c *Client) Register(ctx context.Context, email, name, password string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/auth/register", "",
		api.RegisterRequest{Email: email, Name: name, Password: password}, nil)
	return err
}

// Login authenticates and persists the issued token.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	var resp api.LoginResponse
	if _, err := c.do(ctx, http.MethodPost, "/api/auth/login", "",
		api.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	exp := time.Now().Add(15 * time.Minute)
	if ts, err := time.Parse(time.RFC3339, resp.ExpiresAt); err == nil {
		exp = ts
	}
	if err := c.saveToken(resp.AccessToken, exp); err != nil {
		return nil, err
	}
	u, err := convert.FromAPIUser(resp.User)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Logout drops the local token. The server keeps no session state, so
// this never fails.
func (c *Client) Logout(context.Context) {
	if err := os.Remove(c.tokenPath()); err != nil && !os.IsNotExist(err) {
		c.log.Warn("remove token file", zap.Error(err))
	}
}

// ---- app.EntryStore ----

// List fetches the caller's entries, newest first.
func (c *Client) List(ctx context.Context) ([]model.JournalEntry, error) {
	tok, err := c.loadToken()
	if err != nil {
		return nil, err
	}
	var wire api.EntryList
	if _, err := c.do(ctx, http.MethodGet, "/api/entries", tok, nil, &wire); err != nil {
		return nil, err
	}
	out := make([]model.JournalEntry, 0, len(wire.Entries))
	for _, we := range wire.Entries {
		e, err := convert.FromAPIEntry(we)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Upsert stores an entry under its id.
func (c *Client) Upsert(ctx context.Context, e model.JournalEntry) (model.JournalEntry, error) {
	tok, err := c.loadToken()
	if err != nil {
		return model.JournalEntry{}, err
	}
	var resp api.UpsertResponse
	if _, err := c.do(ctx, http.MethodPut, "/api/entries/"+e.ID.String(), tok,
		convert.ToAPIEntry(e), &resp); err != nil {
		return model.JournalEntry{}, err
	}
	return convert.FromAPIEntry(resp.Entry)
}

// Delete removes an entry by id. Absent ids count as deleted.
func (c *Client) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tok, err := c.loadToken()
	if err != nil {
		return false, err
	}
	var resp api.DeleteResponse
	if _, err := c.do(ctx, http.MethodDelete, "/api/entries/"+id.String(), tok, nil, &resp); err != nil {
		return false, err
	}
	return resp.Deleted, nil
}
