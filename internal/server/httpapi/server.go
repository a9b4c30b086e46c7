// Package httpapi exposes the Vibe Journal HTTP/JSON API.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/and161185/vibe-journal/internal/api"
	"github.com/and161185/vibe-journal/internal/convert"
	"github.com/and161185/vibe-journal/internal/errs"
	"github.com/and161185/vibe-journal/internal/metrics"
	"github.com/and161185/vibe-journal/internal/service"
)

// Server wires services into HTTP handlers.
type Server struct {
	auth      service.AuthService
	entries   service.EntryService
	signKey   []byte
	log       *zap.Logger
	collector *metrics.Collector
}

// New constructs a Server with injected services.
func New(auth service.AuthService, entries service.EntryService, signKey []byte, log *zap.Logger, collector *metrics.Collector) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{auth: auth, entries: entries, signKey: signKey, log: log, collector: collector}
}

// Router builds the chi router with the middleware chain applied.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(Recover(s.log))
	r.Use(Logging(s.log, s.collector))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(s.signKey))
			r.Get("/auth/me", s.handleMe)
			r.Get("/entries", s.handleListEntries)
			r.Put("/entries/{id}", s.handleUpsertEntry)
			r.Delete("/entries/{id}", s.handleDeleteEntry)
		})
	})

	return r
}

// --- Auth ---

// handleRegister creates a new user account.
// POST /api/auth/register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	userID, err := s.auth.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrValidation):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, errs.ErrAlreadyExists):
			writeError(w, http.StatusConflict, "email already registered")
		default:
			s.log.Error("register", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal")
		}
		return
	}
	writeJSON(w, http.StatusCreated, api.RegisterResponse{UserID: userID})
}

// handleLogin authenticates a user and returns a bearer token.
// POST /api/auth/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	tok, u, err := s.auth.LoginWithIP(r.Context(), req.Email, req.Password, r.RemoteAddr)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "bad credentials")
		case errors.Is(err, errs.ErrRateLimited):
			writeError(w, http.StatusTooManyRequests, "rate limited")
		default:
			s.log.Error("login", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal")
		}
		return
	}
	writeJSON(w, http.StatusOK, api.LoginResponse{
		AccessToken: tok.AccessToken,
		ExpiresAt:   tok.ExpiresAt.UTC().Format(time.RFC3339),
		User:        convert.ToAPIUser(u),
	})
}

// handleMe returns the account behind the presented token.
// GET /api/auth/me
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no auth")
		return
	}
	u, err := s.auth.UserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "unknown account")
			return
		}
		s.log.Error("me", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	writeJSON(w, http.StatusOK, convert.ToAPIUser(*u))
}

// --- Entries ---

// handleListEntries returns the caller's entries, newest first.
// GET /api/entries
func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no auth")
		return
	}
	es, err := s.entries.List(r.Context(), userID)
	if err != nil {
		s.log.Error("list entries", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	writeJSON(w, http.StatusOK, api.EntryList{Entries: convert.ToAPIEntries(es)})
}

// handleUpsertEntry creates or overwrites the entry addressed by the URL id.
// PUT /api/entries/{id}
func (s *Server) handleUpsertEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no auth")
		return
	}
	var in api.Entry
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	// the URL id is authoritative
	in.ID = chi.URLParam(r, "id")

	e, err := convert.FromAPIEntry(in)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	saved, err := s.entries.Upsert(r.Context(), userID, e)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrValidation):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, errs.ErrNotFound):
			writeError(w, http.StatusNotFound, "not found")
		default:
			s.log.Error("upsert entry", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal")
		}
		return
	}
	if s.collector != nil {
		s.collector.RecordEntryUpserted()
	}
	writeJSON(w, http.StatusOK, api.UpsertResponse{Entry: convert.ToAPIEntry(saved)})
}

// handleDeleteEntry removes an entry. Deleting an absent id is success.
// DELETE /api/entries/{id}
func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no auth")
		return
	}
	entryID, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad id")
		return
	}
	removed, err := s.entries.Delete(r.Context(), userID, entryID)
	if err != nil {
		s.log.Error("delete entry", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	if removed && s.collector != nil {
		s.collector.RecordEntryDeleted()
	}
	writeJSON(w, http.StatusOK, api.DeleteResponse{Deleted: true})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.Error{Error: msg})
}
