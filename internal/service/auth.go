// Package service contains application services for authentication and entries.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	pkgcrypto "github.com/and161185/vibe-journal/internal/crypto"
	"github.com/and161185/vibe-journal/internal/errs"
	"github.com/and161185/vibe-journal/internal/limiter"
	"github.com/and161185/vibe-journal/internal/model"
	"github.com/and161185/vibe-journal/internal/repository"
	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
)

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 8

var reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthService defines registration and login operations.
type AuthService interface {
	// Register creates a new user with secure password hashing.
	// It does not issue a session; the caller must log in afterwards.
	Register(ctx context.Context, email, name, password string) (userID string, err error)
	// LoginWithIP applies rate-limiting and authenticates the user.
	LoginWithIP(ctx context.Context, email, password, ip string) (tokens model.Tokens, user model.User, err error)
	// UserByID resolves the account behind a validated session.
	UserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type AuthServiceImpl struct {
	users     repository.UserRepository
	signKey   []byte
	accessTTL time.Duration
	lim       limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, signKey []byte, accessTTL time.Duration, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, signKey: signKey, accessTTL: accessTTL, lim: lim}
}

// Register creates a new user record with a per-user salt.
func (s *AuthServiceImpl) Register(ctx context.Context, email, name, password string) (string, error) {
	if !reEmail.MatchString(email) {
		return "", fmt.Errorf("%w: malformed email", errs.ErrValidation)
	}
	if len(password) < MinPasswordLen {
		return "", fmt.Errorf("%w: password must be at least %d characters", errs.ErrValidation, MinPasswordLen)
	}
	uid, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	saltAuth, err := pkgcrypto.RandBytes(16)
	if err != nil {
		return "", err
	}
	pwdHash := pkgcrypto.HashPassword([]byte(password), saltAuth)

	u := &model.User{
		ID:       uid,
		Email:    email,
		Name:     name,
		PwdHash:  pwdHash,
		SaltAuth: saltAuth,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return "", err
	}
	return uid.String(), nil
}

// LoginWithIP authenticates with rate limiting by (email, ip).
func (s *AuthServiceImpl) LoginWithIP(ctx context.Context, email, password, ip string) (model.Tokens, model.User, error) {
	ipHash := limiter.HashIP(ip)

	// Check if requests are currently allowed for this (email, ip).
	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return model.Tokens{}, model.User{}, err
	}
	if !allowed {
		return model.Tokens{}, model.User{}, errs.ErrRateLimited
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || !pkgcrypto.VerifyPassword([]byte(password), u.SaltAuth, u.PwdHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return model.Tokens{}, model.User{}, errs.ErrRateLimited
		}
		// hide existence of the account on wrong password or lookup error
		return model.Tokens{}, model.User{}, errs.ErrUnauthorized
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, email, ipHash)

	access, exp, err := s.issueAccessToken(u.ID)
	if err != nil {
		return model.Tokens{}, model.User{}, err
	}
	return model.Tokens{AccessToken: access, ExpiresAt: exp}, *u, nil
}

// UserByID loads the user record for a session subject.
func (s *AuthServiceImpl) UserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if id == uuid.Nil {
		return nil, errors.New("validation: empty userID")
	}
	return s.users.GetByID(ctx, id)
}

// issueAccessToken creates a signed HS256 JWT for the given subject.
func (s *AuthServiceImpl) issueAccessToken(userID uuid.UUID) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.accessTTL)
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.signKey)
	return signed, exp, err
}
