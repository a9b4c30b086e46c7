package postgres

import (
	"context"
	"errors"

	"github.com/and161185/vibe-journal/internal/errs"
	"github.com/and161185/vibe-journal/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user row.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (id, email, name, pwd_hash, salt_auth)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Pool.Exec(ctx, q, u.ID, u.Email, u.Name, u.PwdHash, u.SaltAuth)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// GetByID selects a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	const q = `
SELECT id, email, name, pwd_hash, salt_auth, created_at
FROM users WHERE id=$1`
	return r.scanOne(r.db.Pool.QueryRow(ctx, q, id))
}

// GetByEmail selects a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
SELECT id, email, name, pwd_hash, salt_auth, created_at
FROM users WHERE email=$1`
	return r.scanOne(r.db.Pool.QueryRow(ctx, q, email))
}

func (r *UserRepo) scanOne(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PwdHash, &u.SaltAuth, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
