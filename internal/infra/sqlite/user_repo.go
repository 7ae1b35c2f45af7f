package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/user"
)

const userColumns = `id, email, COALESCE(full_name, ''), password_hash, is_active, created_at, updated_at, last_login_at`

// UserRepository implements the user repository on SQLite
type UserRepository struct {
	db *sql.DB
}

// Create inserts a user; a duplicate email yields user.ErrUserAlreadyExists
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, full_name, password_hash, is_active, created_at, updated_at, last_login_at)
		VALUES (?, ?, NULLIF(?, ''), ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.FullName, u.PasswordHash, u.IsActive,
		u.CreatedAt.UTC(), u.UpdatedAt.UTC(), utcPtr(u.LastLoginAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*user.User, error) {
	var u user.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// Update updates a user
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET email = ?, full_name = NULLIF(?, ''), password_hash = ?, is_active = ?, updated_at = ?, last_login_at = ?
		WHERE id = ?`,
		u.Email, u.FullName, u.PasswordHash, u.IsActive, u.UpdatedAt.UTC(), utcPtr(u.LastLoginAt), u.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return expectOne(res, user.ErrUserNotFound)
}

// Exists checks if a user with the given email exists
func (r *UserRepository) Exists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}
