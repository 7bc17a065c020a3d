package user

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository is a database-backed store for user accounts.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// FindOrCreate looks a user up by email, creating the account on first
// sign-in.
func (r *Repository) FindOrCreate(ctx context.Context, email, googleID, name string) (*User, error) {
	existing, err := r.getByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, google_id, name, created_at) VALUES (?, ?, ?, ?)`,
		email, googleID, name, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", email, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read new user id: %w", err)
	}

	return &User{ID: id, Email: email, GoogleID: googleID, Name: name, CreatedAt: now}, nil
}

// GetByID returns the user with the given ID, or nil if none exists.
func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, email, google_id, name, created_at FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *Repository) getByEmail(ctx context.Context, email string) (*User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, email, google_id, name, created_at FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var googleID sql.NullString
	err := row.Scan(&u.ID, &u.Email, &googleID, &u.Name, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	u.GoogleID = googleID.String
	return &u, nil
}
