package preference

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Repository is a database-backed store for per-user preferences.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save upserts the preferences for a user.
func (r *Repository) Save(ctx context.Context, userID string, prefs Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO preferences (user_id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		userID, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save preferences for user %s: %w", userID, err)
	}
	return nil
}

// Get returns the preferences for a user, falling back to Default for users
// who never saved any.
func (r *Repository) Get(ctx context.Context, userID string) (Preferences, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM preferences WHERE user_id = ?`, userID).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return Default(), nil
		}
		return Preferences{}, fmt.Errorf("failed to get preferences for user %s: %w", userID, err)
	}

	var prefs Preferences
	if err := json.Unmarshal([]byte(data), &prefs); err != nil {
		return Preferences{}, fmt.Errorf("failed to unmarshal preferences: %w", err)
	}
	return prefs, nil
}
