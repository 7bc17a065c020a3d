package kitchen

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Repository is a database-backed store for per-user equipment inventories.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save upserts the inventory for a user.
func (r *Repository) Save(ctx context.Context, userID string, inv Inventory) error {
	data, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO kitchens (user_id, equipment, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET equipment = excluded.equipment, updated_at = excluded.updated_at`,
		userID, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save kitchen for user %s: %w", userID, err)
	}
	return nil
}

// Get returns the inventory for a user. A user without a saved kitchen gets
// an all-zero inventory.
func (r *Repository) Get(ctx context.Context, userID string) (Inventory, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT equipment FROM kitchens WHERE user_id = ?`, userID).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return NewInventory(), nil
		}
		return nil, fmt.Errorf("failed to get kitchen for user %s: %w", userID, err)
	}

	inv := NewInventory()
	if err := json.Unmarshal([]byte(data), &inv); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inventory: %w", err)
	}
	return inv, nil
}
