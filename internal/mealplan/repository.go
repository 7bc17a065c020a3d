package mealplan

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository is a database-backed store for meal plans.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// CreateMealPlan inserts a saved plan and returns its durable identifier.
func (r *Repository) CreateMealPlan(ctx context.Context, userID, name string, days int, existingIngredients, planText string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO meal_plans (user_id, name, days, existing_ingredients, plan_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userID, name, days, existingIngredients, planText, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert meal plan: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read meal plan id: %w", err)
	}
	return id, nil
}

// AttachCookingInstructions stores the cooking instructions for a saved plan.
func (r *Repository) AttachCookingInstructions(ctx context.Context, planID int64, totalTime, instructions string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cooking_instructions (meal_plan_id, total_time, instructions, created_at)
		VALUES (?, ?, ?, ?)`,
		planID, totalTime, instructions, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert cooking instructions for plan %d: %w", planID, err)
	}
	return nil
}

// ListByUser returns all plans for a user, newest first, with cooking
// instructions joined in where present.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.user_id, p.name, p.days, p.existing_ingredients, p.plan_text, p.created_at,
		       COALESCE(ci.total_time, ''), COALESCE(ci.instructions, '')
		FROM meal_plans p
		LEFT JOIN cooking_instructions ci ON ci.meal_plan_id = p.id
		WHERE p.user_id = ?
		ORDER BY p.created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans for user %s: %w", userID, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Name, &rec.Days, &rec.ExistingIngredients,
			&rec.PlanText, &rec.CreatedAt, &rec.TotalTime, &rec.Instructions); err != nil {
			return nil, fmt.Errorf("failed to scan meal plan: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meal plans: %w", err)
	}
	return records, nil
}
