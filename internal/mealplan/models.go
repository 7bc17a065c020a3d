// Package mealplan stores saved meal plans and their cooking instructions,
// either durably in SQLite or per-session in memory.
package mealplan

import "time"

// Record is one saved meal plan together with its cooking instructions.
// TotalTime and Instructions are empty until instructions are attached.
type Record struct {
	ID                  int64
	UserID              string
	Name                string
	Days                int
	ExistingIngredients string
	PlanText            string
	TotalTime           string
	Instructions        string
	CreatedAt           time.Time
}
