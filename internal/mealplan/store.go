package mealplan

import (
	"context"
	"fmt"

	"fprep/internal/planner"
)

// DBStore adapts Repository to the planning workflow's storage interface.
type DBStore struct {
	repo *Repository
}

// NewDBStore wraps a database-backed Repository.
func NewDBStore(repo *Repository) *DBStore {
	return &DBStore{repo: repo}
}

func (s *DBStore) CreateMealPlan(ctx context.Context, rec planner.PlanRecord) (int64, error) {
	return s.repo.CreateMealPlan(ctx, rec.UserID, rec.Name, rec.Days, rec.ExistingIngredients, rec.PlanText)
}

// AttachCookingInstructions links by durable plan id; planName is unused.
func (s *DBStore) AttachCookingInstructions(ctx context.Context, planID int64, planName, totalTime, instructions string) error {
	return s.repo.AttachCookingInstructions(ctx, planID, totalTime, instructions)
}

// SessionStore adapts MemoryStore to the planning workflow's storage
// interface for users without an account. Plans carry no durable ids, so
// instructions attach by plan name.
type SessionStore struct {
	mem *MemoryStore
}

// NewSessionStore wraps a MemoryStore.
func NewSessionStore(mem *MemoryStore) *SessionStore {
	return &SessionStore{mem: mem}
}

func (s *SessionStore) CreateMealPlan(ctx context.Context, rec planner.PlanRecord) (int64, error) {
	s.mem.Add(Record{
		UserID:              rec.UserID,
		Name:                rec.Name,
		Days:                rec.Days,
		ExistingIngredients: rec.ExistingIngredients,
		PlanText:            rec.PlanText,
	})
	return 0, nil
}

func (s *SessionStore) AttachCookingInstructions(ctx context.Context, planID int64, planName, totalTime, instructions string) error {
	if !s.mem.AttachInstructionsByName(planName, totalTime, instructions) {
		return fmt.Errorf("no session plan named %q", planName)
	}
	return nil
}
