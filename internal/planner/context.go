// Package planner contains the planning core: context assembly, prompt
// composition, model-output parsing, and the plan workflow state machine.
package planner

import (
	"strings"

	"fprep/internal/kitchen"
	"fprep/internal/preference"
)

// Day-count bounds for a single batch-cooking plan.
const (
	MinDays = 1
	MaxDays = 14
)

// PlanContext is the assembled, validated input that drives prompt
// generation.
type PlanContext struct {
	PlanName            string
	Days                int
	RequestedMeals      string
	ExistingIngredients string
	Equipment           kitchen.Inventory
	Preferences         preference.Preferences
}

// ContextInput carries raw form values before validation.
type ContextInput struct {
	PlanName            string
	Days                int
	RequestedMeals      string
	ExistingIngredients string
	Equipment           kitchen.Inventory
	Preferences         preference.Preferences
}

// AssembleContext validates raw input into a PlanContext. Day counts outside
// [MinDays, MaxDays] are clamped. An empty plan name is the only fatal input;
// every other field may be empty or zero.
func AssembleContext(in ContextInput) (PlanContext, error) {
	name := strings.TrimSpace(in.PlanName)
	if name == "" {
		return PlanContext{}, ErrMissingPlanName
	}

	days := in.Days
	if days < MinDays {
		days = MinDays
	}
	if days > MaxDays {
		days = MaxDays
	}

	equip := in.Equipment
	if equip == nil {
		equip = kitchen.NewInventory()
	}

	return PlanContext{
		PlanName:            name,
		Days:                days,
		RequestedMeals:      in.RequestedMeals,
		ExistingIngredients: in.ExistingIngredients,
		Equipment:           equip,
		Preferences:         in.Preferences,
	}, nil
}
