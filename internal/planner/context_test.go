package planner

import (
	"errors"
	"testing"

	"fprep/internal/kitchen"
)

func TestAssembleContext(t *testing.T) {
	t.Run("trims the plan name", func(t *testing.T) {
		pc, err := AssembleContext(ContextInput{PlanName: "  Week 1  ", Days: 3})
		if err != nil {
			t.Fatalf("AssembleContext failed: %v", err)
		}
		if pc.PlanName != "Week 1" {
			t.Errorf("PlanName = %q, want %q", pc.PlanName, "Week 1")
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		for _, name := range []string{"", "   ", "\t\n"} {
			if _, err := AssembleContext(ContextInput{PlanName: name, Days: 3}); !errors.Is(err, ErrMissingPlanName) {
				t.Errorf("AssembleContext(%q) error = %v, want ErrMissingPlanName", name, err)
			}
		}
	})

	t.Run("clamps day counts", func(t *testing.T) {
		tests := []struct {
			days int
			want int
		}{
			{days: -3, want: MinDays},
			{days: 0, want: MinDays},
			{days: 1, want: 1},
			{days: 7, want: 7},
			{days: 14, want: 14},
			{days: 30, want: MaxDays},
		}
		for _, tt := range tests {
			pc, err := AssembleContext(ContextInput{PlanName: "p", Days: tt.days})
			if err != nil {
				t.Fatalf("AssembleContext failed: %v", err)
			}
			if pc.Days != tt.want {
				t.Errorf("Days(%d) = %d, want %d", tt.days, pc.Days, tt.want)
			}
		}
	})

	t.Run("defaults nil equipment", func(t *testing.T) {
		pc, err := AssembleContext(ContextInput{PlanName: "p", Days: 3})
		if err != nil {
			t.Fatalf("AssembleContext failed: %v", err)
		}
		if pc.Equipment == nil {
			t.Fatal("Equipment should be initialized")
		}
		if got := pc.Equipment[kitchen.StoveBurner]; got != 0 {
			t.Errorf("default stove burners = %d, want 0", got)
		}
	})
}
