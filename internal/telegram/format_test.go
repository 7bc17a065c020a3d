package telegram

import (
	"strings"
	"testing"
	"time"

	"fprep/internal/mealplan"
	"fprep/internal/preference"
)

func TestFormatPlansList(t *testing.T) {
	if got := formatPlansList(nil); !strings.Contains(got, "_No saved plans yet_") {
		t.Errorf("empty list output = %q", got)
	}

	plans := []mealplan.Record{
		{Name: "Week 1", Days: 5, TotalTime: "2 hours", CreatedAt: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)},
		{Name: "Week 2", Days: 3, CreatedAt: time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)},
	}
	got := formatPlansList(plans)

	if !strings.Contains(got, "*Week 1* (5 days) - 2026-03-02") {
		t.Errorf("missing first plan line in %q", got)
	}
	if !strings.Contains(got, "⏱ 2 hours") {
		t.Errorf("missing total time in %q", got)
	}
	if strings.Count(got, "⏱") != 1 {
		t.Errorf("plans without instructions must not show a total time: %q", got)
	}
}

func TestApplyPrefField(t *testing.T) {
	p := preference.Default()

	if err := applyPrefField(&p, "calories", "1800"); err != nil {
		t.Fatalf("calories: %v", err)
	}
	if p.CalorieGoal != 1800 {
		t.Errorf("CalorieGoal = %d, want 1800", p.CalorieGoal)
	}

	if err := applyPrefField(&p, "protein", "40"); err != nil {
		t.Fatalf("protein: %v", err)
	}
	if p.MacroProteinPct != 40 {
		t.Errorf("MacroProteinPct = %d, want 40", p.MacroProteinPct)
	}

	if err := applyPrefField(&p, "notes", "no peanuts, please"); err != nil {
		t.Fatalf("notes: %v", err)
	}
	if p.AdditionalNotes != "no peanuts, please" {
		t.Errorf("AdditionalNotes = %q", p.AdditionalNotes)
	}

	// Option matching is case-insensitive and returns the canonical form.
	if err := applyPrefField(&p, "temperature", "fahrenheit"); err != nil {
		t.Fatalf("temperature: %v", err)
	}
	if p.Units.Temperature != "Fahrenheit" {
		t.Errorf("Temperature = %q, want Fahrenheit", p.Units.Temperature)
	}

	for _, bad := range [][2]string{
		{"calories", "zero"},
		{"calories", "-100"},
		{"protein", "150"},
		{"style", "gourmet fusion"},
		{"spice", "hot"},
		{"notes", ""},
	} {
		if err := applyPrefField(&p, bad[0], bad[1]); err == nil {
			t.Errorf("applyPrefField(%q, %q) should fail", bad[0], bad[1])
		}
	}
}

func TestChunkMessage(t *testing.T) {
	if got := chunkMessage("short", 100); len(got) != 1 || got[0] != "short" {
		t.Errorf("short text chunked as %v", got)
	}

	lines := make([]string, 30)
	for i := range lines {
		lines[i] = strings.Repeat("x", 50)
	}
	text := strings.Join(lines, "\n")

	chunks := chunkMessage(text, 200)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 200 {
			t.Errorf("chunk %d is %d chars, over the limit", i, len(c))
		}
	}
	if strings.Join(chunks, "\n") != text {
		t.Error("chunks should reassemble to the original text")
	}

	// A single line over the limit is hard-split.
	long := strings.Repeat("y", 450)
	chunks = chunkMessage(long, 200)
	if len(chunks) != 3 {
		t.Fatalf("oversized line split into %d chunks, want 3", len(chunks))
	}
	if strings.Join(chunks, "") != long {
		t.Error("hard-split chunks should reassemble to the original line")
	}
}
