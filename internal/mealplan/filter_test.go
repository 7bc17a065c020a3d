package mealplan

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFilterSearch(t *testing.T) {
	plans := []Record{
		{Name: "Summer Week 1"},
		{Name: "winter warmers"},
		{Name: "Quick lunches"},
	}

	got := Filter{Search: "WEEK"}.Apply(plans)
	if len(got) != 1 || got[0].Name != "Summer Week 1" {
		t.Errorf("search filter returned %v", got)
	}

	if got := (Filter{Search: "  "}).Apply(plans); len(got) != 3 {
		t.Errorf("blank search should match everything, got %d", len(got))
	}
	if got := (Filter{Search: "tacos"}).Apply(plans); len(got) != 0 {
		t.Errorf("no-match search returned %d plans", len(got))
	}
}

func TestFilterDateBoundsAreStrict(t *testing.T) {
	start := date(2026, 3, 1)
	end := date(2026, 3, 10)
	plans := []Record{
		{Name: "before", CreatedAt: date(2026, 2, 20)},
		{Name: "on start", CreatedAt: start},
		{Name: "inside", CreatedAt: date(2026, 3, 5)},
		{Name: "on end", CreatedAt: end},
		{Name: "after", CreatedAt: date(2026, 3, 15)},
	}

	got := Filter{StartDate: &start, EndDate: &end}.Apply(plans)
	if len(got) != 1 || got[0].Name != "inside" {
		t.Fatalf("strict range returned %v", names(got))
	}

	got = Filter{StartDate: &start}.Apply(plans)
	if len(got) != 3 {
		t.Errorf("start-only filter returned %v", names(got))
	}
	got = Filter{EndDate: &end}.Apply(plans)
	if len(got) != 3 {
		t.Errorf("end-only filter returned %v", names(got))
	}
}

func TestFilterComparesAtDayGranularity(t *testing.T) {
	start := date(2026, 3, 1)
	end := date(2026, 3, 10)
	plans := []Record{
		{Name: "start day morning", CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		{Name: "start day night", CreatedAt: time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)},
		{Name: "inside", CreatedAt: time.Date(2026, 3, 2, 0, 30, 0, 0, time.UTC)},
		{Name: "end day", CreatedAt: time.Date(2026, 3, 10, 0, 0, 1, 0, time.UTC)},
	}

	got := Filter{StartDate: &start, EndDate: &end}.Apply(plans)
	if len(got) != 1 || got[0].Name != "inside" {
		t.Fatalf("boundary-day plans must be excluded whatever their time, got %v", names(got))
	}
}

func TestFilterCombined(t *testing.T) {
	start := date(2026, 1, 1)
	plans := []Record{
		{Name: "Week A", CreatedAt: date(2026, 1, 5)},
		{Name: "Week B", CreatedAt: date(2025, 12, 20)},
		{Name: "Other", CreatedAt: date(2026, 1, 5)},
	}

	got := Filter{Search: "week", StartDate: &start}.Apply(plans)
	if len(got) != 1 || got[0].Name != "Week A" {
		t.Errorf("combined filter returned %v", names(got))
	}
}

func names(plans []Record) []string {
	out := make([]string, len(plans))
	for i, p := range plans {
		out[i] = p.Name
	}
	return out
}
