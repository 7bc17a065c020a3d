package mealplan

import (
	"strings"
	"time"
)

// Filter narrows a plan list by name and creation-date range. Date bounds
// are strict and compared at day granularity: a plan created any time on the
// StartDate or EndDate day is excluded.
type Filter struct {
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
}

// Apply returns the plans matching the filter, preserving input order.
func (f Filter) Apply(plans []Record) []Record {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	var out []Record
	for _, p := range plans {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		created := dateOnly(p.CreatedAt)
		if f.StartDate != nil && !created.After(dateOnly(*f.StartDate)) {
			continue
		}
		if f.EndDate != nil && !created.Before(dateOnly(*f.EndDate)) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
