package mealplan

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore holds session-only meal plans for users without an account.
// Records live for the life of the process and have no durable identifiers.
type MemoryStore struct {
	mu    sync.Mutex
	plans []Record
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Add appends a plan in creation order.
func (s *MemoryStore) Add(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	s.plans = append(s.plans, rec)
}

// AttachInstructionsByName stores instructions on the first plan in append
// order whose name matches. Plans sharing a name are not distinguished
// further; the oldest match wins. Returns false if no plan has that name.
func (s *MemoryStore) AttachInstructionsByName(name, totalTime, instructions string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.plans {
		if s.plans[i].Name == name {
			s.plans[i].TotalTime = totalTime
			s.plans[i].Instructions = instructions
			return true
		}
	}
	return false
}

// List returns a copy of all plans, newest first.
func (s *MemoryStore) List() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.plans))
	copy(out, s.plans)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
