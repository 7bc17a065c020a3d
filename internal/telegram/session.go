package telegram

import (
	"sync"

	"fprep/internal/planner"
)

// collectPhase tracks which answer the collection dialog is waiting for.
type collectPhase int

const (
	phaseNone collectPhase = iota
	phaseName
	phaseDays
	phaseIngredients
	phaseMeals
	phaseAdjust
)

// session is the per-chat conversation state. It lives for the process
// lifetime; the workflow inside it is replaced on each new plan. Updates
// arrive on separate goroutines, and the workflow is not safe for concurrent
// use, so every handler that touches a session holds mu for the whole
// update, serializing processing per chat.
type session struct {
	mu    sync.Mutex
	wf    *planner.Workflow
	phase collectPhase
	input planner.ContextInput
}

func (s *session) reset() {
	s.wf = nil
	s.phase = phaseNone
	s.input = planner.ContextInput{}
}
