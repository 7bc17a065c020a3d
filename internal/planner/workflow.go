package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fprep/internal/llm"
	"fprep/internal/shared"
)

// Stage is the workflow's position in the planning lifecycle.
type Stage int

const (
	StageIdle Stage = iota
	StagePlanGenerated
	StageAdjusting
	StagePlanSaved
	StageGeneratingInstructions
	StageComplete
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "Idle"
	case StagePlanGenerated:
		return "PlanGenerated"
	case StageAdjusting:
		return "Adjusting"
	case StagePlanSaved:
		return "PlanSaved"
	case StageGeneratingInstructions:
		return "GeneratingInstructions"
	case StageComplete:
		return "Complete"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Sampling temperatures per pass. The initial pass runs at zero; adjustment
// and instruction passes run slightly above it.
const (
	tempInitial      float32 = 0
	tempAdjustment   float32 = 0.1
	tempInstructions float32 = 0.1
)

// Operation names recorded in generation metadata.
const (
	opRecipePlan   = "RecipePlan"
	opAdjustment   = "Adjustment"
	opInstructions = "CookingInstructions"
)

// GeneratedPlan is the model-produced recipe and grocery list text. An
// adjustment replaces it wholesale; there is no merging.
type GeneratedPlan struct {
	RawText   string
	CreatedAt time.Time
}

// CookingInstructions is the model-produced, time-sequenced cooking timeline
// derived from a GeneratedPlan. TotalTime may be TotalTimeUnknown.
type CookingInstructions struct {
	RawText   string
	TotalTime string
	CreatedAt time.Time
}

// PlanRecord is what the workflow hands to storage when a plan is saved.
type PlanRecord struct {
	UserID              string
	Name                string
	Days                int
	ExistingIngredients string
	PlanText            string
}

// PlanStore persists saved plans and their cooking instructions. Durable
// stores return an identifier from CreateMealPlan and receive it back in
// AttachCookingInstructions; session-only stores return 0 and match by plan
// name instead.
type PlanStore interface {
	CreateMealPlan(ctx context.Context, rec PlanRecord) (int64, error)
	AttachCookingInstructions(ctx context.Context, planID int64, planName, totalTime, instructions string) error
}

// Workflow drives a single meal plan from context assembly through cooking
// instruction generation. One instance serves one user session; methods are
// not safe for concurrent use.
type Workflow struct {
	gen    llm.ChatCompleter
	store  PlanStore
	userID string

	stage        Stage
	planCtx      PlanContext
	plan         *GeneratedPlan
	instructions *CookingInstructions
	savedPlanID  int64
}

// NewWorkflow creates a workflow in the Idle stage.
func NewWorkflow(gen llm.ChatCompleter, store PlanStore, userID string) *Workflow {
	return &Workflow{gen: gen, store: store, userID: userID, stage: StageIdle}
}

// Stage returns the current lifecycle stage.
func (w *Workflow) Stage() Stage {
	return w.stage
}

// Context returns the plan context assembled by the last Generate call.
func (w *Workflow) Context() PlanContext {
	return w.planCtx
}

// Plan returns the current generated plan, or nil before generation.
func (w *Workflow) Plan() *GeneratedPlan {
	return w.plan
}

// Instructions returns the generated cooking instructions, or nil before
// the workflow completes.
func (w *Workflow) Instructions() *CookingInstructions {
	return w.instructions
}

// SavedPlanID returns the durable identifier from the save step; zero in
// session-only mode or before saving.
func (w *Workflow) SavedPlanID() int64 {
	return w.savedPlanID
}

// Generate assembles the context, composes the recipe prompt, and runs the
// initial generation pass. On success the workflow advances to
// PlanGenerated; on failure it stays Idle with nothing stored.
func (w *Workflow) Generate(ctx context.Context, in ContextInput) (shared.GenMeta, error) {
	if w.stage != StageIdle {
		return shared.GenMeta{}, fmt.Errorf("generate from %s: %w", w.stage, ErrInvalidTransition)
	}

	pc, err := AssembleContext(in)
	if err != nil {
		return shared.GenMeta{}, err
	}

	msgs, err := ComposeRecipePrompt(pc)
	if err != nil {
		return shared.GenMeta{}, err
	}

	resp, meta, err := w.complete(ctx, opRecipePlan, msgs, tempInitial)
	if err != nil {
		return meta, &GenerationFailedError{Op: "meal plan", Err: err}
	}

	w.planCtx = pc
	w.plan = &GeneratedPlan{RawText: resp.Content, CreatedAt: time.Now().UTC()}
	w.stage = StagePlanGenerated
	return meta, nil
}

// StartAdjust moves from PlanGenerated into Adjusting. No model call is made.
func (w *Workflow) StartAdjust() error {
	if w.stage != StagePlanGenerated {
		return fmt.Errorf("start adjustment from %s: %w", w.stage, ErrInvalidTransition)
	}
	w.stage = StageAdjusting
	return nil
}

// SubmitAdjustment sends the change request against the current plan and
// replaces the plan wholesale with the model's revision. Empty request text
// keeps the workflow in Adjusting; a generation failure also keeps the
// prior plan intact.
func (w *Workflow) SubmitAdjustment(ctx context.Context, request string) (shared.GenMeta, error) {
	if w.stage != StageAdjusting {
		return shared.GenMeta{}, fmt.Errorf("submit adjustment from %s: %w", w.stage, ErrInvalidTransition)
	}
	if strings.TrimSpace(request) == "" {
		return shared.GenMeta{}, ErrEmptyAdjustment
	}

	msgs, err := ComposeAdjustmentPrompt(*w.plan, request)
	if err != nil {
		return shared.GenMeta{}, err
	}

	resp, meta, err := w.complete(ctx, opAdjustment, msgs, tempAdjustment)
	if err != nil {
		return meta, &GenerationFailedError{Op: "adjustment", Err: err}
	}

	w.plan = &GeneratedPlan{RawText: resp.Content, CreatedAt: time.Now().UTC()}
	w.stage = StagePlanGenerated
	return meta, nil
}

// CancelAdjustment discards the adjustment and returns to PlanGenerated
// with the plan unchanged.
func (w *Workflow) CancelAdjustment() error {
	if w.stage != StageAdjusting {
		return fmt.Errorf("cancel adjustment from %s: %w", w.stage, ErrInvalidTransition)
	}
	w.stage = StagePlanGenerated
	return nil
}

// Save persists the current plan and immediately continues into instruction
// generation; the continuation is forced and cannot be skipped. A storage
// failure leaves the workflow in PlanGenerated.
func (w *Workflow) Save(ctx context.Context) (shared.GenMeta, error) {
	if w.stage != StagePlanGenerated {
		return shared.GenMeta{}, fmt.Errorf("save from %s: %w", w.stage, ErrInvalidTransition)
	}

	id, err := w.store.CreateMealPlan(ctx, PlanRecord{
		UserID:              w.userID,
		Name:                w.planCtx.PlanName,
		Days:                w.planCtx.Days,
		ExistingIngredients: w.planCtx.ExistingIngredients,
		PlanText:            w.plan.RawText,
	})
	if err != nil {
		return shared.GenMeta{}, fmt.Errorf("failed to save meal plan: %w", err)
	}

	w.savedPlanID = id
	w.stage = StagePlanSaved
	return w.GenerateInstructions(ctx)
}

// GenerateInstructions composes and runs the cooking-instructions pass and
// attaches the parsed result to the saved plan. Save calls it as the forced
// continuation; callers invoke it directly only to retry after a failure,
// which leaves the workflow in GeneratingInstructions with the saved plan
// untouched.
func (w *Workflow) GenerateInstructions(ctx context.Context) (shared.GenMeta, error) {
	if w.stage != StagePlanSaved && w.stage != StageGeneratingInstructions {
		return shared.GenMeta{}, fmt.Errorf("generate instructions from %s: %w", w.stage, ErrInvalidTransition)
	}
	w.stage = StageGeneratingInstructions

	msgs, err := ComposeInstructionsPrompt(w.planCtx, *w.plan)
	if err != nil {
		return shared.GenMeta{}, err
	}

	resp, meta, err := w.complete(ctx, opInstructions, msgs, tempInstructions)
	if err != nil {
		return meta, &GenerationFailedError{Op: "cooking instructions", Err: err}
	}

	ins := &CookingInstructions{
		RawText:   resp.Content,
		TotalTime: ExtractTotalTime(resp.Content),
		CreatedAt: time.Now().UTC(),
	}

	if err := w.store.AttachCookingInstructions(ctx, w.savedPlanID, w.planCtx.PlanName, ins.TotalTime, ins.RawText); err != nil {
		return meta, fmt.Errorf("failed to save cooking instructions: %w", err)
	}

	w.instructions = ins
	w.stage = StageComplete
	return meta, nil
}

// Reset discards all in-memory state for the current plan and returns to
// Idle. Already-persisted records are untouched.
func (w *Workflow) Reset() {
	w.stage = StageIdle
	w.planCtx = PlanContext{}
	w.plan = nil
	w.instructions = nil
	w.savedPlanID = 0
}

func (w *Workflow) complete(ctx context.Context, op string, msgs []llm.Message, temperature float32) (llm.ChatResponse, shared.GenMeta, error) {
	start := time.Now()
	resp, err := w.gen.Complete(ctx, msgs, temperature)
	meta := shared.GenMeta{
		Op:      op,
		Usage:   resp.Usage,
		Latency: time.Since(start),
	}
	return resp, meta, err
}
