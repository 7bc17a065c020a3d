package planner

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"fprep/internal/llm"
)

//go:embed recipe_prompt.md
var recipePromptText string

//go:embed instructions_prompt.md
var instructionsPromptText string

//go:embed adjustment_prompt.md
var adjustmentPromptText string

var (
	recipeTmpl       = template.Must(template.New("recipe").Parse(recipePromptText))
	instructionsTmpl = template.Must(template.New("instructions").Parse(instructionsPromptText))
	adjustmentTmpl   = template.Must(template.New("adjustment").Parse(adjustmentPromptText))
)

const recipeSystemPrompt = "You are an experienced chef. You have many experiences in cooking healthy dishes. " +
	"Create a detailed meal plan with recipes and cooking instructions."

const instructionsSystemPrompt = "You are a professional chef who is experienced in cooking multiple dishes simultaneously in a very efficient way. " +
	"Create detailed step-by-step cooking instructions that utilize equipment efficiently and minimize waiting time."

const adjustmentSystemPrompt = "You are a professional chef assistant. Modify the meal plan according to the user's request."

type recipePromptData struct {
	PlanName            string
	Style               string
	CalorieGoal         int
	MacroProteinPct     int
	MacroFatPct         int
	MacroCarbsPct       int
	AdditionalNotes     string
	TempUnit            string
	LiquidUnit          string
	MassUnit            string
	Days                int
	RequestedMeals      string
	ExistingIngredients string
	Equipment           string
}

type instructionsPromptData struct {
	PlanName  string
	Days      int
	PlanText  string
	Equipment string
}

type adjustmentPromptData struct {
	PlanText string
	Request  string
}

// ComposeRecipePrompt renders the recipe-and-grocery-list request for the
// given context. The **Recipes** and **Grocery list** section headers the
// template asks for are a contract with the display layer and must not
// change.
func ComposeRecipePrompt(pc PlanContext) ([]llm.Message, error) {
	data := recipePromptData{
		PlanName:            pc.PlanName,
		Style:               pc.Preferences.Style,
		CalorieGoal:         pc.Preferences.CalorieGoal,
		MacroProteinPct:     pc.Preferences.MacroProteinPct,
		MacroFatPct:         pc.Preferences.MacroFatPct,
		MacroCarbsPct:       pc.Preferences.MacroCarbsPct,
		AdditionalNotes:     pc.Preferences.AdditionalNotes,
		TempUnit:            pc.Preferences.Units.Temperature,
		LiquidUnit:          pc.Preferences.Units.Liquid,
		MassUnit:            pc.Preferences.Units.Mass,
		Days:                pc.Days,
		RequestedMeals:      pc.RequestedMeals,
		ExistingIngredients: pc.ExistingIngredients,
		Equipment:           pc.Equipment.Describe(),
	}

	body, err := render(recipeTmpl, data)
	if err != nil {
		return nil, err
	}
	return messages(recipeSystemPrompt, body), nil
}

// ComposeInstructionsPrompt renders the cooking-instructions request for a
// generated plan. The **Total time**: marker line the template asks for is
// what ExtractTotalTime looks for.
func ComposeInstructionsPrompt(pc PlanContext, plan GeneratedPlan) ([]llm.Message, error) {
	data := instructionsPromptData{
		PlanName:  pc.PlanName,
		Days:      pc.Days,
		PlanText:  plan.RawText,
		Equipment: pc.Equipment.Describe(),
	}

	body, err := render(instructionsTmpl, data)
	if err != nil {
		return nil, err
	}
	return messages(instructionsSystemPrompt, body), nil
}

// ComposeAdjustmentPrompt renders a change request against the current plan,
// instructing the model to keep the plan's output format.
func ComposeAdjustmentPrompt(plan GeneratedPlan, request string) ([]llm.Message, error) {
	data := adjustmentPromptData{
		PlanText: plan.RawText,
		Request:  request,
	}

	body, err := render(adjustmentTmpl, data)
	if err != nil {
		return nil, err
	}
	return messages(adjustmentSystemPrompt, body), nil
}

func render(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

func messages(system, user string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	}
}
