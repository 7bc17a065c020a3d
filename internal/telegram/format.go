package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"fprep/internal/kitchen"
	"fprep/internal/mealplan"
	"fprep/internal/preference"
)

func formatError(action string, err error) string {
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	return fmt.Sprintf("❌ *Error %s:*\n```\n%v\n```", action, safeErr)
}

func formatPlansList(plans []mealplan.Record) string {
	if len(plans) == 0 {
		return "📋 *Your Meal Plans*\n\n_No saved plans yet_"
	}

	var sb strings.Builder
	sb.WriteString("📋 *Your Meal Plans*\n\n")
	for _, p := range plans {
		sb.WriteString(fmt.Sprintf("• *%s* (%d days) - %s\n", p.Name, p.Days, p.CreatedAt.Format("2006-01-02")))
		if p.TotalTime != "" {
			sb.WriteString(fmt.Sprintf("  ⏱ %s\n", p.TotalTime))
		}
	}
	return sb.String()
}

func formatKitchen(inv kitchen.Inventory) string {
	var sb strings.Builder
	sb.WriteString("🍳 *Your Kitchen*\n\n")
	for _, k := range kitchen.Kinds() {
		sb.WriteString(fmt.Sprintf("• %s: %d\n", kitchen.Label(k), inv[k]))
	}
	return sb.String()
}

func formatPrefs(p preference.Preferences) string {
	var sb strings.Builder
	sb.WriteString("⚙️ *Your Preferences*\n\n")
	sb.WriteString(fmt.Sprintf("• Style: %s\n", p.Style))
	sb.WriteString(fmt.Sprintf("• Calories: %d kcal/day\n", p.CalorieGoal))
	sb.WriteString(fmt.Sprintf("• Macros: %d%% protein / %d%% fat / %d%% carbs\n", p.MacroProteinPct, p.MacroFatPct, p.MacroCarbsPct))
	sb.WriteString(fmt.Sprintf("• Units: %s, %s, %s\n", p.Units.Temperature, p.Units.Liquid, p.Units.Mass))
	if p.AdditionalNotes != "" {
		sb.WriteString(fmt.Sprintf("• Notes: %s\n", p.AdditionalNotes))
	}
	return sb.String()
}

// applyPrefField updates a single preference field by key.
func applyPrefField(p *preference.Preferences, key, value string) error {
	if value == "" {
		return fmt.Errorf("missing value for %q", key)
	}

	switch key {
	case "style":
		opt, ok := matchOption(preference.Styles, value)
		if !ok {
			return fmt.Errorf("unknown style %q (options: %s)", value, strings.Join(preference.Styles, ", "))
		}
		p.Style = opt
	case "calories":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid calorie goal %q", value)
		}
		p.CalorieGoal = n
	case "protein", "fat", "carbs":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 || n > 100 {
			return fmt.Errorf("invalid %s percentage %q", key, value)
		}
		switch key {
		case "protein":
			p.MacroProteinPct = n
		case "fat":
			p.MacroFatPct = n
		case "carbs":
			p.MacroCarbsPct = n
		}
	case "notes":
		p.AdditionalNotes = value
	case "temperature":
		opt, ok := matchOption(preference.TemperatureUnits, value)
		if !ok {
			return fmt.Errorf("unknown temperature unit %q (options: %s)", value, strings.Join(preference.TemperatureUnits, ", "))
		}
		p.Units.Temperature = opt
	case "liquid":
		opt, ok := matchOption(preference.LiquidUnits, value)
		if !ok {
			return fmt.Errorf("unknown liquid unit %q (options: %s)", value, strings.Join(preference.LiquidUnits, ", "))
		}
		p.Units.Liquid = opt
	case "mass":
		opt, ok := matchOption(preference.MassUnits, value)
		if !ok {
			return fmt.Errorf("unknown mass unit %q (options: %s)", value, strings.Join(preference.MassUnits, ", "))
		}
		p.Units.Mass = opt
	default:
		return fmt.Errorf("unknown preference %q (options: style, calories, protein, fat, carbs, notes, temperature, liquid, mass)", key)
	}
	return nil
}

func matchOption(options []string, value string) (string, bool) {
	for _, opt := range options {
		if strings.EqualFold(opt, value) {
			return opt, true
		}
	}
	return "", false
}

// chunkMessage splits text into pieces of at most limit characters,
// preferring newline boundaries.
func chunkMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var sb strings.Builder
	for _, line := range strings.Split(text, "\n") {
		for len(line) > limit {
			if sb.Len() > 0 {
				chunks = append(chunks, sb.String())
				sb.Reset()
			}
			chunks = append(chunks, line[:limit])
			line = line[limit:]
		}
		if sb.Len()+len(line)+1 > limit {
			chunks = append(chunks, sb.String())
			sb.Reset()
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(line)
	}
	if sb.Len() > 0 {
		chunks = append(chunks, sb.String())
	}
	return chunks
}
