// Package preference models a user's cooking and dietary preferences.
package preference

// Units are the measurement units recipes should be written in.
type Units struct {
	Temperature string `json:"temperature"`
	Liquid      string `json:"liquid"`
	Mass        string `json:"mass"`
}

// Preferences drive the tone and nutritional targets of generated plans.
// The macro percentages are independent targets; they are not required to
// sum to 100 and are not validated against each other.
type Preferences struct {
	Style           string `json:"style"`
	CalorieGoal     int    `json:"calorie_goal"`
	MacroProteinPct int    `json:"macro_protein_pct"`
	MacroFatPct     int    `json:"macro_fat_pct"`
	MacroCarbsPct   int    `json:"macro_carbs_pct"`
	AdditionalNotes string `json:"additional_notes"`
	Units           Units  `json:"units"`
}

// Known option sets for the form surfaces.
var (
	Styles           = []string{"Simple and minimal", "Complex with layers of flavors", "Balance"}
	TemperatureUnits = []string{"Celsius", "Fahrenheit"}
	LiquidUnits      = []string{"ml", "liters", "cups", "ounces"}
	MassUnits        = []string{"grams", "kilograms", "pounds"}
)

// Default returns the preferences applied before a user saves their own.
func Default() Preferences {
	return Preferences{
		Style:           "Simple and minimal",
		CalorieGoal:     2000,
		MacroProteinPct: 35,
		MacroFatPct:     25,
		MacroCarbsPct:   40,
		Units: Units{
			Temperature: "Celsius",
			Liquid:      "ml",
			Mass:        "grams",
		},
	}
}
