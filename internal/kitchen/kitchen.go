// Package kitchen models the cooking equipment a user has available.
// Equipment kinds are a fixed, named set; recipe and instruction prompts are
// restricted to the equipment in a user's inventory.
package kitchen

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies one of the named equipment kinds a kitchen can hold.
type Kind string

const (
	StoveBurner   Kind = "stove_burner"
	OvenRack      Kind = "oven_rack"
	SousVideBag   Kind = "sous_vide_bag"
	LargePan      Kind = "large_pan"
	MediumPan     Kind = "medium_pan"
	SmallPan      Kind = "small_pan"
	LargePot      Kind = "large_pot"
	MediumPot     Kind = "medium_pot"
	SmallPot      Kind = "small_pot"
	FoodProcessor Kind = "food_processor"
	BlenderCup    Kind = "blender_cup"
	CrockPot      Kind = "crock_pot"
	RiceCooker    Kind = "rice_cooker"
	Thermometer   Kind = "thermometer"
)

// kinds is the canonical ordering, used for display and for deterministic
// prompt rendering.
var kinds = []Kind{
	StoveBurner,
	OvenRack,
	SousVideBag,
	LargePan,
	MediumPan,
	SmallPan,
	LargePot,
	MediumPot,
	SmallPot,
	FoodProcessor,
	BlenderCup,
	CrockPot,
	RiceCooker,
	Thermometer,
}

var labels = map[Kind]string{
	StoveBurner:   "stove burners",
	OvenRack:      "oven racks",
	SousVideBag:   "sous vide bags",
	LargePan:      "large pans",
	MediumPan:     "medium pans",
	SmallPan:      "small pans",
	LargePot:      "large pots",
	MediumPot:     "medium pots",
	SmallPot:      "small pots",
	FoodProcessor: "food processors",
	BlenderCup:    "blender cups",
	CrockPot:      "crock pots",
	RiceCooker:    "rice cookers",
	Thermometer:   "thermometers",
}

// Kinds returns all equipment kinds in canonical order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// Label returns the human-readable plural label for a kind.
func Label(k Kind) string {
	return labels[k]
}

// ParseKind maps a raw identifier to a known equipment kind.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.TrimSpace(strings.ToLower(s)))
	_, ok := labels[k]
	return k, ok
}

// Inventory maps equipment kinds to non-negative counts.
type Inventory map[Kind]int

// NewInventory returns an inventory with every known kind at zero.
func NewInventory() Inventory {
	inv := make(Inventory, len(kinds))
	for _, k := range kinds {
		inv[k] = 0
	}
	return inv
}

// Set stores a count for a kind, clamping negative values to zero.
func (inv Inventory) Set(k Kind, count int) {
	if count < 0 {
		count = 0
	}
	inv[k] = count
}

// ApplySpec parses a comma-separated "kind=count" spec, such as
// "large_pan=2, stove_burner=4", and updates inv with each entry.
func ApplySpec(inv Inventory, spec string) error {
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, countStr, ok := strings.Cut(part, "=")
		if !ok {
			return fmt.Errorf("expected kind=count, got %q", part)
		}
		kind, ok := ParseKind(name)
		if !ok {
			return fmt.Errorf("unknown equipment %q", strings.TrimSpace(name))
		}
		count, err := strconv.Atoi(strings.TrimSpace(countStr))
		if err != nil {
			return fmt.Errorf("invalid count for %s: %q", kind, strings.TrimSpace(countStr))
		}
		inv.Set(kind, count)
	}
	return nil
}

// Describe renders the available equipment as a sentence fragment for
// prompts, in canonical order, listing only kinds with a non-zero count.
func (inv Inventory) Describe() string {
	var parts []string
	for _, k := range kinds {
		if n := inv[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, labels[k]))
		}
	}
	if len(parts) == 0 {
		return "no specialized equipment"
	}
	return strings.Join(parts, ", ")
}
