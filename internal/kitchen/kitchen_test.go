package kitchen

import "testing"

func TestDescribe(t *testing.T) {
	inv := NewInventory()
	if got := inv.Describe(); got != "no specialized equipment" {
		t.Errorf("empty inventory Describe() = %q", got)
	}

	inv.Set(LargePan, 2)
	inv.Set(StoveBurner, 4)
	inv.Set(Thermometer, 1)

	// Canonical order, not insertion order.
	want := "4 stove burners, 2 large pans, 1 thermometers"
	if got := inv.Describe(); got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}

func TestSetClampsNegative(t *testing.T) {
	inv := NewInventory()
	inv.Set(OvenRack, -5)
	if inv[OvenRack] != 0 {
		t.Errorf("negative count stored as %d, want 0", inv[OvenRack])
	}
}

func TestParseKind(t *testing.T) {
	if k, ok := ParseKind(" Sous_Vide_Bag "); !ok || k != SousVideBag {
		t.Errorf("ParseKind = %q, %v", k, ok)
	}
	if _, ok := ParseKind("air_fryer"); ok {
		t.Error("unknown kind should not parse")
	}
}

func TestApplySpec(t *testing.T) {
	inv := NewInventory()
	if err := ApplySpec(inv, "large_pan=2, stove_burner=4,crock_pot=1"); err != nil {
		t.Fatalf("ApplySpec failed: %v", err)
	}
	if inv[LargePan] != 2 || inv[StoveBurner] != 4 || inv[CrockPot] != 1 {
		t.Errorf("unexpected inventory: %v", inv)
	}

	if err := ApplySpec(inv, "pizza_oven=1"); err == nil {
		t.Error("unknown equipment should error")
	}
	if err := ApplySpec(inv, "large_pan=two"); err == nil {
		t.Error("non-numeric count should error")
	}
	if err := ApplySpec(inv, "large_pan"); err == nil {
		t.Error("missing count should error")
	}
}

func TestKindsIsACopy(t *testing.T) {
	ks := Kinds()
	ks[0] = Kind("mutated")
	if Kinds()[0] != StoveBurner {
		t.Error("Kinds() must return a copy")
	}
}
