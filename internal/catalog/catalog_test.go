package catalog

import "testing"

// TestLoad verifies the embedded catalog parses and every category has a
// non-empty ladder with exactly one standard movement.
func TestLoad(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, cat := range Categories {
		vars := c.List(cat)
		if len(vars) == 0 {
			t.Fatalf("category %s has no variations", cat)
		}
		standards := 0
		for i, v := range vars {
			if v.Category != cat {
				t.Errorf("%s: variation %s has category %s", cat, v.ID, v.Category)
			}
			if v.IsStandard {
				standards++
			}
			if i > 0 && vars[i-1].Difficulty >= v.Difficulty {
				t.Errorf("%s: difficulties not strictly ascending at %s", cat, v.ID)
			}
		}
		if standards != 1 {
			t.Errorf("%s: %d standard variations, want 1", cat, standards)
		}
	}
}

// TestNextHarder verifies ladder traversal, the top-of-ladder case, and
// unknown ids.
func TestNextHarder(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	next, ok := c.NextHarder(Push, "knee-pushup")
	if !ok || next.ID != "pushup" {
		t.Errorf("NextHarder(push, knee-pushup) = %v, %v, want pushup", next.ID, ok)
	}

	if _, ok := c.NextHarder(Legs, "pistol-squat"); ok {
		t.Error("NextHarder at ladder top returned a variation")
	}

	if _, ok := c.NextHarder(Pull, "no-such-exercise"); ok {
		t.Error("NextHarder on unknown id returned a variation")
	}
}

// TestParseCategory rejects anything outside push/pull/legs.
func TestParseCategory(t *testing.T) {
	for _, s := range []string{"push", "pull", "legs"} {
		if _, err := ParseCategory(s); err != nil {
			t.Errorf("ParseCategory(%q) error: %v", s, err)
		}
	}
	for _, s := range []string{"", "arms", "PUSH"} {
		if _, err := ParseCategory(s); err == nil {
			t.Errorf("ParseCategory(%q) accepted", s)
		}
	}
}

// TestByIDAndStandard verifies lookups used by onboarding.
func TestByIDAndStandard(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	v, ok := c.ByID(Legs, "shrimp-squat")
	if !ok || v.Name != "Shrimp Squat" {
		t.Errorf("ByID(legs, shrimp-squat) = %+v, %v", v, ok)
	}
	if _, ok := c.ByID(Push, "shrimp-squat"); ok {
		t.Error("ByID found a legs exercise under push")
	}

	std, ok := c.Standard(Pull)
	if !ok || std.ID != "pullup" {
		t.Errorf("Standard(pull) = %v, %v, want pullup", std.ID, ok)
	}
}
