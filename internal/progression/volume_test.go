package progression

import "testing"

// TestSuggestVolumeAdjustment walks the score thresholds, including the
// boundaries on either side of 85 and 20.
func TestSuggestVolumeAdjustment(t *testing.T) {
	tests := []struct {
		total   int
		target  int
		wantPct float64
		wantNew int
	}{
		{100, 20, 0.25, 25},
		{85, 20, 0.25, 25},
		{84, 20, 0.15, 23},
		{70, 20, 0.15, 23},
		{69, 20, 0.10, 22},
		{55, 20, 0.10, 22},
		{54, 20, 0.05, 21},
		{40, 20, 0.05, 21},
		{39, 20, 0, 20},
		{20, 20, 0, 20},
		{19, 20, -0.125, 17},
		{0, 20, -0.125, 17},
	}
	for _, tt := range tests {
		got := SuggestVolumeAdjustment(tt.total, tt.target)
		if got.Percentage != tt.wantPct || got.NewTarget != tt.wantNew {
			t.Errorf("SuggestVolumeAdjustment(%d, %d) = %+v, want {%v %d}",
				tt.total, tt.target, got, tt.wantPct, tt.wantNew)
		}
	}
}

// TestSuggestVolumeAdjustmentFloor verifies the target never drops below 1.
func TestSuggestVolumeAdjustmentFloor(t *testing.T) {
	got := SuggestVolumeAdjustment(0, 1)
	if got.NewTarget != 1 {
		t.Errorf("new target = %d, want 1", got.NewTarget)
	}
	got = SuggestVolumeAdjustment(10, 0)
	if got.NewTarget != 1 {
		t.Errorf("new target from zero = %d, want 1", got.NewTarget)
	}
}
