package progression

import "math"

// VolumeAdjustment maps a weekly recovery score to next week's target.
// Percentage is a signed fraction (0.25 means +25%).
type VolumeAdjustment struct {
	Percentage float64 `json:"percentage"`
	NewTarget  int     `json:"new_target"`
}

// SuggestVolumeAdjustment converts a 0-100 recovery total into a percentage
// change on the current daily target. The floor of 1 keeps the target
// strictly positive and actionable.
func SuggestVolumeAdjustment(total, currentTarget int) VolumeAdjustment {
	var pct float64
	switch {
	case total >= 85:
		pct = 0.25
	case total >= 70:
		pct = 0.15
	case total >= 55:
		pct = 0.10
	case total >= 40:
		pct = 0.05
	case total >= 20:
		pct = 0
	default:
		pct = -0.125
	}

	newTarget := int(math.Floor(float64(currentTarget) * (1 + pct)))
	if newTarget < 1 {
		newTarget = 1
	}
	return VolumeAdjustment{Percentage: pct, NewTarget: newTarget}
}
