// Package progression implements the volume-progression engine: pure decision
// functions that set an initial daily rep target from a max-effort benchmark,
// adjust it day over day from logged sets and readiness, score weekly recovery,
// and promote exercises to harder variations.
//
// Every function is total and clock-free: empty inputs and nil optionals map to
// defined outputs, and callers own all day-boundary math via LoggedAt.
package progression

import (
	"sort"
	"time"
)

// LoggedSet is one completed set of an exercise. RPE is nil when the athlete
// did not report exertion; IsMaxEffort marks a deliberate to-failure test
// rather than a training set.
type LoggedSet struct {
	Reps        int
	RPE         *int
	IsMaxEffort bool
	SetNumber   int
	LoggedAt    time.Time
}

// trainingSets filters out max-effort sets and returns the rest sorted by
// set number.
func trainingSets(sets []LoggedSet) []LoggedSet {
	out := make([]LoggedSet, 0, len(sets))
	for _, s := range sets {
		if !s.IsMaxEffort {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SetNumber < out[j].SetNumber })
	return out
}

// rpeOf treats an unreported RPE as 10. The engine is conservative about
// missing exertion data: it never unlocks an increase.
func rpeOf(s LoggedSet) int {
	if s.RPE == nil {
		return 10
	}
	return *s.RPE
}

// dayKey groups sets into calendar training days.
func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
