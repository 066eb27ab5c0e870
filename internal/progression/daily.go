package progression

import "github.com/meltforce/repwave/internal/catalog"

// DailyAdjustment is the delta to apply to tomorrow's target, with the rule
// that produced it.
type DailyAdjustment struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason"`
}

// Hold reasons. Increases carry the matched tier name instead.
const (
	ReasonNoTraining       = "max-effort only or no training sets"
	ReasonLowReadiness     = "low readiness"
	ReasonTargetNotReached = "target not reached"
	ReasonCapActive        = "cap active (3xRPE>=8)"
	ReasonFatiguing        = "fatiguing or many sets"

	ReasonTriviallyEasy = "trivially easy"
	ReasonEasy          = "easy"
	ReasonManageable    = "manageable"
)

// DefaultReadiness is assumed when the athlete skipped the check-in.
const DefaultReadiness = 3

// SuggestDailyTargetDelta decides tomorrow's target delta from yesterday's
// sets. An increase requires both reaching the target and doing so without
// excessive strain; low readiness always holds, never decreases.
func SuggestDailyTargetDelta(setsYesterday []LoggedSet, currentTarget int, capRelaxed bool, cat catalog.Category, readiness *int) DailyAdjustment {
	training := trainingSets(setsYesterday)
	if len(training) == 0 {
		return DailyAdjustment{Delta: 0, Reason: ReasonNoTraining}
	}

	r := DefaultReadiness
	if readiness != nil {
		r = *readiness
	}
	if r <= 2 {
		return DailyAdjustment{Delta: 0, Reason: ReasonLowReadiness}
	}

	// Accumulate reps in set-number order until the target is reached; only
	// the sets needed to get there count toward tier evaluation.
	var used []LoggedSet
	total := 0
	reached := false
	for _, s := range training {
		used = append(used, s)
		total += s.Reps
		if total >= currentTarget {
			reached = true
			break
		}
	}
	if !reached {
		return DailyAdjustment{Delta: 0, Reason: ReasonTargetNotReached}
	}

	// The fatigue cap trumps every tier: reaching the target after three
	// near-maximal opening sets must not earn an increase.
	if fatigueCap(training) && !capRelaxed {
		return DailyAdjustment{Delta: 0, Reason: ReasonCapActive}
	}

	steps := Steps(cat)
	maxRPE := 0
	for _, s := range used {
		if v := rpeOf(s); v > maxRPE {
			maxRPE = v
		}
	}

	switch {
	case len(used) == 1 && rpeOf(used[0]) <= 5:
		return DailyAdjustment{Delta: steps.Trivial, Reason: ReasonTriviallyEasy}
	case len(used) <= 2 && maxRPE <= 6:
		return DailyAdjustment{Delta: steps.Easy, Reason: ReasonEasy}
	case len(used) <= 3 && maxRPE <= 7:
		return DailyAdjustment{Delta: steps.Manageable, Reason: ReasonManageable}
	default:
		return DailyAdjustment{Delta: 0, Reason: ReasonFatiguing}
	}
}

// fatigueCap reports whether the first three training sets were all at RPE 8
// or above. Three consecutive near-maximal sets suppress increases so that
// grinding through a hard day cannot drive runaway target growth.
func fatigueCap(training []LoggedSet) bool {
	if len(training) < 3 {
		return false
	}
	for _, s := range training[:3] {
		if s.RPE == nil || *s.RPE < 8 {
			return false
		}
	}
	return true
}

// IsCapRelaxed reports whether the fatigue cap is unlocked: the most recent
// day with training sets (yesterday, else the day before) opened with three
// sets all at RPE 6 or below. The lookback never goes past two days.
func IsCapRelaxed(setsYesterday, setsDayBefore []LoggedSet) bool {
	training := trainingSets(setsYesterday)
	if len(training) == 0 {
		training = trainingSets(setsDayBefore)
	}
	if len(training) == 0 {
		return false
	}
	probe := training
	if len(probe) > 3 {
		probe = probe[:3]
	}
	for _, s := range probe {
		if rpeOf(s) > 6 {
			return false
		}
	}
	return true
}
