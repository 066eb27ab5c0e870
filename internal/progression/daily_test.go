package progression

import (
	"testing"

	"github.com/meltforce/repwave/internal/catalog"
)

func set(reps, rpe, num int) LoggedSet {
	return LoggedSet{Reps: reps, RPE: intp(rpe), SetNumber: num, LoggedAt: at(1, 9)}
}

// TestDailyDeltaNoTraining verifies rest days and max-effort-only days hold
// the target regardless of every other argument.
func TestDailyDeltaNoTraining(t *testing.T) {
	for _, sets := range [][]LoggedSet{
		nil,
		{},
		{{Reps: 25, IsMaxEffort: true, SetNumber: 1, LoggedAt: at(1, 9)}},
	} {
		got := SuggestDailyTargetDelta(sets, 10, true, catalog.Push, intp(5))
		if got.Delta != 0 || got.Reason != ReasonNoTraining {
			t.Errorf("delta = %+v, want 0 / %q", got, ReasonNoTraining)
		}
	}
}

// TestDailyDeltaReadinessGate verifies low readiness overrides even a
// trivially-easy day.
func TestDailyDeltaReadinessGate(t *testing.T) {
	sets := []LoggedSet{set(22, 4, 1)} // would be trivially easy at target 20
	for _, r := range []int{1, 2} {
		got := SuggestDailyTargetDelta(sets, 20, true, catalog.Push, intp(r))
		if got.Delta != 0 || got.Reason != ReasonLowReadiness {
			t.Errorf("readiness %d: got %+v, want 0 / %q", r, got, ReasonLowReadiness)
		}
	}
}

// TestDailyDeltaTargetNotReached verifies under-target days never increase.
func TestDailyDeltaTargetNotReached(t *testing.T) {
	sets := []LoggedSet{set(5, 4, 1), set(5, 4, 2)}
	got := SuggestDailyTargetDelta(sets, 20, false, catalog.Legs, nil)
	if got.Delta != 0 || got.Reason != ReasonTargetNotReached {
		t.Errorf("got %+v, want 0 / %q", got, ReasonTargetNotReached)
	}
}

// TestDailyDeltaTiers verifies the tier ladder and per-category step sizes.
func TestDailyDeltaTiers(t *testing.T) {
	tests := []struct {
		name   string
		sets   []LoggedSet
		target int
		cat    catalog.Category
		want   DailyAdjustment
	}{
		{
			"trivially easy push",
			[]LoggedSet{set(22, 5, 1)},
			20, catalog.Push,
			DailyAdjustment{Delta: 3, Reason: ReasonTriviallyEasy},
		},
		{
			"trivially easy legs",
			[]LoggedSet{set(30, 4, 1)},
			25, catalog.Legs,
			DailyAdjustment{Delta: 5, Reason: ReasonTriviallyEasy},
		},
		{
			"easy pull in two sets",
			[]LoggedSet{set(8, 6, 1), set(7, 6, 2)},
			15, catalog.Pull,
			DailyAdjustment{Delta: 1, Reason: ReasonEasy},
		},
		{
			"manageable push in three sets",
			[]LoggedSet{set(8, 7, 1), set(7, 7, 2), set(6, 7, 3)},
			20, catalog.Push,
			DailyAdjustment{Delta: 1, Reason: ReasonManageable},
		},
		{
			"single hard set is easy tier not trivial",
			[]LoggedSet{set(22, 6, 1)},
			20, catalog.Push,
			DailyAdjustment{Delta: 2, Reason: ReasonEasy},
		},
		{
			"four sets to target is fatiguing",
			[]LoggedSet{set(5, 7, 1), set(5, 7, 2), set(5, 7, 3), set(5, 7, 4)},
			20, catalog.Push,
			DailyAdjustment{Delta: 0, Reason: ReasonFatiguing},
		},
		{
			"reached but high rpe is fatiguing",
			[]LoggedSet{set(12, 9, 1), set(10, 9, 2)},
			20, catalog.Push,
			DailyAdjustment{Delta: 0, Reason: ReasonFatiguing},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestDailyTargetDelta(tt.sets, tt.target, false, tt.cat, nil)
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestDailyDeltaFatigueCap verifies three opening sets at RPE >= 8 suppress
// an otherwise qualifying increase, and that capRelaxed lifts the block.
func TestDailyDeltaFatigueCap(t *testing.T) {
	sets := []LoggedSet{set(12, 9, 1), set(6, 9, 2), set(6, 9, 3)}

	got := SuggestDailyTargetDelta(sets, 10, false, catalog.Push, nil)
	if got.Delta != 0 || got.Reason != ReasonCapActive {
		t.Errorf("cap active: got %+v, want 0 / %q", got, ReasonCapActive)
	}

	// Same sets with the cap relaxed: the single opening set reached target
	// but at RPE 9 no tier matches, so the hold comes from the tier ladder.
	got = SuggestDailyTargetDelta(sets, 10, true, catalog.Push, nil)
	if got.Delta != 0 || got.Reason != ReasonFatiguing {
		t.Errorf("cap relaxed: got %+v, want 0 / %q", got, ReasonFatiguing)
	}

	// Cap plus an easy opener: relaxation releases the increase.
	easyOpen := []LoggedSet{set(12, 5, 1), set(6, 9, 2), set(6, 9, 3)}
	got = SuggestDailyTargetDelta(easyOpen, 10, false, catalog.Push, nil)
	if got.Reason != ReasonTriviallyEasy {
		// First three sets are not all >= 8, so no cap here.
		t.Errorf("easy opener: got %+v, want %q", got, ReasonTriviallyEasy)
	}

	capped := []LoggedSet{set(12, 8, 1), set(6, 8, 2), set(6, 8, 3)}
	got = SuggestDailyTargetDelta(capped, 40, true, catalog.Legs, nil)
	if got.Reason != ReasonTargetNotReached {
		t.Errorf("capped under target: got %+v, want %q", got, ReasonTargetNotReached)
	}
}

// TestDailyDeltaUnsortedInput verifies sets are evaluated in set-number order
// even when handed over unsorted.
func TestDailyDeltaUnsortedInput(t *testing.T) {
	sets := []LoggedSet{set(5, 8, 2), set(22, 5, 1)}
	got := SuggestDailyTargetDelta(sets, 20, false, catalog.Push, nil)
	if got.Reason != ReasonTriviallyEasy || got.Delta != 3 {
		t.Errorf("got %+v, want +3 / %q", got, ReasonTriviallyEasy)
	}
}

// TestDailyDeltaMissingRPE verifies unreported RPE blocks increases rather
// than unlocking them.
func TestDailyDeltaMissingRPE(t *testing.T) {
	sets := []LoggedSet{{Reps: 22, SetNumber: 1, LoggedAt: at(1, 9)}}
	got := SuggestDailyTargetDelta(sets, 20, false, catalog.Push, nil)
	if got.Delta != 0 || got.Reason != ReasonFatiguing {
		t.Errorf("got %+v, want 0 / %q", got, ReasonFatiguing)
	}
}

// TestIsCapRelaxed verifies the two-day lookback unlock rule.
func TestIsCapRelaxed(t *testing.T) {
	easy := []LoggedSet{set(10, 5, 1), set(10, 6, 2), set(10, 6, 3)}
	hard := []LoggedSet{set(10, 8, 1), set(10, 6, 2), set(10, 6, 3)}

	tests := []struct {
		name      string
		yesterday []LoggedSet
		dayBefore []LoggedSet
		want      bool
	}{
		{"easy yesterday", easy, nil, true},
		{"hard yesterday", hard, easy, false},
		{"rest yesterday, easy day before", nil, easy, true},
		{"rest yesterday, hard day before", nil, hard, false},
		{"no training at all", nil, nil, false},
		{"short easy day", []LoggedSet{set(10, 5, 1)}, nil, true},
		{"max effort only falls back", []LoggedSet{{Reps: 20, IsMaxEffort: true, SetNumber: 1, LoggedAt: at(1, 9)}}, easy, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCapRelaxed(tt.yesterday, tt.dayBefore); got != tt.want {
				t.Errorf("IsCapRelaxed = %v, want %v", got, tt.want)
			}
		})
	}
}
