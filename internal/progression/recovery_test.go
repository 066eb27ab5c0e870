package progression

import "testing"

// weekOfSets builds a training week: daysCount days, setsPerDay sets of
// reps at the given RPE.
func weekOfSets(daysCount, setsPerDay, reps, rpe int) []LoggedSet {
	var out []LoggedSet
	for d := 0; d < daysCount; d++ {
		for n := 1; n <= setsPerDay; n++ {
			out = append(out, LoggedSet{
				Reps: reps, RPE: intp(rpe), SetNumber: n, LoggedAt: at(1+d, 9),
			})
		}
	}
	return out
}

// TestScoreWeekEmpty verifies the no-activity week scores zero everywhere.
func TestScoreWeekEmpty(t *testing.T) {
	got := ScoreWeek(nil, 20, 25)
	if got != (RecoveryBreakdown{}) {
		t.Errorf("empty week = %+v, want zero breakdown", got)
	}
}

// TestScoreWeekPerfect verifies a full-marks week: daily first sets near the
// benchmark, all sets in the productive RPE band, target hit every day, six
// training days.
func TestScoreWeekPerfect(t *testing.T) {
	// 6 days, 2 sets of 22 reps at RPE 7; benchmark 25, target 20.
	sets := weekOfSets(6, 2, 22, 7)
	got := ScoreWeek(sets, 20, 25)

	want := RecoveryBreakdown{
		FirstSetPerformance: 40, // 22/25 = 0.88
		RPEEfficiency:       30, // all in band
		TargetAchievement:   20, // 44 >= 20 every day
		Consistency:         10, // 6 days
		Total:               100,
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

// TestScoreWeekBounds verifies sub-score maxima and the 0-100 total over a
// spread of weeks.
func TestScoreWeekBounds(t *testing.T) {
	weeks := [][]LoggedSet{
		nil,
		weekOfSets(1, 1, 5, 10),
		weekOfSets(3, 4, 10, 9),
		weekOfSets(6, 2, 22, 7),
		weekOfSets(7, 1, 30, 2),
	}
	for i, sets := range weeks {
		b := ScoreWeek(sets, 20, 25)
		if b.FirstSetPerformance < 0 || b.FirstSetPerformance > 40 {
			t.Errorf("week %d: first set = %d, out of [0,40]", i, b.FirstSetPerformance)
		}
		if b.RPEEfficiency < 0 || b.RPEEfficiency > 30 {
			t.Errorf("week %d: rpe efficiency = %d, out of [0,30]", i, b.RPEEfficiency)
		}
		if b.TargetAchievement < 0 || b.TargetAchievement > 20 {
			t.Errorf("week %d: target achievement = %d, out of [0,20]", i, b.TargetAchievement)
		}
		if b.Consistency < 0 || b.Consistency > 10 {
			t.Errorf("week %d: consistency = %d, out of [0,10]", i, b.Consistency)
		}
		if b.Total != b.FirstSetPerformance+b.RPEEfficiency+b.TargetAchievement+b.Consistency {
			t.Errorf("week %d: total %d is not the sum of sub-scores", i, b.Total)
		}
		if b.Total < 0 || b.Total > 100 {
			t.Errorf("week %d: total = %d, out of [0,100]", i, b.Total)
		}
	}
}

// TestScoreWeekFirstSetThresholds walks the first-set performance bands.
func TestScoreWeekFirstSetThresholds(t *testing.T) {
	tests := []struct {
		firstReps int
		want      int
	}{
		{22, 40}, // 0.88
		{19, 35}, // 0.76
		{17, 28}, // 0.68
		{14, 20}, // 0.56
		{12, 12}, // 0.48
		{5, 5},   // 0.20
	}
	for _, tt := range tests {
		sets := []LoggedSet{
			{Reps: tt.firstReps, RPE: intp(9), SetNumber: 1, LoggedAt: at(1, 9)},
			{Reps: 30, RPE: intp(9), SetNumber: 2, LoggedAt: at(1, 10)},
		}
		b := ScoreWeek(sets, 1000, 25)
		if b.FirstSetPerformance != tt.want {
			t.Errorf("first set %d reps: score = %d, want %d", tt.firstReps, b.FirstSetPerformance, tt.want)
		}
	}
}

// TestScoreWeekRPEEfficiencyFloor verifies the floor(pct*20) branch below 40%.
func TestScoreWeekRPEEfficiencyFloor(t *testing.T) {
	// 1 of 4 sets in band: pct 0.25 -> floor(5) = 5.
	sets := []LoggedSet{
		{Reps: 10, RPE: intp(7), SetNumber: 1, LoggedAt: at(1, 9)},
		{Reps: 10, RPE: intp(9), SetNumber: 2, LoggedAt: at(1, 9)},
		{Reps: 10, RPE: intp(3), SetNumber: 3, LoggedAt: at(1, 9)},
		{Reps: 10, SetNumber: 4, LoggedAt: at(1, 9)},
	}
	b := ScoreWeek(sets, 20, 25)
	if b.RPEEfficiency != 5 {
		t.Errorf("rpe efficiency = %d, want 5", b.RPEEfficiency)
	}
}

// TestScoreWeekTargetAchievement verifies day totals against the target,
// including the floor branch below 50%.
func TestScoreWeekTargetAchievement(t *testing.T) {
	// Day 1 hits 20, days 2 and 3 miss: pct 1/3 -> floor(6.66) = 6.
	var sets []LoggedSet
	sets = append(sets, LoggedSet{Reps: 20, RPE: intp(7), SetNumber: 1, LoggedAt: at(1, 9)})
	sets = append(sets, LoggedSet{Reps: 5, RPE: intp(7), SetNumber: 1, LoggedAt: at(2, 9)})
	sets = append(sets, LoggedSet{Reps: 5, RPE: intp(7), SetNumber: 1, LoggedAt: at(3, 9)})
	b := ScoreWeek(sets, 20, 25)
	if b.TargetAchievement != 6 {
		t.Errorf("target achievement = %d, want 6", b.TargetAchievement)
	}
}

// TestScoreWeekConsistency walks the distinct-day bands.
func TestScoreWeekConsistency(t *testing.T) {
	wants := map[int]int{0: 0, 1: 1, 2: 2, 3: 4, 4: 6, 5: 8, 6: 10, 7: 10}
	for days, want := range wants {
		b := ScoreWeek(weekOfSets(days, 1, 10, 7), 20, 25)
		if b.Consistency != want {
			t.Errorf("%d days: consistency = %d, want %d", days, b.Consistency, want)
		}
	}
}

// TestScoreWeekZeroBenchmark verifies a missing benchmark cannot divide by
// zero or award first-set points.
func TestScoreWeekZeroBenchmark(t *testing.T) {
	b := ScoreWeek(weekOfSets(3, 2, 10, 7), 20, 0)
	if b.FirstSetPerformance != 0 {
		t.Errorf("first set with zero benchmark = %d, want 0", b.FirstSetPerformance)
	}
}
