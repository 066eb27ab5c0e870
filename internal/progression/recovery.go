package progression

import "sort"

// RecoveryBreakdown is a weekly recovery assessment: four weighted sub-scores
// and their 0-100 sum. Computed fresh each time, never mutated.
type RecoveryBreakdown struct {
	FirstSetPerformance int `json:"first_set_performance"`
	RPEEfficiency       int `json:"rpe_efficiency"`
	TargetAchievement   int `json:"target_achievement"`
	Consistency         int `json:"consistency"`
	Total               int `json:"total"`
}

// ScoreWeek scores one category's sets over a 7-day window against the week's
// daily target and the movement's max-effort benchmark.
func ScoreWeek(sets []LoggedSet, dailyTarget, maxEffortReps int) RecoveryBreakdown {
	days := groupByDay(sets)

	b := RecoveryBreakdown{
		FirstSetPerformance: scoreFirstSets(days, maxEffortReps),
		RPEEfficiency:       scoreRPEEfficiency(sets),
		TargetAchievement:   scoreTargetAchievement(days, dailyTarget),
		Consistency:         scoreConsistency(len(days)),
	}
	b.Total = b.FirstSetPerformance + b.RPEEfficiency + b.TargetAchievement + b.Consistency
	return b
}

// groupByDay buckets sets into calendar training days, each day's sets sorted
// by set number.
func groupByDay(sets []LoggedSet) map[string][]LoggedSet {
	days := make(map[string][]LoggedSet)
	for _, s := range sets {
		k := dayKey(s.LoggedAt)
		days[k] = append(days[k], s)
	}
	for k := range days {
		d := days[k]
		sort.Slice(d, func(i, j int) bool { return d[i].SetNumber < d[j].SetNumber })
	}
	return days
}

// scoreFirstSets (0-40): average first-set reps as a fraction of the
// max-effort benchmark. The opening set of each day is the cleanest readout
// of recovered capacity.
func scoreFirstSets(days map[string][]LoggedSet, maxEffortReps int) int {
	if len(days) == 0 || maxEffortReps <= 0 {
		return 0
	}
	sum := 0
	for _, d := range days {
		sum += d[0].Reps
	}
	avg := float64(sum) / float64(len(days))
	pct := avg / float64(maxEffortReps)
	switch {
	case pct >= 0.85:
		return 40
	case pct >= 0.75:
		return 35
	case pct >= 0.65:
		return 28
	case pct >= 0.55:
		return 20
	case pct >= 0.45:
		return 12
	default:
		return 5
	}
}

// scoreRPEEfficiency (0-30): fraction of all sets landing in the productive
// RPE 6-8 band.
func scoreRPEEfficiency(sets []LoggedSet) int {
	if len(sets) == 0 {
		return 0
	}
	inBand := 0
	for _, s := range sets {
		if s.RPE != nil && *s.RPE >= 6 && *s.RPE <= 8 {
			inBand++
		}
	}
	pct := float64(inBand) / float64(len(sets))
	switch {
	case pct >= 0.9:
		return 30
	case pct >= 0.8:
		return 26
	case pct >= 0.7:
		return 22
	case pct >= 0.6:
		return 18
	case pct >= 0.5:
		return 14
	case pct >= 0.4:
		return 10
	default:
		return int(pct * 20)
	}
}

// scoreTargetAchievement (0-20): fraction of training days whose total reps
// met the daily target.
func scoreTargetAchievement(days map[string][]LoggedSet, dailyTarget int) int {
	if len(days) == 0 {
		return 0
	}
	hit := 0
	for _, d := range days {
		total := 0
		for _, s := range d {
			total += s.Reps
		}
		if total >= dailyTarget {
			hit++
		}
	}
	pct := float64(hit) / float64(len(days))
	switch {
	case pct >= 0.95:
		return 20
	case pct >= 0.85:
		return 18
	case pct >= 0.75:
		return 16
	case pct >= 0.65:
		return 14
	case pct >= 0.5:
		return 11
	default:
		return int(pct * 20)
	}
}

// scoreConsistency (0-10): distinct training days in the window.
func scoreConsistency(days int) int {
	switch {
	case days >= 6:
		return 10
	case days >= 5:
		return 8
	case days >= 4:
		return 6
	case days >= 3:
		return 4
	case days >= 2:
		return 2
	case days == 1:
		return 1
	default:
		return 0
	}
}
