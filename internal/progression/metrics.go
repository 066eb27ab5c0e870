package progression

// RepsInReserve converts a reported RPE to estimated reps in reserve.
// Max-effort sets and unreported RPE both count as zero reserve.
func RepsInReserve(rpe *int, isMaxEffort bool) int {
	if isMaxEffort || rpe == nil {
		return 0
	}
	rir := 10 - *rpe
	if rir < 0 {
		return 0
	}
	if rir > 9 {
		return 9
	}
	return rir
}

// ImpliedMax estimates the max-effort capability implied by a sub-maximal set:
// reps completed plus reps left in reserve.
func ImpliedMax(reps int, rpe *int, isMaxEffort bool) int {
	m := reps + RepsInReserve(rpe, isMaxEffort)
	if m < 0 {
		return 0
	}
	return m
}

// BestImpliedMax returns the highest implied max across a collection of sets.
// ok is false for an empty collection.
func BestImpliedMax(sets []LoggedSet) (best int, ok bool) {
	for _, s := range sets {
		if m := ImpliedMax(s.Reps, s.RPE, s.IsMaxEffort); !ok || m > best {
			best, ok = m, true
		}
	}
	return best, ok
}

// InitialDailyTarget anchors the daily target at 80% of demonstrated one-set
// capacity, floored. Every fresh max-effort benchmark resets the target here.
func InitialDailyTarget(maxEffortReps int) int {
	if maxEffortReps <= 0 {
		return 0
	}
	return maxEffortReps * 8 / 10
}
