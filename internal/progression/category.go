package progression

import "github.com/meltforce/repwave/internal/catalog"

// StepTable holds a category's daily target increments per difficulty tier.
// Legs tolerate the largest jumps, pull the smallest — fixed policy constants.
type StepTable struct {
	Trivial    int
	Easy       int
	Manageable int
}

var stepTables = map[catalog.Category]StepTable{
	catalog.Legs: {Trivial: 5, Easy: 3, Manageable: 2},
	catalog.Push: {Trivial: 3, Easy: 2, Manageable: 1},
	catalog.Pull: {Trivial: 2, Easy: 1, Manageable: 1},
}

// Steps returns the category's step table. Unknown categories get the most
// conservative table (pull) rather than a panic.
func Steps(cat catalog.Category) StepTable {
	if t, ok := stepTables[cat]; ok {
		return t
	}
	return stepTables[catalog.Pull]
}
