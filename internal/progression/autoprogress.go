package progression

import "github.com/meltforce/repwave/internal/catalog"

// AutoProgressThreshold is the max-effort rep count above which a scaled
// variation is considered outgrown. Fixed policy, not per-user.
const AutoProgressThreshold = 20

// NextHarderFunc looks up the next-higher-difficulty variation in a category.
// *catalog.Catalog's NextHarder method satisfies it.
type NextHarderFunc func(cat catalog.Category, currentID string) (catalog.Variation, bool)

// ShouldAutoProgress decides, after a max-effort test, whether the current
// variation should be swapped for the next harder one. Standard movements
// never auto-swap, and nothing happens at or below the rep threshold or at
// the top of the ladder.
func ShouldAutoProgress(current catalog.Variation, lastMaxEffort int, next NextHarderFunc) (catalog.Variation, bool) {
	if current.IsStandard {
		return catalog.Variation{}, false
	}
	if lastMaxEffort <= AutoProgressThreshold {
		return catalog.Variation{}, false
	}
	return next(current.Category, current.ID)
}
