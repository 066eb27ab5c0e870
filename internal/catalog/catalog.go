package catalog

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Category is a movement category. Every exercise variation and daily target
// belongs to exactly one.
type Category string

const (
	Push Category = "push"
	Pull Category = "pull"
	Legs Category = "legs"
)

// Categories lists all valid categories in display order.
var Categories = []Category{Push, Pull, Legs}

// ParseCategory validates a category string from an API path or payload.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case Push, Pull, Legs:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Variation is one exercise variation in the catalog. Difficulty is an ordinal
// rank within the category; IsStandard marks the canonical, non-scaled movement.
type Variation struct {
	ID         string   `yaml:"id" json:"id"`
	Name       string   `yaml:"name" json:"name"`
	Category   Category `yaml:"-" json:"category"`
	Difficulty int      `yaml:"difficulty" json:"difficulty"`
	IsStandard bool     `yaml:"is_standard" json:"is_standard"`
}

// Catalog is the static exercise-variation reference data, read-only after Load.
type Catalog struct {
	byCategory map[Category][]Variation
}

//go:embed catalog.yaml
var catalogYAML []byte

// Load parses the embedded catalog. Variations are sorted by difficulty
// within each category.
func Load() (*Catalog, error) {
	var raw map[Category][]Variation
	if err := yaml.Unmarshal(catalogYAML, &raw); err != nil {
		return nil, fmt.Errorf("parsing exercise catalog: %w", err)
	}

	c := &Catalog{byCategory: make(map[Category][]Variation, len(raw))}
	for cat, vars := range raw {
		if _, err := ParseCategory(string(cat)); err != nil {
			return nil, fmt.Errorf("exercise catalog: %w", err)
		}
		sorted := make([]Variation, len(vars))
		copy(sorted, vars)
		for i := range sorted {
			sorted[i].Category = cat
			if sorted[i].ID == "" {
				return nil, fmt.Errorf("exercise catalog: variation without id in %s", cat)
			}
		}
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Difficulty < sorted[j].Difficulty })
		c.byCategory[cat] = sorted
	}
	return c, nil
}

// List returns the category's variations ordered by ascending difficulty.
func (c *Catalog) List(cat Category) []Variation {
	return c.byCategory[cat]
}

// ByID finds a variation by id within a category.
func (c *Catalog) ByID(cat Category, id string) (Variation, bool) {
	for _, v := range c.byCategory[cat] {
		if v.ID == id {
			return v, true
		}
	}
	return Variation{}, false
}

// Standard returns the category's canonical movement (the onboarding default).
func (c *Catalog) Standard(cat Category) (Variation, bool) {
	for _, v := range c.byCategory[cat] {
		if v.IsStandard {
			return v, true
		}
	}
	return Variation{}, false
}

// NextHarder returns the variation one difficulty rank above currentID in the
// same category, or false if currentID is unknown or already at the top.
func (c *Catalog) NextHarder(cat Category, currentID string) (Variation, bool) {
	vars := c.byCategory[cat]
	for i, v := range vars {
		if v.ID == currentID {
			if i+1 < len(vars) {
				return vars[i+1], true
			}
			return Variation{}, false
		}
	}
	return Variation{}, false
}
