// Package iconsync verifies derived assets are in lockstep with the primary collection
package iconsync

import (
	"github.com/RacoonMediaServer/rms-covers/internal/model"
)

// Multiple is a title having several derived files
type Multiple struct {
	Title model.Title
	Paths []string
}

// Result is an outcome of derived category check
type Result struct {
	Category model.Category

	// Expected is a number of titles in the primary collection
	Expected int

	// Files is a number of derived files
	Files int

	// Orphans are derived files without a title in the primary collection
	Orphans []model.Title

	// Missing are primary titles without a derived file
	Missing []model.Title

	Multiple []Multiple
}

// Passed reports whether derived files map to primary titles one to one
func (r *Result) Passed() bool {
	return len(r.Orphans) == 0 && len(r.Missing) == 0 && len(r.Multiple) == 0
}

// Check compares titles of the derived category with titles of primary categories in both directions
func Check(inv *model.Inventory, derived model.Category, primary []model.Category) *Result {
	result := &Result{Category: derived}
	expected := inv.TitlesOf(primary...)
	result.Expected = len(expected)

	paths := map[model.Title][]string{}
	for _, a := range inv.Assets {
		if a.Category != derived {
			continue
		}
		result.Files++
		paths[a.Title] = append(paths[a.Title], a.Rel)
	}

	found := model.TitleSet{}
	for t := range paths {
		found.Add(t)
	}

	for _, t := range found.Sorted() {
		if !expected.Has(t) {
			result.Orphans = append(result.Orphans, t)
		}
		if list := paths[t]; len(list) > 1 {
			result.Multiple = append(result.Multiple, Multiple{Title: t, Paths: list})
		}
	}
	for _, t := range expected.Sorted() {
		if !found.Has(t) {
			result.Missing = append(result.Missing, t)
		}
	}

	return result
}
