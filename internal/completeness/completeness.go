// Package completeness verifies every title has all required asset categories
package completeness

import (
	"github.com/RacoonMediaServer/rms-covers/internal/model"
)

// Failure is a title lacking required categories in every tier
type Failure struct {
	Title      model.Title
	Categories []model.Category
}

// Result is an outcome of completeness check
type Result struct {
	// Checked is a number of titles checked
	Checked int

	// Failures lists titles with unsatisfied categories
	Failures []Failure

	// Gaps lists titles with categories satisfied only by a placeholder
	Gaps []model.AcknowledgedGap

	// Resolved counts how every category was satisfied
	Resolved map[model.Category]map[model.Tier]int
}

// Passed reports whether every title has all required categories
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

// Check resolves every required category of every title through the tiers.
// Titles are reported in sorted order regardless of the input order.
func Check(inv *model.Inventory, titles []model.Title, required []model.Category) *Result {
	sorted := make([]model.Title, len(titles))
	copy(sorted, titles)
	model.SortTitles(sorted)

	result := &Result{
		Checked:  len(sorted),
		Resolved: map[model.Category]map[model.Tier]int{},
	}
	for _, c := range required {
		result.Resolved[c] = map[model.Tier]int{}
	}

	for _, t := range sorted {
		entry, ok := inv.Entries[t]
		if !ok {
			entry = model.NewCollectionEntry(t)
		}

		var failed, acknowledged []model.Category
		for _, c := range required {
			tier, found := entry.Resolve(c)
			switch {
			case !found:
				failed = append(failed, c)
			case tier.IsPlaceholder():
				acknowledged = append(acknowledged, c)
				result.Resolved[c][tier]++
			default:
				result.Resolved[c][tier]++
			}
		}

		if len(failed) != 0 {
			result.Failures = append(result.Failures, Failure{Title: t, Categories: failed})
		}
		if len(acknowledged) != 0 {
			result.Gaps = append(result.Gaps, model.AcknowledgedGap{Title: t, Categories: acknowledged})
		}
	}

	return result
}
