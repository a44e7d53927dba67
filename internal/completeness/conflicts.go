package completeness

import "github.com/RacoonMediaServer/rms-covers/internal/model"

// Conflict is a title stored in more than one tier of a category
type Conflict struct {
	Title    model.Title
	Category model.Category
	Tiers    []model.Tier
}

// Conflicts finds titles present in several tier folders of the same category.
// An image in both primary and missing folders usually means the placeholder was not removed.
func Conflicts(inv *model.Inventory, categories []model.Category) []Conflict {
	var result []Conflict
	for _, t := range inv.Titles().Sorted() {
		entry := inv.Entries[t]
		for _, c := range categories {
			if tiers := entry.Found[c]; len(tiers) > 1 {
				found := make([]model.Tier, len(tiers))
				copy(found, tiers)
				result = append(result, Conflict{Title: t, Category: c, Tiers: found})
			}
		}
	}
	return result
}
