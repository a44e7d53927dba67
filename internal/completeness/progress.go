package completeness

import "github.com/RacoonMediaServer/rms-covers/internal/model"

// Progress is a share of catalog titles having a high quality image of the category
type Progress struct {
	Category model.Category
	Primary  int
	Total    int
}

// Percent returns progress in percents
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Primary) * 100 / float64(p.Total)
}

// Measure computes progress of every category against the catalog
func Measure(inv *model.Inventory, catalog model.TitleSet, categories []model.Category) []Progress {
	result := make([]Progress, 0, len(categories))
	for _, c := range categories {
		p := Progress{Category: c, Total: len(catalog)}
		for t := range catalog {
			if e, ok := inv.Entries[t]; ok && e.Has(c, model.TierPrimary) {
				p.Primary++
			}
		}
		result = append(result, p)
	}
	return result
}
