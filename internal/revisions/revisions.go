// Package revisions lists collection titles superseded by a newer catalog revision
package revisions

import (
	"github.com/RacoonMediaServer/rms-covers/internal/analysis"
	"github.com/RacoonMediaServer/rms-covers/internal/model"
)

// Update is a collection title which has a newer revision in the catalog
type Update struct {
	Title          model.Title
	Revision       int
	Latest         model.Title
	LatestRevision int
}

type latest struct {
	title    model.Title
	revision int
}

// Check finds collection titles with a lower revision than the newest one in the catalog.
// Titles already present in the latest revision are not reported.
func Check(catalog []model.Title, collection model.TitleSet) []Update {
	newest := map[string]latest{}
	for _, t := range catalog {
		base, rev := analysis.SplitRevision(t.String())
		if cur, ok := newest[base]; !ok || rev > cur.revision {
			newest[base] = latest{title: t, revision: rev}
		}
	}

	var result []Update
	for _, t := range collection.Sorted() {
		base, rev := analysis.SplitRevision(t.String())
		l, ok := newest[base]
		if !ok || l.revision <= rev || collection.Has(l.title) {
			continue
		}
		result = append(result, Update{
			Title:          t,
			Revision:       rev,
			Latest:         l.title,
			LatestRevision: l.revision,
		})
	}
	return result
}
