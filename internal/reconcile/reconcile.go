// Package reconcile compares titles of the catalog with titles found in the collection
package reconcile

import (
	"github.com/RacoonMediaServer/rms-covers/internal/model"
	"github.com/RacoonMediaServer/rms-covers/internal/selector"
)

// Discrepancy is a title present only on one side
type Discrepancy struct {
	Title model.Title

	// Exclusion is set when the filter tool removed the title from the catalog
	Exclusion *model.ExclusionEntry

	// Suggestion is the most similar missing catalog title, only for orphans
	Suggestion model.Title
}

// Excluded reports whether the discrepancy is explained by the exclusion report
func (d Discrepancy) Excluded() bool {
	return d.Exclusion != nil
}

// Result is an outcome of reconciliation
type Result struct {
	// Matched are titles present in both the catalog and the collection
	Matched []model.Title

	// Missing are catalog titles absent in the collection
	Missing []Discrepancy

	// Orphans are collection titles absent in the catalog
	Orphans []Discrepancy
}

// Passed reports exact correspondence of the catalog and the collection
func (r *Result) Passed() bool {
	return len(r.Missing) == 0 && len(r.Orphans) == 0
}

// Diff splits two sets to titles present only in a, only in b and in both. All lists are sorted.
func Diff(a, b model.TitleSet) (onlyA, onlyB, both []model.Title) {
	for t := range a {
		if b.Has(t) {
			both = append(both, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range b {
		if !a.Has(t) {
			onlyB = append(onlyB, t)
		}
	}
	model.SortTitles(onlyA)
	model.SortTitles(onlyB)
	model.SortTitles(both)
	return
}

// Reconcile computes discrepancies between the catalog and the collection and annotates them
// with exclusion reasons
func Reconcile(catalog, collection model.TitleSet, exclusions model.Exclusions) *Result {
	missing, orphans, matched := Diff(catalog, collection)

	result := &Result{
		Matched: matched,
		Missing: annotate(missing, exclusions),
		Orphans: annotate(orphans, exclusions),
	}

	if len(missing) != 0 && len(orphans) != 0 {
		sel := selector.New(missing)
		for i := range result.Orphans {
			if s, ok := sel.Closest(result.Orphans[i].Title); ok {
				result.Orphans[i].Suggestion = s
			}
		}
	}

	return result
}

func annotate(titles []model.Title, exclusions model.Exclusions) []Discrepancy {
	result := make([]Discrepancy, 0, len(titles))
	for _, t := range titles {
		d := Discrepancy{Title: t}
		if e, ok := exclusions.Lookup(t); ok {
			d.Exclusion = &e
		}
		result = append(result, d)
	}
	return result
}
