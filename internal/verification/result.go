package verification

import (
	"time"

	"github.com/RacoonMediaServer/rms-covers/internal/catalog"
	"github.com/RacoonMediaServer/rms-covers/internal/completeness"
	"github.com/RacoonMediaServer/rms-covers/internal/dimensions"
	"github.com/RacoonMediaServer/rms-covers/internal/duplicates"
	"github.com/RacoonMediaServer/rms-covers/internal/exclusion"
	"github.com/RacoonMediaServer/rms-covers/internal/iconsync"
	"github.com/RacoonMediaServer/rms-covers/internal/model"
	"github.com/RacoonMediaServer/rms-covers/internal/reconcile"
	"github.com/RacoonMediaServer/rms-covers/internal/revisions"
	"github.com/RacoonMediaServer/rms-covers/internal/storage"
)

// Section names in report order
const (
	SectionScan         = "Collection scan"
	SectionCompleteness = "Completeness"
	SectionConflicts    = "Tier conflicts"
	SectionDuplicates   = "Duplicates"
	SectionSync         = "Icon sync"
	SectionDimensions   = "Dimensions"
	SectionRevisions    = "Revision updates"
	SectionMissing      = "Catalog titles not in collection"
	SectionOrphans      = "Collection titles not in catalog"
)

// Sections lists all sections in report order
var Sections = []string{
	SectionScan,
	SectionCompleteness,
	SectionConflicts,
	SectionDuplicates,
	SectionSync,
	SectionDimensions,
	SectionRevisions,
	SectionMissing,
	SectionOrphans,
}

// Result is a complete outcome of a verification run. Every checker fills only its own fields.
type Result struct {
	ID        string
	StartedAt time.Time

	CatalogFile   string
	ExclusionFile string

	Catalog    *catalog.Catalog
	Exclusions *exclusion.Report
	Layout     *storage.Layout
	Inventory  *model.Inventory

	Reconciliation *reconcile.Result
	Completeness   *completeness.Result
	Conflicts      []completeness.Conflict
	Progress       []completeness.Progress
	Duplicates     *duplicates.Result
	Sync           []*iconsync.Result
	Dimensions     []dimensions.FolderResult
	Revisions      []revisions.Update

	// Skipped contains reasons of sections which could not run
	Skipped map[string]error
}

func newResult() *Result {
	return &Result{Skipped: map[string]error{}}
}

func (r *Result) skip(err error, sections ...string) {
	for _, s := range sections {
		r.Skipped[s] = err
	}
}

// Status returns outcome of the section
func (r *Result) Status(section string) model.SectionStatus {
	if _, skipped := r.Skipped[section]; skipped {
		return model.StatusSkipped
	}

	switch section {
	case SectionScan:
		if len(r.Inventory.Warnings) != 0 || len(r.Inventory.Failed()) != 0 {
			return model.StatusFailed
		}
	case SectionCompleteness:
		if r.Completeness == nil || !r.Completeness.Passed() {
			return model.StatusFailed
		}
	case SectionConflicts:
		if len(r.Conflicts) != 0 {
			return model.StatusFailed
		}
	case SectionDuplicates:
		if r.Duplicates == nil || !r.Duplicates.Passed() {
			return model.StatusFailed
		}
	case SectionSync:
		for _, s := range r.Sync {
			if !s.Passed() {
				return model.StatusFailed
			}
		}
	case SectionDimensions:
		return r.dimensionsStatus()
	case SectionMissing:
		if r.Reconciliation == nil || len(r.Reconciliation.Missing) != 0 {
			return model.StatusFailed
		}
	case SectionOrphans:
		if r.Reconciliation == nil || len(r.Reconciliation.Orphans) != 0 {
			return model.StatusFailed
		}
	}
	return model.StatusPassed
}

func (r *Result) dimensionsStatus() model.SectionStatus {
	status := model.StatusPassed
	for i := range r.Dimensions {
		f := &r.Dimensions[i]
		if f.Err != nil {
			status = model.StatusSkipped
			continue
		}
		if !f.Passed() {
			return model.StatusFailed
		}
	}
	return status
}

// Findings returns a number of problems reported by the section
func (r *Result) Findings(section string) int {
	if _, skipped := r.Skipped[section]; skipped {
		return 0
	}

	switch section {
	case SectionScan:
		return len(r.Inventory.Warnings) + len(r.Inventory.Failed())
	case SectionCompleteness:
		if r.Completeness != nil {
			return len(r.Completeness.Failures)
		}
	case SectionConflicts:
		return len(r.Conflicts)
	case SectionDuplicates:
		if r.Duplicates != nil {
			return len(r.Duplicates.Groups)
		}
	case SectionSync:
		n := 0
		for _, s := range r.Sync {
			n += len(s.Orphans) + len(s.Missing) + len(s.Multiple)
		}
		return n
	case SectionDimensions:
		n := 0
		for _, f := range r.Dimensions {
			n += len(f.Anomalies) + len(f.Undecodable)
		}
		return n
	case SectionRevisions:
		return len(r.Revisions)
	case SectionMissing:
		if r.Reconciliation != nil {
			return len(r.Reconciliation.Missing)
		}
	case SectionOrphans:
		if r.Reconciliation != nil {
			return len(r.Reconciliation.Orphans)
		}
	}
	return 0
}

// Passed reports whether every section passed
func (r *Result) Passed() bool {
	for _, s := range Sections {
		if r.Status(s) != model.StatusPassed {
			return false
		}
	}
	return true
}

// Summary converts the result to the run history record
func (r *Result) Summary() model.Run {
	run := model.Run{
		ID:               r.ID,
		StartedAt:        r.StartedAt,
		Catalog:          r.CatalogFile,
		ExclusionReport:  r.ExclusionFile,
		CatalogTitles:    r.Catalog.Len(),
		CollectionTitles: len(r.Inventory.Entries),
		Passed:           r.Passed(),
		Progress:         map[string]float64{},
	}
	for _, s := range Sections {
		run.Sections = append(run.Sections, model.SectionSummary{
			Name:     s,
			Status:   r.Status(s).String(),
			Findings: r.Findings(s),
		})
	}
	for _, p := range r.Progress {
		run.Progress[p.Category.String()] = p.Percent()
	}
	return run
}
