package model

import "time"

// SectionStatus is an outcome of one report section
type SectionStatus int

const (
	StatusPassed SectionStatus = iota
	StatusFailed
	StatusSkipped
)

func (s SectionStatus) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	}
	return "unknown"
}

// SectionSummary is a short outcome of a report section kept in the run history
type SectionSummary struct {
	Name     string
	Status   string
	Findings int
}

// Run represents a stored summary of one verification run
type Run struct {
	// ID of the run
	ID string `bson:"_id,omitempty"`

	// StartedAt is a time when verification has been started
	StartedAt time.Time

	// Catalog is a file name of the catalog used
	Catalog string

	// ExclusionReport is a file name of the filter report used
	ExclusionReport string

	// CatalogTitles is a number of titles in the catalog
	CatalogTitles int

	// CollectionTitles is a number of titles in the collection
	CollectionTitles int

	// Passed is true when every section passed
	Passed bool

	// Sections contain outcome of every report section
	Sections []SectionSummary

	// Progress contains share of titles with a high quality image per category
	Progress map[string]float64
}

// MetaInfo describes the history storage itself
type MetaInfo struct {
	Version         string
	DatabaseVersion uint
}
