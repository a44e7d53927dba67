// Package exclusion reads the report of the DAT filter tool listing removed titles and reasons
package exclusion

import (
	"fmt"

	"github.com/RacoonMediaServer/rms-covers/internal/model"
)

// Report is a parsed filter report
type Report struct {
	// Declared is a removal count stated by the report itself, -1 if absent
	Declared int

	// Entries in order of appearance
	Entries []model.ExclusionEntry
}

// Exclusions returns removed titles with their reasons
func (r *Report) Exclusions() model.Exclusions {
	result := make(model.Exclusions, len(r.Entries))
	for _, e := range r.Entries {
		result[e.Title] = e
	}
	return result
}

// ParseError means the report cannot be trusted
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse exclusion report %s:%d: %s", e.File, e.Line, e.Msg)
	}
	return fmt.Sprintf("parse exclusion report %s: %s", e.File, e.Msg)
}

var sectionReasons = map[string]model.Reason{
	"TITLES WITH CLONES":              model.ReasonClone,
	"ADD-ON REMOVES":                  model.ReasonAddOn,
	"APPLICATION REMOVES":             model.ReasonApplication,
	"AUDIO REMOVES":                   model.ReasonAudio,
	"BAD DUMP REMOVES":                model.ReasonBadDump,
	"BIOS AND OTHER CHIPS REMOVES":    model.ReasonBIOS,
	"BONUS DISC REMOVES":              model.ReasonBonusDisc,
	"COVERDISC REMOVES":               model.ReasonCoverdisc,
	"DEMO, KIOSK, AND SAMPLE REMOVES": model.ReasonDemo,
	"EDUCATIONAL REMOVES":             model.ReasonEducational,
	"LANGUAGE REMOVES":                model.ReasonLanguage,
	"MANUAL REMOVES":                  model.ReasonManual,
	"MULTIMEDIA REMOVES":              model.ReasonMultimedia,
	"PIRATE REMOVES":                  model.ReasonPirate,
	"PREPRODUCTION REMOVES":           model.ReasonPreproduction,
	"PROMO REMOVES":                   model.ReasonPromo,
	"UNLICENSED REMOVES":              model.ReasonUnlicensed,
	"VIDEO REMOVES":                   model.ReasonVideo,
}
