package model

// Reason is a reason code why the filter tool removed a title from the catalog
type Reason string

const (
	ReasonClone         Reason = "Clone"
	ReasonAddOn         Reason = "Add-on"
	ReasonApplication   Reason = "Application"
	ReasonAudio         Reason = "Audio"
	ReasonBadDump       Reason = "Bad dump"
	ReasonBIOS          Reason = "BIOS"
	ReasonBonusDisc     Reason = "Bonus disc"
	ReasonCoverdisc     Reason = "Coverdisc"
	ReasonDemo          Reason = "Demo/Kiosk/Sample"
	ReasonEducational   Reason = "Educational"
	ReasonLanguage      Reason = "Language"
	ReasonManual        Reason = "Manual"
	ReasonMultimedia    Reason = "Multimedia"
	ReasonPirate        Reason = "Pirate"
	ReasonPreproduction Reason = "Preproduction"
	ReasonPromo         Reason = "Promo"
	ReasonUnlicensed    Reason = "Unlicensed"
	ReasonVideo         Reason = "Video"
	ReasonOther         Reason = "Other"
	ReasonRemoved       Reason = "Removed"
)

// ExclusionEntry is a title removed from the raw catalog by the filter
type ExclusionEntry struct {
	Title  Title
	Reason Reason

	// Superior is the kept parent title for clones
	Superior Title

	// Section is the raw section header for ReasonOther
	Section string
}

// Describe returns human-readable reason
func (e ExclusionEntry) Describe() string {
	switch e.Reason {
	case ReasonClone:
		if e.Superior != "" {
			return "Superior version: '" + e.Superior.String() + "'"
		}
	case ReasonOther:
		if e.Section != "" {
			return e.Section
		}
	}
	return string(e.Reason)
}

// Exclusions maps removed titles to their entries
type Exclusions map[Title]ExclusionEntry

// Lookup returns entry of the title if it was removed
func (e Exclusions) Lookup(t Title) (ExclusionEntry, bool) {
	if e == nil {
		return ExclusionEntry{}, false
	}
	entry, ok := e[t]
	return entry, ok
}
