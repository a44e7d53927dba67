package model

// CollectionEntry is a title found in the collection with tiers where every category was found
type CollectionEntry struct {
	Title Title
	Found map[Category][]Tier
}

// NewCollectionEntry creates an empty entry
func NewCollectionEntry(t Title) *CollectionEntry {
	return &CollectionEntry{
		Title: t,
		Found: map[Category][]Tier{},
	}
}

// Add records that the asset of the category exists in the tier
func (e *CollectionEntry) Add(c Category, t Tier) {
	for _, existing := range e.Found[c] {
		if existing == t {
			return
		}
	}
	e.Found[c] = append(e.Found[c], t)
	sortSlice(e.Found[c], func(a, b Tier) bool { return a < b })
}

// Has reports whether the asset of the category exists in the tier
func (e *CollectionEntry) Has(c Category, t Tier) bool {
	for _, existing := range e.Found[c] {
		if existing == t {
			return true
		}
	}
	return false
}

// Resolve returns the first tier in ResolutionOrder containing the category
func (e *CollectionEntry) Resolve(c Category) (Tier, bool) {
	for _, t := range ResolutionOrder {
		if e.Has(c, t) {
			return t, true
		}
	}
	return 0, false
}

// AcknowledgedGap is a title with categories excused from completeness by a placeholder
type AcknowledgedGap struct {
	Title      Title
	Categories []Category
}
