package model

// FolderScan is the outcome of listing one tier folder
type FolderScan struct {
	Category Category
	Tier     Tier
	Dir      string
	Files    int
	Exists   bool
	Err      error
}

// WarningKind classifies files the scanner could not turn into a title
type WarningKind int

const (
	WarningUnexpectedFile WarningKind = iota
	WarningDirectory
	WarningNamingPolicy
)

func (k WarningKind) String() string {
	switch k {
	case WarningUnexpectedFile:
		return "unexpected file type"
	case WarningDirectory:
		return "unexpected directory"
	case WarningNamingPolicy:
		return "naming policy violation"
	}
	return "unknown"
}

// ScanWarning is a file which breaks the collection naming policy
type ScanWarning struct {
	Kind    WarningKind
	Path    string
	Details string
}

// Inventory is a snapshot of the collection built by a single scan
type Inventory struct {
	Entries  map[Title]*CollectionEntry
	Assets   []Asset
	Folders  []FolderScan
	Warnings []ScanWarning
}

// NewInventory creates empty inventory
func NewInventory() *Inventory {
	return &Inventory{Entries: map[Title]*CollectionEntry{}}
}

// Add registers asset in the inventory
func (inv *Inventory) Add(a Asset) {
	inv.Assets = append(inv.Assets, a)
	e, ok := inv.Entries[a.Title]
	if !ok {
		e = NewCollectionEntry(a.Title)
		inv.Entries[a.Title] = e
	}
	e.Add(a.Category, a.Tier)
}

// Titles returns all titles of the collection
func (inv *Inventory) Titles() TitleSet {
	s := make(TitleSet, len(inv.Entries))
	for t := range inv.Entries {
		s.Add(t)
	}
	return s
}

// TitlesOf returns titles having at least one asset in any of the categories
func (inv *Inventory) TitlesOf(categories ...Category) TitleSet {
	s := TitleSet{}
	for t, e := range inv.Entries {
		for _, c := range categories {
			if len(e.Found[c]) != 0 {
				s.Add(t)
				break
			}
		}
	}
	return s
}

// Failed returns folder scans which ended with an error
func (inv *Inventory) Failed() []FolderScan {
	var result []FolderScan
	for _, f := range inv.Folders {
		if f.Err != nil {
			result = append(result, f)
		}
	}
	return result
}

// FolderFailed reports whether scan of the folder ended with an error
func (inv *Inventory) FolderFailed(c Category, t Tier) bool {
	for _, f := range inv.Folders {
		if f.Category == c && f.Tier == t {
			return f.Err != nil
		}
	}
	return false
}
