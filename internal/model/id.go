package model

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Title is a canonical release name as it appears in the catalog, including region and language tags
type Title string

// MakeTitle normalizes raw name to the form used for comparison across catalog and file system
func MakeTitle(raw string) Title {
	return Title(norm.NFC.String(strings.TrimSpace(raw)))
}

func (t Title) String() string {
	return string(t)
}

// TitleSet is a set of titles
type TitleSet map[Title]struct{}

// NewTitleSet builds a set from the list
func NewTitleSet(titles ...Title) TitleSet {
	s := make(TitleSet, len(titles))
	for _, t := range titles {
		s[t] = struct{}{}
	}
	return s
}

func (s TitleSet) Add(t Title) {
	s[t] = struct{}{}
}

func (s TitleSet) Has(t Title) bool {
	_, ok := s[t]
	return ok
}

// Sorted returns set items in lexical order
func (s TitleSet) Sorted() []Title {
	result := make([]Title, 0, len(s))
	for t := range s {
		result = append(result, t)
	}
	SortTitles(result)
	return result
}

// SortTitles sorts titles in lexical order
func SortTitles(titles []Title) {
	sortSlice(titles, func(a, b Title) bool { return a < b })
}
