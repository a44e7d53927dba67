// Package catalog reads the authoritative list of releases from a Redump DAT file
package catalog

import (
	"fmt"

	"github.com/RacoonMediaServer/rms-covers/internal/analysis"
	"github.com/RacoonMediaServer/rms-covers/internal/model"
)

// Header is a DAT file header
type Header struct {
	Name        string
	Description string
	Version     string
}

// Record is a single catalog release
type Record struct {
	Title     model.Title
	Category  string
	Regions   []string
	Languages []string
	Revision  int
	Disc      int
}

// Catalog is an ordered list of unique releases
type Catalog struct {
	Header  Header
	Records []Record

	index map[model.Title]int
}

// ParseError means the catalog file breaks the DAT grammar
type ParseError struct {
	File string
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	where := e.File
	if e.Line > 0 {
		where = fmt.Sprintf("%s:%d", e.File, e.Line)
	}
	if e.Err != nil {
		return fmt.Sprintf("parse catalog %s: %s: %s", where, e.Msg, e.Err)
	}
	return fmt.Sprintf("parse catalog %s: %s", where, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newCatalog(h Header) *Catalog {
	return &Catalog{Header: h, index: map[model.Title]int{}}
}

func (c *Catalog) add(title model.Title, category string) bool {
	if _, exist := c.index[title]; exist {
		return false
	}
	info := analysis.Analyze(title.String())
	c.index[title] = len(c.Records)
	c.Records = append(c.Records, Record{
		Title:     title,
		Category:  category,
		Regions:   info.Regions,
		Languages: info.Languages,
		Revision:  info.Revision,
		Disc:      info.Disc,
	})
	return true
}

// Titles returns titles in file order
func (c *Catalog) Titles() []model.Title {
	result := make([]model.Title, len(c.Records))
	for i := range c.Records {
		result[i] = c.Records[i].Title
	}
	return result
}

// Set returns titles as a set
func (c *Catalog) Set() model.TitleSet {
	return model.NewTitleSet(c.Titles()...)
}

// Has reports whether the title is in the catalog
func (c *Catalog) Has(t model.Title) bool {
	_, ok := c.index[t]
	return ok
}

// Len returns number of titles
func (c *Catalog) Len() int {
	return len(c.Records)
}
