package catalog

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"path/filepath"
	"strings"

	"github.com/RacoonMediaServer/rms-covers/internal/model"
)

type xmlHeader struct {
	Name        string `xml:"name"`
	Description string `xml:"description"`
	Version     string `xml:"version"`
}

type xmlGame struct {
	Name     *string `xml:"name,attr"`
	Category string  `xml:"category"`
}

// Reader gives bounded access to file content
type Reader interface {
	Stream(ctx context.Context, path string, fn func(r io.Reader) error) error
}

// Load reads and parses the catalog file. Read failures are returned as reported by the reader,
// grammar violations as ParseError.
func Load(ctx context.Context, reader Reader, path string) (*Catalog, error) {
	var c *Catalog
	err := reader.Stream(ctx, path, func(r io.Reader) error {
		var err error
		c, err = Parse(filepath.Base(path), r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Parse reads DAT document from r, name is used in diagnostics only
func Parse(name string, r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog failed: %w", err)
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	fail := func(msg string, err error) error {
		return &ParseError{File: name, Line: lineAt(data, dec.InputOffset()), Msg: msg, Err: err}
	}

	var c *Catalog
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fail("malformed XML", err)
		}

		el, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch {
		case c == nil:
			if el.Name.Local != "datafile" {
				return nil, fail("unexpected root element <"+el.Name.Local+">", nil)
			}
			c = newCatalog(Header{})

		case el.Name.Local == "header":
			h := xmlHeader{}
			if err = dec.DecodeElement(&h, &el); err != nil {
				return nil, fail("malformed header", err)
			}
			c.Header = Header{
				Name:        strings.TrimSpace(h.Name),
				Description: strings.TrimSpace(h.Description),
				Version:     strings.TrimSpace(h.Version),
			}

		case el.Name.Local == "game" || el.Name.Local == "machine":
			g := xmlGame{}
			if err = dec.DecodeElement(&g, &el); err != nil {
				return nil, fail("malformed game record", err)
			}
			if g.Name == nil || strings.TrimSpace(*g.Name) == "" {
				return nil, fail("game record without name", nil)
			}
			title := model.MakeTitle(html.UnescapeString(*g.Name))
			if !c.add(title, strings.TrimSpace(g.Category)) {
				return nil, fail("duplicate title '"+title.String()+"'", nil)
			}

		default:
			if err = dec.Skip(); err != nil {
				return nil, fail("malformed XML", err)
			}
		}
	}

	if c == nil {
		return nil, fail("no <datafile> element", nil)
	}
	if c.Len() == 0 {
		return nil, fail("catalog contains no titles", nil)
	}

	return c, nil
}

func lineAt(data []byte, offset int64) int {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	return bytes.Count(data[:offset], []byte{'\n'}) + 1
}
