package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/RacoonMediaServer/rms-covers/internal/config"
	"github.com/bmatcuk/doublestar/v4"
)

// Manager is responsible for read-only access to the collection on a disk
type Manager struct {
	layout  *Layout
	include []string
	ignore  []string
	access  access
}

// NewManager creates Manager over the collection root
func NewManager(cfg config.Configuration) (*Manager, error) {
	layout, err := NewLayout(cfg.Root, cfg.Layout)
	if err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}

	m := &Manager{
		layout: layout,
		access: newAccess(cfg.Access),
	}

	for _, p := range cfg.Include {
		p = strings.ToLower(p)
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid include pattern '%s'", p)
		}
		m.include = append(m.include, p)
	}
	for _, p := range cfg.Ignore {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid ignore pattern '%s'", p)
		}
		m.ignore = append(m.ignore, p)
	}

	return m, nil
}

// Layout returns the folders table
func (m *Manager) Layout() *Layout {
	return m.layout
}

// Stream opens the file and passes its content to fn. Every read is bounded by timeout,
// failed attempts are retried from the beginning of the file. fn runs in the calling goroutine
// and may be called again on retry. Errors of fn not caused by reading are returned as is.
func (m *Manager) Stream(ctx context.Context, path string, fn func(r io.Reader) error) error {
	err := m.access.retry(ctx, "read", path, func() error {
		return m.streamOnce(ctx, path, fn)
	})

	var perr *processError
	if errors.As(err, &perr) {
		return perr.err
	}
	return err
}

func (m *Manager) streamOnce(ctx context.Context, path string, fn func(r io.Reader) error) error {
	f, err := once(ctx, m.access.timeout, func() (*os.File, error) {
		return os.Open(path)
	})
	if err != nil {
		return err
	}
	defer f.Close()

	tr := &timedReader{ctx: ctx, r: f, timeout: m.access.timeout}
	if err = fn(tr); err != nil {
		if tr.err != nil {
			return tr.err
		}
		return &processError{err: err}
	}
	return nil
}

func (m *Manager) isIgnored(name string) bool {
	for _, p := range m.ignore {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

func (m *Manager) isIncluded(name string) bool {
	name = strings.ToLower(name)
	for _, p := range m.include {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}
