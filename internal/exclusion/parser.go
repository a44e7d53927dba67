package exclusion

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/RacoonMediaServer/rms-covers/internal/model"
)

var (
	ruleExpr    = regexp.MustCompile(`^[=*\-]{3,}$`)
	countExpr   = regexp.MustCompile(`(?i)^\s*(?:total\s+)?(?:titles\s+)?removed\s*:\s*(\d+)\s*$`)
	headerExpr  = regexp.MustCompile(`^[A-Z][A-Z ,\-]* REMOVES$`)
	parentExpr  = regexp.MustCompile(`^\s*\+ (.+)$`)
	removalExpr = regexp.MustCompile(`^\s*- (.+)$`)
)

type parser struct {
	file    string
	line    int
	report  Report
	seen    map[model.Title]bool
	section string
	reason  model.Reason
	parent  model.Title
}

// Reader gives bounded access to file content
type Reader interface {
	Stream(ctx context.Context, path string, fn func(r io.Reader) error) error
}

// Load reads and parses the report file
func Load(ctx context.Context, reader Reader, path string) (*Report, error) {
	var report *Report
	err := reader.Stream(ctx, path, func(r io.Reader) error {
		var err error
		report, err = Parse(filepath.Base(path), r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Parse reads report from r, name is used in diagnostics only
func Parse(name string, r io.Reader) (*Report, error) {
	p := parser{
		file:   name,
		seen:   map[model.Title]bool{},
		report: Report{Declared: -1},
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		p.line++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read exclusion report failed: %w", err)
	}

	actual := len(p.report.Entries)
	if p.report.Declared > 0 && actual == 0 {
		return nil, &ParseError{File: name, Msg: fmt.Sprintf("report declares %d removals but none found", p.report.Declared)}
	}
	if p.report.Declared >= 0 && p.report.Declared != actual {
		return nil, &ParseError{File: name, Msg: fmt.Sprintf("report declares %d removals but %d found", p.report.Declared, actual)}
	}

	return &p.report, nil
}

func (p *parser) parseLine(raw string) error {
	line := strings.TrimRight(raw, " \t\r")
	trimmed := strings.TrimSpace(line)

	switch {
	case trimmed == "", ruleExpr.MatchString(trimmed):
		return nil

	case strings.HasPrefix(line, "This file"), strings.HasPrefix(line, "SECTIONS"):
		return nil
	}

	if m := countExpr.FindStringSubmatch(line); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return &ParseError{File: p.file, Line: p.line, Msg: "invalid removal count"}
		}
		if p.report.Declared >= 0 && p.report.Declared != n {
			return &ParseError{File: p.file, Line: p.line, Msg: "conflicting removal counts"}
		}
		p.report.Declared = n
		return nil
	}

	if reason, ok := sectionReasons[line]; ok {
		p.openSection(line, reason)
		return nil
	}
	if headerExpr.MatchString(line) {
		p.openSection(line, model.ReasonOther)
		return nil
	}

	if m := parentExpr.FindStringSubmatch(line); m != nil {
		if p.reason == model.ReasonClone {
			p.parent = model.MakeTitle(m[1])
		}
		return nil
	}

	if m := removalExpr.FindStringSubmatch(line); m != nil {
		return p.addRemoval(model.MakeTitle(m[1]))
	}

	// прочие строки (заголовки отчета, комментарии) пропускаем
	return nil
}

func (p *parser) openSection(header string, reason model.Reason) {
	p.section = header
	p.reason = reason
	p.parent = ""
}

func (p *parser) addRemoval(title model.Title) error {
	if title == "" {
		return &ParseError{File: p.file, Line: p.line, Msg: "removal without title"}
	}
	if p.seen[title] {
		// клон может повторяться в нескольких секциях, учитываем первую причину
		return nil
	}
	p.seen[title] = true

	entry := model.ExclusionEntry{Title: title, Reason: model.ReasonRemoved}
	if p.reason != "" {
		entry.Reason = p.reason
	}
	switch entry.Reason {
	case model.ReasonClone:
		entry.Superior = p.parent
	case model.ReasonOther:
		entry.Section = sectionName(p.section)
	}

	p.report.Entries = append(p.report.Entries, entry)
	return nil
}

func sectionName(header string) string {
	name := strings.TrimSuffix(header, " REMOVES")
	if name == "" {
		return string(model.ReasonOther)
	}
	return strings.ToUpper(name[:1]) + strings.ToLower(name[1:])
}
