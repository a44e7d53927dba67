package report

import (
	"fmt"
	"strings"
)

const separatorWidth = 70

type printer struct {
	b strings.Builder
}

func (p *printer) line(format string, args ...interface{}) {
	if len(args) == 0 {
		p.b.WriteString(format)
	} else {
		_, _ = fmt.Fprintf(&p.b, format, args...)
	}
	p.b.WriteByte('\n')
}

func (p *printer) blank() {
	p.b.WriteByte('\n')
}

func (p *printer) separator(ch string) {
	p.line(strings.Repeat(ch, separatorWidth))
}

func (p *printer) header(title string) {
	p.blank()
	p.separator("=")
	p.line("  " + title)
	p.separator("=")
	p.blank()
}

func (p *printer) skipped(err error) {
	p.line("  ⏭️  skipped: %s", err)
	p.blank()
}

func (p *printer) String() string {
	return p.b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
