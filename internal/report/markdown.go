package report

import (
	"strings"
	"time"
)

const timeLayout = "2006-01-02 15:04:05 UTC"

// Markdown wraps the report to the completion page format
func Markdown(report, description string, updated time.Time) string {
	b := strings.Builder{}
	if description != "" {
		b.WriteString(description)
		b.WriteString("\n\n")
	}
	b.WriteString("**Last Updated:** ")
	b.WriteString(updated.UTC().Format(timeLayout))
	b.WriteString("\n\n```\n\n")
	b.WriteString(strings.TrimRight(report, "\n"))
	b.WriteString("\n```\n")
	return b.String()
}
