// Package analysis extracts metadata from release names and enforces the collection naming policy
package analysis

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Result is a metadata extracted from the release name
type Result struct {
	Base      string
	Regions   []string
	Languages []string
	Revision  int
	Disc      int
	Tags      []string
}

// Analyze parses release name, malformed names give only the base
func Analyze(name string) Result {
	tokens, err := parseName(name)
	if err != nil {
		return Result{Base: strings.TrimSpace(name)}
	}
	result := analyzeGroups(tokens.Groups())
	result.Base = tokens.Base()
	return result
}

var revisionSuffix = regexp.MustCompile(`(?i)\s*\(Rev (\d+)\)`)

// SplitRevision returns the name without revision tag and the revision number (0 for original release)
func SplitRevision(name string) (string, int) {
	m := revisionSuffix.FindStringSubmatch(name)
	if m == nil {
		return strings.TrimSpace(name), 0
	}
	rev, _ := strconv.Atoi(m[1])
	return strings.TrimSpace(revisionSuffix.ReplaceAllString(name, "")), rev
}

const forbiddenChars = `<>:"/\|?*`

// Validate checks the name against the naming policy and returns all violations
func Validate(name string) []string {
	var violations []string
	if strings.TrimSpace(name) == "" {
		return []string{"empty name"}
	}
	if strings.TrimSpace(name) != name {
		violations = append(violations, "leading or trailing whitespace")
	}
	if strings.Contains(name, "  ") {
		violations = append(violations, "double space")
	}
	for _, ch := range name {
		if unicode.IsControl(ch) || strings.ContainsRune(forbiddenChars, ch) {
			violations = append(violations, fmt.Sprintf("forbidden character %q", ch))
			break
		}
	}

	tokens, err := parseName(name)
	if err != nil {
		return append(violations, err.Error())
	}
	if tokens.Base() == "" {
		violations = append(violations, "no title before tags")
	}
	if len(analyzeGroups(tokens.Groups()).Regions) == 0 {
		violations = append(violations, "no region tag")
	}

	return violations
}
