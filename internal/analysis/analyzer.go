package analysis

import (
	"regexp"
	"strconv"
	"strings"
)

// knownRegions are region tags used by Redump, names out of the catalog must start with one of them
var knownRegions = map[string]bool{
	"Argentina": true, "Asia": true, "Australia": true, "Austria": true, "Belgium": true,
	"Brazil": true, "Bulgaria": true, "Canada": true, "China": true, "Croatia": true,
	"Czech": true, "Denmark": true, "Estonia": true, "Europe": true, "Export": true,
	"Finland": true, "France": true, "Germany": true, "Greece": true, "Hong Kong": true,
	"Hungary": true, "Iceland": true, "India": true, "Indonesia": true, "Ireland": true,
	"Israel": true, "Italy": true, "Japan": true, "Korea": true, "Latin America": true,
	"Latvia": true, "Lithuania": true, "Mexico": true, "Netherlands": true, "New Zealand": true,
	"Norway": true, "Poland": true, "Portugal": true, "Romania": true, "Russia": true,
	"Scandinavia": true, "Serbia": true, "Singapore": true, "Slovakia": true, "Slovenia": true,
	"South Africa": true, "Spain": true, "Sweden": true, "Switzerland": true, "Taiwan": true,
	"Thailand": true, "Turkey": true, "UAE": true, "UK": true, "Ukraine": true, "USA": true,
	"World": true, "Unknown": true,
}

var (
	languageExpr = regexp.MustCompile(`^[A-Z][a-z](-[A-Z][a-z]+)?$`)
	revisionExpr = regexp.MustCompile(`(?i)^rev\s+(\d+)$`)
	discExpr     = regexp.MustCompile(`(?i)^disc\s+(\d+)$`)
)

type analyzeContext struct {
	result Result
	groups []string
	used   []bool
}

func analyzeGroups(groups []string) Result {
	ctx := analyzeContext{
		groups: groups,
		used:   make([]bool, len(groups)),
	}

	// 1) регион всегда идет первой группой
	determineRegions(&ctx)

	// 2) языки идут сразу после региона, но могут отсутствовать
	determineLanguages(&ctx)

	// 3) номер ревизии и диска могут стоять в любом месте
	determineRevision(&ctx)
	determineDisc(&ctx)

	// 4) остальное - свободные метки
	for i, g := range ctx.groups {
		if !ctx.used[i] {
			ctx.result.Tags = append(ctx.result.Tags, g)
		}
	}

	return ctx.result
}

func splitList(group string) []string {
	items := strings.Split(group, ",")
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
	return items
}

func determineRegions(ctx *analyzeContext) {
	if len(ctx.groups) == 0 {
		return
	}
	regions := splitList(ctx.groups[0])
	for _, r := range regions {
		if !knownRegions[r] {
			return
		}
	}
	ctx.result.Regions = regions
	ctx.used[0] = true
}

func determineLanguages(ctx *analyzeContext) {
	pos := 0
	if len(ctx.result.Regions) != 0 {
		pos = 1
	}
	if pos >= len(ctx.groups) {
		return
	}
	languages := splitList(ctx.groups[pos])
	for _, l := range languages {
		if !languageExpr.MatchString(l) {
			return
		}
	}
	ctx.result.Languages = languages
	ctx.used[pos] = true
}

func determineRevision(ctx *analyzeContext) {
	for i, g := range ctx.groups {
		if ctx.used[i] {
			continue
		}
		if m := revisionExpr.FindStringSubmatch(g); m != nil {
			rev, _ := strconv.Atoi(m[1])
			ctx.result.Revision = rev
			ctx.used[i] = true
			return
		}
	}
}

func determineDisc(ctx *analyzeContext) {
	for i, g := range ctx.groups {
		if ctx.used[i] {
			continue
		}
		if m := discExpr.FindStringSubmatch(g); m != nil {
			disc, _ := strconv.Atoi(m[1])
			ctx.result.Disc = disc
			ctx.used[i] = true
			return
		}
	}
}
