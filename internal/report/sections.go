package report

import (
	"fmt"
	"strings"

	"github.com/RacoonMediaServer/rms-covers/internal/analysis"
	"github.com/RacoonMediaServer/rms-covers/internal/dimensions"
	"github.com/RacoonMediaServer/rms-covers/internal/model"
	"github.com/RacoonMediaServer/rms-covers/internal/verification"
)

func bucketMark(c model.BucketClass) string {
	switch c {
	case model.BucketCanonical:
		return "⭐"
	case model.BucketAcceptable:
		return "🟦"
	}
	return "⚪"
}

func renderDimensions(p *printer, r *verification.Result) {
	p.header("IMAGE DIMENSION ANALYSIS")

	if err, skipped := r.Skipped[verification.SectionDimensions]; skipped {
		p.skipped(err)
		return
	}
	if len(r.Dimensions) == 0 {
		p.line("  (no folders to analyze)")
		p.blank()
		return
	}

	var current model.Category
	for i := range r.Dimensions {
		f := &r.Dimensions[i]
		if i == 0 || f.Category != current {
			current = f.Category
			p.blank()
			p.line("  %s", current)
			p.line("  " + strings.Repeat("=", 20))
		}
		cl, _ := r.Layout.Category(f.Category)
		renderFolderDimensions(p, f, cl.Landscape)
	}
	p.blank()
}

func renderFolderDimensions(p *printer, f *dimensions.FolderResult, landscape bool) {
	p.blank()
	p.line("  %s/", f.Dir)

	if f.Err != nil {
		p.line("    ⏭️  skipped: %s", f.Err)
		return
	}
	if f.Files == 0 && len(f.Undecodable) == 0 {
		p.line("    (no images)")
		return
	}

	dimWidth, countWidth := 0, 0
	for _, b := range f.Buckets {
		if l := len(b.Size.String()); l > dimWidth {
			dimWidth = l
		}
		if l := len(fmt.Sprint(b.Count)); l > countWidth {
			countWidth = l
		}
	}
	for _, b := range f.Buckets {
		p.line("  %s    %-*s  %*d  %s", bucketMark(b.Class), dimWidth, b.Size, countWidth, b.Count, b.Class)
	}

	if len(f.Undecodable) != 0 {
		p.blank()
		p.line("      ❌ Unreadable image headers (%s):", plural(len(f.Undecodable), "file", "files"))
		for _, u := range f.Undecodable {
			p.line("        %s: %s", u.Path, u.Reason)
		}
	}

	if !landscape {
		return
	}
	if len(f.Anomalies) == 0 {
		p.blank()
		p.line("      ✅ No vertical images found (all are horizontal/landscape)")
		return
	}
	p.blank()
	p.line("      ⚠️ Vertical images found (%s):", plural(len(f.Anomalies), "image", "images"))
	p.line("      (Height > Width - these should be horizontal/landscape)")
	for _, a := range f.Anomalies {
		p.line("        📐 %s: %s", a.Path, a.Size)
	}
}

func revisionName(rev int) string {
	if rev == 0 {
		return "original"
	}
	return fmt.Sprintf("Rev %d", rev)
}

func renderRevisions(p *printer, r *verification.Result) {
	p.header("REVISION UPDATES")

	if err, skipped := r.Skipped[verification.SectionRevisions]; skipped {
		p.skipped(err)
		return
	}
	if len(r.Revisions) == 0 {
		p.line("  ✅ All games are using the latest revisions!")
		p.blank()
		return
	}

	p.line("  Found %s that need revision updates:", plural(len(r.Revisions), "game", "games"))
	p.blank()
	for i, u := range r.Revisions {
		p.line("  [%d/%d] Collection: %s (%s)", i+1, len(r.Revisions), u.Title, revisionName(u.Revision))
		p.line("       Latest:     %s (%s)", u.Latest, revisionName(u.LatestRevision))
	}
	p.blank()
}

func renderMissing(p *printer, r *verification.Result) {
	if err, skipped := r.Skipped[verification.SectionMissing]; skipped {
		p.header("GAMES IN CATALOG NOT IN COLLECTION")
		p.skipped(err)
		return
	}

	missing := r.Reconciliation.Missing
	if len(missing) == 0 {
		p.header("GAMES IN CATALOG NOT IN COLLECTION")
		p.line("  ✅ All games from the catalog are in your collection!")
		p.blank()
		return
	}

	p.header(fmt.Sprintf("GAMES IN CATALOG NOT IN COLLECTION (%s)", plural(len(missing), "game", "games")))
	p.line("  These games exist in the catalog but are missing from your collection:")
	p.blank()
	for _, d := range missing {
		if d.Excluded() {
			p.line("  📋 %s → %s", d.Title, d.Exclusion.Describe())
		} else {
			p.line("  📋 %s", d.Title)
		}
	}
	p.blank()
}

func reasonMark(e *model.ExclusionEntry) string {
	switch e.Reason {
	case model.ReasonClone:
		return "⭐"
	case model.ReasonLanguage:
		return "🌐"
	case model.ReasonDemo:
		return "🎮"
	case model.ReasonApplication:
		return "💾"
	case model.ReasonAudio:
		return "🎵"
	case model.ReasonCoverdisc:
		return "📰"
	case model.ReasonEducational:
		return "📚"
	case model.ReasonUnlicensed:
		return "⚠️"
	case model.ReasonVideo:
		return "🎬"
	}
	return "🔄"
}

func renderOrphans(p *printer, r *verification.Result) {
	if err, skipped := r.Skipped[verification.SectionOrphans]; skipped {
		p.header("GAMES IN COLLECTION NOT IN CATALOG")
		p.skipped(err)
		return
	}

	orphans := r.Reconciliation.Orphans
	if len(orphans) == 0 {
		p.header("GAMES IN COLLECTION NOT IN CATALOG")
		p.line("  ✅ All games in your collection are in the catalog!")
		p.blank()
		return
	}

	p.header(fmt.Sprintf("GAMES IN COLLECTION NOT IN CATALOG (%s)", plural(len(orphans), "game", "games")))
	p.line("  These games exist in your collection but are not in the catalog:")
	p.blank()

	var unexplained int
	for _, d := range orphans {
		if !d.Excluded() {
			unexplained++
			continue
		}
		p.line("  %s %s → %s", reasonMark(d.Exclusion), d.Title, d.Exclusion.Describe())
	}

	if unexplained != 0 {
		if unexplained != len(orphans) {
			p.blank()
		}
		if r.Exclusions != nil {
			p.line("  Not explained by the exclusion report, needs investigation:")
		}
		for _, d := range orphans {
			if d.Excluded() {
				continue
			}
			p.line("  ❓ %s", d.Title)
			if d.Suggestion != "" {
				p.line("       Closest catalog name: %s", d.Suggestion)
			} else if base, rev := analysis.SplitRevision(d.Title.String()); rev != 0 {
				p.line("       Revision %d of '%s' is not in the catalog", rev, base)
			}
		}
	}
	p.blank()
}

func renderVerdict(p *printer, r *verification.Result) {
	var failed, skipped []string
	for _, s := range verification.Sections {
		switch r.Status(s) {
		case model.StatusFailed:
			failed = append(failed, s)
		case model.StatusSkipped:
			skipped = append(skipped, s)
		}
	}

	p.separator("=")
	switch {
	case len(failed) == 0 && len(skipped) == 0:
		p.line("  ✅ VERDICT: PASSED (all %d sections passed)", len(verification.Sections))
	default:
		p.line("  ❌ VERDICT: FAILED (%d failed, %d skipped)", len(failed), len(skipped))
		if len(failed) != 0 {
			p.line("     Failed:  %s", strings.Join(failed, ", "))
		}
		if len(skipped) != 0 {
			p.line("     Skipped: %s", strings.Join(skipped, ", "))
		}
	}
	p.separator("=")
}
