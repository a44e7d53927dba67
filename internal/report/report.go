// Package report renders verification result as a human-readable text report
package report

import (
	"strings"

	"github.com/RacoonMediaServer/rms-covers/internal/model"
	"github.com/RacoonMediaServer/rms-covers/internal/storage"
	"github.com/RacoonMediaServer/rms-covers/internal/verification"
)

// Render builds the full report. Sections always follow the same order and are printed
// completely regardless of failures.
func Render(r *verification.Result) string {
	p := &printer{}

	renderHeader(p, r)
	renderSummary(p, r)
	renderScan(p, r)
	renderCompleteness(p, r)
	renderConflicts(p, r)
	renderDuplicates(p, r)
	renderSync(p, r)
	renderDimensions(p, r)
	renderRevisions(p, r)
	renderMissing(p, r)
	renderOrphans(p, r)
	renderVerdict(p, r)

	return p.String()
}

func renderHeader(p *printer, r *verification.Result) {
	p.separator("=")
	p.line("  COLLECTION vs CATALOG REPORT")
	p.separator("=")
	p.blank()
	p.line("  Catalog:          %s", r.CatalogFile)
	if r.Catalog != nil && r.Catalog.Header.Description != "" {
		p.line("                    %s", r.Catalog.Header.Description)
	}
	if r.ExclusionFile != "" {
		p.line("  Exclusion report: %s", r.ExclusionFile)
	} else {
		p.line("  Exclusion report: not provided, removal reasons are not available")
	}
	p.line("  Generated:        %s", r.StartedAt.UTC().Format(timeLayout))
}

func renderSummary(p *printer, r *verification.Result) {
	p.header("SUMMARY")
	p.line("  Total games in catalog:             %6d", r.Catalog.Len())
	p.line("  Total games in collection:          %6d", len(r.Inventory.Entries))
	if rec := r.Reconciliation; rec != nil {
		p.line("  Games in both:                      %6d", len(rec.Matched))
		p.line("  Games in catalog not in collection: %6d", len(rec.Missing))
		p.line("  Games in collection not in catalog: %6d", len(rec.Orphans))
	} else {
		p.line("  Catalog comparison:                 skipped")
	}
	if r.Exclusions != nil {
		p.line("  Titles removed by the filter:       %6d", len(r.Exclusions.Entries))
	}
	p.line("  Image files scanned:                %6d", len(r.Inventory.Assets))

	if len(r.Progress) != 0 {
		p.blank()
		p.line("  High quality progress:")
		for _, pr := range r.Progress {
			p.line("    %-12s %6d/%-6d %6.1f%%", pr.Category, pr.Primary, pr.Total, pr.Percent())
		}
	}
}

func renderScan(p *printer, r *verification.Result) {
	p.header("COLLECTION SCAN")
	inv := r.Inventory

	failed := inv.Failed()
	if len(failed) != 0 {
		p.line("  ❌ Unreadable folders (%d):", len(failed))
		for _, f := range failed {
			p.line("    %s", f.Dir)
			p.line("       %s", f.Err)
		}
		p.blank()
	}

	if len(inv.Warnings) == 0 {
		p.line("  ✅ All files follow the naming policy!")
		p.blank()
		return
	}

	p.line("  ⚠️ Files breaking the naming policy (%s):", plural(len(inv.Warnings), "file", "files"))
	p.blank()
	for _, w := range inv.Warnings {
		p.line("    ⚠️ %s", w.Path)
		if w.Details != "" {
			p.line("       %s: %s", w.Kind, w.Details)
		} else {
			p.line("       %s", w.Kind)
		}
	}
	p.blank()
}

func describeCategories(layout *storage.Layout, categories []model.Category) string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		if cl, ok := layout.Category(c); ok {
			names = append(names, c.String()+" ("+cl.Kind.String()+")")
		} else {
			names = append(names, c.String())
		}
	}
	return strings.Join(names, ", ")
}

func renderCompleteness(p *printer, r *verification.Result) {
	p.header("COLLECTION COMPLETENESS CHECK")

	var required []string
	for _, c := range r.Layout.Required() {
		required = append(required, c.Name.String())
	}
	p.line("  Every game should have %d images: %s", len(required), strings.Join(required, ", "))
	p.line("  (Images can be in primary, -lq, -bespoke or -missing folders)")
	p.blank()

	if err, skipped := r.Skipped[verification.SectionCompleteness]; skipped {
		p.skipped(err)
		return
	}

	c := r.Completeness
	if len(c.Failures) == 0 {
		p.line("  ✅ All %s have all required images!", plural(c.Checked, "game", "games"))
	} else {
		p.line("  ⚠️ Games genuinely missing images (%s):", plural(len(c.Failures), "game", "games"))
		p.line("  (No file exists in any folder of the category)")
		p.blank()
		for _, f := range c.Failures {
			p.line("    ❌ %s", f.Title)
			p.line("       Genuinely missing: %s", describeCategories(r.Layout, f.Categories))
		}
	}
	p.blank()

	if len(c.Gaps) == 0 {
		p.line("  ✅ No games have acknowledged missing images!")
	} else {
		p.line("  ℹ️  Games with acknowledged missing images (%s):", plural(len(c.Gaps), "game", "games"))
		p.line("  (Blank template exists in -missing folder)")
		p.blank()
		for _, g := range c.Gaps {
			p.line("    📍 %s", g.Title)
			p.line("       Acknowledged missing: %s", describeCategories(r.Layout, g.Categories))
		}
	}
	p.blank()
}

func folderOf(layout *storage.Layout, c model.Category, t model.Tier) string {
	if cl, ok := layout.Category(c); ok {
		if f, ok := cl.Folder(t); ok {
			return f.Rel
		}
	}
	return c.String() + "/" + t.String()
}

func renderConflicts(p *printer, r *verification.Result) {
	p.header("TIER CONFLICTS")
	p.line("  Files should only exist in one folder per image type:")
	p.line("  (primary/-lq/-bespoke/-missing for every category)")
	p.blank()

	if err, skipped := r.Skipped[verification.SectionConflicts]; skipped {
		p.skipped(err)
		return
	}

	if len(r.Conflicts) == 0 {
		p.line("  ✅ No titles found in several folders of the same category!")
		p.blank()
		return
	}

	for _, c := range r.Conflicts {
		folders := make([]string, 0, len(c.Tiers))
		for _, t := range c.Tiers {
			folders = append(folders, folderOf(r.Layout, c.Category, t))
		}
		p.line("    ⚠️ %s", c.Title)
		p.line("       Exists in: %s", strings.Join(folders, ", "))
	}
	p.blank()
}

func renderDuplicates(p *printer, r *verification.Result) {
	p.header("DUPLICATE FILES ACROSS FOLDERS")

	if err, skipped := r.Skipped[verification.SectionDuplicates]; skipped {
		p.skipped(err)
		return
	}

	d := r.Duplicates
	if len(d.Groups) == 0 {
		p.line("  ✅ No byte-identical files found (%s compared)!", plural(d.Files, "file", "files"))
		p.blank()
		return
	}

	p.line("  Files with identical content (%s):", plural(len(d.Groups), "group", "groups"))
	p.blank()
	for _, g := range d.Groups {
		p.line("    ⚠️ sha256 %s (%d bytes)", g.Digest[:16], g.Size)
		for _, a := range g.Assets {
			p.line("       %s", a.Rel)
		}
	}
	p.blank()
}

func renderSync(p *printer, r *verification.Result) {
	if err, skipped := r.Skipped[verification.SectionSync]; skipped {
		p.header("DERIVED ASSETS SYNC CHECK")
		p.skipped(err)
		return
	}

	if len(r.Sync) == 0 {
		p.header("DERIVED ASSETS SYNC CHECK")
		p.line("  No derived categories configured")
		p.blank()
		return
	}

	for _, s := range r.Sync {
		p.header(strings.ToUpper(s.Category.String()) + " SYNC CHECK")
		if s.Passed() {
			p.line("  ✅ All %s match collection names!", plural(s.Files, "file", "files"))
			p.blank()
			continue
		}

		if len(s.Orphans) != 0 {
			p.line("  Files that don't match any collection name (%d):", len(s.Orphans))
			for _, t := range s.Orphans {
				p.line("    ⚠️ %s", t)
			}
			p.blank()
		}
		if len(s.Missing) != 0 {
			p.line("  Collection names without a file (%d):", len(s.Missing))
			for _, t := range s.Missing {
				p.line("    ❌ %s", t)
			}
			p.blank()
		}
		if len(s.Multiple) != 0 {
			p.line("  Collection names with several files (%d):", len(s.Multiple))
			for _, m := range s.Multiple {
				p.line("    ⚠️ %s", m.Title)
				p.line("       Exists in: %s", strings.Join(m.Paths, ", "))
			}
			p.blank()
		}
	}
}
