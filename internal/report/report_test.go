package report

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/RacoonMediaServer/rms-covers/internal/catalog"
	"github.com/RacoonMediaServer/rms-covers/internal/completeness"
	"github.com/RacoonMediaServer/rms-covers/internal/config"
	"github.com/RacoonMediaServer/rms-covers/internal/dimensions"
	"github.com/RacoonMediaServer/rms-covers/internal/duplicates"
	"github.com/RacoonMediaServer/rms-covers/internal/exclusion"
	"github.com/RacoonMediaServer/rms-covers/internal/iconsync"
	"github.com/RacoonMediaServer/rms-covers/internal/model"
	"github.com/RacoonMediaServer/rms-covers/internal/reconcile"
	"github.com/RacoonMediaServer/rms-covers/internal/revisions"
	"github.com/RacoonMediaServer/rms-covers/internal/storage"
	"github.com/RacoonMediaServer/rms-covers/internal/verification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var started = time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

var libraryFolders = map[model.Category]string{
	model.Category2DBox: "library/2dbox/",
	model.Category3DBox: "library/3dbox/",
	model.CategoryDisc:  "library/disc/",
	model.CategoryIcon:  "composites/psp-icon0/psp-icon0-generated/",
}

func asset(title model.Title, c model.Category) model.Asset {
	rel := libraryFolders[c] + title.String() + ".png"
	return model.Asset{Title: title, Category: c, Tier: model.TierPrimary, Path: "/c/" + rel, Rel: rel, Size: 100}
}

func complete(title model.Title) []model.Asset {
	return []model.Asset{
		asset(title, model.Category2DBox),
		asset(title, model.Category3DBox),
		asset(title, model.CategoryDisc),
		asset(title, model.CategoryIcon),
	}
}

func build(t *testing.T, titles []string, exclusions string, assets ...model.Asset) *verification.Result {
	layout, err := storage.NewLayout("/c", config.DefaultLayout())
	require.NoError(t, err)

	dat := strings.Builder{}
	dat.WriteString("<datafile>")
	for _, title := range titles {
		dat.WriteString(`<game name="` + title + `"/>`)
	}
	dat.WriteString("</datafile>")
	cat, err := catalog.Parse("psx.dat", strings.NewReader(dat.String()))
	require.NoError(t, err)

	inv := model.NewInventory()
	for _, a := range assets {
		inv.Add(a)
	}
	for _, f := range layout.Folders() {
		inv.Folders = append(inv.Folders, model.FolderScan{Category: f.Category, Tier: f.Tier, Dir: f.Rel, Exists: true})
	}

	r := &verification.Result{
		StartedAt:   started,
		CatalogFile: "psx.dat",
		Catalog:     cat,
		Layout:      layout,
		Inventory:   inv,
		Skipped:     map[string]error{},
	}

	var excl model.Exclusions
	if exclusions != "" {
		r.ExclusionFile = "psx.txt"
		r.Exclusions, err = exclusion.Parse("psx.txt", strings.NewReader(exclusions))
		require.NoError(t, err)
		excl = r.Exclusions.Exclusions()
	}

	var required []model.Category
	for _, c := range layout.Required() {
		required = append(required, c.Name)
	}

	r.Reconciliation = reconcile.Reconcile(cat.Set(), inv.Titles(), excl)
	r.Completeness = completeness.Check(inv, inv.Titles().Sorted(), required)
	r.Conflicts = completeness.Conflicts(inv, required)
	r.Progress = completeness.Measure(inv, cat.Set(), layout.Primary())
	r.Duplicates = &duplicates.Result{Files: len(assets)}
	r.Sync = []*iconsync.Result{iconsync.Check(inv, model.CategoryIcon, layout.Primary())}
	r.Revisions = revisions.Check(cat.Titles(), inv.Titles())
	r.Dimensions = []dimensions.FolderResult{
		{
			Category: model.Category2DBox,
			Tier:     model.TierPrimary,
			Dir:      "library/2dbox",
			Files:    len(titles),
			Buckets: []model.DimensionBucket{
				{Size: model.Size{Width: 1200, Height: 1200}, Count: len(titles), Class: model.BucketCanonical},
			},
		},
	}
	return r
}

func TestRenderPassed(t *testing.T) {
	r := build(t, []string{"A (USA)", "B (USA)"}, "", append(complete("A (USA)"), complete("B (USA)")...)...)
	require.True(t, r.Passed())

	text := Render(r)
	assert.True(t, strings.HasPrefix(text, strings.Repeat("=", 70)+"\n  COLLECTION vs CATALOG REPORT\n"))
	assert.Contains(t, text, "  Catalog:          psx.dat\n")
	assert.Contains(t, text, "  Exclusion report: not provided, removal reasons are not available\n")
	assert.Contains(t, text, "  Generated:        2024-05-01 10:30:00 UTC\n")
	assert.Contains(t, text, "  Total games in catalog:                  2\n")
	assert.Contains(t, text, "✅ All 2 games have all required images!")
	assert.Contains(t, text, "✅ All 2 files match collection names!")
	assert.Contains(t, text, "  ⭐    1200x1200  2  canonical\n")
	assert.Contains(t, text, "✅ No vertical images found")
	assert.Contains(t, text, "✅ All games are using the latest revisions!")
	assert.True(t, strings.HasSuffix(text, "  ✅ VERDICT: PASSED (all 9 sections passed)\n"+strings.Repeat("=", 70)+"\n"))
}

func TestRenderSectionOrder(t *testing.T) {
	r := build(t, []string{"A (USA)"}, "", complete("A (USA)")...)
	text := Render(r)

	headers := []string{
		"COLLECTION vs CATALOG REPORT",
		"SUMMARY",
		"COLLECTION SCAN",
		"COLLECTION COMPLETENESS CHECK",
		"TIER CONFLICTS",
		"DUPLICATE FILES ACROSS FOLDERS",
		"PSP-ICON0 SYNC CHECK",
		"IMAGE DIMENSION ANALYSIS",
		"REVISION UPDATES",
		"GAMES IN CATALOG NOT IN COLLECTION",
		"GAMES IN COLLECTION NOT IN CATALOG",
		"VERDICT",
	}

	last := -1
	for i, h := range headers {
		pos := strings.Index(text, h)
		assert.Greater(t, pos, last, "Test %d failed", i)
		last = pos
	}
}

func TestRenderFindings(t *testing.T) {
	assets := append(complete("A (USA)"), complete("B (USA)")...)
	assets = append(assets,
		asset("C (USA)", model.Category2DBox),
		asset("C (USA)", model.Category3DBox),
		asset("C (USA)", model.CategoryIcon),
		model.Asset{Title: "D (USA)", Category: model.CategoryDisc, Tier: model.TierMissing, Rel: "library/disc-missing/D (USA).png"},
		asset("D (USA)", model.Category2DBox),
		asset("D (USA)", model.Category3DBox),
		asset("D (USA)", model.CategoryIcon),
		model.Asset{Title: "D (USA)", Category: model.Category2DBox, Tier: model.TierMissing, Rel: "library/2dbox-missing/D (USA).png"},
	)
	r := build(t, []string{"A (USA)", "B (USA)", "C (USA)", "D (USA)"}, "", assets...)
	r.Dimensions[0].Anomalies = []dimensions.Anomaly{{Path: "library/2dbox/B (USA).png", Size: model.Size{Width: 12, Height: 14}}}

	text := Render(r)
	assert.Contains(t, text, "    ❌ C (USA)\n       Genuinely missing: disc (disc-image)\n")
	assert.Contains(t, text, "    📍 D (USA)\n       Acknowledged missing: disc (disc-image)\n")
	assert.Contains(t, text, "    ⚠️ D (USA)\n       Exists in: library/2dbox, library/2dbox-missing\n")
	assert.Contains(t, text, "        📐 library/2dbox/B (USA).png: 12x14\n")
	assert.Contains(t, text, "❌ VERDICT: FAILED (3 failed, 0 skipped)")
	assert.Contains(t, text, "     Failed:  Completeness, Tier conflicts, Dimensions\n")
}

func TestRenderDiscrepancies(t *testing.T) {
	report := "TITLES WITH CLONES\n+ Tekken 3 (USA)\n- Tekken 3 (Europe)\n\nLANGUAGE REMOVES\n- Jikkyou Powerful Pro Yakyuu (Japan)\n"
	assets := append(complete("Ape Escape (USA)"), complete("Tekken 3 (Europe)")...)
	assets = append(assets, complete("Crash Bandicot (USA)")...)
	r := build(t, []string{"Ape Escape (USA)", "Crash Bandicoot (USA)", "Tekken 3 (USA)"}, report, assets...)

	text := Render(r)
	assert.Contains(t, text, "  Exclusion report: psx.txt\n")
	assert.Contains(t, text, "  Titles removed by the filter:            2\n")
	assert.Contains(t, text, "GAMES IN CATALOG NOT IN COLLECTION (2 games)")
	assert.Contains(t, text, "  📋 Crash Bandicoot (USA)\n")
	assert.Contains(t, text, "GAMES IN COLLECTION NOT IN CATALOG (2 games)")
	assert.Contains(t, text, "  ⭐ Tekken 3 (Europe) → Superior version: 'Tekken 3 (USA)'\n")
	assert.Contains(t, text, "  ❓ Crash Bandicot (USA)\n       Closest catalog name: Crash Bandicoot (USA)\n")
	assert.Contains(t, text, "Failed:  Catalog titles not in collection, Collection titles not in catalog")
}

func TestRenderSkipped(t *testing.T) {
	r := build(t, []string{"A (USA)"}, "", complete("A (USA)")...)
	boom := errors.New("filesystem error: read library/disc/A (USA).png failed: boom")
	r.Skipped[verification.SectionDuplicates] = boom
	r.Duplicates = nil

	text := Render(r)
	assert.Contains(t, text, "DUPLICATE FILES ACROSS FOLDERS")
	assert.Contains(t, text, "  ⏭️  skipped: filesystem error: read library/disc/A (USA).png failed: boom\n")
	assert.Contains(t, text, "❌ VERDICT: FAILED (0 failed, 1 skipped)")
	assert.Contains(t, text, "     Skipped: Duplicates\n")
}

func TestMarkdown(t *testing.T) {
	md := Markdown("report body\n\n", "Weekly report.", time.Date(2024, 5, 1, 13, 30, 0, 0, time.FixedZone("MSK", 3*3600)))
	assert.Equal(t, "Weekly report.\n\n**Last Updated:** 2024-05-01 10:30:00 UTC\n\n```\n\nreport body\n```\n", md)
}
