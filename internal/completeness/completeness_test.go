package completeness

import (
	"testing"

	"github.com/RacoonMediaServer/rms-covers/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var required = []model.Category{model.Category2DBox, model.Category3DBox, model.CategoryDisc, model.CategoryIcon}

func inventory(assets ...model.Asset) *model.Inventory {
	inv := model.NewInventory()
	for _, a := range assets {
		inv.Add(a)
	}
	return inv
}

func asset(title model.Title, c model.Category, t model.Tier) model.Asset {
	return model.Asset{Title: title, Category: c, Tier: t}
}

func full(title model.Title) []model.Asset {
	var result []model.Asset
	for _, c := range required {
		result = append(result, asset(title, c, model.TierPrimary))
	}
	return result
}

func TestCheckComplete(t *testing.T) {
	inv := inventory(append(full("A (USA)"), full("B (USA)")...)...)

	r := Check(inv, inv.Titles().Sorted(), required)
	assert.True(t, r.Passed())
	assert.Equal(t, 2, r.Checked)
	assert.Empty(t, r.Gaps)
	assert.Equal(t, 2, r.Resolved[model.CategoryDisc][model.TierPrimary])
}

func TestCheck(t *testing.T) {
	type testCase struct {
		assets   []model.Asset
		failures []Failure
		gaps     []model.AcknowledgedGap
	}

	c := model.Title("C (USA)")
	testCases := []testCase{
		{
			assets: []model.Asset{
				asset(c, model.Category2DBox, model.TierPrimary),
				asset(c, model.Category3DBox, model.TierPrimary),
				asset(c, model.CategoryIcon, model.TierPrimary),
			},
			failures: []Failure{{Title: c, Categories: []model.Category{model.CategoryDisc}}},
		},
		{
			assets: []model.Asset{
				asset(c, model.Category2DBox, model.TierLowQuality),
				asset(c, model.Category3DBox, model.TierPrimary),
				asset(c, model.CategoryDisc, model.TierMissing),
				asset(c, model.CategoryIcon, model.TierBespoke),
			},
			gaps: []model.AcknowledgedGap{{Title: c, Categories: []model.Category{model.CategoryDisc}}},
		},
		{
			assets: []model.Asset{
				asset(c, model.Category2DBox, model.TierMissing),
				asset(c, model.CategoryDisc, model.TierMissing),
			},
			failures: []Failure{{Title: c, Categories: []model.Category{model.Category3DBox, model.CategoryIcon}}},
			gaps:     []model.AcknowledgedGap{{Title: c, Categories: []model.Category{model.Category2DBox, model.CategoryDisc}}},
		},
		{
			assets: []model.Asset{
				asset(c, model.CategoryDisc, model.TierMissing),
				asset(c, model.CategoryDisc, model.TierPrimary),
				asset(c, model.Category2DBox, model.TierPrimary),
				asset(c, model.Category3DBox, model.TierPrimary),
				asset(c, model.CategoryIcon, model.TierPrimary),
			},
		},
	}

	for i, tc := range testCases {
		inv := inventory(append(full("A (USA)"), tc.assets...)...)
		r := Check(inv, inv.Titles().Sorted(), required)
		assert.Equal(t, tc.failures, r.Failures, "Test %d failed", i)
		assert.Equal(t, tc.gaps, r.Gaps, "Test %d failed", i)
		assert.Equal(t, len(tc.failures) == 0, r.Passed(), "Test %d failed", i)
	}
}

func TestCheckUnknownTitle(t *testing.T) {
	r := Check(model.NewInventory(), []model.Title{"Z (USA)"}, required)
	require.Len(t, r.Failures, 1)
	assert.Equal(t, required, r.Failures[0].Categories)
}

func TestConflicts(t *testing.T) {
	inv := inventory(
		asset("A (USA)", model.Category2DBox, model.TierMissing),
		asset("A (USA)", model.Category2DBox, model.TierPrimary),
		asset("A (USA)", model.CategoryDisc, model.TierPrimary),
		asset("B (USA)", model.CategoryIcon, model.TierPrimary),
		asset("B (USA)", model.CategoryIcon, model.TierBespoke),
	)

	conflicts := Conflicts(inv, required)
	assert.Equal(t, []Conflict{
		{Title: "A (USA)", Category: model.Category2DBox, Tiers: []model.Tier{model.TierPrimary, model.TierMissing}},
		{Title: "B (USA)", Category: model.CategoryIcon, Tiers: []model.Tier{model.TierPrimary, model.TierBespoke}},
	}, conflicts)
}

func TestMeasure(t *testing.T) {
	inv := inventory(
		asset("A (USA)", model.Category2DBox, model.TierPrimary),
		asset("B (USA)", model.Category2DBox, model.TierLowQuality),
		asset("X (USA)", model.Category2DBox, model.TierPrimary),
	)
	catalog := model.NewTitleSet("A (USA)", "B (USA)", "C (USA)", "D (USA)")

	progress := Measure(inv, catalog, []model.Category{model.Category2DBox, model.CategoryDisc})
	require.Len(t, progress, 2)
	assert.Equal(t, 1, progress[0].Primary)
	assert.Equal(t, 4, progress[0].Total)
	assert.InDelta(t, 25.0, progress[0].Percent(), 0.001)
	assert.Equal(t, 0.0, progress[1].Percent())
	assert.Equal(t, 0.0, Progress{}.Percent())
}
