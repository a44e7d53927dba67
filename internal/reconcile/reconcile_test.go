package reconcile

import (
	"testing"

	"github.com/RacoonMediaServer/rms-covers/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titlesOf(list []Discrepancy) []model.Title {
	var result []model.Title
	for _, d := range list {
		result = append(result, d.Title)
	}
	return result
}

func TestReconcileExact(t *testing.T) {
	set := model.NewTitleSet("A (USA)", "B (USA)", "C (USA)")
	r := Reconcile(set, model.NewTitleSet("C (USA)", "A (USA)", "B (USA)"), nil)

	assert.True(t, r.Passed())
	assert.Equal(t, []model.Title{"A (USA)", "B (USA)", "C (USA)"}, r.Matched)
	assert.Empty(t, r.Missing)
	assert.Empty(t, r.Orphans)
}

func TestReconcile(t *testing.T) {
	catalog := model.NewTitleSet("Ape Escape (USA)", "Crash Bandicoot (USA)", "Spyro the Dragon (USA)")
	collection := model.NewTitleSet("Ape Escape (USA)", "Crash Bandicot (USA)", "Tekken 3 (Europe)")
	exclusions := model.Exclusions{
		"Tekken 3 (Europe)": {Title: "Tekken 3 (Europe)", Reason: model.ReasonClone, Superior: "Tekken 3 (USA)"},
	}

	r := Reconcile(catalog, collection, exclusions)
	require.False(t, r.Passed())
	assert.Equal(t, []model.Title{"Ape Escape (USA)"}, r.Matched)
	assert.Equal(t, []model.Title{"Crash Bandicoot (USA)", "Spyro the Dragon (USA)"}, titlesOf(r.Missing))
	assert.Equal(t, []model.Title{"Crash Bandicot (USA)", "Tekken 3 (Europe)"}, titlesOf(r.Orphans))

	assert.False(t, r.Missing[0].Excluded())
	assert.Equal(t, model.Title("Crash Bandicoot (USA)"), r.Orphans[0].Suggestion)
	assert.False(t, r.Orphans[0].Excluded())

	require.True(t, r.Orphans[1].Excluded())
	assert.Equal(t, "Superior version: 'Tekken 3 (USA)'", r.Orphans[1].Exclusion.Describe())
	assert.Empty(t, r.Orphans[1].Suggestion)
}

func TestReconcileSymmetric(t *testing.T) {
	type testCase struct {
		a, b model.TitleSet
	}

	testCases := []testCase{
		{a: model.NewTitleSet("A (USA)", "B (USA)"), b: model.NewTitleSet("B (USA)", "C (USA)")},
		{a: model.NewTitleSet(), b: model.NewTitleSet("C (USA)")},
		{a: model.NewTitleSet("A (USA)", "B (USA)", "D (Japan)"), b: model.NewTitleSet()},
		{a: model.NewTitleSet("A (USA)"), b: model.NewTitleSet("A (USA)")},
	}

	for i, tc := range testCases {
		forward := Reconcile(tc.a, tc.b, nil)
		backward := Reconcile(tc.b, tc.a, nil)
		assert.Equal(t, titlesOf(forward.Missing), titlesOf(backward.Orphans), "Test %d failed", i)
		assert.Equal(t, titlesOf(forward.Orphans), titlesOf(backward.Missing), "Test %d failed", i)
		assert.Equal(t, forward.Matched, backward.Matched, "Test %d failed", i)
	}
}
