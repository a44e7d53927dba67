package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze(t *testing.T) {
	type testCase struct {
		input  string
		output Result
	}

	testCases := []testCase{
		{
			input: "Final Fantasy VII (USA) (Disc 1)",
			output: Result{
				Base:    "Final Fantasy VII",
				Regions: []string{"USA"},
				Disc:    1,
			},
		},
		{
			input: "Fox Sports Soccer '99 (USA) (En,Es)",
			output: Result{
				Base:      "Fox Sports Soccer '99",
				Regions:   []string{"USA"},
				Languages: []string{"En", "Es"},
			},
		},
		{
			input: "Crash Bandicoot (Europe, Australia) (En,Fr,De) (Rev 2)",
			output: Result{
				Base:      "Crash Bandicoot",
				Regions:   []string{"Europe", "Australia"},
				Languages: []string{"En", "Fr", "De"},
				Revision:  2,
			},
		},
		{
			input: "Tomba! (USA) (Beta) (Rev 1)",
			output: Result{
				Base:     "Tomba!",
				Regions:  []string{"USA"},
				Revision: 1,
				Tags:     []string{"Beta"},
			},
		},
		{
			input: "Unparsable (USA",
			output: Result{
				Base: "Unparsable (USA",
			},
		},
	}

	for i, tc := range testCases {
		assert.Equal(t, tc.output, Analyze(tc.input), "Test %d failed", i)
	}
}

func TestSplitRevision(t *testing.T) {
	base, rev := SplitRevision("Ridge Racer (USA) (Rev 1)")
	assert.Equal(t, "Ridge Racer (USA)", base)
	assert.Equal(t, 1, rev)

	base, rev = SplitRevision("Ridge Racer (USA)")
	assert.Equal(t, "Ridge Racer (USA)", base)
	assert.Equal(t, 0, rev)
}

func TestValidate(t *testing.T) {
	type testCase struct {
		input      string
		violations []string
	}

	testCases := []testCase{
		{input: "Spyro the Dragon (USA)"},
		{input: "Spyro the Dragon (Europe) (En,Fr,De,Es,It)"},
		{input: "Racing (Export)"},
		{input: "Tekken 3 (Romania)"},
		{input: "Tekken 3 (Iceland, Serbia)"},
		{input: "Gran Turismo (UAE)"},
		{input: "Tekken 3 (Moldova)", violations: []string{"no region tag"}},
		{input: "Spyro the Dragon", violations: []string{"no region tag"}},
		{input: "Spyro the Dragon (USA", violations: []string{"unbalanced parentheses"}},
		{input: " Spyro (USA)", violations: []string{"leading or trailing whitespace"}},
		{input: "Spyro  the Dragon (USA)", violations: []string{"double space"}},
		{input: "Spyro: the Dragon (USA)", violations: []string{`forbidden character ':'`}},
		{input: "(USA)", violations: []string{"no title before tags"}},
		{input: "", violations: []string{"empty name"}},
	}

	for i, tc := range testCases {
		assert.Equal(t, tc.violations, Validate(tc.input), "Test %d failed", i)
	}
}
