package analysis

import (
	"testing"

	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smaakprofiel(strak, filmend, droog, gehalte, typ float64) ingredient.Smaakprofiel {
	return ingredient.Smaakprofiel{
		Mondgevoel:   ingredient.Mondgevoel{Strak: strak, Filmend: filmend, Droog: droog},
		Smaakrijkdom: ingredient.Smaakrijkdom{Gehalte: gehalte, Type: typ},
	}
}

func issues(missing []MissingElement) []string {
	out := make([]string, 0, len(missing))
	for _, m := range missing {
		out = append(out, m.Issue)
	}
	return out
}

func TestStrakFilmendRatio(t *testing.T) {
	assert.Equal(t, 10.0, StrakFilmendRatio(ingredient.Mondgevoel{Strak: 0.2}))
	assert.Equal(t, 0.0, StrakFilmendRatio(ingredient.Mondgevoel{}))
	assert.InDelta(t, 2.0, StrakFilmendRatio(ingredient.Mondgevoel{Strak: 0.4, Filmend: 0.2}), 1e-9)
}

func TestAnalyzeBalance_IsBalancedIffRatioAndTypeInRange(t *testing.T) {
	tests := []struct {
		name     string
		profile  ingredient.Smaakprofiel
		balanced bool
		issues   []string
	}{
		{"centered", smaakprofiel(0.3, 0.3, 0.2, 0.5, 0.5), true, []string{}},
		{"ratio at lower bound", smaakprofiel(0.15, 0.5, 0.2, 0.5, 0.5), true, []string{}},
		{"ratio at upper bound", smaakprofiel(0.75, 0.25, 0.2, 0.5, 0.5), true, []string{}},
		{"type at bounds", smaakprofiel(0.3, 0.3, 0.2, 0.5, 0.2), true, []string{}},
		{"too coating", smaakprofiel(0.05, 0.9, 0.05, 0.5, 0.5), false, []string{IssueTooCoating}},
		{"too tight", smaakprofiel(0.7, 0.1, 0.2, 0.5, 0.5), false, []string{IssueTooTight}},
		{"too fresh", smaakprofiel(0.3, 0.3, 0.2, 0.5, 0.1), false, []string{IssueTooFresh}},
		{"too ripe", smaakprofiel(0.3, 0.3, 0.2, 0.5, 0.9), false, []string{IssueTooRipe}},
		{"low intensity is advisory", smaakprofiel(0.3, 0.3, 0.2, 0.1, 0.5), true, []string{IssueLowIntensity}},
		{"flat texture is advisory", smaakprofiel(0.2, 0.2, 0.05, 0.5, 0.5), true, []string{IssueLacksTexture}},
		{"several rules fire", smaakprofiel(0.0, 0.0, 0.0, 0.0, 0.9), false, []string{IssueTooCoating, IssueTooRipe, IssueLowIntensity, IssueLacksTexture}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeBalance(tt.profile)

			assert.Equal(t, tt.balanced, got.IsBalanced)
			assert.Equal(t, tt.issues, issues(got.MissingElements))
			assert.Len(t, got.Suggestions, len(tt.issues))
			assert.Equal(t, tt.profile.Smaakrijkdom.Type, got.FrisRijpBalans)
			assert.NotEmpty(t, got.Narrative)
		})
	}
}

func TestAnalyzeBalance_ButterAloneIsTooCoating(t *testing.T) {
	got := AnalyzeBalance(smaakprofiel(0.05, 0.9, 0.05, 0.5, 0.5))

	assert.InDelta(t, 0.056, got.StrakFilmendRatio, 0.001)
	require.NotEmpty(t, got.MissingElements)
	assert.Equal(t, ElementAcid, got.MissingElements[0].Type)
	assert.Equal(t, PriorityHigh, got.MissingElements[0].Priority)
}

func TestNarrative(t *testing.T) {
	t.Run("Balanced_ShouldUseAdjectives", func(t *testing.T) {
		got := Narrative(smaakprofiel(0.3, 0.3, 0.2, 0.8, 0.3), nil)
		assert.Equal(t, "Well balanced: the composition is intense and fresh, with a harmonious mouthfeel.", got)
	})

	t.Run("Deterministic", func(t *testing.T) {
		p := smaakprofiel(0.7, 0.1, 0.2, 0.1, 0.9)
		assert.Equal(t, AnalyzeBalance(p).Narrative, AnalyzeBalance(p).Narrative)
		assert.Contains(t, AnalyzeBalance(p).Narrative, "tight and sour")
	})
}
