package analysis

import (
	"testing"

	"github.com/alchemorsel/composer/internal/domain/composition"
	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGustatoryStrategy_Analyze(t *testing.T) {
	t.Run("EmptyComposition_ShouldScoreSixty", func(t *testing.T) {
		out := NewGustatoryStrategy(0).Analyze(nil, fixtureCatalog(), 0)

		assert.Equal(t, 60, out.Report.OverallScore)
		assert.Nil(t, out.Profile.Carrier)
		assert.Contains(t, elementTypes(out.Missing), ElementUmami)
		assert.LessOrEqual(t, len(out.Suggestions), DefaultGustatorySuggestionLimit)
	})

	t.Run("SuggestionsExcludeComposition", func(t *testing.T) {
		out := NewGustatoryStrategy(8).Analyze(itemsOf(chicken, lemon), fixtureCatalog(), 3)

		for _, s := range out.Suggestions {
			assert.NotEqual(t, chicken.ID, s.Ingredient.ID)
			assert.NotEqual(t, lemon.ID, s.Ingredient.ID)
		}
		assert.Equal(t, "White Miso", out.Suggestions[0].Ingredient.Name)
	})
}

func TestMouthfeelStrategy_ButterAlone(t *testing.T) {
	items := []composition.Item{profileItem(butter, butter.DefaultWeight(), 0.05, 0.9, 0.05, 0.5, 0.5)}

	out := NewMouthfeelStrategy().Analyze(items, fixtureCatalog(), 0)

	assert.False(t, out.Report.IsBalanced)
	assert.InDelta(t, 0.056, out.Report.StrakFilmendRatio, 0.001)
	require.NotEmpty(t, out.Suggestions)

	hasAcid := false
	for _, s := range out.Suggestions {
		if s.ElementType == ElementAcid {
			hasAcid = true
		}
		assert.NotEqual(t, butter.ID, s.Ingredient.ID)
	}
	assert.True(t, hasAcid)
}

func TestMouthfeelStrategy_Uncapped(t *testing.T) {
	items := []composition.Item{profileItem(rice, 100, 0, 0, 0, 0, 0.95)}

	out := NewMouthfeelStrategy().Analyze(items, fixtureCatalog(), 3)

	assert.Equal(t, 0, NewMouthfeelStrategy().SuggestionLimit())
	// acid 3, freshness 3, intensity 1; crunch finds nothing left
	assert.Len(t, out.Suggestions, 7)
	assert.Equal(t, ingredient.Smaakprofiel{Smaakrijkdom: ingredient.Smaakrijkdom{Type: 0.95}}, out.Profile)
}
