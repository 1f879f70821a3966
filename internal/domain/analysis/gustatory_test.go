package analysis

import (
	"testing"

	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func elementTypes(missing []MissingElement) []ElementType {
	out := make([]ElementType, 0, len(missing))
	for _, m := range missing {
		out = append(out, m.Type)
	}
	return out
}

func TestGustatory_EmptyComposition(t *testing.T) {
	profile := AggregateGustatory(nil)
	missing := DetectGustatory(profile)

	assert.Nil(t, profile.Carrier)
	assert.Equal(t, []ElementType{ElementCarrier, ElementUmami}, elementTypes(missing))
	assert.Equal(t, 60, GustatoryScore(missing))
}

func TestGustatory_ChickenAndLemon(t *testing.T) {
	profile := AggregateGustatory(itemsOf(chicken, lemon))
	missing := DetectGustatory(profile)

	require.NotNil(t, profile.Carrier)
	assert.Equal(t, chicken.ID, profile.Carrier.ID)
	assert.InDelta(t, 0.45, profile.Flavor.Sourness, 1e-9)

	types := elementTypes(missing)
	assert.NotContains(t, types, ElementAcid)
	assert.Contains(t, types, ElementUmami)
	assert.NotContains(t, types, ElementFreshness, "lemon is an accent")
	// umami -15, no crunch -10
	assert.Equal(t, 75, GustatoryScore(missing))
}

func TestGustatory_PlaceholdersDoNotCount(t *testing.T) {
	profile := AggregateGustatory(itemsOf(ingredient.NewPlaceholder("chiken brest")))

	assert.Equal(t, 0, profile.IngredientCount)
	assert.Nil(t, profile.Carrier)
	assert.Equal(t, 60, GustatoryScore(DetectGustatory(profile)))
}

func TestGustatory_FreshnessNeedsTwoIngredients(t *testing.T) {
	single := DetectGustatory(AggregateGustatory(itemsOf(rice)))
	assert.NotContains(t, elementTypes(single), ElementFreshness)

	double := DetectGustatory(AggregateGustatory(itemsOf(rice, butter)))
	assert.Contains(t, elementTypes(double), ElementFreshness)
}

func TestGustatoryScore_FullDish(t *testing.T) {
	porkBelly := fixtureIngredient("Crispy Pork Belly", ingredient.RoleCarrier, ingredient.MoleculeProtein, ingredient.FlavorProfile{Umami: 0.7, Saltiness: 0.5})
	porkBelly.Textures = []ingredient.Texture{ingredient.TextureCrispy}

	profile := AggregateGustatory(itemsOf(porkBelly, lemon))
	missing := DetectGustatory(profile)

	assert.Empty(t, missing)
	assert.Equal(t, 100, GustatoryScore(missing))
}
