package catalogfile

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const smallCatalog = `{
  "version": 1,
  "ingredients": [
    {"name": "Potato", "localized_name": "Aardappel", "category": "vegetable", "role": "carrier", "molecule_type": "carbohydrate", "flavor": {"sweetness": 0.1, "saltiness": 0, "sourness": 0, "bitterness": 0, "umami": 0.1}, "aroma_intensity": 0.1},
    {"name": "Lemon", "category": "fruit", "role": "accent", "molecule_type": "water", "flavor": {"sweetness": 0, "saltiness": 0, "sourness": 0.9, "bitterness": 0.2, "umami": 0}, "mouthfeel": "refreshing", "aroma_intensity": 0.8}
  ],
  "cooking_effects": [
    {"ingredient": "potato", "method": "roasted", "delta": {"strak": 0, "filmend": 0.1, "droog": 0.3, "type": 0.3}},
    {"ingredient": "Potato", "method": "deep-fried", "profile": {"mondgevoel": {"strak": 0.1, "filmend": 0.6, "droog": 0.7}, "smaakrijkdom": {"gehalte": 0.6, "type": 0.6}}}
  ]
}`

func TestSeedIsValid(t *testing.T) {
	doc, err := Seed()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(doc.Ingredients), 30)
	roles := map[ingredient.Role]int{}
	for _, ing := range doc.Ingredients {
		roles[ing.Role]++
		assert.Equal(t, IngredientID(ing.Name), ing.ID)
	}
	for _, role := range []ingredient.Role{ingredient.RoleCarrier, ingredient.RoleSupporting, ingredient.RoleAccent, ingredient.RoleFinishing} {
		assert.Positive(t, roles[role], "seed has no %s ingredients", role)
	}
	assert.NotEmpty(t, doc.CookingEffects)
}

func TestDecodeLinksEffects(t *testing.T) {
	doc, err := Decode(strings.NewReader(smallCatalog))
	require.NoError(t, err)

	potato := IngredientID("Potato")
	assert.Equal(t, potato, doc.Ingredients[0].ID)
	require.Len(t, doc.CookingEffects, 2)
	assert.Equal(t, potato, doc.CookingEffects[0].IngredientID)
	assert.Equal(t, ingredient.MethodDeepFried, doc.CookingEffects[1].Method)
}

func TestDecodeRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown field", `{"ingredients": [], "extra": 1}`},
		{"flavor out of range", `{"ingredients": [{"name": "Salt", "category": "mineral", "role": "accent", "molecule_type": "mixed", "flavor": {"saltiness": 1.5}}]}`},
		{"duplicate names", `{"ingredients": [
			{"name": "Salt", "category": "mineral", "role": "accent", "molecule_type": "mixed"},
			{"name": "salt", "category": "mineral", "role": "accent", "molecule_type": "mixed"}]}`},
		{"unknown effect ingredient", `{"ingredients": [], "cooking_effects": [{"ingredient": "Ghost", "method": "fried", "delta": {}}]}`},
		{"raw effect", `{"ingredients": [{"name": "Salt", "category": "mineral", "role": "accent", "molecule_type": "mixed"}],
			"cooking_effects": [{"ingredient": "Salt", "method": "raw", "delta": {}}]}`},
		{"profile and delta", `{"ingredients": [{"name": "Salt", "category": "mineral", "role": "accent", "molecule_type": "mixed"}],
			"cooking_effects": [{"ingredient": "Salt", "method": "fried", "delta": {}, "profile": {}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestSourceLookups(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(smallCatalog), 0o600))
	source := NewSource(FileLoader(path), zap.NewNop())

	all, err := source.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Lemon", all[0].Name)

	found, err := source.FindByID(ctx, IngredientID("lemon"))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Lemon", found.Name)

	missing, err := source.FindByID(ctx, IngredientID("ghost"))
	require.NoError(t, err)
	assert.Nil(t, missing)

	hits, err := source.Search(ctx, "AARD", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Potato", hits[0].Name)

	vegetables, err := source.FindByCategory(ctx, "Vegetable")
	require.NoError(t, err)
	assert.Len(t, vegetables, 1)

	delta, err := source.FindDelta(ctx, IngredientID("Potato"), ingredient.MethodRoasted)
	require.NoError(t, err)
	require.NotNil(t, delta)
	assert.InDelta(t, 0.3, delta.Droog, 1e-9)

	profile, err := source.FindProfile(ctx, IngredientID("Potato"), ingredient.MethodDeepFried)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.InDelta(t, 0.7, profile.Mondgevoel.Droog, 1e-9)

	none, err := source.FindProfile(ctx, IngredientID("Lemon"), ingredient.MethodRoasted)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestSourceLoaderFailure(t *testing.T) {
	source := NewSource(func(context.Context) (*Document, error) {
		return nil, stderrors.New("bucket unreachable")
	}, zap.NewNop())

	_, err := source.FindAll(context.Background())
	assert.Error(t, err)
	_, err = source.FindDelta(context.Background(), IngredientID("Potato"), ingredient.MethodRoasted)
	assert.Error(t, err)
}
