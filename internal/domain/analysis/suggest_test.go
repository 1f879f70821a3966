package analysis

import (
	"testing"

	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// SuggestTestSuite covers the suggestion engine
type SuggestTestSuite struct {
	suite.Suite
	catalog []ingredient.Ingredient
	table   PredicateTable
}

func TestSuggestTestSuite(t *testing.T) {
	suite.Run(t, new(SuggestTestSuite))
}

func (suite *SuggestTestSuite) SetupTest() {
	suite.catalog = fixtureCatalog()
	suite.table = DefaultPredicates()
}

func names(suggestions []Suggestion) []string {
	out := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, s.Ingredient.Name)
	}
	return out
}

func (suite *SuggestTestSuite) TestExcludesPresentIngredients() {
	// Arrange
	present := map[uuid.UUID]struct{}{lemon.ID: {}}
	missing := []MissingElement{{Type: ElementAcid, Priority: PriorityHigh}}

	// Act
	got := Suggest(suite.catalog, present, missing, suite.table, SuggestOptions{})

	// Assert
	assert.Equal(suite.T(), []string{"Sherry Vinegar", "Greek Yogurt", "Lime"}, names(got))
	for _, s := range got {
		assert.NotEqual(suite.T(), lemon.ID, s.Ingredient.ID)
		assert.Equal(suite.T(), ElementAcid, s.ElementType)
	}
}

func (suite *SuggestTestSuite) TestOrdersByPriorityAndCaps() {
	missing := []MissingElement{
		{Type: ElementFreshness, Priority: PriorityLow},
		{Type: ElementCrunch, Priority: PriorityLow},
		{Type: ElementAcid, Priority: PriorityMedium},
		{Type: ElementUmami, Priority: PriorityMedium},
		{Type: ElementCarrier, Priority: PriorityHigh},
	}

	suite.Run("Uncapped_ShouldReturnAllCandidates", func() {
		got := Suggest(suite.catalog, nil, missing, suite.table, SuggestOptions{})

		assert.Equal(suite.T(), []string{
			"Chicken", "Rice",
			"Lemon", "Sherry Vinegar", "Greek Yogurt", "White Miso",
			"Lime", "Capers", "Toasted Almonds",
		}, names(got))
	})

	suite.Run("Capped_ShouldKeepHighestPriority", func() {
		got := Suggest(suite.catalog, nil, missing, suite.table, SuggestOptions{Limit: 8})

		assert.Len(suite.T(), got, 8)
		assert.Equal(suite.T(), PriorityHigh, got[0].Priority)
		assert.Equal(suite.T(), "Capers", got[7].Ingredient.Name)
	})
}

func (suite *SuggestTestSuite) TestNeverSuggestsTwice() {
	missing := []MissingElement{
		{Type: ElementAcid, Priority: PriorityHigh},
		{Type: ElementFreshness, Priority: PriorityLow},
	}

	got := Suggest(suite.catalog, nil, missing, suite.table, SuggestOptions{})

	seen := map[uuid.UUID]bool{}
	for _, s := range got {
		assert.False(suite.T(), seen[s.Ingredient.ID], "duplicate %s", s.Ingredient.Name)
		seen[s.Ingredient.ID] = true
	}
}

func (suite *SuggestTestSuite) TestPerElementLimit() {
	missing := []MissingElement{{Type: ElementAcid, Priority: PriorityHigh}}

	got := Suggest(suite.catalog, nil, missing, suite.table, SuggestOptions{PerElement: 1})

	assert.Equal(suite.T(), []string{"Lemon"}, names(got))
	assert.Equal(suite.T(), "Lemon brings acidity to lift the dish", got[0].Reason)
}

func (suite *SuggestTestSuite) TestUnknownElementAndPlaceholders() {
	catalog := append([]ingredient.Ingredient{ingredient.NewPlaceholder("lemon curd")}, suite.catalog...)
	missing := []MissingElement{
		{Type: ElementType("sparkle"), Priority: PriorityHigh},
		{Type: ElementAcid, Priority: PriorityHigh},
	}

	got := Suggest(catalog, nil, missing, suite.table, SuggestOptions{PerElement: 1})

	assert.Equal(suite.T(), []string{"Lemon"}, names(got))
}

func (suite *SuggestTestSuite) TestKeywordPredicates() {
	soy := fixtureIngredient("Soy Sauce", ingredient.RoleSupporting, ingredient.MoleculeWater, ingredient.FlavorProfile{Saltiness: 0.9, Umami: 0.4})
	cream := fixtureIngredient("Heavy Cream", ingredient.RoleSupporting, ingredient.MoleculeMixed, ingredient.FlavorProfile{})
	parsley := fixtureIngredient("Flat-leaf Parsley", ingredient.RoleSupporting, ingredient.MoleculeWater, ingredient.FlavorProfile{})

	assert.True(suite.T(), suite.table[ElementUmami].Match(soy))
	assert.True(suite.T(), suite.table[ElementRichness].Match(cream))
	assert.True(suite.T(), suite.table[ElementFreshness].Match(parsley))
	assert.False(suite.T(), suite.table[ElementUmami].Match(cream))
}
