package composition

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/alchemorsel/composer/internal/application/catalog"
	"github.com/alchemorsel/composer/internal/application/cooking"
	"github.com/alchemorsel/composer/internal/domain/analysis"
	domain "github.com/alchemorsel/composer/internal/domain/composition"
	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/alchemorsel/composer/internal/infrastructure/persistence/memory"
	"github.com/alchemorsel/composer/internal/ports/inbound"
	"github.com/alchemorsel/composer/pkg/errors"
	"github.com/alchemorsel/composer/test/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// ServiceTestSuite exercises the composition service against the kitchen catalog
type ServiceTestSuite struct {
	suite.Suite
	source  *testutils.MockCatalogSource
	effects *testutils.MockCookingEffectSource
	store   *memory.CompositionStore
	service inbound.CompositionService
	ctx     context.Context
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (suite *ServiceTestSuite) SetupTest() {
	suite.source = new(testutils.MockCatalogSource)
	suite.effects = new(testutils.MockCookingEffectSource)
	suite.effects.SetupNoEffects()
	suite.store = memory.NewCompositionStore()
	suite.ctx = context.Background()

	logger := zap.NewNop()
	cache := catalog.NewCache(suite.source, nil, nil, catalog.CacheConfig{}, logger)
	resolver := cooking.NewResolver(suite.effects, logger)
	suite.service = NewService(cache, resolver, suite.store, nil, Config{}, logger)
}

func (suite *ServiceTestSuite) catalogAvailable() {
	suite.source.On("FindAll", mock.Anything).Return(testutils.KitchenCatalog(), nil)
}

func (suite *ServiceTestSuite) catalogDown() {
	suite.source.On("FindAll", mock.Anything).Return(nil, stderrors.New("connection refused"))
}

func (suite *ServiceTestSuite) TestAnalyzeEmptyComposition() {
	suite.catalogAvailable()

	result, err := suite.service.AnalyzeComposition(suite.ctx, nil)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 60, result.OverallScore)
	assert.Nil(suite.T(), result.Carrier)
	assert.False(suite.T(), result.Retryable)
	require.Len(suite.T(), result.MissingElements, 2)
	assert.Equal(suite.T(), analysis.ElementCarrier, result.MissingElements[0].Type)
	assert.Equal(suite.T(), analysis.ElementUmami, result.MissingElements[1].Type)
	assert.LessOrEqual(suite.T(), len(result.Suggestions), analysis.DefaultGustatorySuggestionLimit)
}

func (suite *ServiceTestSuite) TestAnalyzeCarrierWithAcid() {
	suite.catalogAvailable()

	result, err := suite.service.AnalyzeComposition(suite.ctx, []string{"Chicken Breast", "lemon"})

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), result.Carrier)
	assert.Equal(suite.T(), testutils.ChickenBreast.ID, result.Carrier.ID)
	assert.Equal(suite.T(), 75, result.OverallScore)
	assert.InDelta(suite.T(), 0.45, result.FlavorProfile.Sourness, 1e-9)
	assert.Empty(suite.T(), result.Unresolved)

	var names []string
	for _, s := range result.Suggestions {
		names = append(names, s.Ingredient.Name)
		assert.NotEqual(suite.T(), testutils.ChickenBreast.ID, s.Ingredient.ID)
		assert.NotEqual(suite.T(), testutils.Lemon.ID, s.Ingredient.ID)
	}
	assert.Equal(suite.T(), []string{"Parmesan", "White Miso", "Toasted Almonds"}, names)
	assert.Equal(suite.T(), analysis.PriorityLow, result.Suggestions[2].Priority)
}

func (suite *ServiceTestSuite) TestAnalyzeUnknownNameBecomesPlaceholder() {
	suite.catalogAvailable()

	result, err := suite.service.AnalyzeComposition(suite.ctx, []string{"chiken brest"})

	require.NoError(suite.T(), err)
	require.Len(suite.T(), result.Ingredients, 1)
	resolved := result.Ingredients[0]
	assert.True(suite.T(), resolved.Placeholder)
	assert.Equal(suite.T(), "chiken brest", resolved.Ingredient.Name)
	assert.Equal(suite.T(), string(catalog.MatchPlaceholder), resolved.Match)
	assert.Equal(suite.T(), []string{"chiken brest"}, result.Unresolved)

	// the placeholder does not count as a carrier or an ingredient
	assert.Nil(suite.T(), result.Carrier)
	assert.Equal(suite.T(), 60, result.OverallScore)
	assert.True(suite.T(), result.FlavorProfile.IsZero())
}

func (suite *ServiceTestSuite) TestAnalyzeWithCatalogDown() {
	suite.catalogDown()

	result, err := suite.service.AnalyzeComposition(suite.ctx, []string{"lemon"})

	require.NoError(suite.T(), err)
	assert.True(suite.T(), result.Retryable)
	assert.Empty(suite.T(), result.Ingredients)
	assert.Empty(suite.T(), result.Suggestions)

	list, err := suite.service.GetSuggestions(suite.ctx, []string{"lemon"})
	require.NoError(suite.T(), err)
	assert.True(suite.T(), list.Retryable)
	assert.Empty(suite.T(), list.Suggestions)
}

func (suite *ServiceTestSuite) TestGetSuggestionsMatchesAnalysis() {
	suite.catalogAvailable()
	names := []string{"Chicken Breast", "lemon"}

	analysisResult, err := suite.service.AnalyzeComposition(suite.ctx, names)
	require.NoError(suite.T(), err)
	list, err := suite.service.GetSuggestions(suite.ctx, names)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), analysisResult.Suggestions, list.Suggestions)
}

func (suite *ServiceTestSuite) TestSessionLifecycle() {
	suite.catalogAvailable()

	created, err := suite.service.CreateComposition(suite.ctx, inbound.CreateCompositionCommand{Name: "  Sunday roast "})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Sunday roast", created.Name)
	assert.Empty(suite.T(), created.Items)

	dto, err := suite.service.AddIngredient(suite.ctx, inbound.AddIngredientCommand{
		CompositionID: created.ID,
		Ingredient:    testutils.ChickenBreast.ID.String(),
	})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), dto.Items, 1)
	assert.Equal(suite.T(), 100, dto.Items[0].Weight)
	assert.Equal(suite.T(), ingredient.MethodRaw, dto.Items[0].CookingMethod)

	weight := 40
	dto, err = suite.service.AddIngredient(suite.ctx, inbound.AddIngredientCommand{
		CompositionID: created.ID,
		Ingredient:    "butter",
		Weight:        &weight,
		CookingMethod: "sauteed",
	})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), dto.Items, 2)
	assert.Equal(suite.T(), testutils.Butter.ID, dto.Items[1].IngredientID)
	assert.Equal(suite.T(), 40, dto.Items[1].Weight)
	assert.Equal(suite.T(), ingredient.MethodSauteed, dto.Items[1].CookingMethod)

	dto, err = suite.service.SetCookingMethod(suite.ctx, inbound.SetCookingMethodCommand{
		CompositionID: created.ID,
		IngredientID:  testutils.ChickenBreast.ID,
		CookingMethod: "roasted",
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), ingredient.MethodRoasted, dto.Items[0].CookingMethod)

	profile, err := suite.service.ComputeProfile(suite.ctx, created.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), dto.Profile, *profile)

	dto, err = suite.service.RemoveIngredient(suite.ctx, created.ID, testutils.Butter.ID)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), dto.Items, 1)

	require.NoError(suite.T(), suite.service.DeleteComposition(suite.ctx, created.ID))
	_, err = suite.service.GetComposition(suite.ctx, created.ID)
	assert.True(suite.T(), errors.Is(err, errors.CodeCompositionNotFound))
}

func (suite *ServiceTestSuite) TestAddIngredientErrors() {
	suite.catalogAvailable()
	created, err := suite.service.CreateComposition(suite.ctx, inbound.CreateCompositionCommand{Name: "errors"})
	require.NoError(suite.T(), err)

	cmd := inbound.AddIngredientCommand{CompositionID: created.ID, Ingredient: "lemon"}
	_, err = suite.service.AddIngredient(suite.ctx, cmd)
	require.NoError(suite.T(), err)

	_, err = suite.service.AddIngredient(suite.ctx, cmd)
	assert.True(suite.T(), errors.Is(err, errors.CodeDuplicateIngredient))

	_, err = suite.service.AddIngredient(suite.ctx, inbound.AddIngredientCommand{
		CompositionID: created.ID, Ingredient: "butter", CookingMethod: "microwaved",
	})
	assert.True(suite.T(), errors.Is(err, errors.CodeInvalidCookingMethod))

	_, err = suite.service.AddIngredient(suite.ctx, inbound.AddIngredientCommand{
		CompositionID: created.ID, Ingredient: uuid.New().String(),
	})
	assert.True(suite.T(), errors.Is(err, errors.CodeIngredientNotFound))

	_, err = suite.service.AddIngredient(suite.ctx, inbound.AddIngredientCommand{
		CompositionID: uuid.New(), Ingredient: "butter",
	})
	assert.True(suite.T(), errors.Is(err, errors.CodeCompositionNotFound))

	_, err = suite.service.RemoveIngredient(suite.ctx, created.ID, testutils.Butter.ID)
	assert.True(suite.T(), errors.Is(err, errors.CodeIngredientNotFound))
}

func (suite *ServiceTestSuite) TestCreateComposition_ShouldPublishWithoutPendingEvents() {
	created, err := suite.service.CreateComposition(suite.ctx, inbound.CreateCompositionCommand{Name: "drained"})
	require.NoError(suite.T(), err)

	err = suite.store.View(suite.ctx, created.ID, func(c *domain.Composition) error {
		assert.False(suite.T(), c.HasEvents(), "events are drained before the composition is shared")
		return nil
	})
	require.NoError(suite.T(), err)
}

func (suite *ServiceTestSuite) TestSetWeight() {
	suite.catalogAvailable()
	created, err := suite.service.CreateComposition(suite.ctx, inbound.CreateCompositionCommand{Name: "weights"})
	require.NoError(suite.T(), err)
	_, err = suite.service.AddIngredient(suite.ctx, inbound.AddIngredientCommand{
		CompositionID: created.ID, Ingredient: testutils.ChickenBreast.ID.String(),
	})
	require.NoError(suite.T(), err)
	before, err := suite.service.AddIngredient(suite.ctx, inbound.AddIngredientCommand{
		CompositionID: created.ID, Ingredient: "lemon",
	})
	require.NoError(suite.T(), err)

	suite.Run("Adjust_ShouldReweightProfile", func() {
		dto, err := suite.service.SetWeight(suite.ctx, inbound.SetWeightCommand{
			CompositionID: created.ID, IngredientID: testutils.Lemon.ID, Weight: 90,
		})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 90, dto.Items[1].Weight)
		assert.Greater(suite.T(), dto.Version, before.Version)
		assert.NotEqual(suite.T(), before.Profile, dto.Profile)
	})

	suite.Run("Zero_ShouldRestoreRoleDefault", func() {
		dto, err := suite.service.SetWeight(suite.ctx, inbound.SetWeightCommand{
			CompositionID: created.ID, IngredientID: testutils.Lemon.ID,
		})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), testutils.Lemon.DefaultWeight(), dto.Items[1].Weight)
		assert.Equal(suite.T(), before.Profile, dto.Profile)
	})

	suite.Run("Errors", func() {
		_, err := suite.service.SetWeight(suite.ctx, inbound.SetWeightCommand{
			CompositionID: created.ID, IngredientID: testutils.Lemon.ID, Weight: -1,
		})
		assert.True(suite.T(), errors.Is(err, errors.CodeValidationFailed))

		_, err = suite.service.SetWeight(suite.ctx, inbound.SetWeightCommand{
			CompositionID: created.ID, IngredientID: testutils.Butter.ID, Weight: 10,
		})
		assert.True(suite.T(), errors.Is(err, errors.CodeIngredientNotFound))

		_, err = suite.service.SetWeight(suite.ctx, inbound.SetWeightCommand{
			CompositionID: uuid.New(), IngredientID: testutils.Lemon.ID, Weight: 10,
		})
		assert.True(suite.T(), errors.Is(err, errors.CodeCompositionNotFound))
	})
}

func (suite *ServiceTestSuite) TestAddUnknownNameKeepsPlaceholder() {
	suite.catalogAvailable()
	created, err := suite.service.CreateComposition(suite.ctx, inbound.CreateCompositionCommand{})
	require.NoError(suite.T(), err)

	dto, err := suite.service.AddIngredient(suite.ctx, inbound.AddIngredientCommand{
		CompositionID: created.ID, Ingredient: "dragon fruit",
	})

	require.NoError(suite.T(), err)
	require.Len(suite.T(), dto.Items, 1)
	assert.True(suite.T(), dto.Items[0].Placeholder)
	assert.Equal(suite.T(), ingredient.Smaakprofiel{}, dto.Profile)
}

func (suite *ServiceTestSuite) TestAnalyzeMouthfeel() {
	suite.catalogAvailable()
	created, err := suite.service.CreateComposition(suite.ctx, inbound.CreateCompositionCommand{Name: "rich"})
	require.NoError(suite.T(), err)
	for _, name := range []string{"butter", "olive oil"} {
		_, err = suite.service.AddIngredient(suite.ctx, inbound.AddIngredientCommand{CompositionID: created.ID, Ingredient: name})
		require.NoError(suite.T(), err)
	}

	result, err := suite.service.AnalyzeMouthfeel(suite.ctx, created.ID)

	require.NoError(suite.T(), err)
	assert.False(suite.T(), result.Retryable)
	assert.Equal(suite.T(), created.ID, result.CompositionID)
	assert.False(suite.T(), result.Balance.IsBalanced)
	assert.NotEmpty(suite.T(), result.Balance.Narrative)
	for _, s := range result.Suggestions {
		assert.NotEqual(suite.T(), testutils.Butter.ID, s.Ingredient.ID)
		assert.NotEqual(suite.T(), testutils.OliveOil.ID, s.Ingredient.ID)
	}
}

func (suite *ServiceTestSuite) TestAnalyzeMouthfeelWithCatalogDown() {
	suite.catalogDown()
	created, err := suite.service.CreateComposition(suite.ctx, inbound.CreateCompositionCommand{Name: "offline"})
	require.NoError(suite.T(), err)

	result, err := suite.service.AnalyzeMouthfeel(suite.ctx, created.ID)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), result.Retryable)
	assert.Empty(suite.T(), result.Suggestions)
	assert.NotEmpty(suite.T(), result.Balance.Narrative)
}
