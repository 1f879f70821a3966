package cooking

import (
	"context"
	"errors"
	"testing"

	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/alchemorsel/composer/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// ResolverTestSuite covers the cooking-effect resolver
type ResolverTestSuite struct {
	suite.Suite
	effects  *testutils.MockCookingEffectSource
	resolver *Resolver
	onion    ingredient.Ingredient
	base     ingredient.Smaakprofiel
}

func TestResolverTestSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}

func (suite *ResolverTestSuite) SetupTest() {
	suite.effects = new(testutils.MockCookingEffectSource)
	suite.resolver = NewResolver(suite.effects, zap.NewNop())
	suite.base = ingredient.Smaakprofiel{
		Mondgevoel:   ingredient.Mondgevoel{Strak: 0.5, Filmend: 0.2, Droog: 0.1},
		Smaakrijkdom: ingredient.Smaakrijkdom{Gehalte: 0.6, Type: 0.3},
	}
	suite.onion = testutils.NewIngredientFactory(7).Build(func(i *ingredient.Ingredient) {
		i.Name = "Onion"
		base := suite.base
		i.BaseProfile = &base
	})
}

func (suite *ResolverTestSuite) TearDownTest() {
	suite.effects.AssertExpectations(suite.T())
}

func (suite *ResolverTestSuite) TestRawUsesBaseProfile() {
	suite.Run("NoMethod_ShouldReturnStoredBase", func() {
		got := suite.resolver.Resolve(context.Background(), suite.onion, "")
		assert.Equal(suite.T(), suite.base, got)
	})

	suite.Run("NoStoredBase_ShouldDerive", func() {
		lemon := ingredient.Ingredient{Name: "Lemon", Flavor: ingredient.FlavorProfile{Sourness: 0.9}, AromaCategories: []string{"citrus"}}

		got := suite.resolver.Resolve(context.Background(), lemon, ingredient.MethodRaw)

		assert.Equal(suite.T(), ingredient.DeriveProfile(lemon), got)
		assert.Equal(suite.T(), 0.7, got.Mondgevoel.Strak)
	})
}

func (suite *ResolverTestSuite) TestPrecomputedProfileWins() {
	caramelized := ingredient.Smaakprofiel{Mondgevoel: ingredient.Mondgevoel{Filmend: 0.7}, Smaakrijkdom: ingredient.Smaakrijkdom{Gehalte: 0.8, Type: 0.9}}
	suite.effects.On("FindProfile", mock.Anything, suite.onion.ID, ingredient.MethodCaramelized).Return(&caramelized, nil).Once()

	got := suite.resolver.Resolve(context.Background(), suite.onion, ingredient.MethodCaramelized)

	assert.Equal(suite.T(), caramelized, got)
}

func (suite *ResolverTestSuite) TestDeltaIsApplied() {
	suite.effects.On("FindProfile", mock.Anything, suite.onion.ID, ingredient.MethodRoasted).Return(nil, nil).Once()
	suite.effects.On("FindDelta", mock.Anything, suite.onion.ID, ingredient.MethodRoasted).
		Return(&ingredient.CookingEffect{Strak: -0.3, Filmend: 0.2, Type: 0.9}, nil).Once()

	got := suite.resolver.Resolve(context.Background(), suite.onion, ingredient.MethodRoasted)

	assert.InDelta(suite.T(), 0.2, got.Mondgevoel.Strak, 1e-9)
	assert.InDelta(suite.T(), 0.4, got.Mondgevoel.Filmend, 1e-9)
	assert.Equal(suite.T(), 1.0, got.Smaakrijkdom.Type)
	assert.Equal(suite.T(), 0.6, got.Smaakrijkdom.Gehalte)
}

func (suite *ResolverTestSuite) TestUnknownPairReturnsBase() {
	suite.effects.On("FindProfile", mock.Anything, suite.onion.ID, ingredient.MethodSmoked).Return(nil, nil).Once()
	suite.effects.On("FindDelta", mock.Anything, suite.onion.ID, ingredient.MethodSmoked).Return(nil, nil).Once()

	got := suite.resolver.Resolve(context.Background(), suite.onion, ingredient.MethodSmoked)

	assert.Equal(suite.T(), suite.base, got)
}

func (suite *ResolverTestSuite) TestFailuresAreSwallowed() {
	boom := errors.New("connection reset")
	suite.effects.On("FindProfile", mock.Anything, suite.onion.ID, ingredient.MethodFried).Return(nil, boom).Once()
	suite.effects.On("FindDelta", mock.Anything, suite.onion.ID, ingredient.MethodFried).Return(nil, boom).Once()

	got := suite.resolver.Resolve(context.Background(), suite.onion, ingredient.MethodFried)

	assert.Equal(suite.T(), suite.base, got)
}

func (suite *ResolverTestSuite) TestPlaceholderHasNoProfile() {
	got := suite.resolver.Resolve(context.Background(), ingredient.NewPlaceholder("dragon fruit foam"), ingredient.MethodFried)
	assert.Equal(suite.T(), ingredient.Smaakprofiel{}, got)
}
