package composition

import (
	"testing"

	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// CompositionTestSuite provides a test suite for the Composition aggregate
type CompositionTestSuite struct {
	suite.Suite
	chicken ingredient.Ingredient
	lemon   ingredient.Ingredient
}

func TestCompositionTestSuite(t *testing.T) {
	suite.Run(t, new(CompositionTestSuite))
}

func (suite *CompositionTestSuite) SetupTest() {
	suite.chicken = ingredient.Ingredient{ID: uuid.New(), Name: "Chicken", Role: ingredient.RoleCarrier, MoleculeType: ingredient.MoleculeProtein}
	suite.lemon = ingredient.Ingredient{ID: uuid.New(), Name: "Lemon", Role: ingredient.RoleAccent, MoleculeType: ingredient.MoleculeWater}
}

func (suite *CompositionTestSuite) TestNewItem() {
	suite.Run("NoWeight_ShouldUseRoleDefault", func() {
		item := NewItem(suite.chicken, ingredient.Smaakprofiel{}, "", 0)

		assert.Equal(suite.T(), 100, item.Weight)
		assert.Equal(suite.T(), ingredient.MethodRaw, item.CookingMethod)
	})

	suite.Run("ExplicitWeight_ShouldWin", func() {
		item := NewItem(suite.lemon, ingredient.Smaakprofiel{}, ingredient.MethodGrilled, 40)
		assert.Equal(suite.T(), 40, item.Weight)
	})
}

func (suite *CompositionTestSuite) TestAddIngredient() {
	suite.Run("ValidItem_ShouldAppendAndEmitEvent", func() {
		// Arrange
		c := NewComposition("weeknight")
		c.ClearEvents()

		// Act
		err := c.AddIngredient(NewItem(suite.chicken, ingredient.Smaakprofiel{}, "", 0))

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 1, c.Len())
		_, present := c.Item(suite.chicken.ID)
		assert.True(suite.T(), present)
		assert.Equal(suite.T(), int64(2), c.Version())

		events := c.Events()
		require.Len(suite.T(), events, 1)
		added, ok := events[0].(IngredientAddedEvent)
		require.True(suite.T(), ok)
		assert.Equal(suite.T(), suite.chicken.ID, added.IngredientID)
	})

	suite.Run("Duplicate_ShouldReturnError", func() {
		c := NewComposition("")
		require.NoError(suite.T(), c.AddIngredient(NewItem(suite.chicken, ingredient.Smaakprofiel{}, "", 0)))

		err := c.AddIngredient(NewItem(suite.chicken, ingredient.Smaakprofiel{}, "", 10))

		assert.Equal(suite.T(), ErrDuplicateIngredient, err)
		assert.Equal(suite.T(), 1, c.Len())
	})

	suite.Run("NegativeWeight_ShouldReturnError", func() {
		c := NewComposition("")
		err := c.AddIngredient(Item{Ingredient: suite.lemon, Weight: -1})
		assert.Equal(suite.T(), ErrInvalidWeight, err)
	})
}

func (suite *CompositionTestSuite) TestRemoveIngredient() {
	c := NewComposition("")
	require.NoError(suite.T(), c.AddIngredient(NewItem(suite.chicken, ingredient.Smaakprofiel{}, "", 0)))
	require.NoError(suite.T(), c.AddIngredient(NewItem(suite.lemon, ingredient.Smaakprofiel{}, "", 0)))

	require.NoError(suite.T(), c.RemoveIngredient(suite.chicken.ID))

	items := c.Items()
	require.Len(suite.T(), items, 1)
	assert.Equal(suite.T(), suite.lemon.ID, items[0].Ingredient.ID)
	assert.Equal(suite.T(), ErrIngredientNotInComposition, c.RemoveIngredient(suite.chicken.ID))
}

func (suite *CompositionTestSuite) TestSetCookingMethod() {
	c := NewComposition("")
	require.NoError(suite.T(), c.AddIngredient(NewItem(suite.chicken, ingredient.Smaakprofiel{}, "", 0)))
	c.ClearEvents()
	roasted := ingredient.Smaakprofiel{Smaakrijkdom: ingredient.Smaakrijkdom{Type: 0.8}}

	err := c.SetCookingMethod(suite.chicken.ID, ingredient.MethodRoasted, roasted)

	require.NoError(suite.T(), err)
	item, ok := c.Item(suite.chicken.ID)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), ingredient.MethodRoasted, item.CookingMethod)
	assert.Equal(suite.T(), roasted, item.Profile)

	events := c.Events()
	require.Len(suite.T(), events, 1)
	changed := events[0].(CookingMethodChangedEvent)
	assert.Equal(suite.T(), ingredient.MethodRaw, changed.OldMethod)
	assert.Equal(suite.T(), ingredient.MethodRoasted, changed.NewMethod)

	assert.Equal(suite.T(), ErrIngredientNotInComposition, c.SetCookingMethod(uuid.New(), ingredient.MethodBoiled, roasted))
}

func (suite *CompositionTestSuite) TestSetWeight() {
	c := NewComposition("")
	require.NoError(suite.T(), c.AddIngredient(NewItem(suite.lemon, ingredient.Smaakprofiel{}, "", 0)))
	c.ClearEvents()

	require.NoError(suite.T(), c.SetWeight(suite.lemon.ID, 30))
	item, _ := c.Item(suite.lemon.ID)
	assert.Equal(suite.T(), 30, item.Weight)

	events := c.Events()
	require.Len(suite.T(), events, 1)
	changed := events[0].(WeightChangedEvent)
	assert.Equal(suite.T(), suite.lemon.DefaultWeight(), changed.OldWeight)
	assert.Equal(suite.T(), 30, changed.NewWeight)

	assert.Equal(suite.T(), ErrInvalidWeight, c.SetWeight(suite.lemon.ID, -5))
	assert.Equal(suite.T(), ErrIngredientNotInComposition, c.SetWeight(uuid.New(), 5))
}

func (suite *CompositionTestSuite) TestIngredientIDs() {
	c := NewComposition("")
	require.NoError(suite.T(), c.AddIngredient(NewItem(suite.lemon, ingredient.Smaakprofiel{}, "", 0)))
	require.NoError(suite.T(), c.AddIngredient(NewItem(suite.chicken, ingredient.Smaakprofiel{}, "", 0)))

	ids := IngredientIDs(c.Items())

	assert.Len(suite.T(), ids, 2)
	assert.Contains(suite.T(), ids, suite.lemon.ID)
	assert.Contains(suite.T(), ids, suite.chicken.ID)
	assert.Empty(suite.T(), IngredientIDs(nil))
}

func (suite *CompositionTestSuite) TestEvents_ShouldCarryCompositionIDAndDrain() {
	c := NewComposition("sunday roast")
	require.NoError(suite.T(), c.AddIngredient(NewItem(suite.chicken, ingredient.Smaakprofiel{}, "", 0)))
	require.True(suite.T(), c.HasEvents())

	events := c.Events()
	require.Len(suite.T(), events, 2)
	for _, event := range events {
		assert.Equal(suite.T(), c.ID(), event.AggregateID())
	}
	assert.Equal(suite.T(), "composition.created", events[0].EventName())
	assert.False(suite.T(), c.HasEvents())
	assert.Empty(suite.T(), c.Events())
}
