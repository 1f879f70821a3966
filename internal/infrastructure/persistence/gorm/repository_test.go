package gorm_test

import (
	"context"
	"testing"

	"github.com/alchemorsel/composer/internal/domain/ingredient"
	gormModels "github.com/alchemorsel/composer/internal/infrastructure/persistence/gorm"
	"github.com/alchemorsel/composer/internal/infrastructure/persistence/catalogfile"
	"github.com/alchemorsel/composer/internal/infrastructure/persistence/sqlite"
	"github.com/alchemorsel/composer/test/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RepositoryTestSuite runs the catalog repositories against in-memory SQLite
type RepositoryTestSuite struct {
	suite.Suite
	db          *gorm.DB
	ingredients *gormModels.IngredientRepository
	effects     *gormModels.CookingEffectRepository
	ctx         context.Context
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func (suite *RepositoryTestSuite) SetupTest() {
	db, err := sqlite.SetupDatabase(sqlite.Options{
		Path:        "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		AutoMigrate: true,
	}, zap.NewNop())
	require.NoError(suite.T(), err)

	suite.db = db
	suite.ingredients = gormModels.NewIngredientRepository(db)
	suite.effects = gormModels.NewCookingEffectRepository(db)
	suite.ctx = context.Background()

	require.NoError(suite.T(), suite.ingredients.Upsert(suite.ctx, testutils.KitchenCatalog()))
}

func (suite *RepositoryTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	require.NoError(suite.T(), err)
	sqlDB.Close()
}

func (suite *RepositoryTestSuite) TestFindAll_ShouldReturnCatalogByName() {
	all, err := suite.ingredients.FindAll(suite.ctx)

	require.NoError(suite.T(), err)
	require.Len(suite.T(), all, len(testutils.KitchenCatalog()))
	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(suite.T(), all[i-1].Name, all[i].Name)
	}
}

func (suite *RepositoryTestSuite) TestFindByID_ShouldRoundTripIngredient() {
	found, err := suite.ingredients.FindByID(suite.ctx, testutils.Parmesan.ID)

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), found)
	assert.Equal(suite.T(), testutils.Parmesan, *found)
}

func (suite *RepositoryTestSuite) TestFindByID_ShouldReturnNilWhenMissing() {
	found, err := suite.ingredients.FindByID(suite.ctx, catalogfile.IngredientID("unicorn"))

	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), found)
}

func (suite *RepositoryTestSuite) TestFindByCategory_ShouldIgnoreCase() {
	dairy, err := suite.ingredients.FindByCategory(suite.ctx, "DAIRY")

	require.NoError(suite.T(), err)
	require.Len(suite.T(), dairy, 2)
	assert.Equal(suite.T(), "Butter", dairy[0].Name)
	assert.Equal(suite.T(), "Parmesan", dairy[1].Name)
}

func (suite *RepositoryTestSuite) TestSearch_ShouldMatchBothNames() {
	hits, err := suite.ingredients.Search(suite.ctx, "azijn", 10)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), hits, 1)
	assert.Equal(suite.T(), testutils.SherryVinegar.ID, hits[0].ID)

	limited, err := suite.ingredients.Search(suite.ctx, "e", 2)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), limited, 2)

	literal, err := suite.ingredients.Search(suite.ctx, "%", 10)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), literal)
}

func (suite *RepositoryTestSuite) TestBaseProfile_ShouldPersistWhenSet() {
	base := ingredient.Smaakprofiel{
		Mondgevoel:   ingredient.Mondgevoel{Strak: 0.2, Filmend: 0.5, Droog: 0.3},
		Smaakrijkdom: ingredient.Smaakrijkdom{Gehalte: 0.6, Type: 0.7},
	}
	stew := testutils.NewIngredientFactory(7).Build(func(i *ingredient.Ingredient) {
		i.Name = "Beef Stew Base"
		i.BaseProfile = &base
	})
	require.NoError(suite.T(), suite.ingredients.Upsert(suite.ctx, []ingredient.Ingredient{stew}))

	found, err := suite.ingredients.FindByID(suite.ctx, stew.ID)

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), found.BaseProfile)
	assert.Equal(suite.T(), base, *found.BaseProfile)
}

func (suite *RepositoryTestSuite) TestCookingEffects_ShouldStoreProfilesAndDeltas() {
	profile := ingredient.Smaakprofiel{
		Mondgevoel:   ingredient.Mondgevoel{Strak: 0.1, Filmend: 0.8, Droog: 0.1},
		Smaakrijkdom: ingredient.Smaakrijkdom{Gehalte: 0.7, Type: 0.9},
	}
	require.NoError(suite.T(), suite.effects.SaveProfile(suite.ctx, testutils.Butter.ID, ingredient.MethodCaramelized, profile))
	require.NoError(suite.T(), suite.effects.SaveDelta(suite.ctx, ingredient.CookingEffect{
		IngredientID: testutils.Butter.ID, Method: ingredient.MethodRoasted, Droog: 0.2, Type: 0.3,
	}))

	gotProfile, err := suite.effects.FindProfile(suite.ctx, testutils.Butter.ID, ingredient.MethodCaramelized)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), gotProfile)
	assert.Equal(suite.T(), profile, *gotProfile)

	gotDelta, err := suite.effects.FindDelta(suite.ctx, testutils.Butter.ID, ingredient.MethodRoasted)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), gotDelta)
	assert.InDelta(suite.T(), 0.3, gotDelta.Type, 1e-9)

	noDelta, err := suite.effects.FindDelta(suite.ctx, testutils.Butter.ID, ingredient.MethodCaramelized)
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), noDelta)

	// saving again replaces the row
	require.NoError(suite.T(), suite.effects.SaveDelta(suite.ctx, ingredient.CookingEffect{
		IngredientID: testutils.Butter.ID, Method: ingredient.MethodRoasted, Type: 0.5,
	}))
	gotDelta, err = suite.effects.FindDelta(suite.ctx, testutils.Butter.ID, ingredient.MethodRoasted)
	require.NoError(suite.T(), err)
	assert.InDelta(suite.T(), 0.5, gotDelta.Type, 1e-9)
}

func TestSeedCatalog(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.SetupDatabase(sqlite.Options{Path: "file:seed_test?mode=memory&cache=shared", AutoMigrate: true}, zap.NewNop())
	require.NoError(t, err)

	doc, err := catalogfile.Seed()
	require.NoError(t, err)
	require.NoError(t, gormModels.SeedCatalog(ctx, db, doc, zap.NewNop()))
	// a second run is a no-op
	require.NoError(t, gormModels.SeedCatalog(ctx, db, doc, zap.NewNop()))

	repo := gormModels.NewIngredientRepository(db)
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(doc.Ingredients)), count)

	effects := gormModels.NewCookingEffectRepository(db)
	delta, err := effects.FindDelta(ctx, catalogfile.IngredientID("Potato"), ingredient.MethodRoasted)
	require.NoError(t, err)
	assert.NotNil(t, delta)
}
