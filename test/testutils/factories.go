// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"

	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// IngredientFactory creates randomized, valid catalog ingredients
type IngredientFactory struct {
	faker *gofakeit.Faker
	seq   int
}

// NewIngredientFactory creates a new ingredient factory with seeded faker
func NewIngredientFactory(seed int64) *IngredientFactory {
	return &IngredientFactory{
		faker: gofakeit.New(seed),
	}
}

// Build creates an ingredient and applies the overrides in order
func (f *IngredientFactory) Build(overrides ...func(*ingredient.Ingredient)) ingredient.Ingredient {
	f.seq++
	roles := []string{string(ingredient.RoleCarrier), string(ingredient.RoleSupporting), string(ingredient.RoleAccent), string(ingredient.RoleFinishing)}
	molecules := []string{string(ingredient.MoleculeWater), string(ingredient.MoleculeFat), string(ingredient.MoleculeCarbohydrate), string(ingredient.MoleculeProtein), string(ingredient.MoleculeMixed)}

	ing := ingredient.Ingredient{
		ID:       uuid.New(),
		Name:     fmt.Sprintf("%s %d", f.faker.Vegetable(), f.seq),
		Category: "vegetable",
		Flavor: ingredient.FlavorProfile{
			Sweetness:  f.unit(),
			Saltiness:  f.unit(),
			Sourness:   f.unit(),
			Bitterness: f.unit(),
			Umami:      f.unit(),
		},
		Role:            ingredient.Role(f.faker.RandomString(roles)),
		MoleculeType:    ingredient.MoleculeType(f.faker.RandomString(molecules)),
		Textures:        []ingredient.Texture{ingredient.TextureSoft},
		AromaIntensity:  f.unit(),
		AromaCategories: []string{f.faker.RandomString([]string{"green", "earthy", "sweet", "herbal"})},
	}

	for _, override := range overrides {
		override(&ing)
	}
	return ing
}

// BuildMany creates n ingredients
func (f *IngredientFactory) BuildMany(n int, overrides ...func(*ingredient.Ingredient)) []ingredient.Ingredient {
	out := make([]ingredient.Ingredient, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, f.Build(overrides...))
	}
	return out
}

func (f *IngredientFactory) unit() float64 {
	return float64(int(f.faker.Float64Range(0, 1)*100)) / 100
}

// Well-known kitchen ingredients with stable ids, shared by service and handler tests
var (
	ChickenBreast = kitchenIngredient("Chicken Breast", "Kipfilet", "poultry", ingredient.RoleCarrier, ingredient.MoleculeProtein,
		ingredient.FlavorProfile{Umami: 0.2, Saltiness: 0.1}, nil, ingredient.MouthfeelNone, 0.3, nil)
	Lemon = kitchenIngredient("Lemon", "Citroen", "fruit", ingredient.RoleAccent, ingredient.MoleculeWater,
		ingredient.FlavorProfile{Sourness: 0.9, Bitterness: 0.2}, nil, ingredient.MouthfeelRefreshing, 0.8, []string{"citrus", "fresh"})
	Butter = kitchenIngredient("Butter", "Boter", "dairy", ingredient.RoleSupporting, ingredient.MoleculeFat,
		ingredient.FlavorProfile{Sweetness: 0.1, Saltiness: 0.2}, []ingredient.Texture{ingredient.TextureCreamy}, ingredient.MouthfeelCoating, 0.5, nil)
	WhiteMiso = kitchenIngredient("White Miso", "Witte miso", "condiment", ingredient.RoleSupporting, ingredient.MoleculeMixed,
		ingredient.FlavorProfile{Umami: 0.9, Saltiness: 0.8, Sweetness: 0.3}, nil, ingredient.MouthfeelRich, 0.7, []string{"fermented"})
	SherryVinegar = kitchenIngredient("Sherry Vinegar", "Sherryazijn", "condiment", ingredient.RoleFinishing, ingredient.MoleculeWater,
		ingredient.FlavorProfile{Sourness: 0.85}, nil, ingredient.MouthfeelAstringent, 0.6, nil)
	Parmesan = kitchenIngredient("Parmesan", "Parmezaanse kaas", "dairy", ingredient.RoleFinishing, ingredient.MoleculeProtein,
		ingredient.FlavorProfile{Umami: 0.8, Saltiness: 0.7}, []ingredient.Texture{ingredient.TextureCrunchy}, ingredient.MouthfeelDry, 0.7, []string{"nutty"})
	ToastedAlmonds = kitchenIngredient("Toasted Almonds", "Geroosterde amandelen", "nut", ingredient.RoleFinishing, ingredient.MoleculeFat,
		ingredient.FlavorProfile{Sweetness: 0.2, Bitterness: 0.1}, []ingredient.Texture{ingredient.TextureCrunchy}, ingredient.MouthfeelNone, 0.5, []string{"toasted"})
	Rice = kitchenIngredient("Jasmine Rice", "Jasmijnrijst", "grain", ingredient.RoleCarrier, ingredient.MoleculeCarbohydrate,
		ingredient.FlavorProfile{Sweetness: 0.2}, []ingredient.Texture{ingredient.TextureSoft}, ingredient.MouthfeelNone, 0.2, nil)
	Parsley = kitchenIngredient("Flat-leaf Parsley", "Peterselie", "herb", ingredient.RoleFinishing, ingredient.MoleculeWater,
		ingredient.FlavorProfile{Bitterness: 0.2}, nil, ingredient.MouthfeelRefreshing, 0.6, []string{"green", "herbal"})
	OliveOil = kitchenIngredient("Olive Oil", "Olijfolie", "oil", ingredient.RoleSupporting, ingredient.MoleculeFat,
		ingredient.FlavorProfile{Bitterness: 0.2}, nil, ingredient.MouthfeelCoating, 0.4, []string{"green"})
)

// KitchenCatalog returns the well-known ingredients, sorted by name
func KitchenCatalog() []ingredient.Ingredient {
	return []ingredient.Ingredient{Butter, ChickenBreast, Parsley, Rice, Lemon, OliveOil, Parmesan, SherryVinegar, ToastedAlmonds, WhiteMiso}
}

func kitchenIngredient(
	name, localized, category string,
	role ingredient.Role,
	molecule ingredient.MoleculeType,
	flavor ingredient.FlavorProfile,
	textures []ingredient.Texture,
	mouthfeel ingredient.Mouthfeel,
	aroma float64,
	aromaCategories []string,
) ingredient.Ingredient {
	return ingredient.Ingredient{
		ID:              uuid.NewSHA1(uuid.NameSpaceOID, []byte("testutils/"+name)),
		Name:            name,
		LocalizedName:   localized,
		Category:        category,
		Flavor:          flavor,
		Role:            role,
		MoleculeType:    molecule,
		Textures:        textures,
		Mouthfeel:       mouthfeel,
		AromaIntensity:  aroma,
		AromaCategories: aromaCategories,
	}
}
