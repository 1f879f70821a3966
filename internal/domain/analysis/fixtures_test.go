package analysis

import (
	"github.com/alchemorsel/composer/internal/domain/composition"
	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/google/uuid"
)

func fixtureIngredient(name string, role ingredient.Role, molecule ingredient.MoleculeType, flavor ingredient.FlavorProfile) ingredient.Ingredient {
	return ingredient.Ingredient{
		ID:           uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)),
		Name:         name,
		Role:         role,
		MoleculeType: molecule,
		Flavor:       flavor,
	}
}

var (
	chicken = fixtureIngredient("Chicken", ingredient.RoleCarrier, ingredient.MoleculeProtein, ingredient.FlavorProfile{Umami: 0.2, Saltiness: 0.1})
	lemon   = fixtureIngredient("Lemon", ingredient.RoleAccent, ingredient.MoleculeWater, ingredient.FlavorProfile{Sourness: 0.9})
	butter  = fixtureIngredient("Butter", ingredient.RoleSupporting, ingredient.MoleculeFat, ingredient.FlavorProfile{Sweetness: 0.1})
	miso    = fixtureIngredient("White Miso", ingredient.RoleSupporting, ingredient.MoleculeMixed, ingredient.FlavorProfile{Umami: 0.9, Saltiness: 0.8})
	vinegar = fixtureIngredient("Sherry Vinegar", ingredient.RoleFinishing, ingredient.MoleculeWater, ingredient.FlavorProfile{Sourness: 0.8})
	yogurt  = fixtureIngredient("Greek Yogurt", ingredient.RoleSupporting, ingredient.MoleculeMixed, ingredient.FlavorProfile{Sourness: 0.4})
	lime    = fixtureIngredient("Lime", ingredient.RoleAccent, ingredient.MoleculeWater, ingredient.FlavorProfile{Sourness: 0.85})
	capers  = fixtureIngredient("Capers", ingredient.RoleAccent, ingredient.MoleculeWater, ingredient.FlavorProfile{Sourness: 0.6, Saltiness: 0.7})
	rice    = fixtureIngredient("Rice", ingredient.RoleCarrier, ingredient.MoleculeCarbohydrate, ingredient.FlavorProfile{Sweetness: 0.2})
	almonds = func() ingredient.Ingredient {
		i := fixtureIngredient("Toasted Almonds", ingredient.RoleFinishing, ingredient.MoleculeFat, ingredient.FlavorProfile{Sweetness: 0.2})
		i.Textures = []ingredient.Texture{ingredient.TextureCrunchy}
		return i
	}()
)

func fixtureCatalog() []ingredient.Ingredient {
	return []ingredient.Ingredient{chicken, lemon, butter, miso, vinegar, yogurt, lime, capers, rice, almonds}
}

func itemsOf(ings ...ingredient.Ingredient) []composition.Item {
	items := make([]composition.Item, 0, len(ings))
	for _, ing := range ings {
		items = append(items, composition.NewItem(ing, ingredient.DeriveProfile(ing), ingredient.MethodRaw, 0))
	}
	return items
}

func profileItem(ing ingredient.Ingredient, weight int, strak, filmend, droog, gehalte, typ float64) composition.Item {
	return composition.Item{
		Ingredient: ing,
		Weight:     weight,
		Profile: ingredient.Smaakprofiel{
			Mondgevoel:   ingredient.Mondgevoel{Strak: strak, Filmend: filmend, Droog: droog},
			Smaakrijkdom: ingredient.Smaakrijkdom{Gehalte: gehalte, Type: typ},
		},
	}
}
